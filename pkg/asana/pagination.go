package asana

import (
	"context"
	"fmt"
)

// PaginationClient is the page-fetch capability the iterator drives. It is
// implemented by the per-resource clients.
type PaginationClient[T any] interface {
	ListWithPath(ctx context.Context, path string, params *QueryParams) (*ListResponse[T], error)
}

// PaginationOptions controls bulk pagination helpers.
type PaginationOptions struct {
	// PageSize is the limit sent on each page request.
	PageSize int
	// MaxPages bounds how many pages are fetched; 0 means unbounded.
	MaxPages int
}

// DefaultPaginationOptions returns sensible defaults for bulk fetching.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: 50,
		MaxPages: 0,
	}
}

// PaginationIterator lazily walks a paginated result set, one page at a
// time. The current page's in-memory items drain before the next HTTP
// request is issued with the stored continuation token, so memory is bounded
// to one page and a consumer that stops early never pays for unvisited
// pages.
//
// Iteration is forward-only; restarting requires a fresh iterator. A failed
// page fetch propagates to the caller and leaves the iterator positioned
// before the failed page, so retrying the same advance is safe.
type PaginationIterator[T any] struct {
	ctx      context.Context
	client   PaginationClient[T]
	path     string
	params   *QueryParams
	items    []T
	index    int
	offset   string
	done     bool
	fetchErr error
}

// NewPaginationIterator creates an iterator over path with the given query
// parameters. The params are cloned; the caller's copy is never mutated.
func NewPaginationIterator[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams) *PaginationIterator[T] {
	return &PaginationIterator[T]{
		ctx:    ctx,
		client: client,
		path:   path,
		params: params.Clone(),
	}
}

// HasNext reports whether another item is available. When the current page
// is drained and a continuation token is present, this fetches the next
// page. A failed fetch is stashed and reported by the subsequent Next call;
// repeated HasNext polls at a failing boundary do not reissue the request.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.index < len(it.items) {
		return true
	}

	if it.fetchErr != nil {
		return true
	}

	if it.done {
		return false
	}

	err := it.fetchNextPage()
	if err != nil {
		it.fetchErr = err

		return true
	}

	return it.index < len(it.items)
}

// Next returns the next item, fetching the next page if the current one is
// exhausted. It returns ErrNoMoreItems past the end of the result set.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if it.fetchErr != nil {
		err := it.fetchErr
		it.fetchErr = nil

		return zero, err
	}

	if it.index >= len(it.items) {
		if it.done {
			return zero, ErrNoMoreItems
		}

		err := it.fetchNextPage()
		if err != nil {
			return zero, err
		}

		if it.index >= len(it.items) {
			return zero, ErrNoMoreItems
		}
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// All drains the iterator and returns the concatenation of all remaining
// pages' items in fetch order.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach applies fn to every remaining item; a non-nil error from fn stops
// iteration and is returned.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

// fetchNextPage issues exactly one request for the next page. The stored
// offset is only advanced after a successful fetch.
func (it *PaginationIterator[T]) fetchNextPage() error {
	params := it.params.Clone()
	if it.offset != "" {
		params.Offset = it.offset
	}

	page, err := it.client.ListWithPath(it.ctx, it.path, params)
	if err != nil {
		return fmt.Errorf("fetching page: %w", err)
	}

	it.items = page.Data
	it.index = 0

	if page.NextPage != nil && page.NextPage.Offset != "" {
		it.offset = page.NextPage.Offset
	} else {
		it.done = true
	}

	return nil
}

// FetchAllPages collects every page of a list into one slice. Options may
// bound the page size and the number of pages fetched.
func FetchAllPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, options *PaginationOptions) ([]T, error) {
	params = params.Clone()
	if options != nil && options.PageSize > 0 {
		params.Limit = options.PageSize
	}

	var all []T

	pages := 0
	offset := ""

	for {
		pageParams := params.Clone()
		if offset != "" {
			pageParams.Offset = offset
		}

		page, err := client.ListWithPath(ctx, path, pageParams)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", pages+1, err)
		}

		all = append(all, page.Data...)
		pages++

		if page.NextPage == nil || page.NextPage.Offset == "" {
			break
		}

		if options != nil && options.MaxPages > 0 && pages >= options.MaxPages {
			break
		}

		offset = page.NextPage.Offset
	}

	return all, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages delivers pages over a channel, fetching each page only after
// the previous one has been sent. The channel closes after the final page or
// the first error.
func StreamPages[T any](ctx context.Context, client PaginationClient[T], path string, params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		params := params.Clone()
		if options != nil && options.PageSize > 0 {
			params.Limit = options.PageSize
		}

		pages := 0
		offset := ""

		for {
			pageParams := params.Clone()
			if offset != "" {
				pageParams.Offset = offset
			}

			page, err := client.ListWithPath(ctx, path, pageParams)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: page.Data}:
			case <-ctx.Done():
				return
			}

			pages++

			if page.NextPage == nil || page.NextPage.Offset == "" {
				return
			}

			if options != nil && options.MaxPages > 0 && pages >= options.MaxPages {
				return
			}

			offset = page.NextPage.Offset
		}
	}()

	return results
}
