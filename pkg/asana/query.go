package asana

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryParams expresses common list options for API requests.
type QueryParams struct {
	// Limit is the page size (the "limit" query parameter).
	Limit int
	// Offset is the opaque continuation token echoed from a previous page.
	Offset string
	// OptFields selects which fields the server should include.
	OptFields []string
	// OptPretty asks the server for pretty-printed output.
	OptPretty bool
	// Filters holds endpoint-specific query filters (workspace, owner, ...).
	Filters map[string][]string
}

// NewQueryParams creates an empty QueryParams.
func NewQueryParams() *QueryParams {
	return &QueryParams{
		Filters: make(map[string][]string),
	}
}

// WithLimit sets the page size.
func (p *QueryParams) WithLimit(limit int) *QueryParams {
	p.Limit = limit

	return p
}

// WithOffset sets the continuation token.
func (p *QueryParams) WithOffset(offset string) *QueryParams {
	p.Offset = offset

	return p
}

// WithOptFields appends to the selected fields.
func (p *QueryParams) WithOptFields(fields ...string) *QueryParams {
	p.OptFields = append(p.OptFields, fields...)

	return p
}

// WithOptPretty enables pretty-printed responses.
func (p *QueryParams) WithOptPretty() *QueryParams {
	p.OptPretty = true

	return p
}

// WithFilter appends values to a named filter.
func (p *QueryParams) WithFilter(name string, values ...string) *QueryParams {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	p.Filters[name] = append(p.Filters[name], values...)

	return p
}

// ToValues converts the params to url.Values. Zero values and empty lists
// are omitted entirely; the remote API misinterprets explicit empties.
func (p *QueryParams) ToValues() url.Values {
	values := url.Values{}

	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}

	if p.Offset != "" {
		values.Set("offset", p.Offset)
	}

	if len(p.OptFields) > 0 {
		values.Set("opt_fields", strings.Join(p.OptFields, ","))
	}

	if p.OptPretty {
		values.Set("opt_pretty", "true")
	}

	for name, filterValues := range p.Filters {
		if len(filterValues) > 0 {
			values.Set(name, strings.Join(filterValues, ","))
		}
	}

	return values
}

// Clone returns a deep copy. Pagination advances clone the original params
// so an in-flight iterator never mutates caller-owned state.
func (p *QueryParams) Clone() *QueryParams {
	if p == nil {
		return NewQueryParams()
	}

	clone := &QueryParams{
		Limit:     p.Limit,
		Offset:    p.Offset,
		OptPretty: p.OptPretty,
		OptFields: append([]string(nil), p.OptFields...),
		Filters:   make(map[string][]string, len(p.Filters)),
	}

	for name, values := range p.Filters {
		clone.Filters[name] = append([]string(nil), values...)
	}

	return clone
}
