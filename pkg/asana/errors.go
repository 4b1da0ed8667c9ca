package asana

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a single error returned by the API.
type APIError struct {
	Message string `json:"message"          yaml:"message"`
	Help    string `json:"help,omitempty"   yaml:"help,omitempty"`
	Phrase  string `json:"phrase,omitempty" yaml:"phrase,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Help != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Help)
	}

	return e.Message
}

// ResponseError represents the error envelope returned by the API, together
// with the HTTP status of the response it arrived on.
type ResponseError struct {
	StatusCode int        `json:"-"      yaml:"-"`
	Errors     []APIError `json:"errors" yaml:"errors"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("API error (status %d)", e.StatusCode)
	}

	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s (status %d)", e.Errors[0].Error(), e.StatusCode)
	}

	return fmt.Sprintf("multiple errors (status %d): %v", e.StatusCode, e.Errors)
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrBaseURLRequired     = errors.New("base URL is required")
	ErrAccessTokenRequired = errors.New("access token is required")
	ErrEmptyResponseBody   = errors.New("empty response body")
	ErrNoMoreItems         = errors.New("no more items")
)

// IsNotFound checks if the error is a not-found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error is a rate-limit rejection.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

func hasStatus(err error, status int) bool {
	errResp := &ResponseError{}
	if errors.As(err, &errResp) {
		return errResp.StatusCode == status
	}

	return false
}

// ParseResponseError parses an error envelope from JSON.
func ParseResponseError(statusCode int, data []byte) *ResponseError {
	errResp := &ResponseError{StatusCode: statusCode}

	// A non-JSON error body still yields a usable status-only error.
	_ = json.Unmarshal(data, errResp)

	return errResp
}

func asError[T error](err error, target *T) bool {
	return errors.As(err, target)
}
