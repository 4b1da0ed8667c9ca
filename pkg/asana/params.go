package asana

import (
	"fmt"
	"reflect"
)

// MissingParamError reports a required request parameter the caller omitted.
// It is raised locally, before any network call.
type MissingParamError struct {
	Param string
}

// Error implements the error interface.
func (e *MissingParamError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Param)
}

// IsMissingParam checks whether err is a local required-parameter violation.
func IsMissingParam(err error) bool {
	var missing *MissingParamError

	return asError(err, &missing)
}

// Payload builds a request body from explicit named parameters plus an
// open-ended Extra map of undeclared fields.
//
// Merge precedence is fixed: a field set explicitly via Set wins over a
// same-named key in Extra.
type Payload struct {
	named map[string]interface{}
	extra map[string]interface{}
}

// NewPayload creates an empty payload.
func NewPayload() *Payload {
	return &Payload{
		named: make(map[string]interface{}),
	}
}

// Set records an explicit named parameter.
func (p *Payload) Set(name string, value interface{}) *Payload {
	p.named[name] = value

	return p
}

// Extra attaches the pass-through map of undeclared fields.
func (p *Payload) Extra(fields map[string]interface{}) *Payload {
	p.extra = fields

	return p
}

// Require fails fast when a named parameter is absent or empty, naming the
// missing parameter. It checks the merged view, so a required field supplied
// only through Extra also satisfies it.
func (p *Payload) Require(names ...string) error {
	for _, name := range names {
		value, ok := p.named[name]
		if !ok || isEmptyValue(value) {
			extraValue, extraOK := p.extra[name]
			if !extraOK || isEmptyValue(extraValue) {
				return &MissingParamError{Param: name}
			}
		}
	}

	return nil
}

// Build produces the final request body. Entries whose value is nil, an
// empty string, or an empty list/map are removed entirely rather than sent
// as explicit nulls or empties. Extra keys are merged first, then explicit
// names overwrite.
func (p *Payload) Build() map[string]interface{} {
	body := make(map[string]interface{}, len(p.named)+len(p.extra))

	for name, value := range p.extra {
		if !isEmptyValue(value) {
			body[name] = value
		}
	}

	for name, value := range p.named {
		if !isEmptyValue(value) {
			body[name] = value
		}
	}

	return body
}

// Wrap returns the body inside the request envelope the service expects.
func (p *Payload) Wrap() map[string]interface{} {
	return map[string]interface{}{"data": p.Build()}
}

func isEmptyValue(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
