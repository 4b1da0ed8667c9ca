package asana

import (
	"encoding/json"
)

// GenericResource is a materialized view of a remote entity whose concrete
// kind is not known at compile time. Endpoints with heterogeneous items
// (portfolio items may be projects or nested portfolios) decode into it.
//
// It is a read-mostly snapshot: field access never triggers a network call,
// and the only mutation is Refresh, which replaces the whole field set with
// a fresh server representation. Instances are single-owner; callers needing
// concurrent access must serialize it themselves.
type GenericResource struct {
	fields map[string]interface{}
}

// NewGenericResource materializes a resource from a parsed JSON object.
// Object-valued fields are materialized recursively as *GenericResource.
// A nil or empty source yields a degenerate empty resource.
func NewGenericResource(fields map[string]interface{}) *GenericResource {
	res := &GenericResource{}
	res.hydrate(fields)

	return res
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *GenericResource) UnmarshalJSON(data []byte) error {
	var fields map[string]interface{}

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}

	r.hydrate(fields)

	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *GenericResource) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.fields))

	for name, value := range r.fields {
		if nested, ok := value.(*GenericResource); ok {
			out[name] = nested.fields
		} else {
			out[name] = value
		}
	}

	return json.Marshal(out)
}

func (r *GenericResource) hydrate(fields map[string]interface{}) {
	materialized := make(map[string]interface{}, len(fields))

	for name, value := range fields {
		materialized[name] = materializeValue(value)
	}

	r.fields = materialized
}

// materializeValue converts object values into nested *GenericResource and
// recurses into arrays; scalars pass through unchanged.
func materializeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return NewGenericResource(v)
	case []interface{}:
		items := make([]interface{}, len(v))
		for i, item := range v {
			items[i] = materializeValue(item)
		}

		return items
	default:
		return value
	}
}

// GID returns the resource's globally unique identifier, or "" if the
// hydration source carried none.
func (r *GenericResource) GID() string {
	gid, _ := r.GetString("gid")

	return gid
}

// Type returns the resource_type tag, or "" if absent.
func (r *GenericResource) Type() string {
	typ, _ := r.GetString("resource_type")

	return typ
}

// Get looks up a field by name. The second return value distinguishes a
// field that is present (possibly with a null value) from one that is not
// part of this resource's snapshot at all.
func (r *GenericResource) Get(name string) (interface{}, bool) {
	value, ok := r.fields[name]

	return value, ok
}

// GetString returns a string-valued field.
func (r *GenericResource) GetString(name string) (string, bool) {
	value, ok := r.fields[name]
	if !ok {
		return "", false
	}

	str, ok := value.(string)

	return str, ok
}

// GetBool returns a boolean-valued field.
func (r *GenericResource) GetBool(name string) (bool, bool) {
	value, ok := r.fields[name]
	if !ok {
		return false, false
	}

	b, ok := value.(bool)

	return b, ok
}

// GetNumber returns a numeric field. JSON numbers decode as float64.
func (r *GenericResource) GetNumber(name string) (float64, bool) {
	value, ok := r.fields[name]
	if !ok {
		return 0, false
	}

	num, ok := value.(float64)

	return num, ok
}

// GetResource returns a nested object-valued field as a materialized
// resource.
func (r *GenericResource) GetResource(name string) (*GenericResource, bool) {
	value, ok := r.fields[name]
	if !ok {
		return nil, false
	}

	nested, ok := value.(*GenericResource)

	return nested, ok
}

// GetList returns an array-valued field with object items materialized.
func (r *GenericResource) GetList(name string) ([]interface{}, bool) {
	value, ok := r.fields[name]
	if !ok {
		return nil, false
	}

	list, ok := value.([]interface{})

	return list, ok
}

// Fields returns the set of field names present in this snapshot.
func (r *GenericResource) Fields() []string {
	names := make([]string, 0, len(r.fields))
	for name := range r.fields {
		names = append(names, name)
	}

	return names
}

// Len returns the number of fields in this snapshot.
func (r *GenericResource) Len() int {
	return len(r.fields)
}

// Refresh replaces every cached field wholesale with the contents of a new
// server representation. Fields absent from the new object become absent;
// nothing is merged with stale data.
func (r *GenericResource) Refresh(fields map[string]interface{}) {
	r.hydrate(fields)
}

// RefreshJSON is Refresh from a raw JSON object.
func (r *GenericResource) RefreshJSON(data []byte) error {
	var fields map[string]interface{}

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return err
	}

	r.hydrate(fields)

	return nil
}
