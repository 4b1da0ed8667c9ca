package asana_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskwire-io/asana/pkg/asana"
)

func TestQueryParams_ToValues(t *testing.T) {
	t.Parallel()

	params := asana.NewQueryParams().
		WithLimit(25).
		WithOffset("eyJ0eXAiOiJKV1QifQ").
		WithOptFields("name", "color", "owner.name").
		WithOptPretty().
		WithFilter("workspace", "12345").
		WithFilter("owner", "me")

	values := params.ToValues()

	assert.Equal(t, "25", values.Get("limit"))
	assert.Equal(t, "eyJ0eXAiOiJKV1QifQ", values.Get("offset"))
	assert.Equal(t, "name,color,owner.name", values.Get("opt_fields"))
	assert.Equal(t, "true", values.Get("opt_pretty"))
	assert.Equal(t, "12345", values.Get("workspace"))
	assert.Equal(t, "me", values.Get("owner"))
}

func TestQueryParams_ToValuesOmitsZeroValues(t *testing.T) {
	t.Parallel()

	values := asana.NewQueryParams().ToValues()
	assert.Empty(t, values)

	values = asana.NewQueryParams().WithFilter("team").ToValues()
	assert.Empty(t, values.Get("team"))

	values = (&asana.QueryParams{Limit: 0, Offset: ""}).ToValues()
	assert.Empty(t, values)
}

func TestQueryParams_WithFilterAppends(t *testing.T) {
	t.Parallel()

	params := asana.NewQueryParams().
		WithFilter("projects", "100").
		WithFilter("projects", "200", "300")

	assert.Equal(t, "100,200,300", params.ToValues().Get("projects"))
}

func TestQueryParams_WithFilterNilMap(t *testing.T) {
	t.Parallel()

	params := &asana.QueryParams{}
	params.WithFilter("workspace", "12345")

	assert.Equal(t, "12345", params.ToValues().Get("workspace"))
}

func TestQueryParams_Clone(t *testing.T) {
	t.Parallel()

	original := asana.NewQueryParams().
		WithLimit(10).
		WithOptFields("name").
		WithFilter("workspace", "12345")

	clone := original.Clone()
	clone.WithLimit(99).
		WithOffset("tok").
		WithOptFields("color").
		WithFilter("workspace", "67890")

	assert.Equal(t, 10, original.Limit)
	assert.Empty(t, original.Offset)
	assert.Equal(t, []string{"name"}, original.OptFields)
	assert.Equal(t, []string{"12345"}, original.Filters["workspace"])

	assert.Equal(t, 99, clone.Limit)
	assert.Equal(t, []string{"12345", "67890"}, clone.Filters["workspace"])
}

func TestQueryParams_CloneNil(t *testing.T) {
	t.Parallel()

	var params *asana.QueryParams

	clone := params.Clone()
	assert.NotNil(t, clone)
	assert.Empty(t, clone.ToValues())
}
