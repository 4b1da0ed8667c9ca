package asana_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskwire-io/asana/pkg/asana"
)

func TestGenericResource_FieldAccess(t *testing.T) {
	t.Parallel()

	resource := asana.NewGenericResource(map[string]interface{}{
		"gid":           "12345",
		"resource_type": "project",
		"name":          "Roadmap",
		"archived":      false,
		"num_tasks":     float64(42),
		"due_on":        nil,
	})

	assert.Equal(t, "12345", resource.GID())
	assert.Equal(t, "project", resource.Type())

	name, ok := resource.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "Roadmap", name)

	archived, ok := resource.GetBool("archived")
	assert.True(t, ok)
	assert.False(t, archived)

	numTasks, ok := resource.GetNumber("num_tasks")
	assert.True(t, ok)
	assert.InEpsilon(t, 42.0, numTasks, 0.0001)

	// Present with a null value is not the same as absent.
	value, ok := resource.Get("due_on")
	assert.True(t, ok)
	assert.Nil(t, value)

	_, ok = resource.Get("nonexistent")
	assert.False(t, ok)

	_, ok = resource.GetString("archived")
	assert.False(t, ok)

	assert.Equal(t, 6, resource.Len())
	assert.ElementsMatch(t, []string{"gid", "resource_type", "name", "archived", "num_tasks", "due_on"}, resource.Fields())
}

func TestGenericResource_NestedMaterialization(t *testing.T) {
	t.Parallel()

	var resource asana.GenericResource

	err := json.Unmarshal([]byte(`{
		"gid": "777",
		"resource_type": "portfolio",
		"owner": {
			"gid": "888",
			"resource_type": "user",
			"name": "Greg Sanchez",
			"photo": {"image_21x21": "https://example.com/p.png"}
		},
		"members": [
			{"gid": "888", "resource_type": "user"},
			{"gid": "999", "resource_type": "user"}
		],
		"weights": [1, 2, 3]
	}`), &resource)
	require.NoError(t, err)

	owner, ok := resource.GetResource("owner")
	require.True(t, ok)
	assert.Equal(t, "888", owner.GID())
	assert.Equal(t, "user", owner.Type())

	// Materialization recurses all the way down.
	photo, ok := owner.GetResource("photo")
	require.True(t, ok)

	url, ok := photo.GetString("image_21x21")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/p.png", url)

	members, ok := resource.GetList("members")
	require.True(t, ok)
	require.Len(t, members, 2)

	first, ok := members[0].(*asana.GenericResource)
	require.True(t, ok)
	assert.Equal(t, "888", first.GID())

	weights, ok := resource.GetList("weights")
	require.True(t, ok)
	assert.Equal(t, []interface{}{float64(1), float64(2), float64(3)}, weights)
}

func TestGenericResource_EmptySource(t *testing.T) {
	t.Parallel()

	resource := asana.NewGenericResource(nil)

	assert.Empty(t, resource.GID())
	assert.Empty(t, resource.Type())
	assert.Equal(t, 0, resource.Len())
	assert.Empty(t, resource.Fields())
}

func TestGenericResource_Refresh(t *testing.T) {
	t.Parallel()

	resource := asana.NewGenericResource(map[string]interface{}{
		"gid":    "12345",
		"name":   "Before",
		"color":  "light-green",
		"stale":  true,
	})

	resource.Refresh(map[string]interface{}{
		"gid":  "12345",
		"name": "After",
	})

	name, ok := resource.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "After", name)

	// Replacement is wholesale, not a merge.
	_, ok = resource.Get("color")
	assert.False(t, ok)
	_, ok = resource.Get("stale")
	assert.False(t, ok)
}

func TestGenericResource_RefreshJSON(t *testing.T) {
	t.Parallel()

	resource := asana.NewGenericResource(map[string]interface{}{"gid": "12345"})

	err := resource.RefreshJSON([]byte(`{"gid": "12345", "owner": {"gid": "888"}}`))
	require.NoError(t, err)

	owner, ok := resource.GetResource("owner")
	require.True(t, ok)
	assert.Equal(t, "888", owner.GID())

	err = resource.RefreshJSON([]byte(`not json`))
	require.Error(t, err)
}

func TestGenericResource_MarshalRoundTrip(t *testing.T) {
	t.Parallel()

	var resource asana.GenericResource

	source := []byte(`{"gid":"777","owner":{"gid":"888","name":"Greg Sanchez"}}`)
	require.NoError(t, json.Unmarshal(source, &resource))

	encoded, err := json.Marshal(&resource)
	require.NoError(t, err)
	assert.JSONEq(t, string(source), string(encoded))
}
