package asana_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskwire-io/asana/pkg/asana"
)

func TestPayload_Build(t *testing.T) {
	t.Parallel()

	body := asana.NewPayload().
		Set("workspace", "12345").
		Set("name", "Roadmap").
		Set("color", "").
		Set("members", []string{}).
		Set("owner", nil).
		Build()

	assert.Equal(t, map[string]interface{}{
		"workspace": "12345",
		"name":      "Roadmap",
	}, body)
}

func TestPayload_BuildMergesExtra(t *testing.T) {
	t.Parallel()

	body := asana.NewPayload().
		Extra(map[string]interface{}{
			"name":   "From Extra",
			"public": true,
			"notes":  "",
		}).
		Set("name", "Explicit wins").
		Build()

	assert.Equal(t, map[string]interface{}{
		"name":   "Explicit wins",
		"public": true,
	}, body)
}

func TestPayload_Require(t *testing.T) {
	t.Parallel()

	t.Run("all present", func(t *testing.T) {
		t.Parallel()

		payload := asana.NewPayload().
			Set("workspace", "12345").
			Set("name", "Roadmap")

		require.NoError(t, payload.Require("workspace", "name"))
	})

	t.Run("missing parameter", func(t *testing.T) {
		t.Parallel()

		payload := asana.NewPayload().Set("workspace", "12345")

		err := payload.Require("workspace", "name")
		require.Error(t, err)
		assert.True(t, asana.IsMissingParam(err))
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("empty counts as missing", func(t *testing.T) {
		t.Parallel()

		payload := asana.NewPayload().Set("workspace", "")

		err := payload.Require("workspace")
		require.Error(t, err)
		assert.True(t, asana.IsMissingParam(err))
	})

	t.Run("satisfied through extra fields", func(t *testing.T) {
		t.Parallel()

		payload := asana.NewPayload().
			Extra(map[string]interface{}{"workspace": "12345"}).
			Set("name", "Roadmap")

		require.NoError(t, payload.Require("workspace", "name"))
	})
}

func TestPayload_Wrap(t *testing.T) {
	t.Parallel()

	wrapped := asana.NewPayload().Set("name", "Roadmap").Wrap()

	assert.Equal(t, map[string]interface{}{
		"data": map[string]interface{}{"name": "Roadmap"},
	}, wrapped)
}

func TestIsMissingParam(t *testing.T) {
	t.Parallel()

	assert.True(t, asana.IsMissingParam(&asana.MissingParamError{Param: "workspace"}))
	assert.False(t, asana.IsMissingParam(assert.AnError))
	assert.False(t, asana.IsMissingParam(nil))
}
