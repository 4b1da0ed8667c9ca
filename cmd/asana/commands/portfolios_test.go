package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPortfoliosCommand(t *testing.T) {
	cmd := NewPortfoliosCommand()
	assert.Equal(t, "portfolios", cmd.Use)
	assert.Equal(t, []string{"portfolio"}, cmd.Aliases)
	assert.Equal(t, "Manage portfolios", cmd.Short)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "delete")
	assert.Contains(t, commandNames, "items")
	assert.Contains(t, commandNames, "add-item")
	assert.Contains(t, commandNames, "remove-item")
	assert.Contains(t, commandNames, "add-members")
	assert.Contains(t, commandNames, "remove-members")
	assert.Contains(t, commandNames, "custom-fields")
}

func TestPortfoliosListCommand(t *testing.T) {
	cmd := newPortfoliosListCommand()
	assert.Equal(t, "list", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	for _, flagName := range []string{"owner", "limit", "fields", "all"} {
		flag := cmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "Flag %s should exist", flagName)
	}

	ownerFlag := cmd.Flags().Lookup("owner")
	assert.Equal(t, "me", ownerFlag.DefValue)
}

func TestPortfoliosListCommand_AllFetchesEachPageOnce(t *testing.T) {
	var offsets []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/portfolios", r.URL.Path)

		offset := r.URL.Query().Get("offset")
		offsets = append(offsets, offset)

		if offset == "" {
			_, _ = w.Write([]byte(`{"data":[{"gid":"1","name":"One"}],"next_page":{"offset":"tok-2"}}`))

			return
		}

		_, _ = w.Write([]byte(`{"data":[{"gid":"2","name":"Two"}]}`))
	}))
	defer server.Close()

	viper.Set("endpoint", server.URL)
	viper.Set("token", "pat-token")
	viper.Set("workspace", "12345")
	viper.Set("output", "json")
	t.Cleanup(viper.Reset)

	cmd := newPortfoliosListCommand()
	cmd.SetArgs([]string{"--all"})

	require.NoError(t, cmd.Execute())

	// Exhaustive listing requests each page exactly once, page one included.
	assert.Equal(t, []string{"", "tok-2"}, offsets)
}

func TestPortfoliosGetCommand(t *testing.T) {
	cmd := newPortfoliosGetCommand()
	assert.Equal(t, "get PORTFOLIO_GID", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
	assert.NotNil(t, cmd.Flags().Lookup("fields"))
}

func TestPortfoliosCreateCommand(t *testing.T) {
	cmd := newPortfoliosCreateCommand()
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	nameFlag := cmd.Flags().Lookup("name")
	assert.NotNil(t, nameFlag)
	assert.Equal(t, "n", nameFlag.Shorthand)
	assert.NotNil(t, cmd.Flags().Lookup("color"))
}

func TestPortfoliosDeleteCommand(t *testing.T) {
	cmd := newPortfoliosDeleteCommand()
	assert.Equal(t, "delete PORTFOLIO_GID", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	forceFlag := cmd.Flags().Lookup("force")
	assert.NotNil(t, forceFlag)
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)
}

func TestPortfoliosCustomFieldsCommand(t *testing.T) {
	cmd := newPortfoliosCustomFieldsCommand()
	assert.Equal(t, "custom-fields", cmd.Use)

	var commandNames []string
	for _, subcmd := range cmd.Commands() {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "add")
	assert.Contains(t, commandNames, "remove")
}
