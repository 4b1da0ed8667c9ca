package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/taskwire-io/asana/internal/constants"
	"github.com/taskwire-io/asana/pkg/asana"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrEndpointMismatch   = errors.New("endpoint does not match configuration")
	ErrWorkspaceRequired  = errors.New("workspace is required (use --workspace or set default_workspace)")
	ErrTokenRequired      = errors.New("token is required")
	ErrCredentialsMissing = errors.New("client ID, client secret, and refresh token are all required for OAuth login")
)

// renderOutput encodes data as JSON or YAML per the --output flag, falling
// back to the provided table renderer.
func renderOutput(data interface{}, renderTable func() error) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding to JSON: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding to YAML: %w", err)
		}

		return nil
	default:
		return renderTable()
	}
}

// requireWorkspace resolves the workspace GID from the flag, the environment,
// or the configured default.
func requireWorkspace() (string, error) {
	workspace := viper.GetString("workspace")
	if workspace == "" {
		workspace = loadConfig().DefaultWorkspace
	}

	if workspace == "" {
		return "", ErrWorkspaceRequired
	}

	return workspace, nil
}

// refName formats a resource reference for table output.
func refName(ref *asana.NamedResource) string {
	if ref == nil {
		return "-"
	}

	if ref.Name != "" {
		return ref.Name
	}

	return ref.GID
}

// refNames joins a list of references by name for table output.
func refNames(refs []asana.NamedResource) string {
	if len(refs) == 0 {
		return "-"
	}

	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		name := ref.Name
		if name == "" {
			name = ref.GID
		}

		names = append(names, name)
	}

	return strings.Join(names, ", ")
}

// listParams builds query parameters from common list flags.
func listParams(limit int, optFields []string) *asana.QueryParams {
	params := asana.NewQueryParams()
	if limit > 0 {
		params.WithLimit(limit)
	}

	if len(optFields) > 0 {
		params.WithOptFields(optFields...)
	}

	return params
}
