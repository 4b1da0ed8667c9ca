package commands

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/taskwire-io/asana/internal/auth"
	"github.com/taskwire-io/asana/internal/client"
	"github.com/taskwire-io/asana/internal/constants"
	"github.com/taskwire-io/asana/pkg/asana"
	"github.com/taskwire-io/asana/pkg/asanaclient"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	Endpoint       string     `json:"endpoint,omitempty"         yaml:"endpoint,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`
	RefreshToken   string     `json:"refresh_token,omitempty"    yaml:"refresh_token,omitempty"`
	LastRefreshed  *time.Time `json:"last_refreshed,omitempty"   yaml:"last_refreshed,omitempty"`
	ClientID       string     `json:"client_id,omitempty"        yaml:"client_id,omitempty"`
	ClientSecret   string     `json:"client_secret,omitempty"    yaml:"client_secret,omitempty"`

	// DefaultWorkspace is used by list commands when --workspace is absent.
	DefaultWorkspace string `json:"default_workspace,omitempty" yaml:"default_workspace,omitempty"`

	// Global settings
	Output  string `json:"output"   yaml:"output"`
	NoColor bool   `json:"no_color" yaml:"no_color"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage CLI configuration including the API endpoint and default workspace",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return renderOutput(config, func() error {
				return displayConfigTable(config)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a specific configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			config := loadConfig()

			err := applyConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a specific configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			err := clearConfigValue(config, key)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				home, _ := os.UserHomeDir()
				configFile = filepath.Join(home, ".asana", "config.yml")
			}

			err := os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			_, _ = os.Stdout.WriteString("Cleared all configuration\n")

			return nil
		},
	}
}

func applyConfigValue(config *Config, key, value string) error {
	switch key {
	case "endpoint":
		config.Endpoint = value
	case "default_workspace":
		config.DefaultWorkspace = value
	case "client_id":
		config.ClientID = value
	case "client_secret":
		config.ClientSecret = value
	case "output":
		config.Output = value
	case "no_color":
		config.NoColor = value == "true" || value == "1"
	case "token", "refresh_token":
		return fmt.Errorf("%w: %s, use 'asana login' instead", ErrUnknownConfigKey, key)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func clearConfigValue(config *Config, key string) error {
	switch key {
	case "endpoint":
		config.Endpoint = ""
	case "default_workspace":
		config.DefaultWorkspace = ""
	case "client_id":
		config.ClientID = ""
	case "client_secret":
		config.ClientSecret = ""
	case "output":
		config.Output = constants.FormatTable
	case "no_color":
		config.NoColor = false
	case "token", "refresh_token":
		return fmt.Errorf("%w: %s, use 'asana logout' instead", ErrUnknownConfigKey, key)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func loadConfig() *Config {
	config := &Config{
		Endpoint:         viper.GetString("endpoint"),
		Token:            viper.GetString("token"),
		RefreshToken:     viper.GetString("refresh_token"),
		ClientID:         viper.GetString("client_id"),
		ClientSecret:     viper.GetString("client_secret"),
		DefaultWorkspace: viper.GetString("default_workspace"),
		Output:           viper.GetString("output"),
		NoColor:          viper.GetBool("no_color"),
	}

	if raw := viper.GetString("token_expires_at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err == nil {
			config.TokenExpiresAt = &t
		}
	}

	if raw := viper.GetString("last_refreshed"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err == nil {
			config.LastRefreshed = &t
		}
	}

	return config
}

func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".asana")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Endpoint", formatConfigValue(effectiveEndpoint(config))})
	_ = table.Append([]string{"Default Workspace", formatConfigValue(config.DefaultWorkspace)})
	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"No Color", strconv.FormatBool(config.NoColor)})

	if config.ClientID != "" {
		_ = table.Append([]string{"Client ID", config.ClientID})
	}

	// Tokens are redacted
	if config.Token != "" {
		_ = table.Append([]string{"Token", "[REDACTED]"})
	}

	if config.RefreshToken != "" {
		_ = table.Append([]string{"Refresh Token", "[REDACTED]"})
	}

	if config.TokenExpiresAt != nil {
		_ = table.Append([]string{"Token Expires At", config.TokenExpiresAt.Format(time.RFC3339)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func formatConfigValue(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

// effectiveEndpoint returns the configured endpoint or the public default.
func effectiveEndpoint(config *Config) string {
	if config.Endpoint != "" {
		return config.Endpoint
	}

	return asanaclient.DefaultBaseURL
}

// tokenURLForEndpoint derives the OAuth token endpoint from an API endpoint.
// The token exchange lives at the application root, not under the API path.
func tokenURLForEndpoint(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return "https://app.asana.com/-/oauth_token"
	}

	return parsed.Scheme + "://" + parsed.Host + "/-/oauth_token"
}

// CreateClient builds an API client from flags and stored configuration.
// A --token flag takes precedence over stored credentials.
func CreateClient() (asana.Client, error) {
	config := loadConfig()
	endpoint := effectiveEndpoint(config)
	ctx := context.Background()

	// Stored refresh token: OAuth2 with config persistence.
	if config.RefreshToken != "" {
		oauth2Config := &auth.OAuth2Config{
			TokenURL:     tokenURLForEndpoint(endpoint),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RefreshToken: config.RefreshToken,
		}

		initialExpiry := time.Time{}
		if config.TokenExpiresAt != nil {
			initialExpiry = *config.TokenExpiresAt
		}

		tokenManager := auth.NewConfigTokenManager(oauth2Config, NewConfigPersister(), endpoint, config.Token, initialExpiry)

		apiClient, err := client.NewWithTokenManager(&asana.Config{BaseURL: endpoint}, tokenManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}

		return apiClient, nil
	}

	// Personal access token from flag, environment, or config.
	if config.Token != "" {
		apiClient, err := asanaclient.New(ctx, &asana.Config{
			BaseURL:     endpoint,
			AccessToken: config.Token,
			Debug:       viper.GetBool("verbose"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}

		return apiClient, nil
	}

	return nil, fmt.Errorf("%w, use 'asana login' first", ErrNotAuthenticated)
}
