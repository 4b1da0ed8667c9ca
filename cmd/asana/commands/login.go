package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		endpoint     string
		token        string
		clientID     string
		clientSecret string
		refreshToken string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the API",
		Long: `Authenticate with a personal access token or OAuth credentials.

With no flags, prompts for a personal access token. With --client-id,
--client-secret, and --refresh-token, stores OAuth credentials and
refreshes access tokens automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if endpoint != "" {
				config.Endpoint = endpoint
			}

			usingOAuth := clientID != "" || clientSecret != "" || refreshToken != ""
			if usingOAuth {
				if clientID == "" || clientSecret == "" || refreshToken == "" {
					return ErrCredentialsMissing
				}

				config.ClientID = clientID
				config.ClientSecret = clientSecret
				config.RefreshToken = refreshToken
				config.Token = ""
				config.TokenExpiresAt = nil
			} else {
				if token == "" {
					fmt.Print("Personal access token: ")

					byteToken, err := term.ReadPassword(int(syscall.Stdin))
					if err != nil {
						return fmt.Errorf("failed to read token: %w", err)
					}

					token = strings.TrimSpace(string(byteToken))

					fmt.Println()
				}

				if token == "" {
					return ErrTokenRequired
				}

				config.Token = token
				config.RefreshToken = ""
				config.TokenExpiresAt = nil
			}

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			// Verify the credentials by fetching the authenticated user.
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			user, err := apiClient.Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to verify credentials: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully logged in as %s (%s)\n", user.Name, user.Email)

			if len(user.Workspaces) > 0 {
				_, _ = os.Stdout.WriteString("\nAvailable workspaces:\n")
				for _, workspace := range user.Workspaces {
					_, _ = fmt.Fprintf(os.Stdout, "  - %s (%s)\n", workspace.Name, workspace.GID)
				}

				_, _ = os.Stdout.WriteString("\nUse 'asana config set default_workspace <gid>' to set a default\n")
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&endpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVar(&token, "token", "", "personal access token")
	cmd.Flags().StringVar(&clientID, "client-id", "", "OAuth2 client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "OAuth2 client secret")
	cmd.Flags().StringVar(&refreshToken, "refresh-token", "", "OAuth2 refresh token")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		Long:  "Remove stored tokens and OAuth credentials from the configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			config.Token = ""
			config.TokenExpiresAt = nil
			config.RefreshToken = ""
			config.LastRefreshed = nil
			config.ClientID = ""
			config.ClientSecret = ""

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			_, _ = os.Stdout.WriteString("Successfully logged out\n")

			return nil
		},
	}
}

// NewMeCommand creates the me command
func NewMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		Long:  "Display the user record associated with the current credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			user, err := apiClient.Me(ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch authenticated user: %w", err)
			}

			return renderOutput(user, func() error {
				return displayUserTable(user)
			})
		},
	}
}
