// Package asanaclient provides the main entry point for creating API clients
package asanaclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/taskwire-io/asana/internal/client"
	"github.com/taskwire-io/asana/pkg/asana"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// New creates a new API client from a config.
func New(ctx context.Context, config *asana.Config) (asana.Client, error) {
	if config == nil {
		return nil, asana.ErrConfigRequired
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	// Normalize the base URL
	baseURL := strings.TrimSuffix(config.BaseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	config.BaseURL = baseURL

	apiClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// NewWithToken creates a new client with a personal access token.
func NewWithToken(ctx context.Context, token string) (asana.Client, error) {
	if token == "" {
		return nil, asana.ErrAccessTokenRequired
	}

	return New(ctx, &asana.Config{
		AccessToken: token,
	})
}

// NewWithOAuth creates a new client using the OAuth2 refresh token grant.
func NewWithOAuth(ctx context.Context, clientID, clientSecret, refreshToken string) (asana.Client, error) {
	return New(ctx, &asana.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
}

// NewWithEndpoint creates an unauthenticated client against a custom
// endpoint, useful for tests and local stubs.
func NewWithEndpoint(ctx context.Context, endpoint string) (asana.Client, error) {
	return New(ctx, &asana.Config{
		BaseURL: endpoint,
	})
}
