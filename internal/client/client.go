// Package client contains the concrete implementation of the asana.Client
// interface and its per-resource clients.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/taskwire-io/asana/internal/auth"
	"github.com/taskwire-io/asana/internal/constants"
	"github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// Static errors for err113 compliance.
var (
	ErrBaseURLRequired          = errors.New("base URL is required")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
)

// Client implements the asana.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       asana.Logger

	portfolios         asana.PortfoliosClient
	projectMemberships asana.ProjectMembershipsClient
	projects           asana.ProjectsClient
	workspaces         asana.WorkspacesClient
	users              asana.UsersClient
}

// createTokenManager creates the appropriate token manager based on config.
func createTokenManager(config *asana.Config) auth.TokenManager {
	if config.AccessToken != "" && config.RefreshToken == "" {
		return auth.NewStaticTokenManager(config.AccessToken)
	}

	if config.RefreshToken != "" {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     getTokenURL(config),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
		})
	}

	return nil // No authentication
}

// getTokenURL returns the token URL from config or the well-known default.
func getTokenURL(config *asana.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return "https://app.asana.com/-/oauth_token"
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *asana.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	if config.Cache != nil {
		cache, err := asana.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("creating cache backend: %w", err)
		}

		policy := config.CachePolicy
		if policy == nil {
			policy = asana.DefaultCachingPolicy()
		}

		ttl := constants.DefaultCacheTTL
		if config.Cache.Options != nil && config.Cache.Options.DefaultTTL > 0 {
			ttl = config.Cache.Options.DefaultTTL
		}

		manager := asana.NewCacheManager(cache, config.Logger)
		httpOpts = append(httpOpts, http.WithCache(manager, policy, ttl))
	}

	return httpOpts, nil
}

// New creates a new API client from a config.
func New(_ context.Context, config *asana.Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	tokenManager := createTokenManager(config)

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.BaseURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new API client with a custom token manager.
func NewWithTokenManager(config *asana.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(config.BaseURL, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.BaseURL,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns the current access token from the token manager.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	if c.tokenManager == nil {
		return "", ErrNoTokenManagerConfigured
	}

	token, err := c.tokenManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

// Me implements asana.Client.Me.
func (c *Client) Me(ctx context.Context) (*asana.User, error) {
	resp, err := c.httpClient.Get(ctx, "/users/me", nil)
	if err != nil {
		return nil, fmt.Errorf("getting authenticated user: %w", err)
	}

	var result asana.SingleResponse[asana.User]

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &result.Data, nil
}

// Resource client accessors

// Portfolios implements asana.Client.Portfolios.
func (c *Client) Portfolios() asana.PortfoliosClient {
	return c.portfolios
}

// ProjectMemberships implements asana.Client.ProjectMemberships.
func (c *Client) ProjectMemberships() asana.ProjectMembershipsClient {
	return c.projectMemberships
}

// Projects implements asana.Client.Projects.
func (c *Client) Projects() asana.ProjectsClient {
	return c.projects
}

// Workspaces implements asana.Client.Workspaces.
func (c *Client) Workspaces() asana.WorkspacesClient {
	return c.workspaces
}

// Users implements asana.Client.Users.
func (c *Client) Users() asana.UsersClient {
	return c.users
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.portfolios = NewPortfoliosClient(c.httpClient)
	c.projectMemberships = NewProjectMembershipsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.workspaces = NewWorkspacesClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
}

// loggerAdapter adapts asana.Logger to http.Logger.
type loggerAdapter struct {
	logger asana.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
