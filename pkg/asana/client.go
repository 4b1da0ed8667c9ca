package asana

import (
	"context"
	"time"
)

// PortfoliosClient provides access to portfolio operations.
type PortfoliosClient interface {
	// Create creates a portfolio. Workspace and name are required.
	Create(ctx context.Context, request *PortfolioCreateRequest) (*Portfolio, error)
	// Get retrieves a single portfolio.
	Get(ctx context.Context, gid string, params *QueryParams) (*Portfolio, error)
	// List lists portfolios. The workspace and owner filters are required by
	// the remote API and validated locally.
	List(ctx context.Context, request *PortfolioListRequest) (*PortfolioList, error)
	// Update applies a partial update and returns the fresh server
	// representation.
	Update(ctx context.Context, gid string, request *PortfolioUpdateRequest) (*Portfolio, error)
	// Delete deletes a portfolio. The endpoint returns no body; success is
	// a nil error.
	Delete(ctx context.Context, gid string) error
	// AddItem adds an item to the portfolio. Empty-body endpoint.
	AddItem(ctx context.Context, gid, itemGID string) error
	// RemoveItem removes an item from the portfolio. Empty-body endpoint.
	RemoveItem(ctx context.Context, gid, itemGID string) error
	// ListItems lists the portfolio's items; kinds are heterogeneous, so
	// items decode as GenericResource.
	ListItems(ctx context.Context, gid string, params *QueryParams) (*ListResponse[GenericResource], error)
	// AddMembers adds members and returns the refreshed portfolio.
	AddMembers(ctx context.Context, gid string, memberGIDs []string) (*Portfolio, error)
	// RemoveMembers removes members and returns the refreshed portfolio.
	RemoveMembers(ctx context.Context, gid string, memberGIDs []string) (*Portfolio, error)
	// AddCustomFieldSetting attaches a custom field. Empty-body endpoint.
	AddCustomFieldSetting(ctx context.Context, gid, customFieldGID string) error
	// RemoveCustomFieldSetting detaches a custom field. Empty-body endpoint.
	RemoveCustomFieldSetting(ctx context.Context, gid, customFieldGID string) error
	// ListCustomFieldSettings lists the portfolio's custom field settings.
	ListCustomFieldSettings(ctx context.Context, gid string, params *QueryParams) (*ListResponse[CustomFieldSetting], error)

	PaginationClient[Portfolio]
}

// ProjectMembershipsClient provides access to project membership operations.
type ProjectMembershipsClient interface {
	Get(ctx context.Context, gid string, params *QueryParams) (*ProjectMembership, error)
	ListForProject(ctx context.Context, projectGID string, params *QueryParams) (*ProjectMembershipList, error)

	PaginationClient[ProjectMembership]
}

// ProjectsClient provides access to project operations.
type ProjectsClient interface {
	Get(ctx context.Context, gid string, params *QueryParams) (*Project, error)
	List(ctx context.Context, params *QueryParams) (*ListResponse[Project], error)

	PaginationClient[Project]
}

// WorkspacesClient provides access to workspace operations.
type WorkspacesClient interface {
	Get(ctx context.Context, gid string, params *QueryParams) (*Workspace, error)
	List(ctx context.Context, params *QueryParams) (*ListResponse[Workspace], error)

	PaginationClient[Workspace]
}

// UsersClient provides access to user operations.
type UsersClient interface {
	Get(ctx context.Context, gid string, params *QueryParams) (*User, error)
	ListForWorkspace(ctx context.Context, workspaceGID string, params *QueryParams) (*ListResponse[User], error)

	PaginationClient[User]
}

// Client is the full API surface.
type Client interface {
	Portfolios() PortfoliosClient
	ProjectMemberships() ProjectMembershipsClient
	Projects() ProjectsClient
	Workspaces() WorkspacesClient
	Users() UsersClient

	// Me returns the authenticated user.
	Me(ctx context.Context) (*User, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Authentication: provide either AccessToken (a personal access token, used
// directly as a Bearer token) or ClientID/ClientSecret/RefreshToken for the
// OAuth2 refresh-token grant. The token manager selection lives in the
// concrete client.
type Config struct {
	// BaseURL is the API base (e.g. "https://app.asana.com/api/1.0").
	// asanaclient.New normalizes it by trimming a trailing slash and adding
	// "https://" when no scheme is present.
	BaseURL string

	// AccessToken is a personal access token used directly as a Bearer token.
	AccessToken string
	// ClientID and ClientSecret identify an OAuth2 application.
	ClientID     string
	ClientSecret string
	// RefreshToken is used by the OAuth2 manager to mint access tokens.
	RefreshToken string
	// TokenURL overrides the OAuth2 token endpoint; discovered from BaseURL
	// when empty.
	TokenURL string

	// RetryMax is the maximum number of transport-level retries for
	// transient failures (>=500, 429, connection errors).
	RetryMax int
	// RetryWaitMin and RetryWaitMax bound the backoff between retries.
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose request/response logging when a Logger is set.
	Debug bool
	// Logger is the optional structured logger used by the transport.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache enables the response cache when non-nil; the backend is built
	// with NewCacheFromConfig.
	Cache *CacheConfig
	// CachePolicy overrides DefaultCachingPolicy for cache admission.
	CachePolicy *CachingPolicy
	// Interceptors is an optional chain applied to every request and
	// response.
	Interceptors *InterceptorChain
}

// PortfolioCreateRequest represents a request to create a portfolio.
type PortfolioCreateRequest struct {
	// Workspace is the owning workspace GID (required).
	Workspace string
	// Name is the portfolio name (required).
	Name string
	// Color optionally sets the highlight color.
	Color string
	// Extra passes through undeclared fields; explicit fields above win on
	// name collisions.
	Extra map[string]interface{}
}

// PortfolioUpdateRequest represents a partial update of a portfolio. Nil or
// empty fields are omitted from the request body entirely.
type PortfolioUpdateRequest struct {
	Name  string
	Color string
	Extra map[string]interface{}
}

// PortfolioListRequest represents the filters for listing portfolios.
type PortfolioListRequest struct {
	// Workspace and Owner are required by the remote API.
	Workspace string
	Owner     string
	// Params carries pagination and opt_fields options.
	Params *QueryParams
}
