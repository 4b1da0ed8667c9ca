package client

import (
	"context"
	"fmt"

	"github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// UsersClient implements asana.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// Get implements asana.UsersClient.Get. The gid may also be the literal
// "me" or an email address; the server resolves all three forms.
func (c *UsersClient) Get(ctx context.Context, gid string, params *asana.QueryParams) (*asana.User, error) {
	path := "/users/" + gid

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeSingle[asana.User](resp.Body, "user")
}

// ListForWorkspace implements asana.UsersClient.ListForWorkspace.
func (c *UsersClient) ListForWorkspace(ctx context.Context, workspaceGID string, params *asana.QueryParams) (*asana.ListResponse[asana.User], error) {
	err := asana.NewPayload().
		Set("workspace", workspaceGID).
		Require("workspace")
	if err != nil {
		return nil, err
	}

	path := "/workspaces/" + workspaceGID + "/users"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing workspace users: %w", err)
	}

	return decodeList[asana.User](resp.Body, "users")
}

// ListWithPath implements asana.PaginationClient for users.
func (c *UsersClient) ListWithPath(ctx context.Context, path string, params *asana.QueryParams) (*asana.ListResponse[asana.User], error) {
	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return decodeList[asana.User](resp.Body, "users")
}
