package client

import (
	"context"
	"fmt"

	"github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// WorkspacesClient implements asana.WorkspacesClient.
type WorkspacesClient struct {
	httpClient *http.Client
}

// NewWorkspacesClient creates a new workspaces client.
func NewWorkspacesClient(httpClient *http.Client) *WorkspacesClient {
	return &WorkspacesClient{httpClient: httpClient}
}

// Get implements asana.WorkspacesClient.Get.
func (c *WorkspacesClient) Get(ctx context.Context, gid string, params *asana.QueryParams) (*asana.Workspace, error) {
	path := "/workspaces/" + gid

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	return decodeSingle[asana.Workspace](resp.Body, "workspace")
}

// List implements asana.WorkspacesClient.List.
func (c *WorkspacesClient) List(ctx context.Context, params *asana.QueryParams) (*asana.ListResponse[asana.Workspace], error) {
	resp, err := c.httpClient.Get(ctx, "/workspaces", queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	return decodeList[asana.Workspace](resp.Body, "workspaces")
}

// ListWithPath implements asana.PaginationClient for workspaces.
func (c *WorkspacesClient) ListWithPath(ctx context.Context, path string, params *asana.QueryParams) (*asana.ListResponse[asana.Workspace], error) {
	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing workspaces: %w", err)
	}

	return decodeList[asana.Workspace](resp.Body, "workspaces")
}
