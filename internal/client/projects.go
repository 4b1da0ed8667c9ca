package client

import (
	"context"
	"fmt"

	"github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// ProjectsClient implements asana.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{httpClient: httpClient}
}

// Get implements asana.ProjectsClient.Get.
func (c *ProjectsClient) Get(ctx context.Context, gid string, params *asana.QueryParams) (*asana.Project, error) {
	path := "/projects/" + gid

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	return decodeSingle[asana.Project](resp.Body, "project")
}

// List implements asana.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context, params *asana.QueryParams) (*asana.ListResponse[asana.Project], error) {
	resp, err := c.httpClient.Get(ctx, "/projects", queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return decodeList[asana.Project](resp.Body, "projects")
}

// ListWithPath implements asana.PaginationClient for projects.
func (c *ProjectsClient) ListWithPath(ctx context.Context, path string, params *asana.QueryParams) (*asana.ListResponse[asana.Project], error) {
	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return decodeList[asana.Project](resp.Body, "projects")
}
