package client

import (
	"context"
	"fmt"

	"github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// ProjectMembershipsClient implements asana.ProjectMembershipsClient.
type ProjectMembershipsClient struct {
	httpClient *http.Client
}

// NewProjectMembershipsClient creates a new project memberships client.
func NewProjectMembershipsClient(httpClient *http.Client) *ProjectMembershipsClient {
	return &ProjectMembershipsClient{httpClient: httpClient}
}

// Get implements asana.ProjectMembershipsClient.Get.
func (c *ProjectMembershipsClient) Get(ctx context.Context, gid string, params *asana.QueryParams) (*asana.ProjectMembership, error) {
	path := "/project_memberships/" + gid

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("getting project membership: %w", err)
	}

	return decodeSingle[asana.ProjectMembership](resp.Body, "project membership")
}

// ListForProject implements asana.ProjectMembershipsClient.ListForProject.
func (c *ProjectMembershipsClient) ListForProject(ctx context.Context, projectGID string, params *asana.QueryParams) (*asana.ProjectMembershipList, error) {
	err := asana.NewPayload().
		Set("project", projectGID).
		Require("project")
	if err != nil {
		return nil, err
	}

	path := "/projects/" + projectGID + "/project_memberships"

	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing project memberships: %w", err)
	}

	return decodeList[asana.ProjectMembership](resp.Body, "project memberships")
}

// ListWithPath implements asana.PaginationClient for project memberships.
func (c *ProjectMembershipsClient) ListWithPath(ctx context.Context, path string, params *asana.QueryParams) (*asana.ListResponse[asana.ProjectMembership], error) {
	resp, err := c.httpClient.Get(ctx, path, queryValues(params))
	if err != nil {
		return nil, fmt.Errorf("listing project memberships: %w", err)
	}

	return decodeList[asana.ProjectMembership](resp.Body, "project memberships")
}
