package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskwire-io/asana/pkg/asana"
)

func TestWorkspacesClient_Get(t *testing.T) {
	tests := []TestGetOperation[asana.Workspace]{
		{
			Name:         "successful get",
			GID:          "12345",
			ExpectedPath: "/workspaces/12345",
			StatusCode:   http.StatusOK,
			Response: &asana.Workspace{
				Resource:       asana.Resource{GID: "12345", ResourceType: "workspace"},
				Name:           "Acme",
				IsOrganization: true,
			},
		},
		{
			Name:         "workspace not found",
			GID:          "bogus",
			ExpectedPath: "/workspaces/bogus",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*asana.Workspace, error) {
		return func(ctx context.Context, gid string) (*asana.Workspace, error) {
			return c.Workspaces().Get(ctx, gid, nil)
		}
	})
}

func TestWorkspacesClient_List(t *testing.T) {
	RunListTest(t, "lists workspaces", "/workspaces",
		[]asana.Workspace{
			{Resource: asana.Resource{GID: "12345"}, Name: "Acme", IsOrganization: true},
		},
		func(c *Client) func(context.Context) (*asana.ListResponse[asana.Workspace], error) {
			return func(ctx context.Context) (*asana.ListResponse[asana.Workspace], error) {
				return c.Workspaces().List(ctx, nil)
			}
		},
		func(workspaces []asana.Workspace) {
			assert.Equal(t, "Acme", workspaces[0].Name)
			assert.True(t, workspaces[0].IsOrganization)
		})
}
