package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskwire-io/asana/pkg/asana"
)

func TestProjectsClient_Get(t *testing.T) {
	tests := []TestGetOperation[asana.Project]{
		{
			Name:         "successful get",
			GID:          "555",
			ExpectedPath: "/projects/555",
			StatusCode:   http.StatusOK,
			Response: &asana.Project{
				Resource: asana.Resource{GID: "555", ResourceType: "project"},
				Name:     "Rollout",
			},
		},
		{
			Name:         "project not found",
			GID:          "bogus",
			ExpectedPath: "/projects/bogus",
			StatusCode:   http.StatusNotFound,
			WantErr:      true,
			ErrMessage:   "Not a recognized ID",
		},
	}

	RunGetTests(t, tests, func(c *Client) func(context.Context, string) (*asana.Project, error) {
		return func(ctx context.Context, gid string) (*asana.Project, error) {
			return c.Projects().Get(ctx, gid, nil)
		}
	})
}

func TestProjectsClient_List(t *testing.T) {
	RunListTest(t, "lists projects", "/projects",
		[]asana.Project{
			{Resource: asana.Resource{GID: "555"}, Name: "Rollout", Archived: true},
			{Resource: asana.Resource{GID: "556"}, Name: "Migration"},
		},
		func(c *Client) func(context.Context) (*asana.ListResponse[asana.Project], error) {
			return func(ctx context.Context) (*asana.ListResponse[asana.Project], error) {
				return c.Projects().List(ctx, nil)
			}
		},
		func(projects []asana.Project) {
			assert.True(t, projects[0].Archived)
			assert.Equal(t, "Migration", projects[1].Name)
		})
}
