package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taskwire-io/asana/pkg/asana"
)

// NewWorkspacesCommand creates the workspaces command group.
func NewWorkspacesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"workspace"},
		Short:   "Browse workspaces",
	}

	cmd.AddCommand(newWorkspacesListCommand())
	cmd.AddCommand(newWorkspacesGetCommand())

	return cmd
}

func newWorkspacesListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces visible to the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			workspaces, err := apiClient.Workspaces().List(ctx, listParams(limit, nil))
			if err != nil {
				return fmt.Errorf("failed to list workspaces: %w", err)
			}

			return renderOutput(workspaces.Data, func() error {
				return displayWorkspacesTable(workspaces.Data)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")

	return cmd
}

func newWorkspacesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get WORKSPACE_GID",
		Short: "Show a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			workspace, err := apiClient.Workspaces().Get(ctx, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get workspace: %w", err)
			}

			return renderOutput(workspace, func() error {
				return displayWorkspaceTable(workspace)
			})
		},
	}
}

func displayWorkspacesTable(workspaces []asana.Workspace) error {
	if len(workspaces) == 0 {
		_, _ = os.Stdout.WriteString("No workspaces found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "Name", "Organization")

	for i := range workspaces {
		_ = table.Append([]string{
			workspaces[i].GID,
			workspaces[i].Name,
			fmt.Sprintf("%t", workspaces[i].IsOrganization),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func displayWorkspaceTable(workspace *asana.Workspace) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"GID", workspace.GID})
	_ = table.Append([]string{"Name", workspace.Name})
	_ = table.Append([]string{"Organization", fmt.Sprintf("%t", workspace.IsOrganization)})

	if len(workspace.EmailDomains) > 0 {
		_ = table.Append([]string{"Email Domains", strings.Join(workspace.EmailDomains, ", ")})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
