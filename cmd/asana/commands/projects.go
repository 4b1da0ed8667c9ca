package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taskwire-io/asana/pkg/asana"
)

// NewProjectsCommand creates the projects command group.
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "Browse projects",
	}

	cmd.AddCommand(newProjectsListCommand())
	cmd.AddCommand(newProjectsGetCommand())

	return cmd
}

func newProjectsListCommand() *cobra.Command {
	var (
		limit     int
		optFields []string
		allPages  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects in a workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			workspace, err := requireWorkspace()
			if err != nil {
				return err
			}

			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			params := listParams(limit, optFields).WithFilter("workspace", workspace)

			var (
				items    []asana.Project
				nextPage *asana.NextPage
			)

			if allPages {
				iterator := asana.NewPaginationIterator[asana.Project](ctx, apiClient.Projects(), "/projects", params)

				items, err = iterator.All()
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}
			} else {
				projects, err := apiClient.Projects().List(ctx, params)
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}

				items = projects.Data
				nextPage = projects.NextPage
			}

			return renderOutput(items, func() error {
				return displayProjectsTable(items, nextPage, allPages)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newProjectsGetCommand() *cobra.Command {
	var optFields []string

	cmd := &cobra.Command{
		Use:   "get PROJECT_GID",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			project, err := apiClient.Projects().Get(ctx, args[0], listParams(0, optFields))
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			return renderOutput(project, func() error {
				return displayProjectTable(project)
			})
		},
	}

	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")

	return cmd
}

func displayProjectsTable(projects []asana.Project, nextPage *asana.NextPage, allPages bool) error {
	if len(projects) == 0 {
		_, _ = os.Stdout.WriteString("No projects found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "Name", "Color", "Archived", "Owner")

	for i := range projects {
		_ = table.Append([]string{
			projects[i].GID,
			projects[i].Name,
			formatConfigValue(projects[i].Color),
			fmt.Sprintf("%t", projects[i].Archived),
			refName(projects[i].Owner),
		})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if !allPages && nextPage != nil && nextPage.Offset != "" {
		_, _ = os.Stdout.WriteString("\nMore results available. Use --all to fetch every page.\n")
	}

	return nil
}

func displayProjectTable(project *asana.Project) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"GID", project.GID})
	_ = table.Append([]string{"Name", project.Name})
	_ = table.Append([]string{"Color", formatConfigValue(project.Color)})
	_ = table.Append([]string{"Archived", fmt.Sprintf("%t", project.Archived)})
	_ = table.Append([]string{"Owner", refName(project.Owner)})
	_ = table.Append([]string{"Workspace", refName(project.Workspace)})

	if project.Notes != "" {
		_ = table.Append([]string{"Notes", project.Notes})
	}

	if project.CreatedAt != "" {
		_ = table.Append([]string{"Created At", project.CreatedAt})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
