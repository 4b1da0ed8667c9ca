package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taskwire-io/asana/pkg/asana"
)

// NewProjectMembershipsCommand creates the project-memberships command group.
func NewProjectMembershipsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "memberships",
		Aliases: []string{"project-memberships", "membership"},
		Short:   "Inspect project memberships",
		Long:    "Show which users belong to a project and their access level",
	}

	cmd.AddCommand(newMembershipsGetCommand())
	cmd.AddCommand(newMembershipsListCommand())

	return cmd
}

func newMembershipsGetCommand() *cobra.Command {
	var optFields []string

	cmd := &cobra.Command{
		Use:   "get MEMBERSHIP_GID",
		Short: "Show a project membership",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			membership, err := apiClient.ProjectMemberships().Get(ctx, args[0], listParams(0, optFields))
			if err != nil {
				return fmt.Errorf("failed to get project membership: %w", err)
			}

			return renderOutput(membership, func() error {
				return displayMembershipTable(membership)
			})
		},
	}

	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")

	return cmd
}

func newMembershipsListCommand() *cobra.Command {
	var (
		project   string
		limit     int
		optFields []string
		allPages  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List memberships for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()
			params := listParams(limit, optFields)

			var (
				items    []asana.ProjectMembership
				nextPage *asana.NextPage
			)

			if allPages {
				path := fmt.Sprintf("/projects/%s/project_memberships", project)
				iterator := asana.NewPaginationIterator[asana.ProjectMembership](ctx, apiClient.ProjectMemberships(), path, params)

				items, err = iterator.All()
				if err != nil {
					return fmt.Errorf("failed to list project memberships: %w", err)
				}
			} else {
				memberships, err := apiClient.ProjectMemberships().ListForProject(ctx, project, params)
				if err != nil {
					return fmt.Errorf("failed to list project memberships: %w", err)
				}

				items = memberships.Data
				nextPage = memberships.NextPage
			}

			return renderOutput(items, func() error {
				return displayMembershipsTable(items, nextPage, allPages)
			})
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "project GID (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func displayMembershipsTable(memberships []asana.ProjectMembership, nextPage *asana.NextPage, allPages bool) error {
	if len(memberships) == 0 {
		_, _ = os.Stdout.WriteString("No project memberships found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "User", "Project", "Write Access")

	for i := range memberships {
		_ = table.Append([]string{
			memberships[i].GID,
			refName(memberships[i].User),
			refName(memberships[i].Project),
			formatConfigValue(memberships[i].WriteAccess),
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

func displayMembershipTable(membership *asana.ProjectMembership) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"GID", membership.GID})
	_ = table.Append([]string{"User", refName(membership.User)})
	_ = table.Append([]string{"Project", refName(membership.Project)})
	_ = table.Append([]string{"Write Access", formatConfigValue(membership.WriteAccess)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
