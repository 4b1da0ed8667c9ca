package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taskwire-io/asana/pkg/asana"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Browse users",
	}

	cmd.AddCommand(newUsersListCommand())
	cmd.AddCommand(newUsersGetCommand())

	return cmd
}

func newUsersListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users in a workspace",
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

			users, err := apiClient.Users().ListForWorkspace(ctx, workspace, listParams(limit, nil))
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}

			return renderOutput(users.Data, func() error {
				return displayUsersTable(users.Data)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")

	return cmd
}

func newUsersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get USER_GID",
		Short: "Show a user, or 'me' for the authenticated user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			user, err := apiClient.Users().Get(ctx, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to get user: %w", err)
			}

			return renderOutput(user, func() error {
				return displayUserTable(user)
			})
		},
	}
}

func displayUsersTable(users []asana.User) error {
	if len(users) == 0 {
		_, _ = os.Stdout.WriteString("No users found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "Name", "Email")

	for i := range users {
		_ = table.Append([]string{users[i].GID, users[i].Name, formatConfigValue(users[i].Email)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func displayUserTable(user *asana.User) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"GID", user.GID})
	_ = table.Append([]string{"Name", user.Name})
	_ = table.Append([]string{"Email", formatConfigValue(user.Email)})
	_ = table.Append([]string{"Workspaces", refNames(user.Workspaces)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
