package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/taskwire-io/asana/pkg/asana"
)

// NewPortfoliosCommand creates the portfolios command group.
func NewPortfoliosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "portfolios",
		Aliases: []string{"portfolio"},
		Short:   "Manage portfolios",
		Long:    "List, create, update, and delete portfolios and their items and members",
	}

	cmd.AddCommand(newPortfoliosListCommand())
	cmd.AddCommand(newPortfoliosGetCommand())
	cmd.AddCommand(newPortfoliosCreateCommand())
	cmd.AddCommand(newPortfoliosUpdateCommand())
	cmd.AddCommand(newPortfoliosDeleteCommand())
	cmd.AddCommand(newPortfoliosItemsCommand())
	cmd.AddCommand(newPortfoliosAddItemCommand())
	cmd.AddCommand(newPortfoliosRemoveItemCommand())
	cmd.AddCommand(newPortfoliosAddMembersCommand())
	cmd.AddCommand(newPortfoliosRemoveMembersCommand())
	cmd.AddCommand(newPortfoliosCustomFieldsCommand())

	return cmd
}

func newPortfoliosListCommand() *cobra.Command {
	var (
		owner     string
		limit     int
		optFields []string
		allPages  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List portfolios",
		Long:  "List portfolios in a workspace for an owner",
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
			params := listParams(limit, optFields)

			var (
				items    []asana.Portfolio
				nextPage *asana.NextPage
			)

			if allPages {
				iterator := asana.NewPaginationIterator[asana.Portfolio](ctx, apiClient.Portfolios(), "/portfolios",
					params.Clone().WithFilter("workspace", workspace).WithFilter("owner", owner))

				items, err = iterator.All()
				if err != nil {
					return fmt.Errorf("failed to list portfolios: %w", err)
				}
			} else {
				portfolios, err := apiClient.Portfolios().List(ctx, &asana.PortfolioListRequest{
					Workspace: workspace,
					Owner:     owner,
					Params:    params,
				})
				if err != nil {
					return fmt.Errorf("failed to list portfolios: %w", err)
				}

				items = portfolios.Data
				nextPage = portfolios.NextPage
			}

			return renderOutput(items, func() error {
				return displayPortfoliosTable(items, nextPage, allPages)
			})
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "me", "owner GID, or 'me'")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newPortfoliosGetCommand() *cobra.Command {
	var optFields []string

	cmd := &cobra.Command{
		Use:   "get PORTFOLIO_GID",
		Short: "Show a portfolio",
		Long:  "Display a single portfolio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			portfolio, err := apiClient.Portfolios().Get(ctx, args[0], listParams(0, optFields))
			if err != nil {
				return fmt.Errorf("failed to get portfolio: %w", err)
			}

			return renderOutput(portfolio, func() error {
				return displayPortfolioTable(portfolio)
			})
		},
	}

	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")

	return cmd
}

func newPortfoliosCreateCommand() *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a portfolio",
		Long:  "Create a new portfolio in a workspace",
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

			portfolio, err := apiClient.Portfolios().Create(ctx, &asana.PortfolioCreateRequest{
				Workspace: workspace,
				Name:      name,
				Color:     color,
			})
			if err != nil {
				return fmt.Errorf("failed to create portfolio: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully created portfolio '%s' with GID %s\n", portfolio.Name, portfolio.GID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "portfolio name (required)")
	cmd.Flags().StringVar(&color, "color", "", "highlight color")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPortfoliosUpdateCommand() *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update PORTFOLIO_GID",
		Short: "Update a portfolio",
		Long:  "Update a portfolio's name or color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			portfolio, err := apiClient.Portfolios().Update(ctx, args[0], &asana.PortfolioUpdateRequest{
				Name:  name,
				Color: color,
			})
			if err != nil {
				return fmt.Errorf("failed to update portfolio: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully updated portfolio '%s'\n", portfolio.Name)

			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new portfolio name")
	cmd.Flags().StringVar(&color, "color", "", "new highlight color")

	return cmd
}

func newPortfoliosDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PORTFOLIO_GID",
		Short: "Delete a portfolio",
		Long:  "Delete a portfolio; its items are not deleted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gid := args[0]

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete portfolio '%s'? (y/N): ", gid)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = apiClient.Portfolios().Delete(ctx, gid)
			if err != nil {
				return fmt.Errorf("failed to delete portfolio: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted portfolio '%s'\n", gid)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force deletion without confirmation")

	return cmd
}

func newPortfoliosItemsCommand() *cobra.Command {
	var (
		limit     int
		optFields []string
	)

	cmd := &cobra.Command{
		Use:   "items PORTFOLIO_GID",
		Short: "List portfolio items",
		Long:  "List the items in a portfolio; items may be projects or nested portfolios",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			items, err := apiClient.Portfolios().ListItems(ctx, args[0], listParams(limit, optFields))
			if err != nil {
				return fmt.Errorf("failed to list portfolio items: %w", err)
			}

			return renderOutput(items.Data, func() error {
				return displayItemsTable(items.Data, items.NextPage)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size")
	cmd.Flags().StringSliceVar(&optFields, "fields", nil, "extra fields to request")

	return cmd
}

func newPortfoliosAddItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-item PORTFOLIO_GID ITEM_GID",
		Short: "Add an item to a portfolio",
		Long:  "Add a project or portfolio to a portfolio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = apiClient.Portfolios().AddItem(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add item: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Added item %s to portfolio %s\n", args[1], args[0])

			return nil
		},
	}
}

func newPortfoliosRemoveItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-item PORTFOLIO_GID ITEM_GID",
		Short: "Remove an item from a portfolio",
		Long:  "Remove a project or portfolio from a portfolio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = apiClient.Portfolios().RemoveItem(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to remove item: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Removed item %s from portfolio %s\n", args[1], args[0])

			return nil
		},
	}
}

func newPortfoliosAddMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-members PORTFOLIO_GID USER_GID...",
		Short: "Add members to a portfolio",
		Long:  "Add one or more users as portfolio members",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			portfolio, err := apiClient.Portfolios().AddMembers(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to add members: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Portfolio '%s' now has members: %s\n", portfolio.Name, refNames(portfolio.Members))

			return nil
		},
	}
}

func newPortfoliosRemoveMembersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-members PORTFOLIO_GID USER_GID...",
		Short: "Remove members from a portfolio",
		Long:  "Remove one or more users from a portfolio's members",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			portfolio, err := apiClient.Portfolios().RemoveMembers(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to remove members: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Portfolio '%s' now has members: %s\n", portfolio.Name, refNames(portfolio.Members))

			return nil
		},
	}
}

func newPortfoliosCustomFieldsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom-fields",
		Short: "Manage portfolio custom field settings",
		Long:  "List, attach, and detach custom fields on a portfolio",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list PORTFOLIO_GID",
		Short: "List custom field settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			settings, err := apiClient.Portfolios().ListCustomFieldSettings(ctx, args[0], nil)
			if err != nil {
				return fmt.Errorf("failed to list custom field settings: %w", err)
			}

			return renderOutput(settings.Data, func() error {
				return displayCustomFieldSettingsTable(settings.Data)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add PORTFOLIO_GID CUSTOM_FIELD_GID",
		Short: "Attach a custom field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = apiClient.Portfolios().AddCustomFieldSetting(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add custom field setting: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Attached custom field %s to portfolio %s\n", args[1], args[0])

			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove PORTFOLIO_GID CUSTOM_FIELD_GID",
		Short: "Detach a custom field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			err = apiClient.Portfolios().RemoveCustomFieldSetting(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to remove custom field setting: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Detached custom field %s from portfolio %s\n", args[1], args[0])

			return nil
		},
	})

	return cmd
}

func displayPortfoliosTable(portfolios []asana.Portfolio, nextPage *asana.NextPage, allPages bool) error {
	if len(portfolios) == 0 {
		_, _ = os.Stdout.WriteString("No portfolios found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "Name", "Color", "Owner", "Workspace")

	for _, portfolio := range portfolios {
		_ = table.Append([]string{
			portfolio.GID,
			portfolio.Name,
			formatConfigValue(portfolio.Color),
			refName(portfolio.Owner),
			refName(portfolio.Workspace),
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

func displayPortfolioTable(portfolio *asana.Portfolio) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"GID", portfolio.GID})
	_ = table.Append([]string{"Name", portfolio.Name})
	_ = table.Append([]string{"Color", formatConfigValue(portfolio.Color)})
	_ = table.Append([]string{"Owner", refName(portfolio.Owner)})
	_ = table.Append([]string{"Workspace", refName(portfolio.Workspace)})
	_ = table.Append([]string{"Members", refNames(portfolio.Members)})

	if portfolio.CreatedAt != "" {
		_ = table.Append([]string{"Created At", portfolio.CreatedAt})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func displayItemsTable(items []asana.GenericResource, nextPage *asana.NextPage) error {
	if len(items) == 0 {
		_, _ = os.Stdout.WriteString("No items found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "Type", "Name")

	for i := range items {
		name, _ := items[i].GetString("name")
		_ = table.Append([]string{items[i].GID(), formatConfigValue(items[i].Type()), formatConfigValue(name)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if nextPage != nil && nextPage.Offset != "" {
		_, _ = os.Stdout.WriteString("\nMore results available.\n")
	}

	return nil
}

func displayCustomFieldSettingsTable(settings []asana.CustomFieldSetting) error {
	if len(settings) == 0 {
		_, _ = os.Stdout.WriteString("No custom field settings found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("GID", "Custom Field", "Important")

	for i := range settings {
		fieldName := "-"
		if settings[i].CustomField != nil {
			if name, ok := settings[i].CustomField.GetString("name"); ok {
				fieldName = name
			}
		}

		_ = table.Append([]string{settings[i].GID, fieldName, fmt.Sprintf("%t", settings[i].IsImportant)})
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
