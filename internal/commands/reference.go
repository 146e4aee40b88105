package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/dto"
)

func newCategoryCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Create and list categories",
	}

	var name, icon string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category, then list all categories",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			req := dto.CreateCategoryRequest{Name: name}
			if cmd.Flags().Changed("icon") {
				req.Icon = &icon
			}
			if _, err := a.services.Reference.CreateCategory(cmd.Context(), req); err != nil {
				return err
			}
			return printCategories(cmd, a)
		}),
	}
	create.Flags().StringVar(&name, "name", "", "category name (required)")
	_ = create.MarkFlagRequired("name")
	create.Flags().StringVar(&icon, "icon", "", "optional icon")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			return printCategories(cmd, a)
		}),
	}

	cmd.AddCommand(create, list)
	return cmd
}

func printCategories(cmd *cobra.Command, a *app) error {
	categories, err := a.services.Reference.ListCategories(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tICON")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.CategoryID, c.Name, iconOf(c))
	}
	return w.Flush()
}

func iconOf(c domain.Category) string {
	if c.Icon == nil {
		return "-"
	}
	return *c.Icon
}

func newAccountCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Create and list accounts",
	}

	var name string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account, then list all accounts",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			if _, err := a.services.Reference.CreateAccount(cmd.Context(), dto.CreateAccountRequest{Name: name}); err != nil {
				return err
			}
			return printAccounts(cmd, a)
		}),
	}
	create.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = create.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string) error {
			return printAccounts(cmd, a)
		}),
	}

	cmd.AddCommand(create, list)
	return cmd
}

func printAccounts(cmd *cobra.Command, a *app) error {
	accounts, err := a.services.Reference.ListAccounts(cmd.Context())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\t%s\n", acc.AccountID, acc.Name)
	}
	return w.Flush()
}
