package commands

import (
	"fmt"
	"slices"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/utils/accounting"
)

func newTxCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage the transactions of a project",
	}
	cmd.AddCommand(
		newTxAddCommand(a),
		newTxListCommand(a),
		newTxDeleteCommand(a),
		newTxHighlightCommand(a),
	)
	return cmd
}

func newTxAddCommand(a *app) *cobra.Command {
	var req dto.AddTransactionRequest
	var amount, link string

	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a transaction; the amount is signed by --type",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			magnitude, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			req.Amount = &magnitude
			if link != "" {
				req.LinkedTransactionID = &link
			}

			res, err := a.services.Ledger.AddTransaction(cmd.Context(), args[0], req, a.session())
			if err != nil {
				return err
			}
			return printLedger(cmd, res, nil)
		}),
	}

	cmd.Flags().StringVar(&req.Description, "description", "", "what the money was for (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "non-negative amount (required)")
	cmd.Flags().StringVar(&req.Category, "category", "", "category name (required)")
	cmd.Flags().StringVar(&req.Account, "account", "", "account name (required)")
	cmd.Flags().StringVar(&req.Type, "type", "", "income, expense, loan or return (required)")
	cmd.Flags().StringVar(&req.Date, "date", time.Now().UTC().Format(dto.DateLayout), "calendar date, YYYY-MM-DD")
	cmd.Flags().StringVar(&link, "link", "", "ID of a related transaction")
	for _, name := range []string{"description", "amount", "category", "account", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newTxListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <project-id>",
		Short: "List a project's transactions, newest first, with the balance",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			res, err := a.services.Ledger.GetLedger(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printLedger(cmd, res, nil)
		}),
	}
}

func newTxDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id> <transaction-id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			res, err := a.services.Ledger.DeleteTransaction(cmd.Context(), args[0], args[1], a.session())
			if err != nil {
				return err
			}
			return printLedger(cmd, res, nil)
		}),
	}
}

func newTxHighlightCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "highlight <project-id> <transaction-id>",
		Short: "Follow a link: list the ledger with the target marked",
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, args []string) error {
			ids, err := a.services.Ledger.HighlightLinked(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Transaction %s is not in this ledger\n", args[1])
			}
			res, err := a.services.Ledger.GetLedger(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printLedger(cmd, res, ids)
		}),
	}
}

// printLedger renders the ledger as a table. Rows whose ID is in highlighted
// are marked with "*".
func printLedger(cmd *cobra.Command, res *dto.LedgerResponse, highlighted []string) error {
	if res.Project != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Project %s (%s)\n", res.Project.Name, res.Project.ProjectID)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, " \tID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tACCOUNT\tDESCRIPTION\tLINK\t")
	for _, t := range res.Transactions {
		mark := ""
		if slices.Contains(highlighted, t.TransactionID) {
			mark = "*"
		}
		linked := ""
		if t.LinkedTransactionID != nil {
			linked = *t.LinkedTransactionID
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			mark, t.TransactionID, t.DisplayDate, t.Type, accounting.FormatAmount(t.Amount), t.Category, t.Account, t.Description, linked)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s\n", res.BalanceDisplay)

	if len(res.Errors) > 0 {
		parts := make([]string, 0, len(res.Errors))
		for part := range res.Errors {
			parts = append(parts, part)
		}
		sort.Strings(parts)
		for _, part := range parts {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to load %s: %s\n", part, res.Errors[part])
		}
	}
	return nil
}
