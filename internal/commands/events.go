package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SscSPs/project_ledger/internal/events"
	"github.com/SscSPs/project_ledger/internal/utils/accounting"
)

func newEventsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect published ledger events",
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Print ledger events from the queue until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.amqpURL == "" {
				return errors.New("--amqp-url is required")
			}
			client, err := events.NewAMQPClient(a.amqpURL, a.exchange, a.queue)
			if err != nil {
				return fmt.Errorf("connecting to broker: %w", err)
			}
			defer client.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			err = client.Consume(ctx, func(e *events.LedgerEvent) error {
				return writeEvent(out, e)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.AddCommand(watch)
	return cmd
}

func writeEvent(w io.Writer, e *events.LedgerEvent) error {
	_, err := fmt.Fprintf(w, "%s %-19s project=%s transaction=%s user=%s balance=%s\n",
		e.OccurredAt.Format("2006-01-02T15:04:05Z07:00"), e.Type, e.ProjectID, e.TransactionID, e.UserID,
		accounting.FormatAmount(e.Balance))
	return err
}
