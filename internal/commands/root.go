package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/core/services"
	"github.com/SscSPs/project_ledger/internal/events"
	"github.com/SscSPs/project_ledger/internal/repositories/database/bolt"
)

// app holds what the subcommands share: the open store and the services
// built on it. It is filled in by the root command's pre-run hook.
type app struct {
	dbPath   string
	userID   string
	amqpURL  string
	exchange string
	queue    string

	store     *bolt.DocumentStore
	publisher events.Publisher
	services  *portssvc.ServiceContainer
}

// session is the local stand-in for a signed-in user.
func (a *app) session() *domain.Session {
	now := time.Now()
	return domain.NewSession(a.userID, "", now, now.Add(time.Hour))
}

func (a *app) open() error {
	store, err := bolt.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", a.dbPath, err)
	}
	a.store = store

	a.publisher = events.NopPublisher{}
	if a.amqpURL != "" {
		client, err := events.NewAMQPClient(a.amqpURL, a.exchange, a.queue)
		if err != nil {
			_ = store.Close()
			return fmt.Errorf("connecting to broker: %w", err)
		}
		a.publisher = client
	}

	a.services = &portssvc.ServiceContainer{
		Ledger:    services.NewLedgerService(store, a.publisher),
		Project:   services.NewProjectService(store),
		Reference: services.NewReferenceService(store),
	}
	return nil
}

func (a *app) close() error {
	if a.publisher != nil {
		_ = a.publisher.Close()
	}
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

// withStore wraps a RunE so the store is open while it runs and closed even
// when it fails.
func (a *app) withStore(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if err := a.open(); err != nil {
			return err
		}
		defer func() {
			if cerr := a.close(); err == nil {
				err = cerr
			}
		}()
		return run(cmd, args)
	}
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Manage personal finance project ledgers",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&a.dbPath, "db", "project_ledger.db", "bbolt database file")
	rootCmd.PersistentFlags().StringVar(&a.userID, "user", "local", "user ID recorded as project owner")
	rootCmd.PersistentFlags().StringVar(&a.amqpURL, "amqp-url", "", "RabbitMQ URL; ledger events are published when set")
	rootCmd.PersistentFlags().StringVar(&a.exchange, "exchange", "project_ledger", "AMQP exchange for ledger events")
	rootCmd.PersistentFlags().StringVar(&a.queue, "queue", "ledger_events", "AMQP queue for ledger events")

	rootCmd.AddCommand(
		newProjectCommand(a),
		newCategoryCommand(a),
		newAccountCommand(a),
		newTxCommand(a),
		newEventsCommand(a),
	)

	return rootCmd
}
