package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/utils/accounting"
	"github.com/SscSPs/project_ledger/internal/utils/mapping"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// LedgerState is the lifecycle state of a ProjectLedger.
type LedgerState string

const (
	StateUninitialized  LedgerState = "uninitialized"
	StateLoading        LedgerState = "loading"
	StateReady          LedgerState = "ready"
	StateFailed         LedgerState = "failed"
	StateMutating       LedgerState = "mutating"
	StateReadyWithError LedgerState = "ready_with_error"
	StateDisposed       LedgerState = "disposed"
)

// FetchErrors records the outcome of each of the four load fetches.
type FetchErrors struct {
	Project      error
	Transactions error
	Categories   error
	Accounts     error
}

// Any reports whether at least one fetch failed.
func (f FetchErrors) Any() bool {
	return f.Project != nil || f.Transactions != nil || f.Categories != nil || f.Accounts != nil
}

// Join combines the failed fetches into one error (nil when none failed).
func (f FetchErrors) Join() error {
	return errors.Join(f.Project, f.Transactions, f.Categories, f.Accounts)
}

// LedgerSnapshot is a consistent copy of a ledger's state.
type LedgerSnapshot struct {
	ProjectID    string
	Project      *domain.Project
	Transactions []domain.Transaction // Ordered newest first
	Categories   []domain.Category
	Accounts     []domain.Account
	Balance      decimal.Decimal
	State        LedgerState
	FetchErrors  FetchErrors
	LastError    error // Error of the last failed mutation, cleared on success
}

// LedgerOption configures a ProjectLedger.
type LedgerOption func(*ProjectLedger)

// WithClock replaces the wall clock used to stamp new transactions.
func WithClock(clock func() time.Time) LedgerOption {
	return func(l *ProjectLedger) {
		l.clock = clock
	}
}

// ProjectLedger keeps one project's transactions in step with the document
// store. Every mutation is followed by a full refetch, and the previous list
// is kept until a refetch succeeds. Operations are serialised; Close cancels
// whatever is in flight and discards its results.
type ProjectLedger struct {
	BaseService
	store    portsrepo.DocumentStore
	validate *validator.Validate
	clock    func() time.Time

	opMu sync.Mutex // one operation at a time

	mu           sync.RWMutex // guards the fields below
	projectID    string
	state        LedgerState
	project      *domain.Project
	transactions []domain.Transaction
	categories   []domain.Category
	accounts     []domain.Account
	fetchErrs    FetchErrors
	lastErr      error

	lifetime context.Context
	dispose  context.CancelFunc
}

// NewProjectLedger creates an uninitialised ledger over store.
func NewProjectLedger(store portsrepo.DocumentStore, opts ...LedgerOption) *ProjectLedger {
	lifetime, dispose := context.WithCancel(context.Background())
	l := &ProjectLedger{
		store:    store,
		validate: validator.New(),
		clock:    time.Now,
		state:    StateUninitialized,
		lifetime: lifetime,
		dispose:  dispose,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the project, its transactions, the categories and the accounts
// concurrently. Each fetch succeeds or fails on its own: data that did arrive
// is kept and the failures are reported together. A project ID that does not
// resolve yields apperrors.ErrNotFound.
func (l *ProjectLedger) Load(ctx context.Context, projectID string) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	opCtx, done, err := l.opContext(ctx)
	if err != nil {
		return err
	}
	defer done()

	if strings.TrimSpace(projectID) == "" {
		return fmt.Errorf("%w: project id is required", apperrors.ErrValidation)
	}

	if err := l.commit(func() {
		l.projectID = projectID
		l.state = StateLoading
	}); err != nil {
		return err
	}

	var (
		project      *domain.Project
		transactions []domain.Transaction
		categories   []domain.Category
		accounts     []domain.Account
		errs         FetchErrors
	)

	// No WithContext: one failed fetch must not cancel the others.
	var g errgroup.Group
	g.Go(func() error {
		project, errs.Project = l.fetchProject(opCtx, projectID)
		return errs.Project
	})
	g.Go(func() error {
		transactions, errs.Transactions = l.fetchTransactions(opCtx, projectID)
		return errs.Transactions
	})
	g.Go(func() error {
		categories, errs.Categories = l.fetchCategories(opCtx)
		return errs.Categories
	})
	g.Go(func() error {
		accounts, errs.Accounts = l.fetchAccounts(opCtx)
		return errs.Accounts
	})
	_ = g.Wait()

	if err := l.commit(func() {
		if errs.Project == nil {
			l.project = project
		}
		if errs.Transactions == nil {
			l.transactions = transactions
		}
		if errs.Categories == nil {
			l.categories = categories
		}
		if errs.Accounts == nil {
			l.accounts = accounts
		}
		l.fetchErrs = errs
		l.lastErr = nil
		l.state = StateReady
		if errs.Any() {
			l.state = StateFailed
		}
	}); err != nil {
		return err
	}

	if errs.Any() {
		err := errs.Join()
		if !errors.Is(err, apperrors.ErrNotFound) {
			l.LogError(ctx, err, "Failed to load project ledger", slog.String("project_id", projectID))
		}
		return fmt.Errorf("load ledger %s: %w", projectID, err)
	}

	l.LogDebug(ctx, "Project ledger loaded",
		slog.String("project_id", projectID),
		slog.Int("transactions", len(transactions)))
	return nil
}

// AddTransaction validates req, stores the new transaction and refetches the
// list. Invalid input yields apperrors.ErrValidation and nothing is written.
// A failed write yields apperrors.ErrWrite. When the write went through but
// the refetch failed, the error matches both apperrors.ErrWrite and
// apperrors.ErrAmbiguousWrite. In both failure cases the previous list is kept.
func (l *ProjectLedger) AddTransaction(ctx context.Context, req dto.AddTransactionRequest) (*domain.Transaction, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	opCtx, done, err := l.opContext(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	projectID, err := l.beginMutation()
	if err != nil {
		return nil, err
	}

	txn, err := l.buildTransaction(projectID, req)
	if err != nil {
		_ = l.commit(func() { l.state = l.settledState() })
		return nil, err
	}

	path := domain.TransactionsCollection(projectID)
	id, err := l.store.CreateDocument(opCtx, path, mapping.ToModelTransaction(txn))
	if err != nil {
		return nil, l.failMutation(ctx, projectID, asWriteError(err), "Failed to create transaction")
	}
	txn.TransactionID = id

	list, err := l.fetchTransactions(opCtx, projectID)
	if err != nil {
		werr := fmt.Errorf("%w: %w: transaction %s: %w", apperrors.ErrWrite, apperrors.ErrAmbiguousWrite, id, err)
		return nil, l.failMutation(ctx, projectID, werr, "Failed to confirm created transaction")
	}

	if err := l.finishMutation(list); err != nil {
		return nil, err
	}

	for _, stored := range list {
		if stored.TransactionID == id {
			txn = stored
			break
		}
	}

	l.LogInfo(ctx, "Transaction added",
		slog.String("project_id", projectID),
		slog.String("transaction_id", id),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// DeleteTransaction deletes a transaction and refetches the list. When the ID
// does not exist the refetch still runs, the ledger returns to ready, and
// apperrors.ErrNotFound is reported.
func (l *ProjectLedger) DeleteTransaction(ctx context.Context, transactionID string) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	opCtx, done, err := l.opContext(ctx)
	if err != nil {
		return err
	}
	defer done()

	if strings.TrimSpace(transactionID) == "" {
		return fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}

	projectID, err := l.beginMutation()
	if err != nil {
		return err
	}

	path := domain.TransactionsCollection(projectID)
	delErr := l.store.DeleteDocument(opCtx, path, transactionID)
	if delErr != nil && !errors.Is(delErr, apperrors.ErrNotFound) {
		return l.failMutation(ctx, projectID, asWriteError(delErr), "Failed to delete transaction")
	}

	list, err := l.fetchTransactions(opCtx, projectID)
	if err != nil {
		if delErr != nil {
			// Nothing was deleted, so the outcome is not in doubt.
			return l.failMutation(ctx, projectID, errors.Join(delErr, err), "Failed to refresh transactions")
		}
		werr := fmt.Errorf("%w: %w: transaction %s: %w", apperrors.ErrWrite, apperrors.ErrAmbiguousWrite, transactionID, err)
		return l.failMutation(ctx, projectID, werr, "Failed to confirm deleted transaction")
	}

	if err := l.finishMutation(list); err != nil {
		return err
	}

	if delErr != nil {
		l.LogDebug(ctx, "Transaction to delete was already gone",
			slog.String("project_id", projectID),
			slog.String("transaction_id", transactionID))
		return delErr
	}

	l.LogInfo(ctx, "Transaction deleted",
		slog.String("project_id", projectID),
		slog.String("transaction_id", transactionID))
	return nil
}

// CopyTransactionID returns transactionID when it is in the current list, so
// it can be pasted as another transaction's link.
func (l *ProjectLedger) CopyTransactionID(transactionID string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if !accounting.ResolveHighlight(l.transactions, transactionID).Contains(transactionID) {
		return "", fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return transactionID, nil
}

// HighlightLinkedTransaction resolves a followed link against the current
// list. Dangling links resolve to an empty set.
func (l *ProjectLedger) HighlightLinkedTransaction(targetID string) accounting.HighlightSet {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return accounting.ResolveHighlight(l.transactions, targetID)
}

// Snapshot returns a copy of the current state.
func (l *ProjectLedger) Snapshot() LedgerSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snap := LedgerSnapshot{
		ProjectID:    l.projectID,
		Transactions: append([]domain.Transaction{}, l.transactions...),
		Categories:   append([]domain.Category{}, l.categories...),
		Accounts:     append([]domain.Account{}, l.accounts...),
		Balance:      accounting.ComputeBalance(l.transactions),
		State:        l.state,
		FetchErrors:  l.fetchErrs,
		LastError:    l.lastErr,
	}
	if l.project != nil {
		p := *l.project
		snap.Project = &p
	}
	return snap
}

// State returns the current lifecycle state.
func (l *ProjectLedger) State() LedgerState {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Close disposes of the ledger. In-flight operations are cancelled and their
// results discarded; later operations fail with apperrors.ErrDisposed.
func (l *ProjectLedger) Close() error {
	l.dispose()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = StateDisposed
	return nil
}

// opContext derives the context of one operation: it ends with the caller's
// context or when the ledger is closed, whichever comes first.
func (l *ProjectLedger) opContext(ctx context.Context) (context.Context, func(), error) {
	if l.lifetime.Err() != nil {
		return nil, nil, apperrors.ErrDisposed
	}
	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(l.lifetime, cancel)
	return opCtx, func() {
		stop()
		cancel()
	}, nil
}

// commit applies fn under the write lock unless the ledger was closed.
func (l *ProjectLedger) commit(fn func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lifetime.Err() != nil {
		return apperrors.ErrDisposed
	}
	fn()
	return nil
}

func (l *ProjectLedger) beginMutation() (string, error) {
	var projectID string
	var notReady error
	err := l.commit(func() {
		if l.state != StateReady && l.state != StateReadyWithError {
			notReady = fmt.Errorf("%w: ledger is %s", apperrors.ErrNotReady, l.state)
			return
		}
		projectID = l.projectID
		l.state = StateMutating
	})
	if err != nil {
		return "", err
	}
	return projectID, notReady
}

// settledState is the state to return to when a mutation ends without a
// store round trip. Callers hold the write lock.
func (l *ProjectLedger) settledState() LedgerState {
	if l.lastErr != nil {
		return StateReadyWithError
	}
	return StateReady
}

func (l *ProjectLedger) failMutation(ctx context.Context, projectID string, err error, msg string) error {
	if cerr := l.commit(func() {
		l.state = StateReadyWithError
		l.lastErr = err
	}); cerr != nil {
		return cerr
	}
	l.LogError(ctx, err, msg, slog.String("project_id", projectID))
	return err
}

func (l *ProjectLedger) finishMutation(list []domain.Transaction) error {
	return l.commit(func() {
		l.transactions = list
		l.fetchErrs.Transactions = nil
		l.lastErr = nil
		l.state = StateReady
	})
}

// buildTransaction checks a whitespace-trimmed copy of req. Description,
// category and account are stored exactly as submitted.
func (l *ProjectLedger) buildTransaction(projectID string, req dto.AddTransactionRequest) (domain.Transaction, error) {
	check := req
	check.Description = strings.TrimSpace(req.Description)
	check.Category = strings.TrimSpace(req.Category)
	check.Account = strings.TrimSpace(req.Account)
	check.Type = strings.TrimSpace(req.Type)
	check.Date = strings.TrimSpace(req.Date)

	if err := l.validate.Struct(check); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	amount, err := accounting.ComputeSignedAmount(domain.TransactionType(check.Type), *check.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	picked, err := time.Parse(dto.DateLayout, check.Date)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, check.Date)
	}

	var link domain.LinkedTransactionID
	if req.LinkedTransactionID != nil {
		link = domain.LinkedTransactionID(strings.TrimSpace(*req.LinkedTransactionID))
	}

	now := l.clock()
	return domain.Transaction{
		ProjectID:           projectID,
		Description:         req.Description,
		Amount:              amount,
		Category:            req.Category,
		Account:             req.Account,
		Type:                domain.TransactionType(check.Type),
		Date:                accounting.CombineDateAndClock(picked, now),
		LinkedTransactionID: link,
		Timestamp:           now.UTC(),
	}, nil
}

func (l *ProjectLedger) fetchProject(ctx context.Context, projectID string) (*domain.Project, error) {
	doc, err := l.store.GetDocument(ctx, domain.CollectionProjects, projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	project, err := mapping.ToDomainProject(*doc)
	if err != nil {
		return nil, fmt.Errorf("fetch project: %w", err)
	}
	return &project, nil
}

// fetchTransactions asks the store for date order and applies it again, since
// stores may ignore the hint.
func (l *ProjectLedger) fetchTransactions(ctx context.Context, projectID string) ([]domain.Transaction, error) {
	docs, err := l.store.ListDocuments(ctx, domain.TransactionsCollection(projectID), &domain.OrderBy{Field: "date", Descending: true})
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	list, err := mapping.ToDomainTransactionSlice(projectID, docs)
	if err != nil {
		return nil, fmt.Errorf("fetch transactions: %w", err)
	}
	return accounting.OrderTransactions(list), nil
}

func (l *ProjectLedger) fetchCategories(ctx context.Context) ([]domain.Category, error) {
	docs, err := l.store.ListDocuments(ctx, domain.CollectionCategories, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	categories, err := mapping.ToDomainCategorySlice(docs)
	if err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return categories, nil
}

func (l *ProjectLedger) fetchAccounts(ctx context.Context) ([]domain.Account, error) {
	docs, err := l.store.ListDocuments(ctx, domain.CollectionAccounts, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	accounts, err := mapping.ToDomainAccountSlice(docs)
	if err != nil {
		return nil, fmt.Errorf("fetch accounts: %w", err)
	}
	return accounts, nil
}

// asWriteError makes sure err matches apperrors.ErrWrite.
func asWriteError(err error) error {
	if errors.Is(err, apperrors.ErrWrite) {
		return err
	}
	return fmt.Errorf("%w: %w", apperrors.ErrWrite, err)
}
