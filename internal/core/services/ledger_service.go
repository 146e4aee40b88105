package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/events"
	"github.com/SscSPs/project_ledger/internal/utils/accounting"
)

// ledgerService opens a ProjectLedger per call and publishes an event after
// every confirmed mutation.
type ledgerService struct {
	BaseService
	store     portsrepo.DocumentStore
	publisher events.Publisher
	opts      []LedgerOption
}

// NewLedgerService creates a ledger service. A nil publisher drops events.
func NewLedgerService(store portsrepo.DocumentStore, publisher events.Publisher, opts ...LedgerOption) portssvc.LedgerSvcFacade {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ledgerService{store: store, publisher: publisher, opts: opts}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// open loads a fresh ledger. The caller must Close it.
func (s *ledgerService) open(ctx context.Context, projectID string) (*ProjectLedger, error) {
	ledger := NewProjectLedger(s.store, s.opts...)
	if err := ledger.Load(ctx, projectID); err != nil {
		return ledger, err
	}
	return ledger, nil
}

// GetLedger loads a project's ledger. When only the project itself could be
// read, the response is still returned with the failed parts listed in Errors.
func (s *ledgerService) GetLedger(ctx context.Context, projectID string) (*dto.LedgerResponse, error) {
	ledger, err := s.open(ctx, projectID)
	defer ledger.Close()

	snap := ledger.Snapshot()
	if err != nil && (snap.FetchErrors.Project != nil || errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrDisposed)) {
		return nil, err
	}
	return toLedgerResponse(snap), nil
}

func (s *ledgerService) AddTransaction(ctx context.Context, projectID string, req dto.AddTransactionRequest, session *domain.Session) (*dto.LedgerResponse, error) {
	ledger, err := s.open(ctx, projectID)
	defer ledger.Close()
	if err != nil {
		return nil, err
	}

	txn, err := ledger.AddTransaction(ctx, req)
	if err != nil {
		return nil, err
	}

	snap := ledger.Snapshot()
	s.publish(ctx, events.TransactionAdded, projectID, txn.TransactionID, session, snap)
	return toLedgerResponse(snap), nil
}

func (s *ledgerService) DeleteTransaction(ctx context.Context, projectID string, transactionID string, session *domain.Session) (*dto.LedgerResponse, error) {
	ledger, err := s.open(ctx, projectID)
	defer ledger.Close()
	if err != nil {
		return nil, err
	}

	if err := ledger.DeleteTransaction(ctx, transactionID); err != nil {
		return nil, err
	}

	snap := ledger.Snapshot()
	s.publish(ctx, events.TransactionDeleted, projectID, transactionID, session, snap)
	return toLedgerResponse(snap), nil
}

func (s *ledgerService) HighlightLinked(ctx context.Context, projectID string, targetID string) ([]string, error) {
	ledger, err := s.open(ctx, projectID)
	defer ledger.Close()
	if err != nil {
		return nil, err
	}
	return ledger.HighlightLinkedTransaction(targetID).IDs(), nil
}

func (s *ledgerService) CopyTransactionID(ctx context.Context, projectID string, transactionID string) (string, error) {
	ledger, err := s.open(ctx, projectID)
	defer ledger.Close()
	if err != nil {
		return "", err
	}
	return ledger.CopyTransactionID(transactionID)
}

// publish reports a confirmed mutation. Delivery failures are logged only:
// the mutation itself has already succeeded.
func (s *ledgerService) publish(ctx context.Context, eventType events.EventType, projectID, transactionID string, session *domain.Session, snap LedgerSnapshot) {
	userID := ""
	if session != nil {
		userID = session.UserID
	}
	event := events.NewLedgerEvent(eventType, projectID, transactionID, userID, snap.Balance)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("type", string(eventType)),
			slog.String("project_id", projectID),
			slog.String("transaction_id", transactionID))
	}
}

func toLedgerResponse(snap LedgerSnapshot) *dto.LedgerResponse {
	res := &dto.LedgerResponse{
		Transactions:   dto.ToListTransactionResponse(snap.Transactions),
		Categories:     dto.ToListCategoryResponse(snap.Categories),
		Accounts:       dto.ToListAccountResponse(snap.Accounts),
		Balance:        snap.Balance,
		BalanceDisplay: accounting.FormatAmount(snap.Balance),
		State:          string(snap.State),
	}
	if snap.Project != nil {
		p := dto.ToProjectResponse(snap.Project)
		res.Project = &p
	}

	errs := map[string]error{
		"project":      snap.FetchErrors.Project,
		"transactions": snap.FetchErrors.Transactions,
		"categories":   snap.FetchErrors.Categories,
		"accounts":     snap.FetchErrors.Accounts,
	}
	for part, err := range errs {
		if err == nil {
			continue
		}
		if res.Errors == nil {
			res.Errors = map[string]string{}
		}
		res.Errors[part] = err.Error()
	}
	return res
}
