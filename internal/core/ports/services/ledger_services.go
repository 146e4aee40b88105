package services

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/dto"
)

// LedgerReaderSvc defines read operations on a project's ledger.
type LedgerReaderSvc interface {
	// GetLedger loads the project, its ordered transactions, the reference
	// data and the balance.
	GetLedger(ctx context.Context, projectID string) (*dto.LedgerResponse, error)

	// HighlightLinked resolves which transactions to highlight for targetID.
	HighlightLinked(ctx context.Context, projectID string, targetID string) ([]string, error)

	// CopyTransactionID returns the ID of a transaction listed in the ledger.
	CopyTransactionID(ctx context.Context, projectID string, transactionID string) (string, error)
}

// LedgerWriterSvc defines mutations on a project's ledger.
type LedgerWriterSvc interface {
	// AddTransaction validates and stores a transaction, then returns the refreshed ledger.
	AddTransaction(ctx context.Context, projectID string, req dto.AddTransactionRequest, session *domain.Session) (*dto.LedgerResponse, error)

	// DeleteTransaction removes a transaction, then returns the refreshed ledger.
	DeleteTransaction(ctx context.Context, projectID string, transactionID string, session *domain.Session) (*dto.LedgerResponse, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
