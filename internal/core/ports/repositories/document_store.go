package repositories

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
)

// DocumentReader defines read operations over a collection of documents.
type DocumentReader interface {
	// ListDocuments returns every document in collectionPath. When orderBy is
	// set the store sorts by that field; callers that depend on ordering must
	// still apply it themselves, since not every store honours the hint.
	ListDocuments(ctx context.Context, collectionPath string, orderBy *domain.OrderBy) ([]domain.Document, error)

	// GetDocument returns a single document or apperrors.ErrNotFound.
	GetDocument(ctx context.Context, collectionPath string, id string) (*domain.Document, error)
}

// DocumentWriter defines write operations over a collection of documents.
type DocumentWriter interface {
	// CreateDocument stores fields as a new document and returns its generated ID.
	CreateDocument(ctx context.Context, collectionPath string, fields any) (string, error)

	// DeleteDocument removes a document, returning apperrors.ErrNotFound when it does not exist.
	DeleteDocument(ctx context.Context, collectionPath string, id string) error
}

// DocumentStore combines the document reader and writer.
// There are no multi-document transactions; each call stands alone.
type DocumentStore interface {
	DocumentReader
	DocumentWriter
}
