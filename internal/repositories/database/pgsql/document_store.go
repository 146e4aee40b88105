package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDocumentStore keeps all collections in one documents table with jsonb fields.
type PgxDocumentStore struct {
	BaseRepository
}

// newPgxDocumentStore creates a new document store backed by pool.
func newPgxDocumentStore(pool *pgxpool.Pool) *PgxDocumentStore {
	return &PgxDocumentStore{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentStore implements portsrepo.DocumentStore
var _ portsrepo.DocumentStore = (*PgxDocumentStore)(nil)

// CreateDocument inserts fields as a new document with a generated UUID.
func (r *PgxDocumentStore) CreateDocument(ctx context.Context, collectionPath string, fields any) (string, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal fields: %w", apperrors.ErrWrite, err)
	}

	id := uuid.NewString()
	query := `INSERT INTO documents (collection_path, id, fields) VALUES ($1, $2, $3);`

	_, err = r.Pool.Exec(ctx, query, collectionPath, id, data)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return "", fmt.Errorf("%w: document %s already exists in %s", apperrors.ErrDuplicate, id, collectionPath)
		}
		return "", storeError(apperrors.ErrWrite, "create in", collectionPath, err)
	}
	return id, nil
}

// GetDocument retrieves a single document.
func (r *PgxDocumentStore) GetDocument(ctx context.Context, collectionPath string, id string) (*domain.Document, error) {
	query := `SELECT id, seq, fields FROM documents WHERE collection_path = $1 AND id = $2;`

	var doc domain.Document
	var fields []byte
	err := r.Pool.QueryRow(ctx, query, collectionPath, id).Scan(&doc.ID, &doc.Seq, &fields)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document %s in %s: %w", id, collectionPath, apperrors.ErrNotFound)
		}
		return nil, storeError(apperrors.ErrRead, "get from", collectionPath, err)
	}
	doc.Fields = json.RawMessage(fields)
	return &doc, nil
}

// ListDocuments returns the documents of a collection in insertion order, or
// ordered by a top-level field when orderBy is set.
func (r *PgxDocumentStore) ListDocuments(ctx context.Context, collectionPath string, orderBy *domain.OrderBy) ([]domain.Document, error) {
	query := `SELECT id, seq, fields FROM documents WHERE collection_path = $1 ORDER BY seq ASC;`
	args := []any{collectionPath}
	if orderBy != nil {
		// Direction cannot be a parameter; the field name is.
		direction := "ASC NULLS FIRST"
		if orderBy.Descending {
			direction = "DESC NULLS LAST"
		}
		query = fmt.Sprintf(`SELECT id, seq, fields FROM documents WHERE collection_path = $1 ORDER BY fields->>($2::text) %s, seq ASC;`, direction)
		args = append(args, orderBy.Field)
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeError(apperrors.ErrRead, "list", collectionPath, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var doc domain.Document
		var fields []byte
		if err := rows.Scan(&doc.ID, &doc.Seq, &fields); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", apperrors.ErrRead, collectionPath, err)
		}
		doc.Fields = json.RawMessage(fields)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError(apperrors.ErrRead, "list", collectionPath, err)
	}
	return docs, nil
}

// DeleteDocument removes a document, returning apperrors.ErrNotFound when no row matched.
func (r *PgxDocumentStore) DeleteDocument(ctx context.Context, collectionPath string, id string) error {
	query := `DELETE FROM documents WHERE collection_path = $1 AND id = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, collectionPath, id)
	if err != nil {
		return storeError(apperrors.ErrWrite, "delete from", collectionPath, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("document %s in %s: %w", id, collectionPath, apperrors.ErrNotFound)
	}
	return nil
}

// storeError wraps err with the read or write sentinel. Connection failures and
// timeouts are additionally marked as 503 so callers can tell an outage from a bad query.
func storeError(sentinel error, op, collectionPath string, err error) error {
	wrapped := fmt.Errorf("%w: %s %s: %w", sentinel, op, collectionPath, err)

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return apperrors.NewAppError(http.StatusServiceUnavailable, "document store unavailable", wrapped)
	}
	return wrapped
}
