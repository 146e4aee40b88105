package bolt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	"github.com/google/uuid"
	bbolt "go.etcd.io/bbolt"
)

// record is the value stored under each document key.
type record struct {
	Seq    int64           `json:"seq"`
	Fields json.RawMessage `json:"fields"`
}

// DocumentStore keeps every collection path in its own bucket of an embedded bbolt file.
type DocumentStore struct {
	db *bbolt.DB
}

var _ portsrepo.DocumentStore = (*DocumentStore)(nil)

// Open opens (or creates) the bbolt file at path.
func Open(path string) (*DocumentStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &DocumentStore{db: db}, nil
}

// Close closes the database.
func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// CreateDocument stores fields under a new UUID. The bucket's sequence
// records insertion order.
func (s *DocumentStore) CreateDocument(ctx context.Context, collectionPath string, fields any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal fields: %w", apperrors.ErrWrite, err)
	}

	id := uuid.NewString()
	err = s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(collectionPath))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", collectionPath, err)
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}

		value, err := json.Marshal(record{Seq: int64(seq), Fields: data})
		if err != nil {
			return err
		}
		return b.Put([]byte(id), value)
	})
	if err != nil {
		return "", fmt.Errorf("%w: create in %s: %w", apperrors.ErrWrite, collectionPath, err)
	}
	return id, nil
}

// GetDocument retrieves a single document.
func (s *DocumentStore) GetDocument(ctx context.Context, collectionPath string, id string) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc *domain.Document
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(collectionPath))
		if b == nil {
			return apperrors.ErrNotFound
		}

		data := b.Get([]byte(id))
		if data == nil {
			return apperrors.ErrNotFound
		}

		d, err := decodeRecord(id, data)
		if err != nil {
			return err
		}
		doc = &d
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("document %s in %s: %w", id, collectionPath, err)
		}
		return nil, fmt.Errorf("%w: get from %s: %w", apperrors.ErrRead, collectionPath, err)
	}
	return doc, nil
}

// ListDocuments returns all documents of a collection in insertion order, or
// sorted by orderBy when given. A missing bucket is an empty collection.
func (s *DocumentStore) ListDocuments(ctx context.Context, collectionPath string, orderBy *domain.OrderBy) ([]domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docs := []domain.Document{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(collectionPath))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			// Values are only valid for the life of the transaction.
			d, err := decodeRecord(string(k), bytes.Clone(v))
			if err != nil {
				return err
			}
			docs = append(docs, d)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", apperrors.ErrRead, collectionPath, err)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Seq < docs[j].Seq })
	if orderBy != nil {
		if err := sortByField(docs, *orderBy); err != nil {
			return nil, fmt.Errorf("%w: order %s by %s: %w", apperrors.ErrRead, collectionPath, orderBy.Field, err)
		}
	}
	return docs, nil
}

// DeleteDocument removes a document by ID.
func (s *DocumentStore) DeleteDocument(ctx context.Context, collectionPath string, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(collectionPath))
		if b == nil || b.Get([]byte(id)) == nil {
			return apperrors.ErrNotFound
		}
		return b.Delete([]byte(id))
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("document %s in %s: %w", id, collectionPath, err)
		}
		return fmt.Errorf("%w: delete from %s: %w", apperrors.ErrWrite, collectionPath, err)
	}
	return nil
}

func decodeRecord(id string, data []byte) (domain.Document, error) {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return domain.Document{}, fmt.Errorf("failed to unmarshal document %s: %w", id, err)
	}
	return domain.Document{ID: id, Seq: r.Seq, Fields: r.Fields}, nil
}
