package services_test

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/events"
	"github.com/stretchr/testify/mock"
)

// MockDocumentStore is a mock type for the DocumentStore interface
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context, collectionPath string, orderBy *domain.OrderBy) ([]domain.Document, error) {
	args := m.Called(ctx, collectionPath, orderBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Allows a test to build the result from what was written earlier.
	if fn, ok := args.Get(0).(func(context.Context, string, *domain.OrderBy) []domain.Document); ok {
		return fn(ctx, collectionPath, orderBy), args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentStore) GetDocument(ctx context.Context, collectionPath string, id string) (*domain.Document, error) {
	args := m.Called(ctx, collectionPath, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentStore) CreateDocument(ctx context.Context, collectionPath string, fields any) (string, error) {
	args := m.Called(ctx, collectionPath, fields)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, collectionPath string, id string) error {
	args := m.Called(ctx, collectionPath, id)
	return args.Error(0)
}

// MockPublisher is a mock type for the events.Publisher interface
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event *events.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
