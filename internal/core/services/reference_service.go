package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/utils/mapping"
)

// referenceService manages the global category and account tags.
type referenceService struct {
	BaseService
	store portsrepo.DocumentStore
}

// NewReferenceService creates a reference data service over store.
func NewReferenceService(store portsrepo.DocumentStore) portssvc.ReferenceSvcFacade {
	return &referenceService{store: store}
}

var _ portssvc.ReferenceSvcFacade = (*referenceService)(nil)

func (s *referenceService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	category := domain.Category{Name: name}
	if req.Icon != nil && strings.TrimSpace(*req.Icon) != "" {
		icon := strings.TrimSpace(*req.Icon)
		category.Icon = &icon
	}

	id, err := s.store.CreateDocument(ctx, domain.CollectionCategories, mapping.ToModelCategory(category))
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", name))
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	category.CategoryID = id
	return &category, nil
}

func (s *referenceService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	docs, err := s.store.ListDocuments(ctx, domain.CollectionCategories, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return mapping.ToDomainCategorySlice(docs)
}

func (s *referenceService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}

	account := domain.Account{Name: name}
	id, err := s.store.CreateDocument(ctx, domain.CollectionAccounts, mapping.ToModelAccount(account))
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", name))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.AccountID = id
	return &account, nil
}

func (s *referenceService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	docs, err := s.store.ListDocuments(ctx, domain.CollectionAccounts, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return mapping.ToDomainAccountSlice(docs)
}
