package services

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/dto"
)

// CategorySvc manages the global category tags.
type CategorySvc interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// AccountSvc manages the global account tags.
type AccountSvc interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// ReferenceSvcFacade combines category and account management.
type ReferenceSvcFacade interface {
	CategorySvc
	AccountSvc
}
