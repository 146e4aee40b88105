package dto

import (
	"github.com/SscSPs/project_ledger/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name string  `json:"name" binding:"required"`
	Icon *string `json:"icon"` // Optional
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string  `json:"categoryID"`
	Name       string  `json:"name"`
	Icon       *string `json:"icon"`
}

// ToListCategoryResponse converts a slice of domain.Category to CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		res[i] = CategoryResponse{CategoryID: c.CategoryID, Name: c.Name, Icon: c.Icon}
	}
	return res
}

// CreateAccountRequest defines the data needed to create an account tag.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID string `json:"accountID"`
	Name      string `json:"name"`
}

// ToListAccountResponse converts a slice of domain.Account to AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		res[i] = AccountResponse{AccountID: a.AccountID, Name: a.Name}
	}
	return res
}
