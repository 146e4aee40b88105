package mapping

import (
	"fmt"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/models"
)

// ToModelAccount converts a domain Account to its persisted document shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{Name: d.Name}
}

// ToDomainAccountSlice converts listed account documents.
func ToDomainAccountSlice(docs []domain.Document) ([]domain.Account, error) {
	ds := make([]domain.Account, 0, len(docs))
	for _, doc := range docs {
		var m models.Account
		if err := doc.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrRead, err)
		}
		ds = append(ds, domain.Account{AccountID: doc.ID, Name: m.Name})
	}
	return ds, nil
}

// ToModelCategory converts a domain Category to its persisted document shape.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{Name: d.Name, Icon: d.Icon}
}

// ToDomainCategorySlice converts listed category documents.
func ToDomainCategorySlice(docs []domain.Document) ([]domain.Category, error) {
	ds := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		var m models.Category
		if err := doc.Decode(&m); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrRead, err)
		}
		ds = append(ds, domain.Category{CategoryID: doc.ID, Name: m.Name, Icon: m.Icon})
	}
	return ds, nil
}
