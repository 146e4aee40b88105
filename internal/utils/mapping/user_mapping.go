package mapping

import (
	"fmt"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/models"
)

// ToModelUser converts a domain User to its persisted document shape.
func ToModelUser(d domain.User) models.User {
	return models.User{
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    FormatTime(d.CreatedAt),
	}
}

// ToDomainUser decodes a user document.
func ToDomainUser(doc domain.Document) (domain.User, error) {
	var m models.User
	if err := doc.Decode(&m); err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", apperrors.ErrRead, err)
	}
	u := domain.User{UserID: doc.ID, Email: m.Email, PasswordHash: m.PasswordHash}
	if m.CreatedAt != "" {
		createdAt, err := ParseTime("createdAt", m.CreatedAt)
		if err != nil {
			return domain.User{}, fmt.Errorf("user %s: %w", doc.ID, err)
		}
		u.CreatedAt = createdAt
	}
	return u, nil
}
