package mapping

import (
	"fmt"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/models"
)

// ToModelProject converts a domain Project to its persisted document shape.
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   FormatTime(d.CreatedAt),
		UserID:      d.OwnerID,
	}
}

// ToDomainProject decodes a project document.
func ToDomainProject(doc domain.Document) (domain.Project, error) {
	var m models.Project
	if err := doc.Decode(&m); err != nil {
		return domain.Project{}, fmt.Errorf("%w: %w", apperrors.ErrRead, err)
	}
	p := domain.Project{
		ProjectID:   doc.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.UserID,
	}
	if m.CreatedAt != "" {
		createdAt, err := ParseTime("createdAt", m.CreatedAt)
		if err != nil {
			return domain.Project{}, fmt.Errorf("project %s: %w", doc.ID, err)
		}
		p.CreatedAt = createdAt
	}
	return p, nil
}

// ToDomainProjectSlice converts listed project documents.
func ToDomainProjectSlice(docs []domain.Document) ([]domain.Project, error) {
	ds := make([]domain.Project, 0, len(docs))
	for _, doc := range docs {
		p, err := ToDomainProject(doc)
		if err != nil {
			return nil, err
		}
		ds = append(ds, p)
	}
	return ds, nil
}
