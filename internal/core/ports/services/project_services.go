package services

import (
	"context"

	"github.com/SscSPs/project_ledger/internal/core/domain"
	"github.com/SscSPs/project_ledger/internal/dto"
)

// ProjectReaderSvc defines read operations for projects.
type ProjectReaderSvc interface {
	GetProject(ctx context.Context, projectID string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]domain.Project, error)
}

// ProjectWriterSvc defines write operations for projects.
type ProjectWriterSvc interface {
	// CreateProject stores a project owned by the session's user.
	CreateProject(ctx context.Context, req dto.CreateProjectRequest, session *domain.Session) (*domain.Project, error)
}

// ProjectSvcFacade combines all project-related service interfaces.
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
}
