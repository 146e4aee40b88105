package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/project_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/utils/mapping"
)

type projectService struct {
	BaseService
	store portsrepo.DocumentStore
	now   func() time.Time
}

// NewProjectService creates a project service over store.
func NewProjectService(store portsrepo.DocumentStore) portssvc.ProjectSvcFacade {
	return &projectService{store: store, now: time.Now}
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, session *domain.Session) (*domain.Project, error) {
	now := s.now()
	if !session.Active(now) {
		return nil, fmt.Errorf("%w: no active session", apperrors.ErrUnauthorized)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", apperrors.ErrValidation)
	}

	project := domain.Project{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now.UTC(),
		OwnerID:     session.UserID,
	}

	id, err := s.store.CreateDocument(ctx, domain.CollectionProjects, mapping.ToModelProject(project))
	if err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("name", project.Name))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	project.ProjectID = id

	s.LogInfo(ctx, "Project created", slog.String("project_id", id))
	return &project, nil
}

func (s *projectService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	doc, err := s.store.GetDocument(ctx, domain.CollectionProjects, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
		}
		return nil, err
	}
	project, err := mapping.ToDomainProject(*doc)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns every project. Projects are not filtered by owner.
func (s *projectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	docs, err := s.store.ListDocuments(ctx, domain.CollectionProjects, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects")
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return mapping.ToDomainProjectSlice(docs)
}
