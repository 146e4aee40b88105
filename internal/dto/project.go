package dto

import (
	"time"

	"github.com/SscSPs/project_ledger/internal/core/domain"
)

// CreateProjectRequest defines the data needed to create a new project.
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"` // Optional
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID   string    `json:"projectID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	OwnerID     string    `json:"ownerID"`
}

// ToProjectResponse converts a domain.Project to ProjectResponse DTO
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:   p.ProjectID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		OwnerID:     p.OwnerID,
	}
}

// ListProjectsResponse wraps the list of projects.
type ListProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

// ToListProjectResponse converts a slice of domain.Project to ListProjectsResponse DTO
func ToListProjectResponse(projects []domain.Project) ListProjectsResponse {
	res := make([]ProjectResponse, len(projects))
	for i := range projects {
		res[i] = ToProjectResponse(&projects[i])
	}
	return ListProjectsResponse{Projects: res}
}
