package services

import (
	"context"

	"tilboard/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdateProjectRequest represents a request to update a project
type UpdateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a project together with its board and the
	// default column set, in one transaction
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)

	// GetProject retrieves a project the user owns
	GetProject(ctx context.Context, id, userID string) (*models.Project, error)

	// ListProjects retrieves all projects of a user
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)

	// UpdateProject updates title, description and category
	UpdateProject(ctx context.Context, id, userID string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject deletes the project and everything it contains
	DeleteProject(ctx context.Context, id, userID string) error
}
