package repositories

import (
	"context"

	"tilboard/internal/domain/models"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create creates a new project
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID alone. Ownership is checked by the
	// caller so that a missing project and a foreign project surface as
	// different errors.
	GetByID(ctx context.Context, id string) (*models.Project, error)

	// ListByUser retrieves all projects owned by a user
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)

	// ExistsByTitleAndUser reports whether the user already has a project
	// with the title. excludeID may be empty; when set, that project is
	// ignored (rename case).
	ExistsByTitleAndUser(ctx context.Context, title, userID, excludeID string) (bool, error)

	// Update updates a project's title, description and category
	Update(ctx context.Context, project *models.Project) error

	// Delete deletes a project row. Contained boards, columns, cards and
	// links are removed by the service beforehand.
	Delete(ctx context.Context, id string) error
}
