package repositories

import (
	"context"

	"tilboard/internal/domain/models"
)

// TagRepository defines data access operations for tags
type TagRepository interface {
	// Create creates a new tag
	Create(ctx context.Context, tag *models.Tag) error

	// GetByID retrieves a tag by ID
	GetByID(ctx context.Context, id string) (*models.Tag, error)

	// ListByProject retrieves all tags of a project ordered by name
	ListByProject(ctx context.Context, projectID string) ([]models.Tag, error)

	// ListByCard retrieves the tags linked to a card ordered by name
	ListByCard(ctx context.Context, cardID string) ([]models.Tag, error)

	// ExistsByProjectAndName reports whether the project already has a tag
	// with the name. excludeID may be empty; when set, that tag is ignored.
	ExistsByProjectAndName(ctx context.Context, projectID, name, excludeID string) (bool, error)

	// Update updates a tag's name and color
	Update(ctx context.Context, tag *models.Tag) error

	// Delete deletes a tag row
	Delete(ctx context.Context, id string) error

	// DeleteByProject deletes all tags of a project
	DeleteByProject(ctx context.Context, projectID string) error
}
