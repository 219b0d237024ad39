package repositories

import (
	"context"

	"tilboard/internal/domain/models"
)

// BoardRepository defines data access operations for boards
type BoardRepository interface {
	// Create creates a new board
	Create(ctx context.Context, board *models.Board) error

	// GetByID retrieves a board by ID
	GetByID(ctx context.Context, id string) (*models.Board, error)

	// GetByProject retrieves the board of a project
	GetByProject(ctx context.Context, projectID string) (*models.Board, error)

	// ExistsByProject reports whether the project already has a board
	ExistsByProject(ctx context.Context, projectID string) (bool, error)

	// Update updates a board's title
	Update(ctx context.Context, board *models.Board) error

	// Delete deletes a board row
	Delete(ctx context.Context, id string) error
}
