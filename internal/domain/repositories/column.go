package repositories

import (
	"context"

	"tilboard/internal/domain/models"
	"tilboard/internal/ordering"
)

// ColumnRepository defines data access operations for columns
type ColumnRepository interface {
	// Create creates a new column
	Create(ctx context.Context, column *models.Column) error

	// GetByID retrieves a column by ID
	GetByID(ctx context.Context, id string) (*models.Column, error)

	// ListByBoard retrieves the columns of a board ordered by position
	ListByBoard(ctx context.Context, boardID string) ([]models.Column, error)

	// CountByBoard counts the columns of a board
	CountByBoard(ctx context.Context, boardID string) (int, error)

	// ExistsByBoardAndTitle reports whether the board already has a column
	// with the title. excludeID may be empty; when set, that column is
	// ignored (rename case).
	ExistsByBoardAndTitle(ctx context.Context, boardID, title, excludeID string) (bool, error)

	// Update updates a column's title
	Update(ctx context.Context, column *models.Column) error

	// UpdatePositions applies a batch of position assignments
	UpdatePositions(ctx context.Context, updates []ordering.Update) error

	// Delete deletes a column row. Its cards and links are removed by the
	// service beforehand.
	Delete(ctx context.Context, id string) error

	// DeleteByBoard deletes all columns of a board
	DeleteByBoard(ctx context.Context, boardID string) error
}
