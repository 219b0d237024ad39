package repositories

import (
	"context"

	"tilboard/internal/domain/models"
	"tilboard/internal/ordering"
)

// CardRepository defines data access operations for cards
type CardRepository interface {
	// Create creates a new card
	Create(ctx context.Context, card *models.Card) error

	// GetByID retrieves a card by ID
	GetByID(ctx context.Context, id string) (*models.Card, error)

	// ListByColumn retrieves the cards of a column ordered by position
	ListByColumn(ctx context.Context, columnID string) ([]models.Card, error)

	// ListByProject retrieves every card of a project, joined through its
	// columns and board, ordered by column position then card position
	ListByProject(ctx context.Context, projectID string) ([]models.Card, error)

	// CountByColumn counts the cards of a column
	CountByColumn(ctx context.Context, columnID string) (int, error)

	// Update updates a card's title, content, column and position
	Update(ctx context.Context, card *models.Card) error

	// UpdatePositions applies a batch of position assignments
	UpdatePositions(ctx context.Context, updates []ordering.Update) error

	// CloseGap decrements the position of every card in the column with
	// position > afterPos, closing the gap a departing card leaves behind
	CloseGap(ctx context.Context, columnID string, afterPos int) error

	// OpenSlot increments the position of every card in the column with
	// position >= fromPos, opening a slot for an incoming card
	OpenSlot(ctx context.Context, columnID string, fromPos int) error

	// ShiftRange adds delta to the position of every card in the column
	// with position in [from, to]. Used for same-column moves, where the
	// close-gap and open-slot passes collapse into one relative shift.
	ShiftRange(ctx context.Context, columnID string, from, to, delta int) error

	// Delete deletes a card row
	Delete(ctx context.Context, id string) error

	// DeleteByColumn deletes all cards of a column
	DeleteByColumn(ctx context.Context, columnID string) error

	// DeleteByBoard deletes all cards under a board
	DeleteByBoard(ctx context.Context, boardID string) error
}
