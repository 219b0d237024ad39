package repositories

import (
	"context"

	"tilboard/internal/domain/models"
)

// CardTagRepository defines data access operations for card-tag links
type CardTagRepository interface {
	// Create creates a link between a card and a tag
	Create(ctx context.Context, link *models.CardTag) error

	// Exists reports whether the link exists
	Exists(ctx context.Context, cardID, tagID string) (bool, error)

	// Delete removes the link. Deleting an absent link is not an error.
	Delete(ctx context.Context, cardID, tagID string) error

	// DeleteByCard removes every link of a card
	DeleteByCard(ctx context.Context, cardID string) error

	// DeleteByTag removes every link of a tag
	DeleteByTag(ctx context.Context, tagID string) error

	// DeleteByColumn removes the links of every card in a column
	DeleteByColumn(ctx context.Context, columnID string) error

	// DeleteByBoard removes the links of every card under a board
	DeleteByBoard(ctx context.Context, boardID string) error

	// DeleteByProject removes every link whose tag belongs to the project
	DeleteByProject(ctx context.Context, projectID string) error
}
