package services

import (
	"context"

	"tilboard/internal/domain/models"
)

// CreateCardRequest represents a request to create a card
type CreateCardRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdateCardRequest updates card fields; position is never touched here
type UpdateCardRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// MoveCardRequest relocates a card to a slot, possibly in another column
type MoveCardRequest struct {
	NewColumnID string `json:"new_column_id"`
	NewPosition int    `json:"new_position"`
}

// CardService defines business logic operations for cards
type CardService interface {
	// CreateCard appends a card at the end of the column
	CreateCard(ctx context.Context, columnID, userID string, req *CreateCardRequest) (*models.Card, error)

	// GetCard retrieves a card with its tags
	GetCard(ctx context.Context, id, userID string) (*models.Card, error)

	// ListCards retrieves every card of a project in board order
	ListCards(ctx context.Context, projectID, userID string) ([]models.Card, error)

	// UpdateCard updates title and content
	UpdateCard(ctx context.Context, id, userID string, req *UpdateCardRequest) (*models.Card, error)

	// MoveCard relocates a card within or across columns, keeping both
	// sibling sets dense. Moving to the current slot is a no-op.
	MoveCard(ctx context.Context, id, userID string, req *MoveCardRequest) (*models.Card, error)

	// DeleteCard deletes the card and its links, then compacts the column
	DeleteCard(ctx context.Context, id, userID string) error
}
