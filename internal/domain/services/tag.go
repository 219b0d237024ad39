package services

import (
	"context"

	"tilboard/internal/domain/models"
)

// CreateTagRequest represents a request to create a tag
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"` // palette color name, e.g. "PASTEL_RED"
}

// UpdateTagRequest represents a request to update a tag
type UpdateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// TagService defines business logic operations for tags
type TagService interface {
	// CreateTag creates a tag in the project. The color must name a
	// palette entry.
	CreateTag(ctx context.Context, projectID, userID string, req *CreateTagRequest) (*models.Tag, error)

	// ListTags retrieves the project's tags
	ListTags(ctx context.Context, projectID, userID string) ([]models.Tag, error)

	// UpdateTag updates a tag's name and color
	UpdateTag(ctx context.Context, id, userID string, req *UpdateTagRequest) (*models.Tag, error)

	// DeleteTag deletes the tag and its card links
	DeleteTag(ctx context.Context, id, userID string) error
}

// CardTagService manages links between cards and tags
type CardTagService interface {
	// AddTagToCard links a tag to a card of the same project. Linking an
	// already-linked tag is a conflict.
	AddTagToCard(ctx context.Context, cardID, tagID, userID string) (*models.Card, error)

	// RemoveTagFromCard unlinks a tag. Removing an absent link is a no-op.
	RemoveTagFromCard(ctx context.Context, cardID, tagID, userID string) error

	// ListCardTags retrieves the tags linked to a card
	ListCardTags(ctx context.Context, cardID, userID string) ([]models.Tag, error)
}
