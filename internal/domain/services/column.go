package services

import (
	"context"

	"tilboard/internal/domain/models"
)

// CreateColumnRequest represents a request to create a column
type CreateColumnRequest struct {
	Title string `json:"title"`
}

// UpdateColumnRequest represents a request to rename a column
type UpdateColumnRequest struct {
	Title string `json:"title"`
}

// ReorderColumnsRequest carries the full new column order of a board
type ReorderColumnsRequest struct {
	ColumnIDs []string `json:"column_ids"`
}

// ColumnService defines business logic operations for columns
type ColumnService interface {
	// CreateColumn appends a column at the end of the board
	CreateColumn(ctx context.Context, boardID, userID string, req *CreateColumnRequest) (*models.Column, error)

	// ListColumns retrieves the board's columns ordered by position
	ListColumns(ctx context.Context, boardID, userID string) ([]models.Column, error)

	// UpdateColumn renames a column; its position is untouched
	UpdateColumn(ctx context.Context, id, userID string, req *UpdateColumnRequest) (*models.Column, error)

	// ReorderColumns replaces the board's column order. The id list must be
	// a permutation of the board's current columns.
	ReorderColumns(ctx context.Context, boardID, userID string, req *ReorderColumnsRequest) ([]models.Column, error)

	// DeleteColumn deletes the column with its cards and links, then
	// compacts the remaining columns
	DeleteColumn(ctx context.Context, id, userID string) error
}
