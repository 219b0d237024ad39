package services

import (
	"context"

	"tilboard/internal/domain/models"
)

// CreateBoardRequest represents a request to create a board
type CreateBoardRequest struct {
	Title string `json:"title"`
}

// UpdateBoardRequest represents a request to rename a board
type UpdateBoardRequest struct {
	Title string `json:"title"`
}

// BoardView is a board with its ordered columns and their ordered cards
type BoardView struct {
	Board   models.Board `json:"board"`
	Columns []ColumnView `json:"columns"`
}

// ColumnView is a column with its ordered cards
type ColumnView struct {
	Column models.Column `json:"column"`
	Cards  []models.Card `json:"cards"`
}

// BoardService defines business logic operations for boards
type BoardService interface {
	// CreateBoard creates the project's board plus the default columns.
	// Fails with a conflict if the project already has one.
	CreateBoard(ctx context.Context, projectID, userID string, req *CreateBoardRequest) (*models.Board, error)

	// GetBoard retrieves a board with its columns and cards in order
	GetBoard(ctx context.Context, id, userID string) (*BoardView, error)

	// GetBoardByProject retrieves the project's board with its contents
	GetBoardByProject(ctx context.Context, projectID, userID string) (*BoardView, error)

	// UpdateBoard renames a board
	UpdateBoard(ctx context.Context, id, userID string, req *UpdateBoardRequest) (*models.Board, error)

	// DeleteBoard deletes the board and all its columns, cards and links
	DeleteBoard(ctx context.Context, id, userID string) error
}
