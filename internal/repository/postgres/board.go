package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
)

// PostgresBoardRepository implements the BoardRepository interface
type PostgresBoardRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewBoardRepository creates a new board repository
func NewBoardRepository(config *RepositoryConfig) repositories.BoardRepository {
	return &PostgresBoardRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new board. A unique index on project_id enforces the
// one-board-per-project invariant at the store level as well.
func (r *PostgresBoardRepository) Create(ctx context.Context, board *models.Board) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		board.ID,
		board.ProjectID,
		board.Title,
		board.CreatedAt,
		board.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("board for project %s: %w", board.ProjectID, domain.ErrConflict)
		}
		return fmt.Errorf("create board: %w", err)
	}

	return nil
}

// GetByID retrieves a board by ID
func (r *PostgresBoardRepository) GetByID(ctx context.Context, id string) (*models.Board, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, title, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)

	var board models.Board
	err := exec.QueryRow(ctx, query, id).Scan(
		&board.ID,
		&board.ProjectID,
		&board.Title,
		&board.CreatedAt,
		&board.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("board %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get board: %w", err)
	}

	return &board, nil
}

// GetByProject retrieves the board of a project
func (r *PostgresBoardRepository) GetByProject(ctx context.Context, projectID string) (*models.Board, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, title, created_at, updated_at
		FROM %s
		WHERE project_id = $1
	`, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)

	var board models.Board
	err := exec.QueryRow(ctx, query, projectID).Scan(
		&board.ID,
		&board.ProjectID,
		&board.Title,
		&board.CreatedAt,
		&board.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("board of project %s: %w", projectID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get board by project: %w", err)
	}

	return &board, nil
}

// ExistsByProject reports whether the project already has a board
func (r *PostgresBoardRepository) ExistsByProject(ctx context.Context, projectID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE project_id = $1)`, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, query, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check board exists: %w", err)
	}
	return exists, nil
}

// Update updates a board's title
func (r *PostgresBoardRepository) Update(ctx context.Context, board *models.Board) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, board.Title, board.UpdatedAt, board.ID)
	if err != nil {
		return fmt.Errorf("update board: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("board %s: %w", board.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a board row
func (r *PostgresBoardRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete board: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("board %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
