package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
	"tilboard/internal/ordering"
)

// PostgresColumnRepository implements the ColumnRepository interface
type PostgresColumnRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewColumnRepository creates a new column repository
func NewColumnRepository(config *RepositoryConfig) repositories.ColumnRepository {
	return &PostgresColumnRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new column
func (r *PostgresColumnRepository) Create(ctx context.Context, column *models.Column) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, board_id, title, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		column.ID,
		column.BoardID,
		column.Title,
		column.Position,
		column.CreatedAt,
		column.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("column '%s': %w", column.Title, domain.ErrConflict)
		}
		return fmt.Errorf("create column: %w", err)
	}

	return nil
}

// GetByID retrieves a column by ID
func (r *PostgresColumnRepository) GetByID(ctx context.Context, id string) (*models.Column, error) {
	query := fmt.Sprintf(`
		SELECT id, board_id, title, position, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)

	var column models.Column
	err := exec.QueryRow(ctx, query, id).Scan(
		&column.ID,
		&column.BoardID,
		&column.Title,
		&column.Position,
		&column.CreatedAt,
		&column.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("column %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get column: %w", err)
	}

	return &column, nil
}

// ListByBoard retrieves the columns of a board ordered by position
func (r *PostgresColumnRepository) ListByBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	query := fmt.Sprintf(`
		SELECT id, board_id, title, position, created_at, updated_at
		FROM %s
		WHERE board_id = $1
		ORDER BY position ASC
	`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, boardID)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var column models.Column
		err := rows.Scan(
			&column.ID,
			&column.BoardID,
			&column.Title,
			&column.Position,
			&column.CreatedAt,
			&column.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		columns = append(columns, column)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// CountByBoard counts the columns of a board
func (r *PostgresColumnRepository) CountByBoard(ctx context.Context, boardID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE board_id = $1`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)

	var count int
	if err := exec.QueryRow(ctx, query, boardID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count columns: %w", err)
	}
	return count, nil
}

// ExistsByBoardAndTitle reports whether the board already has a column with
// the title, optionally ignoring one column id
func (r *PostgresColumnRepository) ExistsByBoardAndTitle(ctx context.Context, boardID, title, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM %s
			WHERE board_id = $1 AND title = $2 AND ($3 = '' OR id <> $3)
		)
	`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, query, boardID, title, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check column title exists: %w", err)
	}
	return exists, nil
}

// Update updates a column's title
func (r *PostgresColumnRepository) Update(ctx context.Context, column *models.Column) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, updated_at = $2
		WHERE id = $3
	`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, column.Title, column.UpdatedAt, column.ID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("column '%s': %w", column.Title, domain.ErrConflict)
		}
		return fmt.Errorf("update column: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("column %s: %w", column.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePositions applies a batch of position assignments
func (r *PostgresColumnRepository) UpdatePositions(ctx context.Context, updates []ordering.Update) error {
	if len(updates) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET position = $1 WHERE id = $2`, r.tables.Columns)

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.Position, u.ID)
	}

	exec := GetExecutor(ctx, r.pool)
	results := exec.SendBatch(ctx, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("update column positions: %w", err)
		}
	}

	return nil
}

// Delete deletes a column row
func (r *PostgresColumnRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete column: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("column %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByBoard deletes all columns of a board
func (r *PostgresColumnRepository) DeleteByBoard(ctx context.Context, boardID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE board_id = $1`, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, boardID); err != nil {
		return fmt.Errorf("delete columns of board: %w", err)
	}
	return nil
}
