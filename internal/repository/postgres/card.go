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

// PostgresCardRepository implements the CardRepository interface
type PostgresCardRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCardRepository creates a new card repository
func NewCardRepository(config *RepositoryConfig) repositories.CardRepository {
	return &PostgresCardRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new card
func (r *PostgresCardRepository) Create(ctx context.Context, card *models.Card) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, column_id, user_id, title, content, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		card.ID,
		card.ColumnID,
		card.UserID,
		card.Title,
		card.Content,
		card.Position,
		card.CreatedAt,
		card.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("create card: %w", err)
	}

	return nil
}

// GetByID retrieves a card by ID
func (r *PostgresCardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	query := fmt.Sprintf(`
		SELECT id, column_id, user_id, title, content, position, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)

	var card models.Card
	err := exec.QueryRow(ctx, query, id).Scan(
		&card.ID,
		&card.ColumnID,
		&card.UserID,
		&card.Title,
		&card.Content,
		&card.Position,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get card: %w", err)
	}

	return &card, nil
}

// ListByColumn retrieves the cards of a column ordered by position
func (r *PostgresCardRepository) ListByColumn(ctx context.Context, columnID string) ([]models.Card, error) {
	query := fmt.Sprintf(`
		SELECT id, column_id, user_id, title, content, position, created_at, updated_at
		FROM %s
		WHERE column_id = $1
		ORDER BY position ASC
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, columnID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// ListByProject retrieves every card of a project in board order
func (r *PostgresCardRepository) ListByProject(ctx context.Context, projectID string) ([]models.Card, error) {
	query := fmt.Sprintf(`
		SELECT c.id, c.column_id, c.user_id, c.title, c.content, c.position, c.created_at, c.updated_at
		FROM %s c
		JOIN %s col ON col.id = c.column_id
		JOIN %s b ON b.id = col.board_id
		WHERE b.project_id = $1
		ORDER BY col.position ASC, c.position ASC
	`, r.tables.Cards, r.tables.Columns, r.tables.Boards)

	exec := GetExecutor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project cards: %w", err)
	}
	defer rows.Close()

	return scanCards(rows)
}

// CountByColumn counts the cards of a column
func (r *PostgresCardRepository) CountByColumn(ctx context.Context, columnID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE column_id = $1`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)

	var count int
	if err := exec.QueryRow(ctx, query, columnID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return count, nil
}

// Update updates a card's title, content, column and position
func (r *PostgresCardRepository) Update(ctx context.Context, card *models.Card) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET column_id = $1, title = $2, content = $3, position = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		card.ColumnID,
		card.Title,
		card.Content,
		card.Position,
		card.UpdatedAt,
		card.ID,
	)

	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", card.ID, domain.ErrNotFound)
	}

	return nil
}

// UpdatePositions applies a batch of position assignments
func (r *PostgresCardRepository) UpdatePositions(ctx context.Context, updates []ordering.Update) error {
	if len(updates) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE %s SET position = $1 WHERE id = $2`, r.tables.Cards)

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(query, u.Position, u.ID)
	}

	exec := GetExecutor(ctx, r.pool)
	results := exec.SendBatch(ctx, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("update card positions: %w", err)
		}
	}

	return nil
}

// CloseGap decrements positions after a departing card's slot
func (r *PostgresCardRepository) CloseGap(ctx context.Context, columnID string, afterPos int) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = position - 1
		WHERE column_id = $1 AND position > $2
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, columnID, afterPos); err != nil {
		return fmt.Errorf("close position gap: %w", err)
	}
	return nil
}

// OpenSlot increments positions from an incoming card's slot
func (r *PostgresCardRepository) OpenSlot(ctx context.Context, columnID string, fromPos int) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = position + 1
		WHERE column_id = $1 AND position >= $2
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, columnID, fromPos); err != nil {
		return fmt.Errorf("open position slot: %w", err)
	}
	return nil
}

// ShiftRange adds delta to positions in [from, to] within the column.
// The caller excludes the moved card by rewriting it afterwards.
func (r *PostgresCardRepository) ShiftRange(ctx context.Context, columnID string, from, to, delta int) error {
	query := fmt.Sprintf(`
		UPDATE %s SET position = position + $1
		WHERE column_id = $2 AND position >= $3 AND position <= $4
	`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, delta, columnID, from, to); err != nil {
		return fmt.Errorf("shift position range: %w", err)
	}
	return nil
}

// Delete deletes a card row
func (r *PostgresCardRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("card %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByColumn deletes all cards of a column
func (r *PostgresCardRepository) DeleteByColumn(ctx context.Context, columnID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE column_id = $1`, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, columnID); err != nil {
		return fmt.Errorf("delete cards of column: %w", err)
	}
	return nil
}

// DeleteByBoard deletes all cards under a board
func (r *PostgresCardRepository) DeleteByBoard(ctx context.Context, boardID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE column_id IN (SELECT id FROM %s WHERE board_id = $1)
	`, r.tables.Cards, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, boardID); err != nil {
		return fmt.Errorf("delete cards of board: %w", err)
	}
	return nil
}

func scanCards(rows pgx.Rows) ([]models.Card, error) {
	var cards []models.Card
	for rows.Next() {
		var card models.Card
		err := rows.Scan(
			&card.ID,
			&card.ColumnID,
			&card.UserID,
			&card.Title,
			&card.Content,
			&card.Position,
			&card.CreatedAt,
			&card.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	return cards, nil
}
