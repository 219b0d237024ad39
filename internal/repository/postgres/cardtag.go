package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
)

// PostgresCardTagRepository implements the CardTagRepository interface
type PostgresCardTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewCardTagRepository creates a new card-tag link repository
func NewCardTagRepository(config *RepositoryConfig) repositories.CardTagRepository {
	return &PostgresCardTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a link between a card and a tag
func (r *PostgresCardTagRepository) Create(ctx context.Context, link *models.CardTag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (card_id, tag_id, created_at)
		VALUES ($1, $2, $3)
	`, r.tables.CardTags)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query, link.CardID, link.TagID, link.CreatedAt)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("card %s already has tag %s: %w", link.CardID, link.TagID, domain.ErrConflict)
		}
		return fmt.Errorf("create card-tag link: %w", err)
	}

	return nil
}

// Exists reports whether the link exists
func (r *PostgresCardTagRepository) Exists(ctx context.Context, cardID, tagID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE card_id = $1 AND tag_id = $2)
	`, r.tables.CardTags)

	exec := GetExecutor(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, query, cardID, tagID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check card-tag link exists: %w", err)
	}
	return exists, nil
}

// Delete removes the link. Removing an absent link is not an error.
func (r *PostgresCardTagRepository) Delete(ctx context.Context, cardID, tagID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE card_id = $1 AND tag_id = $2`, r.tables.CardTags)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, cardID, tagID); err != nil {
		return fmt.Errorf("delete card-tag link: %w", err)
	}
	return nil
}

// DeleteByCard removes every link of a card
func (r *PostgresCardTagRepository) DeleteByCard(ctx context.Context, cardID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE card_id = $1`, r.tables.CardTags)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, cardID); err != nil {
		return fmt.Errorf("delete links of card: %w", err)
	}
	return nil
}

// DeleteByTag removes every link of a tag
func (r *PostgresCardTagRepository) DeleteByTag(ctx context.Context, tagID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE tag_id = $1`, r.tables.CardTags)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, tagID); err != nil {
		return fmt.Errorf("delete links of tag: %w", err)
	}
	return nil
}

// DeleteByColumn removes the links of every card in a column
func (r *PostgresCardTagRepository) DeleteByColumn(ctx context.Context, columnID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE card_id IN (SELECT id FROM %s WHERE column_id = $1)
	`, r.tables.CardTags, r.tables.Cards)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, columnID); err != nil {
		return fmt.Errorf("delete links of column: %w", err)
	}
	return nil
}

// DeleteByBoard removes the links of every card under a board
func (r *PostgresCardTagRepository) DeleteByBoard(ctx context.Context, boardID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE card_id IN (
			SELECT c.id FROM %s c
			JOIN %s col ON col.id = c.column_id
			WHERE col.board_id = $1
		)
	`, r.tables.CardTags, r.tables.Cards, r.tables.Columns)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, boardID); err != nil {
		return fmt.Errorf("delete links of board: %w", err)
	}
	return nil
}

// DeleteByProject removes every link whose tag belongs to the project
func (r *PostgresCardTagRepository) DeleteByProject(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE tag_id IN (SELECT id FROM %s WHERE project_id = $1)
	`, r.tables.CardTags, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete links of project: %w", err)
	}
	return nil
}
