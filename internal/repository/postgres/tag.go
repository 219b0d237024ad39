package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
)

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *RepositoryConfig) repositories.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new tag
func (r *PostgresTagRepository) Create(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, project_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		tag.ID,
		tag.ProjectID,
		tag.Name,
		tag.Color,
		tag.CreatedAt,
		tag.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return fmt.Errorf("create tag: %w", err)
	}

	return nil
}

// GetByID retrieves a tag by ID
func (r *PostgresTagRepository) GetByID(ctx context.Context, id string) (*models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, color, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)

	var tag models.Tag
	err := exec.QueryRow(ctx, query, id).Scan(
		&tag.ID,
		&tag.ProjectID,
		&tag.Name,
		&tag.Color,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get tag: %w", err)
	}

	return &tag, nil
}

// ListByProject retrieves all tags of a project ordered by name
func (r *PostgresTagRepository) ListByProject(ctx context.Context, projectID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT id, project_id, name, color, created_at, updated_at
		FROM %s
		WHERE project_id = $1
		ORDER BY name ASC
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListByCard retrieves the tags linked to a card ordered by name
func (r *PostgresTagRepository) ListByCard(ctx context.Context, cardID string) ([]models.Tag, error) {
	query := fmt.Sprintf(`
		SELECT t.id, t.project_id, t.name, t.color, t.created_at, t.updated_at
		FROM %s t
		JOIN %s ct ON ct.tag_id = t.id
		WHERE ct.card_id = $1
		ORDER BY t.name ASC
	`, r.tables.Tags, r.tables.CardTags)

	exec := GetExecutor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, cardID)
	if err != nil {
		return nil, fmt.Errorf("list card tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ExistsByProjectAndName reports whether the project already has a tag with
// the name, optionally ignoring one tag id
func (r *PostgresTagRepository) ExistsByProjectAndName(ctx context.Context, projectID, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM %s
			WHERE project_id = $1 AND name = $2 AND ($3 = '' OR id <> $3)
		)
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, query, projectID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check tag name exists: %w", err)
	}
	return exists, nil
}

// Update updates a tag's name and color
func (r *PostgresTagRepository) Update(ctx context.Context, tag *models.Tag) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, color = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, tag.Name, tag.Color, tag.UpdatedAt, tag.ID)
	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("tag '%s': %w", tag.Name, domain.ErrConflict)
		}
		return fmt.Errorf("update tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", tag.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a tag row
func (r *PostgresTagRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tag %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByProject deletes all tags of a project
func (r *PostgresTagRepository) DeleteByProject(ctx context.Context, projectID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.Tags)

	exec := GetExecutor(ctx, r.pool)
	if _, err := exec.Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete tags of project: %w", err)
	}
	return nil
}

func scanTags(rows pgx.Rows) ([]models.Tag, error) {
	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		err := rows.Scan(
			&tag.ID,
			&tag.ProjectID,
			&tag.Name,
			&tag.Color,
			&tag.CreatedAt,
			&tag.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return tags, nil
}
