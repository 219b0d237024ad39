package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, user_id, title, description, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.Title,
		project.Description,
		project.Category,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("project '%s': %w", project.Title, domain.ErrConflict)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, category, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)

	var project models.Project
	err := exec.QueryRow(ctx, query, id).Scan(
		&project.ID,
		&project.UserID,
		&project.Title,
		&project.Description,
		&project.Category,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// ListByUser retrieves all projects owned by a user
func (r *PostgresProjectRepository) ListByUser(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, category, created_at, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)

	rows, err := exec.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Title,
			&project.Description,
			&project.Category,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// ExistsByTitleAndUser reports whether the user already has a project with
// the title, optionally ignoring one project id
func (r *PostgresProjectRepository) ExistsByTitleAndUser(ctx context.Context, title, userID, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(
			SELECT 1 FROM %s
			WHERE title = $1 AND user_id = $2 AND ($3 = '' OR id <> $3)
		)
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)

	var exists bool
	if err := exec.QueryRow(ctx, query, title, userID, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check project title exists: %w", err)
	}
	return exists, nil
}

// Update updates a project's title, description and category
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, description = $2, category = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query,
		project.Title,
		project.Description,
		project.Category,
		project.UpdatedAt,
		project.ID,
	)

	if err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("project '%s': %w", project.Title, domain.ErrConflict)
		}
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete deletes a project row
func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	exec := GetExecutor(ctx, r.pool)
	result, err := exec.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
