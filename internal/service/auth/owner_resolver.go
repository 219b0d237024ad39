// Package auth implements ownership-based authorization. Every mutating
// operation proves chain-of-custody from the target resource up to its
// owning user before any ordered state is touched.
package auth

import (
	"context"
	"fmt"

	"tilboard/internal/domain"
	"tilboard/internal/domain/repositories"
	"tilboard/internal/domain/services"
)

// OwnerResolver implements ResourceAuthorizer by walking the fixed parent
// chain of each resource kind:
//
//	board  -> project -> owner
//	column -> board -> project -> owner
//	card   -> column -> board -> project -> owner
//	tag    -> project -> owner
//
// The chains are immutable after creation; only a card move rewrites a
// parent reference, and that never crosses a project boundary. A missing
// link anywhere in the chain is reported as not-found, never as forbidden,
// so a caller cannot probe for resources they do not own.
type OwnerResolver struct {
	projectRepo repositories.ProjectRepository
	boardRepo   repositories.BoardRepository
	columnRepo  repositories.ColumnRepository
	cardRepo    repositories.CardRepository
	tagRepo     repositories.TagRepository
}

// NewOwnerResolver creates a new ownership-based authorizer
func NewOwnerResolver(
	projectRepo repositories.ProjectRepository,
	boardRepo repositories.BoardRepository,
	columnRepo repositories.ColumnRepository,
	cardRepo repositories.CardRepository,
	tagRepo repositories.TagRepository,
) services.ResourceAuthorizer {
	return &OwnerResolver{
		projectRepo: projectRepo,
		boardRepo:   boardRepo,
		columnRepo:  columnRepo,
		cardRepo:    cardRepo,
		tagRepo:     tagRepo,
	}
}

// CanAccessProject checks the user owns the project
func (a *OwnerResolver) CanAccessProject(ctx context.Context, userID, projectID string) error {
	project, err := a.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return fmt.Errorf("project %s: %w", projectID, domain.ErrForbidden)
	}
	return nil
}

// CanAccessBoard checks via board -> project -> owner
func (a *OwnerResolver) CanAccessBoard(ctx context.Context, userID, boardID string) error {
	board, err := a.boardRepo.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	return a.CanAccessProject(ctx, userID, board.ProjectID)
}

// CanAccessColumn checks via column -> board -> project -> owner
func (a *OwnerResolver) CanAccessColumn(ctx context.Context, userID, columnID string) error {
	column, err := a.columnRepo.GetByID(ctx, columnID)
	if err != nil {
		return err
	}
	return a.CanAccessBoard(ctx, userID, column.BoardID)
}

// CanAccessCard checks via card -> column -> board -> project -> owner
func (a *OwnerResolver) CanAccessCard(ctx context.Context, userID, cardID string) error {
	card, err := a.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return err
	}
	return a.CanAccessColumn(ctx, userID, card.ColumnID)
}

// CanAccessTag checks via tag -> project -> owner
func (a *OwnerResolver) CanAccessTag(ctx context.Context, userID, tagID string) error {
	tag, err := a.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	return a.CanAccessProject(ctx, userID, tag.ProjectID)
}
