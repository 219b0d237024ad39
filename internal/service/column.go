package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
	"tilboard/internal/domain/services"
	"tilboard/internal/ordering"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// columnService implements the ColumnService interface
type columnService struct {
	columnRepo  repositories.ColumnRepository
	cardRepo    repositories.CardRepository
	cardTagRepo repositories.CardTagRepository
	authorizer  services.ResourceAuthorizer
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewColumnService creates a new column service
func NewColumnService(
	columnRepo repositories.ColumnRepository,
	cardRepo repositories.CardRepository,
	cardTagRepo repositories.CardTagRepository,
	authorizer services.ResourceAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.ColumnService {
	return &columnService{
		columnRepo:  columnRepo,
		cardRepo:    cardRepo,
		cardTagRepo: cardTagRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateColumn appends a column at the end of the board
func (s *columnService) CreateColumn(ctx context.Context, boardID, userID string, req *services.CreateColumnRequest) (*models.Column, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)

	var column *models.Column
	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		taken, err := s.columnRepo.ExistsByBoardAndTitle(ctx, boardID, title, "")
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("column '%s' on board %s: %w", title, boardID, domain.ErrConflict)
		}

		count, err := s.columnRepo.CountByBoard(ctx, boardID)
		if err != nil {
			return err
		}

		column = &models.Column{
			ID:        uuid.New().String(),
			BoardID:   boardID,
			Title:     title,
			Position:  ordering.NextPosition(count),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return s.columnRepo.Create(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("column created",
		"id", column.ID,
		"board_id", boardID,
		"position", column.Position,
	)

	return column, nil
}

// ListColumns retrieves the board's columns ordered by position
func (s *columnService) ListColumns(ctx context.Context, boardID, userID string) ([]models.Column, error) {
	if err := s.authorizer.CanAccessBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}
	return s.columnRepo.ListByBoard(ctx, boardID)
}

// UpdateColumn renames a column; its position is untouched
func (s *columnService) UpdateColumn(ctx context.Context, id, userID string, req *services.UpdateColumnRequest) (*models.Column, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessColumn(ctx, userID, id); err != nil {
		return nil, err
	}

	column, err := s.columnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	taken, err := s.columnRepo.ExistsByBoardAndTitle(ctx, column.BoardID, title, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("column '%s' on board %s: %w", title, column.BoardID, domain.ErrConflict)
	}

	column.Title = title
	column.UpdatedAt = time.Now()
	if err := s.columnRepo.Update(ctx, column); err != nil {
		return nil, err
	}

	return column, nil
}

// ReorderColumns replaces the board's column order
func (s *columnService) ReorderColumns(ctx context.Context, boardID, userID string, req *services.ReorderColumnsRequest) ([]models.Column, error) {
	if err := s.authorizer.CanAccessBoard(ctx, userID, boardID); err != nil {
		return nil, err
	}

	var columns []models.Column
	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		current, err := s.columnRepo.ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}

		items := columnItems(current)
		foreign, err := ordering.ValidateReplace(items, req.ColumnIDs)
		if err != nil {
			return err
		}
		for _, id := range foreign {
			if _, err := s.columnRepo.GetByID(ctx, id); err != nil {
				return err
			}
			// the column exists but belongs to some other board
			return fmt.Errorf("column %s is not on board %s: %w", id, boardID, domain.ErrForbidden)
		}

		if updates := ordering.PlanReplace(items, req.ColumnIDs); len(updates) > 0 {
			if err := s.columnRepo.UpdatePositions(ctx, updates); err != nil {
				return err
			}
		}

		columns, err = s.columnRepo.ListByBoard(ctx, boardID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("columns reordered",
		"board_id", boardID,
		"count", len(columns),
	)

	return columns, nil
}

// DeleteColumn deletes the column with its cards and links, then compacts
// the remaining columns
func (s *columnService) DeleteColumn(ctx context.Context, id, userID string) error {
	if err := s.authorizer.CanAccessColumn(ctx, userID, id); err != nil {
		return err
	}

	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		column, err := s.columnRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.cardTagRepo.DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := s.cardRepo.DeleteByColumn(ctx, id); err != nil {
			return err
		}
		if err := s.columnRepo.Delete(ctx, id); err != nil {
			return err
		}

		remaining, err := s.columnRepo.ListByBoard(ctx, column.BoardID)
		if err != nil {
			return err
		}
		if updates := ordering.PlanCompact(columnItems(remaining)); len(updates) > 0 {
			return s.columnRepo.UpdatePositions(ctx, updates)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("column deleted", "id", id)

	return nil
}

func columnItems(columns []models.Column) []ordering.Item {
	items := make([]ordering.Item, len(columns))
	for i, c := range columns {
		items[i] = ordering.Item{ID: c.ID, Position: c.Position}
	}
	return items
}
