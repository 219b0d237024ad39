package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"tilboard/internal/defaults"
	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
	"tilboard/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// boardService implements the BoardService interface
type boardService struct {
	boardRepo   repositories.BoardRepository
	columnRepo  repositories.ColumnRepository
	cardRepo    repositories.CardRepository
	cardTagRepo repositories.CardTagRepository
	authorizer  services.ResourceAuthorizer
	txManager   repositories.TransactionManager
	registry    *defaults.Registry
	logger      *slog.Logger
}

// NewBoardService creates a new board service
func NewBoardService(
	boardRepo repositories.BoardRepository,
	columnRepo repositories.ColumnRepository,
	cardRepo repositories.CardRepository,
	cardTagRepo repositories.CardTagRepository,
	authorizer services.ResourceAuthorizer,
	txManager repositories.TransactionManager,
	registry *defaults.Registry,
	logger *slog.Logger,
) services.BoardService {
	return &boardService{
		boardRepo:   boardRepo,
		columnRepo:  columnRepo,
		cardRepo:    cardRepo,
		cardTagRepo: cardTagRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		registry:    registry,
		logger:      logger,
	}
}

// CreateBoard creates the project's board plus the default columns
func (s *boardService) CreateBoard(ctx context.Context, projectID, userID string, req *services.CreateBoardRequest) (*models.Board, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	var board *models.Board
	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		exists, err := s.boardRepo.ExistsByProject(ctx, projectID)
		if err != nil {
			return err
		}
		if exists {
			return &domain.ConflictError{
				Message:      "project already has a board",
				ResourceType: "board",
				ResourceID:   projectID,
			}
		}

		board = &models.Board{
			ID:        uuid.New().String(),
			ProjectID: projectID,
			Title:     strings.TrimSpace(req.Title),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.boardRepo.Create(ctx, board); err != nil {
			return err
		}

		return createDefaultColumns(ctx, s.columnRepo, s.registry, board.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("board created",
		"id", board.ID,
		"project_id", projectID,
	)

	return board, nil
}

// GetBoard retrieves a board with its columns and cards in order
func (s *boardService) GetBoard(ctx context.Context, id, userID string) (*services.BoardView, error) {
	if err := s.authorizer.CanAccessBoard(ctx, userID, id); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, board)
}

// GetBoardByProject retrieves the project's board with its contents
func (s *boardService) GetBoardByProject(ctx context.Context, projectID, userID string) (*services.BoardView, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, board)
}

// UpdateBoard renames a board
func (s *boardService) UpdateBoard(ctx context.Context, id, userID string, req *services.UpdateBoardRequest) (*models.Board, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessBoard(ctx, userID, id); err != nil {
		return nil, err
	}

	board, err := s.boardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	board.Title = strings.TrimSpace(req.Title)
	board.UpdatedAt = time.Now()
	if err := s.boardRepo.Update(ctx, board); err != nil {
		return nil, err
	}

	return board, nil
}

// DeleteBoard deletes the board and all its columns, cards and links
func (s *boardService) DeleteBoard(ctx context.Context, id, userID string) error {
	if err := s.authorizer.CanAccessBoard(ctx, userID, id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.cardTagRepo.DeleteByBoard(ctx, id); err != nil {
			return err
		}
		if err := s.cardRepo.DeleteByBoard(ctx, id); err != nil {
			return err
		}
		if err := s.columnRepo.DeleteByBoard(ctx, id); err != nil {
			return err
		}
		return s.boardRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("board deleted", "id", id)

	return nil
}

func (s *boardService) buildView(ctx context.Context, board *models.Board) (*services.BoardView, error) {
	columns, err := s.columnRepo.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	view := &services.BoardView{
		Board:   *board,
		Columns: make([]services.ColumnView, len(columns)),
	}
	for i, column := range columns {
		cards, err := s.cardRepo.ListByColumn(ctx, column.ID)
		if err != nil {
			return nil, err
		}
		view.Columns[i] = services.ColumnView{Column: column, Cards: cards}
	}
	return view, nil
}

// createDefaultColumns seeds a fresh board with the standard column set,
// in order, at positions 1..N.
func createDefaultColumns(ctx context.Context, columnRepo repositories.ColumnRepository, registry *defaults.Registry, boardID string) error {
	for i, title := range registry.DefaultColumns() {
		column := &models.Column{
			ID:        uuid.New().String(),
			BoardID:   boardID,
			Title:     title,
			Position:  i + 1,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := columnRepo.Create(ctx, column); err != nil {
			return fmt.Errorf("create default column '%s': %w", title, err)
		}
	}
	return nil
}
