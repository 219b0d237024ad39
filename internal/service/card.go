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

// cardService implements the CardService interface
type cardService struct {
	cardRepo    repositories.CardRepository
	columnRepo  repositories.ColumnRepository
	cardTagRepo repositories.CardTagRepository
	tagRepo     repositories.TagRepository
	authorizer  services.ResourceAuthorizer
	txManager   repositories.TransactionManager
	logger      *slog.Logger
}

// NewCardService creates a new card service
func NewCardService(
	cardRepo repositories.CardRepository,
	columnRepo repositories.ColumnRepository,
	cardTagRepo repositories.CardTagRepository,
	tagRepo repositories.TagRepository,
	authorizer services.ResourceAuthorizer,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.CardService {
	return &cardService{
		cardRepo:    cardRepo,
		columnRepo:  columnRepo,
		cardTagRepo: cardTagRepo,
		tagRepo:     tagRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateCard appends a card at the end of the column
func (s *cardService) CreateCard(ctx context.Context, columnID, userID string, req *services.CreateCardRequest) (*models.Card, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Length(0, 10000)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessColumn(ctx, userID, columnID); err != nil {
		return nil, err
	}

	var card *models.Card
	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		count, err := s.cardRepo.CountByColumn(ctx, columnID)
		if err != nil {
			return err
		}

		card = &models.Card{
			ID:        uuid.New().String(),
			ColumnID:  columnID,
			UserID:    userID,
			Title:     strings.TrimSpace(req.Title),
			Content:   req.Content,
			Position:  ordering.NextPosition(count),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		return s.cardRepo.Create(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("card created",
		"id", card.ID,
		"column_id", columnID,
		"position", card.Position,
	)

	return card, nil
}

// GetCard retrieves a card with its tags
func (s *cardService) GetCard(ctx context.Context, id, userID string) (*models.Card, error) {
	if err := s.authorizer.CanAccessCard(ctx, userID, id); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.ListByCard(ctx, id)
	if err != nil {
		return nil, err
	}
	card.Tags = tags

	return card, nil
}

// ListCards retrieves every card of a project in board order
func (s *cardService) ListCards(ctx context.Context, projectID, userID string) ([]models.Card, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.cardRepo.ListByProject(ctx, projectID)
}

// UpdateCard updates title and content
func (s *cardService) UpdateCard(ctx context.Context, id, userID string, req *services.UpdateCardRequest) (*models.Card, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Content, validation.Length(0, 10000)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessCard(ctx, userID, id); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	card.Title = strings.TrimSpace(req.Title)
	card.Content = req.Content
	card.UpdatedAt = time.Now()
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// MoveCard relocates a card within or across columns, keeping both sibling
// sets dense. Shifts are persisted first; the moved card is written last so
// its own row never takes part in a range update.
func (s *cardService) MoveCard(ctx context.Context, id, userID string, req *services.MoveCardRequest) (*models.Card, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.NewColumnID, validation.Required),
		validation.Field(&req.NewPosition, validation.Required, validation.Min(1)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessCard(ctx, userID, id); err != nil {
		return nil, err
	}
	if err := s.authorizer.CanAccessColumn(ctx, userID, req.NewColumnID); err != nil {
		return nil, err
	}

	var card *models.Card
	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		var err error
		card, err = s.cardRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		sameColumn := card.ColumnID == req.NewColumnID
		if sameColumn && card.Position == req.NewPosition {
			return nil
		}

		count, err := s.cardRepo.CountByColumn(ctx, req.NewColumnID)
		if err != nil {
			return err
		}
		// in the same column the card fills its own slot; in a new column
		// it may land one past the current end
		max := count
		if !sameColumn {
			max = count + 1
		}
		if req.NewPosition > max {
			return fmt.Errorf("position %d out of range 1..%d: %w", req.NewPosition, max, domain.ErrValidation)
		}

		plan := ordering.PlanMove(sameColumn, card.Position, req.NewPosition)
		if plan.SameParent {
			if err := s.cardRepo.ShiftRange(ctx, card.ColumnID, plan.ShiftFrom, plan.ShiftTo, plan.ShiftDelta); err != nil {
				return err
			}
		} else {
			if err := s.cardRepo.CloseGap(ctx, card.ColumnID, plan.CloseGapAfter); err != nil {
				return err
			}
			if err := s.cardRepo.OpenSlot(ctx, req.NewColumnID, plan.OpenSlotFrom); err != nil {
				return err
			}
		}

		card.ColumnID = req.NewColumnID
		card.Position = req.NewPosition
		card.UpdatedAt = time.Now()
		return s.cardRepo.Update(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("card moved",
		"id", card.ID,
		"column_id", card.ColumnID,
		"position", card.Position,
	)

	return card, nil
}

// DeleteCard deletes the card and its links, then compacts the column
func (s *cardService) DeleteCard(ctx context.Context, id, userID string) error {
	if err := s.authorizer.CanAccessCard(ctx, userID, id); err != nil {
		return err
	}

	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		card, err := s.cardRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := s.cardTagRepo.DeleteByCard(ctx, id); err != nil {
			return err
		}
		if err := s.cardRepo.Delete(ctx, id); err != nil {
			return err
		}

		remaining, err := s.cardRepo.ListByColumn(ctx, card.ColumnID)
		if err != nil {
			return err
		}
		if updates := ordering.PlanCompact(cardItems(remaining)); len(updates) > 0 {
			return s.cardRepo.UpdatePositions(ctx, updates)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("card deleted", "id", id)

	return nil
}

func cardItems(cards []models.Card) []ordering.Item {
	items := make([]ordering.Item, len(cards))
	for i, c := range cards {
		items[i] = ordering.Item{ID: c.ID, Position: c.Position}
	}
	return items
}
