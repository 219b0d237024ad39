package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tilboard/internal/domain"
	"tilboard/internal/domain/models"
	"tilboard/internal/domain/repositories"
	"tilboard/internal/domain/services"
)

// cardTagService implements the CardTagService interface
type cardTagService struct {
	cardTagRepo repositories.CardTagRepository
	cardRepo    repositories.CardRepository
	tagRepo     repositories.TagRepository
	columnRepo  repositories.ColumnRepository
	boardRepo   repositories.BoardRepository
	authorizer  services.ResourceAuthorizer
	logger      *slog.Logger
}

// NewCardTagService creates a new card-tag link service
func NewCardTagService(
	cardTagRepo repositories.CardTagRepository,
	cardRepo repositories.CardRepository,
	tagRepo repositories.TagRepository,
	columnRepo repositories.ColumnRepository,
	boardRepo repositories.BoardRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.CardTagService {
	return &cardTagService{
		cardTagRepo: cardTagRepo,
		cardRepo:    cardRepo,
		tagRepo:     tagRepo,
		columnRepo:  columnRepo,
		boardRepo:   boardRepo,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// AddTagToCard links a tag to a card of the same project
func (s *cardTagService) AddTagToCard(ctx context.Context, cardID, tagID, userID string) (*models.Card, error) {
	if err := s.authorizer.CanAccessCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	if err := s.authorizer.CanAccessTag(ctx, userID, tagID); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}

	projectID, err := s.cardProjectID(ctx, card)
	if err != nil {
		return nil, err
	}
	if tag.ProjectID != projectID {
		return nil, fmt.Errorf("tag %s belongs to another project: %w", tagID, domain.ErrStructural)
	}

	linked, err := s.cardTagRepo.Exists(ctx, cardID, tagID)
	if err != nil {
		return nil, err
	}
	if linked {
		return nil, fmt.Errorf("tag %s already on card %s: %w", tagID, cardID, domain.ErrConflict)
	}

	link := &models.CardTag{
		CardID:    cardID,
		TagID:     tagID,
		CreatedAt: time.Now(),
	}
	if err := s.cardTagRepo.Create(ctx, link); err != nil {
		return nil, err
	}

	s.logger.Info("tag linked",
		"card_id", cardID,
		"tag_id", tagID,
	)

	tags, err := s.tagRepo.ListByCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	card.Tags = tags

	return card, nil
}

// RemoveTagFromCard unlinks a tag. Removing an absent link is a no-op.
func (s *cardTagService) RemoveTagFromCard(ctx context.Context, cardID, tagID, userID string) error {
	if err := s.authorizer.CanAccessCard(ctx, userID, cardID); err != nil {
		return err
	}
	if err := s.authorizer.CanAccessTag(ctx, userID, tagID); err != nil {
		return err
	}

	if err := s.cardTagRepo.Delete(ctx, cardID, tagID); err != nil {
		return err
	}

	s.logger.Info("tag unlinked",
		"card_id", cardID,
		"tag_id", tagID,
	)

	return nil
}

// ListCardTags retrieves the tags linked to a card
func (s *cardTagService) ListCardTags(ctx context.Context, cardID, userID string) ([]models.Tag, error) {
	if err := s.authorizer.CanAccessCard(ctx, userID, cardID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListByCard(ctx, cardID)
}

// cardProjectID resolves the project a card belongs to through its column
// and board.
func (s *cardTagService) cardProjectID(ctx context.Context, card *models.Card) (string, error) {
	column, err := s.columnRepo.GetByID(ctx, card.ColumnID)
	if err != nil {
		return "", err
	}
	board, err := s.boardRepo.GetByID(ctx, column.BoardID)
	if err != nil {
		return "", err
	}
	return board.ProjectID, nil
}
