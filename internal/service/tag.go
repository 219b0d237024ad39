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

// tagService implements the TagService interface
type tagService struct {
	tagRepo     repositories.TagRepository
	cardTagRepo repositories.CardTagRepository
	authorizer  services.ResourceAuthorizer
	txManager   repositories.TransactionManager
	registry    *defaults.Registry
	logger      *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo repositories.TagRepository,
	cardTagRepo repositories.CardTagRepository,
	authorizer services.ResourceAuthorizer,
	txManager repositories.TransactionManager,
	registry *defaults.Registry,
	logger *slog.Logger,
) services.TagService {
	return &tagService{
		tagRepo:     tagRepo,
		cardTagRepo: cardTagRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		registry:    registry,
		logger:      logger,
	}
}

// CreateTag creates a tag in the project. The color must name a palette entry.
func (s *tagService) CreateTag(ctx context.Context, projectID, userID string, req *services.CreateTagRequest) (*models.Tag, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Color, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}

	color, ok := s.registry.LookupColor(req.Color)
	if !ok {
		return nil, fmt.Errorf("unknown tag color '%s': %w", req.Color, domain.ErrValidation)
	}

	name := strings.TrimSpace(req.Name)
	taken, err := s.tagRepo.ExistsByProjectAndName(ctx, projectID, name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("tag '%s' in project %s: %w", name, projectID, domain.ErrConflict)
	}

	tag := &models.Tag{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Color:     color.Hex,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, err
	}

	s.logger.Info("tag created",
		"id", tag.ID,
		"project_id", projectID,
	)

	return tag, nil
}

// ListTags retrieves the project's tags
func (s *tagService) ListTags(ctx context.Context, projectID, userID string) ([]models.Tag, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.tagRepo.ListByProject(ctx, projectID)
}

// UpdateTag updates a tag's name and color
func (s *tagService) UpdateTag(ctx context.Context, id, userID string, req *services.UpdateTagRequest) (*models.Tag, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Color, validation.Required),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessTag(ctx, userID, id); err != nil {
		return nil, err
	}

	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	color, ok := s.registry.LookupColor(req.Color)
	if !ok {
		return nil, fmt.Errorf("unknown tag color '%s': %w", req.Color, domain.ErrValidation)
	}

	name := strings.TrimSpace(req.Name)
	taken, err := s.tagRepo.ExistsByProjectAndName(ctx, tag.ProjectID, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("tag '%s' in project %s: %w", name, tag.ProjectID, domain.ErrConflict)
	}

	tag.Name = name
	tag.Color = color.Hex
	tag.UpdatedAt = time.Now()
	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, err
	}

	return tag, nil
}

// DeleteTag deletes the tag and its card links
func (s *tagService) DeleteTag(ctx context.Context, id, userID string) error {
	if err := s.authorizer.CanAccessTag(ctx, userID, id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.cardTagRepo.DeleteByTag(ctx, id); err != nil {
			return err
		}
		return s.tagRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", id)

	return nil
}
