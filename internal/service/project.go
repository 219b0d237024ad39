package service

import (
	"context"
	"errors"
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

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo repositories.ProjectRepository
	userRepo    repositories.UserRepository
	boardRepo   repositories.BoardRepository
	columnRepo  repositories.ColumnRepository
	cardRepo    repositories.CardRepository
	tagRepo     repositories.TagRepository
	cardTagRepo repositories.CardTagRepository
	authorizer  services.ResourceAuthorizer
	txManager   repositories.TransactionManager
	registry    *defaults.Registry
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repositories.ProjectRepository,
	userRepo repositories.UserRepository,
	boardRepo repositories.BoardRepository,
	columnRepo repositories.ColumnRepository,
	cardRepo repositories.CardRepository,
	tagRepo repositories.TagRepository,
	cardTagRepo repositories.CardTagRepository,
	authorizer services.ResourceAuthorizer,
	txManager repositories.TransactionManager,
	registry *defaults.Registry,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		boardRepo:   boardRepo,
		columnRepo:  columnRepo,
		cardRepo:    cardRepo,
		tagRepo:     tagRepo,
		cardTagRepo: cardTagRepo,
		authorizer:  authorizer,
		txManager:   txManager,
		registry:    registry,
		logger:      logger,
	}
}

// CreateProject creates a project together with its board and the default
// column set, in one transaction
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (*models.Project, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Category, validation.Length(0, 50)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)

	var project *models.Project
	err := s.txManager.ExecOrderedTx(ctx, func(ctx context.Context) error {
		taken, err := s.projectRepo.ExistsByTitleAndUser(ctx, title, req.UserID, "")
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("project '%s': %w", title, domain.ErrConflict)
		}

		project = &models.Project{
			ID:          uuid.New().String(),
			UserID:      req.UserID,
			Title:       title,
			Description: req.Description,
			Category:    req.Category,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}

		board := &models.Board{
			ID:        uuid.New().String(),
			ProjectID: project.ID,
			Title:     title,
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

	s.logger.Info("project created",
		"id", project.ID,
		"user_id", project.UserID,
	)

	return project, nil
}

// GetProject retrieves a project the user owns
func (s *projectService) GetProject(ctx context.Context, id, userID string) (*models.Project, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, id); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves all projects of a user
func (s *projectService) ListProjects(ctx context.Context, userID string) ([]models.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

// UpdateProject updates title, description and category
func (s *projectService) UpdateProject(ctx context.Context, id, userID string, req *services.UpdateProjectRequest) (*models.Project, error) {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 2000)),
		validation.Field(&req.Category, validation.Length(0, 50)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.authorizer.CanAccessProject(ctx, userID, id); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	taken, err := s.projectRepo.ExistsByTitleAndUser(ctx, title, userID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("project '%s': %w", title, domain.ErrConflict)
	}

	project.Title = title
	project.Description = req.Description
	project.Category = req.Category
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// DeleteProject deletes the project and everything it contains
func (s *projectService) DeleteProject(ctx context.Context, id, userID string) error {
	if err := s.authorizer.CanAccessProject(ctx, userID, id); err != nil {
		return err
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		board, err := s.boardRepo.GetByProject(ctx, id)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if board != nil {
			if err := s.cardTagRepo.DeleteByBoard(ctx, board.ID); err != nil {
				return err
			}
			if err := s.cardRepo.DeleteByBoard(ctx, board.ID); err != nil {
				return err
			}
			if err := s.columnRepo.DeleteByBoard(ctx, board.ID); err != nil {
				return err
			}
			if err := s.boardRepo.Delete(ctx, board.ID); err != nil {
				return err
			}
		}

		if err := s.tagRepo.DeleteByProject(ctx, id); err != nil {
			return err
		}
		return s.projectRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id)

	return nil
}
