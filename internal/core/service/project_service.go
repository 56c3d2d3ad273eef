package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
	"github.com/devfolio/portfolio-api/pkg/logger"
)

const maxProjectNameLength = 255

type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger, now: time.Now}
}

// logFor prefers the request-scoped logger carried by ctx.
func (s *ProjectService) logFor(ctx context.Context) zerolog.Logger {
	return logger.FromContext(ctx, s.logger).With().Str("component", "projects").Logger()
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProject validates and stores a new project owned by input.CreatedBy.
func (s *ProjectService) CreateProject(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	now := s.now().UTC()
	project := &domain.Project{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		ThumbnailURL:  input.ThumbnailURL,
		RepositoryURL: input.RepositoryURL,
		SiteURL:       input.SiteURL,
		Technologies:  append([]string(nil), input.Technologies...),
		Type:          input.Type,
		CreatedBy:     input.CreatedBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := validateProject(project); err != nil {
		return nil, err
	}

	log := s.logFor(ctx)
	if err := s.repo.Create(ctx, project); err != nil {
		log.Error().Err(err).Msg("failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	log.Info().Int64("project_id", project.ID).Str("subject", input.CreatedBy).Msg("project created")
	return project, nil
}

// UpdateProject applies a partial update. Fields absent from patch keep their
// stored values.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch, subject string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return project, nil
	}

	patch.Apply(project)
	project.Name = strings.TrimSpace(project.Name)
	if err := validateProject(project); err != nil {
		return nil, err
	}
	project.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}

	log := s.logFor(ctx)
	log.Info().Int64("project_id", id).Str("subject", subject).Msg("project updated")
	return project, nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int64, subject string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log := s.logFor(ctx)
	log.Info().Int64("project_id", id).Str("subject", subject).Msg("project deleted")
	return nil
}

func validateProject(p *domain.Project) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	case len([]rune(p.Name)) > maxProjectNameLength:
		return fmt.Errorf("%w: name must be at most %d characters", domain.ErrInvalidInput, maxProjectNameLength)
	case strings.TrimSpace(p.Description) == "":
		return fmt.Errorf("%w: description is required", domain.ErrInvalidInput)
	case len(p.Technologies) == 0:
		return fmt.Errorf("%w: technologies is required", domain.ErrInvalidInput)
	case !p.Type.Valid():
		return fmt.Errorf("%w: type must be one of: web mobile desktop other", domain.ErrInvalidInput)
	}
	return nil
}
