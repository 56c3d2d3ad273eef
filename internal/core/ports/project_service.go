package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// CreateProjectInput carries the fields of a new project.
type CreateProjectInput struct {
	Name          string
	Description   string
	ThumbnailURL  string
	RepositoryURL string
	SiteURL       string
	Technologies  []string
	Type          domain.ProjectType
	// CreatedBy is the authenticated subject performing the request.
	CreatedBy string
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	ListProjects(ctx context.Context) ([]*domain.Project, error)
	GetProject(ctx context.Context, id int64) (*domain.Project, error)
	CreateProject(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	UpdateProject(ctx context.Context, id int64, patch domain.ProjectPatch, subject string) (*domain.Project, error)
	DeleteProject(ctx context.Context, id int64, subject string) error
}
