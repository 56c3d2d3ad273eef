package ports

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// ProjectRepository defines persistence operations for projects. Find, Update
// and Delete return domain.ErrProjectNotFound for unknown IDs.
type ProjectRepository interface {
	List(ctx context.Context) ([]*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	// Create assigns the project ID.
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}
