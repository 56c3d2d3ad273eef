package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/devfolio/portfolio-api/internal/core/domain"
)

// ProjectRepository keeps projects in a map with sequential IDs starting at 1.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[int64]*domain.Project
	nextID   int64
}

func NewProjectRepository() *ProjectRepository {
	return &ProjectRepository{projects: make(map[int64]*domain.Project)}
}

func copyProject(p *domain.Project) *domain.Project {
	c := *p
	c.Technologies = append([]string(nil), p.Technologies...)
	return &c
}

// List returns projects ordered by ID.
func (r *ProjectRepository) List(_ context.Context) ([]*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, copyProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return copyProject(p), nil
}

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	r.projects[p.ID] = copyProject(p)
	return nil
}

func (r *ProjectRepository) Update(_ context.Context, p *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = copyProject(p)
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}
