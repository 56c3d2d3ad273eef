package handler

import (
	"time"

	"github.com/devfolio/portfolio-api/internal/core/domain"
	"github.com/devfolio/portfolio-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateProjectInput(req createProjectRequest, subject string) ports.CreateProjectInput {
	return ports.CreateProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ThumbnailURL:  req.ThumbnailURL,
		RepositoryURL: req.RepositoryURL,
		SiteURL:       req.SiteURL,
		Technologies:  req.Technologies,
		Type:          domain.ProjectType(req.Type),
		CreatedBy:     subject,
	}
}

func toProjectPatch(req updateProjectRequest) domain.ProjectPatch {
	patch := domain.ProjectPatch{
		Name:          req.Name,
		Description:   req.Description,
		ThumbnailURL:  req.ThumbnailURL,
		RepositoryURL: req.RepositoryURL,
		SiteURL:       req.SiteURL,
		Technologies:  req.Technologies,
	}
	if req.Type != nil {
		t := domain.ProjectType(*req.Type)
		patch.Type = &t
	}
	return patch
}

// --- Service result → HTTP response ---

func toProjectResponse(p *domain.Project) projectResponse {
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	return projectResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		ThumbnailURL:  p.ThumbnailURL,
		RepositoryURL: p.RepositoryURL,
		SiteURL:       p.SiteURL,
		Technologies:  techs,
		Type:          string(p.Type),
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toProjectResponses(projects []*domain.Project) []projectResponse {
	out := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out
}
