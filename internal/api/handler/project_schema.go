package handler

// Request bodies never carry id, createdAt or updatedAt; those are owned by
// the server.

type createProjectRequest struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   string   `json:"description" validate:"required"`
	ThumbnailURL  string   `json:"thumbnailUrl" validate:"omitempty,url"`
	RepositoryURL string   `json:"repositoryUrl" validate:"omitempty,url"`
	SiteURL       string   `json:"siteUrl" validate:"omitempty,url"`
	Technologies  []string `json:"technologies" validate:"required,min=1,dive,required"`
	Type          string   `json:"type" validate:"required,oneof=web mobile desktop other"`
}

// updateProjectRequest is a partial update: absent fields stay unchanged.
type updateProjectRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description" validate:"omitempty,min=1"`
	ThumbnailURL  *string  `json:"thumbnailUrl" validate:"omitempty,url"`
	RepositoryURL *string  `json:"repositoryUrl" validate:"omitempty,url"`
	SiteURL       *string  `json:"siteUrl" validate:"omitempty,url"`
	Technologies  []string `json:"technologies" validate:"omitempty,min=1,dive,required"`
	Type          *string  `json:"type" validate:"omitempty,oneof=web mobile desktop other"`
}

type projectResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	RepositoryURL string   `json:"repositoryUrl,omitempty"`
	SiteURL       string   `json:"siteUrl,omitempty"`
	Technologies  []string `json:"technologies"`
	Type          string   `json:"type"`
	CreatedBy     string   `json:"createdBy,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}
