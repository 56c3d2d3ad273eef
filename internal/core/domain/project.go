package domain

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectType classifies what kind of software a portfolio project is.
type ProjectType string

const (
	ProjectTypeWeb     ProjectType = "web"
	ProjectTypeMobile  ProjectType = "mobile"
	ProjectTypeDesktop ProjectType = "desktop"
	ProjectTypeOther   ProjectType = "other"
)

// Valid reports whether t is one of the known project types.
func (t ProjectType) Valid() bool {
	switch t {
	case ProjectTypeWeb, ProjectTypeMobile, ProjectTypeDesktop, ProjectTypeOther:
		return true
	}
	return false
}

// Project is a portfolio entry.
type Project struct {
	ID            int64       `json:"id" bson:"_id"`
	Name          string      `json:"name" bson:"name"`
	Description   string      `json:"description" bson:"description"`
	ThumbnailURL  string      `json:"thumbnailUrl,omitempty" bson:"thumbnail_url,omitempty"`
	RepositoryURL string      `json:"repositoryUrl,omitempty" bson:"repository_url,omitempty"`
	SiteURL       string      `json:"siteUrl,omitempty" bson:"site_url,omitempty"`
	Technologies  []string    `json:"technologies" bson:"technologies"`
	Type          ProjectType `json:"type" bson:"type"`
	CreatedBy     string      `json:"createdBy,omitempty" bson:"created_by,omitempty"`
	CreatedAt     time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updated_at"`
}

// ProjectPatch carries the fields of a partial update. Nil fields are left
// untouched.
type ProjectPatch struct {
	Name          *string
	Description   *string
	ThumbnailURL  *string
	RepositoryURL *string
	SiteURL       *string
	Technologies  []string
	Type          *ProjectType
}

// Empty reports whether the patch changes nothing.
func (p ProjectPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.ThumbnailURL == nil &&
		p.RepositoryURL == nil && p.SiteURL == nil && p.Technologies == nil && p.Type == nil
}

// Apply copies the set fields of p onto project.
func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.ThumbnailURL != nil {
		project.ThumbnailURL = *p.ThumbnailURL
	}
	if p.RepositoryURL != nil {
		project.RepositoryURL = *p.RepositoryURL
	}
	if p.SiteURL != nil {
		project.SiteURL = *p.SiteURL
	}
	if p.Technologies != nil {
		project.Technologies = append([]string(nil), p.Technologies...)
	}
	if p.Type != nil {
		project.Type = *p.Type
	}
}
