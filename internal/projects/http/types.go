package http

import (
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/projects/repository"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	repo   *repository.Repo
	logger *zap.Logger
}

func New(repo *repository.Repo, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

type listQuery struct {
	Limit    int    `form:"limit"`
	Search   string `form:"q"`
	Category string `form:"category"`
}

// createReq mirrors domain.Fields but accepts tags either as a list or as comma-separated text.
type createReq struct {
	domain.Fields
	TagsInput *string `json:"tagsInput"`
}

func (r createReq) fields() domain.Fields {
	f := r.Fields
	if r.TagsInput != nil {
		f.Tags = domain.ParseTags(*r.TagsInput)
	}
	return f
}

type updateReq struct {
	domain.Patch
	TagsInput *string `json:"tagsInput"`
}

func (r updateReq) patch() domain.Patch {
	p := r.Patch
	if r.TagsInput != nil {
		tags := domain.ParseTags(*r.TagsInput)
		p.Tags = &tags
	}
	return p
}
