package web

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/auth/service"
	"github.com/haleem-akmal/portfolio/internal/overview"
	"github.com/haleem-akmal/portfolio/internal/projects/repository"
)

const (
	PathLogin     = "/admin-login"
	PathDashboard = "/admin/dashboard"

	// FeaturedLimit is the number of projects on the home page.
	FeaturedLimit = 3
)

type Options struct {
	SessionTTL     time.Duration
	ResolveTimeout time.Duration
	SecureCookies  bool
}

type Handler struct {
	repo     *repository.Repo
	auth     *service.AuthService
	overview *overview.Service
	logger   *zap.Logger
	opts     Options
}

func New(repo *repository.Repo, auth *service.AuthService, ov *overview.Service, logger *zap.Logger, opts Options) *Handler {
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = 2 * time.Second
	}
	return &Handler{repo: repo, auth: auth, overview: ov, logger: logger, opts: opts}
}

func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if _, ok := data["SignedIn"]; !ok {
		data["SignedIn"] = false
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = ""
	}
	c.HTML(status, name, data)
}

func (h *Handler) renderError(c *gin.Context, status int, heading, msg string) {
	h.render(c, status, "error", gin.H{"Title": heading, "Heading": heading, "Error": msg})
}

func (h *Handler) seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
