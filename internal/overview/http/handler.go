package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/internal/overview"
)

type Handler struct {
	svc *overview.Service
}

func New(svc *overview.Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches the overview route. The group must already require a session.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
}

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "overview": h.svc.Snapshot(c.Request.Context())})
}
