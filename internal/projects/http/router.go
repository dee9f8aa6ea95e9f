package http

import "github.com/gin-gonic/gin"

// RegisterPublic attaches the visitor routes to the given router group.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("", h.listPublished)
}

// RegisterAdmin attaches the admin routes. The group must already require a session.
func (h *Handler) RegisterAdmin(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.listAll)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
