package http

import "github.com/gin-gonic/gin"

// Register mounts the auth routes. Extra handlers (rate limiting) run before login only.
func (h *Handler) Register(rg *gin.RouterGroup, loginMiddleware ...gin.HandlerFunc) {
	rg.POST("/login", append(loginMiddleware, h.Login)...)
	rg.POST("/logout", h.Logout)
	rg.GET("/session", h.Session)
}
