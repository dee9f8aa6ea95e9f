package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/internal/auth/middleware"
)

// Register mounts every page. loginLimit throttles credential posts.
func (h *Handler) Register(r gin.IRouter, loginLimit gin.HandlerFunc) {
	r.StaticFS("/static", http.FS(Static()))

	r.GET("/", h.home)
	r.GET("/projects", h.projects)

	r.GET(PathLogin, h.loginPage)
	r.POST(PathLogin, loginLimit, h.login)

	admin := r.Group("/admin")
	admin.Use(middleware.RequireSession(h.auth, middleware.Options{
		ResolveTimeout: h.opts.ResolveTimeout,
		LoginPath:      PathLogin,
		Logger:         h.logger,
	}))
	admin.POST("/logout", h.logout)
	admin.GET("/dashboard", h.dashboard)
	admin.POST("/projects", h.createProject)
	admin.GET("/projects/:id/edit", h.editProject)
	admin.POST("/projects/:id", h.updateProject)
	admin.GET("/projects/:id/delete", h.confirmDelete)
	admin.POST("/projects/:id/delete", h.deleteProject)
}

// TooManyAttempts renders the login page for a throttled client.
func (h *Handler) TooManyAttempts(c *gin.Context) {
	h.render(c, http.StatusTooManyRequests, "login", gin.H{
		"Title": "Admin Login",
		"Error": "Too many attempts. Please wait a minute and try again.",
	})
}
