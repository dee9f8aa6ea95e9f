package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
	"github.com/haleem-akmal/portfolio/internal/auth/middleware"
)

// Login signs the admin in and binds the identity to the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": domain.InvalidCredentialsMessage})
		return
	}

	ctx := c.Request.Context()
	if old := middleware.SessionID(c); old != "" {
		if err := h.authService.Discard(ctx, old); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "sign-in unavailable"})
			return
		}
	}

	sid := middleware.NewSessionID()
	id, err := h.authService.SignIn(ctx, sid, body.Email, body.Password)
	if errors.Is(err, domain.ErrSignInUnavailable) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "sign-in unavailable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": domain.InvalidCredentialsMessage})
		return
	}

	middleware.SetSessionCookie(c, sid, h.sessionTTL, h.secureCookies)
	c.JSON(http.StatusOK, gin.H{"ok": true, "session": toResponse(id)})
}

func (h *Handler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	if sid != "" {
		if err := h.authService.SignOut(c.Request.Context(), sid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "could not sign out"})
			return
		}
	}

	middleware.ClearSessionCookie(c, h.secureCookies)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Session reports the identity bound to the request's session cookie.
func (h *Handler) Session(c *gin.Context) {
	id, err := h.authService.Current(c.Request.Context(), middleware.SessionID(c))
	if errors.Is(err, domain.ErrSessionNotFound) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "signed_in": false})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "session unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "signed_in": true, "session": toResponse(id)})
}

func toResponse(id *domain.Identity) sessionResponse {
	return sessionResponse{UID: id.UID, Email: id.Email, ExpiresAt: id.ExpiresAt}
}
