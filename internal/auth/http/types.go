package http

import (
	"time"

	"github.com/haleem-akmal/portfolio/internal/auth/service"
)

type Handler struct {
	authService   *service.AuthService
	sessionTTL    time.Duration
	secureCookies bool
}

func New(authService *service.AuthService, sessionTTL time.Duration, secureCookies bool) *Handler {
	return &Handler{
		authService:   authService,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	UID       string    `json:"uid"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
