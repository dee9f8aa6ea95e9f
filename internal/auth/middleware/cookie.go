package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/haleem-akmal/portfolio/internal/auth/session"
)

// SessionID returns the session id from the request cookie, or "".
func SessionID(c *gin.Context) string {
	sid, err := c.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return sid
}

// NewSessionID mints the id a credential sign-in is bound to. A sign-in never adopts the
// id the client sent.
func NewSessionID() string {
	return uuid.NewString()
}

func SetSessionCookie(c *gin.Context, sid string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sid, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", secure, true)
}
