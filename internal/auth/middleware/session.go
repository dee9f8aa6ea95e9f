package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
	"github.com/haleem-akmal/portfolio/internal/auth/session"
	"github.com/haleem-akmal/portfolio/internal/logging"
)

const (
	CtxIdentity = "identity"
	CtxUID      = "uid"
)

// TokenVerifier checks bearer ID tokens sent by API clients.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*domain.Identity, error)
}

type Options struct {
	// ResolveTimeout bounds the wait for the first session notification.
	ResolveTimeout time.Duration
	// LoginPath, when set, redirects signed-out page requests there; otherwise 401 JSON is returned.
	LoginPath string
	// Verifier, when set, accepts "Authorization: Bearer <id token>" instead of a session cookie.
	Verifier TokenVerifier
	Logger   *zap.Logger
}

// RequireSession gates a route group on the pushed session state.
func RequireSession(src session.Source, opts Options) gin.HandlerFunc {
	if opts.ResolveTimeout <= 0 {
		opts.ResolveTimeout = 2 * time.Second
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if token := extractToken(c); token != "" && opts.Verifier != nil {
			id, err := opts.Verifier.VerifyToken(ctx, token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
				return
			}
			setIdentity(c, id)
			c.Next()
			return
		}

		guard, err := session.New(ctx, src, SessionID(c))
		if err != nil {
			logging.Op(ctx, opts.Logger, "session.subscribe", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "session unavailable"})
			return
		}
		defer guard.Close()

		waitCtx, cancel := context.WithTimeout(ctx, opts.ResolveTimeout)
		decision := guard.Wait(waitCtx)
		cancel()

		switch decision {
		case session.Pending:
			// Nothing is rendered until the session state is known.
			c.AbortWithStatus(http.StatusServiceUnavailable)
		case session.Redirect:
			if opts.LoginPath != "" {
				c.Redirect(http.StatusFound, opts.LoginPath)
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "not signed in"})
		case session.Allow:
			id, _ := guard.Identity()
			setIdentity(c, id)
			c.Next()
		}
	}
}

func setIdentity(c *gin.Context, id *domain.Identity) {
	c.Set(CtxIdentity, id)
	c.Set(CtxUID, id.UID)
}

// IdentityFrom returns the identity stored by RequireSession.
func IdentityFrom(c *gin.Context) *domain.Identity {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*domain.Identity)
	return id
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
