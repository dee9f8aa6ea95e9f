package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authdomain "github.com/haleem-akmal/portfolio/internal/auth/domain"
	"github.com/haleem-akmal/portfolio/internal/auth/middleware"
	"github.com/haleem-akmal/portfolio/internal/auth/session"
	"github.com/haleem-akmal/portfolio/internal/logging"
)

const messageSignInUnavailable = "Sign-in is unavailable right now. Please try again shortly."

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// loginPage shows the form unless the visitor is already signed in, in which case it
// navigates straight to the dashboard.
func (h *Handler) loginPage(c *gin.Context) {
	ctx := c.Request.Context()

	if sid := middleware.SessionID(c); sid != "" {
		decision, err := h.existingSession(ctx, sid)
		switch {
		case err != nil:
			logging.Op(ctx, h.logger, "web.login_page", err)
		case decision == session.Pending:
			c.Status(http.StatusServiceUnavailable)
			return
		case decision == session.Allow:
			h.seeOther(c, PathDashboard)
			return
		}
	}

	h.render(c, http.StatusOK, "login", gin.H{"Title": "Admin Login"})
}

// existingSession resolves the session the visitor arrived with, waiting at most
// ResolveTimeout. Allow means the login view has already navigated away.
func (h *Handler) existingSession(ctx context.Context, sid string) (session.Decision, error) {
	g, err := session.New(ctx, h.auth, sid)
	if err != nil {
		return session.Pending, err
	}
	defer g.Close()

	waitCtx, cancel := context.WithTimeout(ctx, h.opts.ResolveTimeout)
	defer cancel()
	if g.Wait(waitCtx) == session.Pending {
		return session.Pending, nil
	}
	if view := session.NewLoginView(g, nil); !view.Visible() {
		return session.Allow, nil
	}
	return session.Redirect, nil
}

func (h *Handler) login(c *gin.Context) {
	ctx := c.Request.Context()

	var f loginForm
	_ = c.ShouldBind(&f)

	if old := middleware.SessionID(c); old != "" {
		if decision, err := h.existingSession(ctx, old); err == nil && decision == session.Allow {
			h.seeOther(c, PathDashboard)
			return
		}
		if err := h.auth.Discard(ctx, old); err != nil {
			logging.Op(ctx, h.logger, "web.login_discard", err)
		}
	}

	sid := middleware.NewSessionID()
	g, err := session.New(ctx, h.auth, sid)
	if err != nil {
		logging.Op(ctx, h.logger, "web.login", err)
		h.render(c, http.StatusServiceUnavailable, "login", gin.H{
			"Title": "Admin Login", "Error": messageSignInUnavailable, "Email": f.Email,
		})
		return
	}
	defer g.Close()

	view := session.NewLoginView(g, nil)
	if view.Visible() && !view.SignIn(ctx, h.auth, f.Email, f.Password) {
		if errors.Is(view.Err(), authdomain.ErrSignInUnavailable) {
			h.render(c, http.StatusServiceUnavailable, "login", gin.H{
				"Title": "Admin Login", "Error": messageSignInUnavailable, "Email": f.Email,
			})
			return
		}
		h.render(c, http.StatusUnauthorized, "login", gin.H{
			"Title": "Admin Login", "Error": view.Error(), "Email": f.Email,
		})
		return
	}

	select {
	case <-view.Navigated():
	case <-time.After(h.opts.ResolveTimeout):
		logging.FromContext(ctx, h.logger).Warn("session change not observed after sign-in", zap.Duration("waited", h.opts.ResolveTimeout))
	}

	middleware.SetSessionCookie(c, sid, h.opts.SessionTTL, h.opts.SecureCookies)
	h.seeOther(c, PathDashboard)
}

func (h *Handler) logout(c *gin.Context) {
	if sid := middleware.SessionID(c); sid != "" {
		if err := h.auth.SignOut(c.Request.Context(), sid); err != nil {
			logging.Op(c.Request.Context(), h.logger, "web.logout", err)
		}
	}
	middleware.ClearSessionCookie(c, h.opts.SecureCookies)
	h.seeOther(c, PathLogin)
}
