package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/auth"
	"github.com/haleem-akmal/portfolio/internal/auth/domain"
	"github.com/haleem-akmal/portfolio/internal/auth/session"
	"github.com/haleem-akmal/portfolio/internal/logging"
)

// SessionStore is where signed-in identities live and where their changes are pushed from.
type SessionStore interface {
	session.Source
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Save(ctx context.Context, sessionID string, id *domain.Identity) error
	Clear(ctx context.Context, sessionID string) error
}

type AuthService struct {
	provider auth.Provider
	sessions SessionStore
	logger   *zap.Logger
}

func NewAuthService(provider auth.Provider, sessions SessionStore, logger *zap.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		sessions: sessions,
		logger:   logger,
	}
}

// SignIn authenticates against the provider and binds the identity to sessionID.
// Every provider failure surfaces as domain.ErrInvalidCredentials; a session that cannot be
// stored surfaces as domain.ErrSignInUnavailable.
func (s *AuthService) SignIn(ctx context.Context, sessionID, email, password string) (*domain.Identity, error) {
	id, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		logging.FromContext(ctx, s.logger).Warn("sign-in failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	if err := s.sessions.Save(ctx, sessionID, id); err != nil {
		logging.Op(ctx, s.logger, "auth.save_session", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSignInUnavailable, err)
	}

	logging.FromContext(ctx, s.logger).Info("admin signed in", zap.String("uid", id.UID))
	return id, nil
}

// SignOut clears the session and revokes the identity's refresh tokens.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	id, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		logging.Op(ctx, s.logger, "auth.get_session", err)
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}

	if id != nil {
		if err := s.provider.Revoke(ctx, id.UID); err != nil {
			logging.Op(ctx, s.logger, "auth.revoke", err, zap.String("uid", id.UID))
		}
	}
	return nil
}

// Discard drops whatever is stored under sessionID without revoking tokens. Login calls it
// on the id the client arrived with before binding a fresh one.
func (s *AuthService) Discard(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessions.Clear(ctx, sessionID)
}

func (s *AuthService) Current(ctx context.Context, sessionID string) (*domain.Identity, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	id, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, domain.ErrSessionNotFound
	}
	return id, nil
}

func (s *AuthService) Subscribe(ctx context.Context, sessionID string) (session.Subscription, error) {
	return s.sessions.Subscribe(ctx, sessionID)
}

// VerifyToken checks a bearer ID token for API clients that do not carry a session cookie.
func (s *AuthService) VerifyToken(ctx context.Context, idToken string) (*domain.Identity, error) {
	return s.provider.Verify(ctx, idToken)
}
