package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
	"github.com/haleem-akmal/portfolio/internal/auth/repository"
)

type stubProvider struct {
	signInErr error
	revoked   []string
}

func (p *stubProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	if p.signInErr != nil {
		return nil, p.signInErr
	}
	return &domain.Identity{UID: "uid-1", Email: email}, nil
}

func (p *stubProvider) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	return nil, domain.ErrInvalidToken
}

func (p *stubProvider) Revoke(ctx context.Context, uid string) error {
	p.revoked = append(p.revoked, uid)
	return nil
}

func setupService(t *testing.T, p *stubProvider) *AuthService {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewAuthService(p, repository.NewSessionRepository(client, time.Hour), zap.NewNop())
}

func TestAuthService_SignInSignOut(t *testing.T) {
	p := &stubProvider{}
	svc := setupService(t, p)
	ctx := context.Background()

	_, err := svc.Current(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	id, err := svc.SignIn(ctx, "sid", "admin@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", id.UID)

	current, err := svc.Current(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", current.Email)

	require.NoError(t, svc.SignOut(ctx, "sid"))
	assert.Equal(t, []string{"uid-1"}, p.revoked)

	_, err = svc.Current(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_SignInFailureLeavesSessionAbsent(t *testing.T) {
	svc := setupService(t, &stubProvider{signInErr: errors.New("network unreachable")})
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "sid", "admin@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Current(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestAuthService_SubscribeSeesSignIn(t *testing.T) {
	svc := setupService(t, &stubProvider{})
	ctx := context.Background()

	sub, err := svc.Subscribe(ctx, "sid")
	require.NoError(t, err)
	defer sub.Close()

	assert.Nil(t, <-sub.Updates())

	_, err = svc.SignIn(ctx, "sid", "admin@example.com", "secret")
	require.NoError(t, err)

	select {
	case id := <-sub.Updates():
		require.NotNil(t, id)
		assert.Equal(t, "uid-1", id.UID)
	case <-time.After(2 * time.Second):
		t.Fatal("sign-in was not pushed")
	}
}

func TestAuthService_SignInWithSessionStoreDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	svc := NewAuthService(&stubProvider{}, repository.NewSessionRepository(client, time.Hour), zap.NewNop())
	mr.Close()

	_, err = svc.SignIn(context.Background(), "sid", "admin@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrSignInUnavailable)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Discard(t *testing.T) {
	p := &stubProvider{}
	svc := setupService(t, p)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "sid", "admin@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Discard(ctx, "sid"))
	require.NoError(t, svc.Discard(ctx, ""))

	_, err = svc.Current(ctx, "sid")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Empty(t, p.revoked)
}
