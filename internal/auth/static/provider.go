// Package static authenticates a single administrator configured by email and bcrypt hash.
// It serves local development and deployments without Firebase Authentication.
package static

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
)

const adminUID = "admin"

type Provider struct {
	email string
	hash  []byte
	ttl   time.Duration
	now   func() time.Time

	mu     sync.Mutex
	tokens map[string]domain.Identity
}

func New(email, passwordHash string, ttl time.Duration) *Provider {
	return &Provider{
		email:  strings.ToLower(strings.TrimSpace(email)),
		hash:   []byte(passwordHash),
		ttl:    ttl,
		now:    time.Now,
		tokens: make(map[string]domain.Identity),
	}
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	if strings.ToLower(strings.TrimSpace(email)) != p.email {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.hash, []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}

	id := domain.Identity{
		UID:       adminUID,
		Email:     p.email,
		IDToken:   uuid.NewString(),
		ExpiresAt: p.now().Add(p.ttl),
	}

	p.mu.Lock()
	p.tokens[id.IDToken] = id
	p.mu.Unlock()

	return &id, nil
}

func (p *Provider) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	id, ok := p.tokens[idToken]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	if !p.now().Before(id.ExpiresAt) {
		delete(p.tokens, idToken)
		return nil, domain.ErrInvalidToken
	}
	return &id, nil
}

// Revoke drops every token issued to uid.
func (p *Provider) Revoke(ctx context.Context, uid string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for tok, id := range p.tokens {
		if id.UID == uid {
			delete(p.tokens, tok)
		}
	}
	return nil
}
