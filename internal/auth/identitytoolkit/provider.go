// Package identitytoolkit signs the admin in with Firebase Authentication's email/password
// REST endpoint and verifies the resulting ID tokens with the Admin SDK.
package identitytoolkit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	fastshot "github.com/opus-domini/fast-shot"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
)

const signInPath = "/v1/accounts:signInWithPassword"

// Error codes the endpoint returns for a wrong email/password pair.
var credentialErrors = map[string]bool{
	"EMAIL_NOT_FOUND":           true,
	"INVALID_PASSWORD":          true,
	"INVALID_LOGIN_CREDENTIALS": true,
	"INVALID_EMAIL":             true,
	"MISSING_PASSWORD":          true,
	"USER_DISABLED":             true,
}

// TokenAdmin is the part of the Admin SDK auth client the provider needs.
type TokenAdmin interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

type Provider struct {
	client fastshot.ClientHttpMethods
	admin  TokenAdmin
	now    func() time.Time
}

func New(baseURL, apiKey string, admin TokenAdmin) *Provider {
	client := fastshot.NewClient(strings.TrimRight(baseURL, "/")).
		Config().SetTimeout(10*time.Second).
		Config().SetFollowRedirects(true).
		Header().Add("Content-Type", "application/json").
		Header().Add("X-Goog-Api-Key", apiKey).
		Build()

	return &Provider{client: client, admin: admin, now: time.Now}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID   string `json:"localId"`
	Email     string `json:"email"`
	IDToken   string `json:"idToken"`
	ExpiresIn string `json:"expiresIn"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	resp, err := p.client.
		POST(signInPath).
		Context().Set(ctx).
		Header().Add("Accept", "application/json").
		Body().AsJSON(signInRequest{Email: email, Password: password, ReturnSecureToken: true}).
		Send()
	if err != nil {
		return nil, fmt.Errorf("failed to send sign-in request: %w", err)
	}
	defer resp.Body().Close()

	if resp.Status().IsError() {
		var e errorResponse
		if err := resp.Body().AsJSON(&e); err != nil {
			return nil, fmt.Errorf("failed to read sign-in error: %w", err)
		}
		// Messages may carry a detail suffix, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
		code := strings.TrimSpace(strings.SplitN(e.Error.Message, ":", 2)[0])
		if credentialErrors[code] {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, code)
		}
		return nil, fmt.Errorf("sign-in rejected: %s", e.Error.Message)
	}

	var res signInResponse
	if err := resp.Body().AsJSON(&res); err != nil {
		return nil, fmt.Errorf("failed to parse sign-in response: %w", err)
	}
	if res.LocalID == "" || res.IDToken == "" {
		return nil, errors.New("sign-in response without identity")
	}

	ttl := time.Hour
	if secs, err := strconv.Atoi(res.ExpiresIn); err == nil && secs > 0 {
		ttl = time.Duration(secs) * time.Second
	}

	return &domain.Identity{
		UID:       res.LocalID,
		Email:     res.Email,
		IDToken:   res.IDToken,
		ExpiresAt: p.now().Add(ttl),
	}, nil
}

func (p *Provider) Verify(ctx context.Context, idToken string) (*domain.Identity, error) {
	token, err := p.admin.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)
	return &domain.Identity{
		UID:       token.UID,
		Email:     email,
		IDToken:   idToken,
		ExpiresAt: time.Unix(token.Expires, 0),
	}, nil
}

func (p *Provider) Revoke(ctx context.Context, uid string) error {
	if err := p.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
