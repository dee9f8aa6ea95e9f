package session

import (
	"context"
	"sync"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
)

// Authenticator signs a session in. Success is observed through the session Source,
// not through the return value.
type Authenticator interface {
	SignIn(ctx context.Context, sessionID, email, password string) (*domain.Identity, error)
}

// LoginView is the login page state. Once an identity is present, at mount or pushed later,
// it navigates exactly once and renders nothing from then on.
type LoginView struct {
	guard    *Guard
	navigate func()

	once      sync.Once
	navigated chan struct{}

	mu      sync.Mutex
	errMsg  string
	lastErr error
}

func NewLoginView(g *Guard, navigate func()) *LoginView {
	v := &LoginView{
		guard:     g,
		navigate:  navigate,
		navigated: make(chan struct{}),
	}

	current := g.observe(func(id *domain.Identity) {
		if id != nil {
			v.fire()
		}
	})
	if current != nil {
		v.fire()
	}
	return v
}

func (v *LoginView) fire() {
	v.once.Do(func() {
		if v.navigate != nil {
			v.navigate()
		}
		close(v.navigated)
	})
}

// Navigated is closed after the navigation side effect has run.
func (v *LoginView) Navigated() <-chan struct{} { return v.navigated }

// Visible reports whether the login form should still be rendered.
func (v *LoginView) Visible() bool {
	select {
	case <-v.navigated:
		return false
	default:
		return true
	}
}

// SignIn submits credentials. Failures only set the generic error message; the session
// state is left to the Source.
func (v *LoginView) SignIn(ctx context.Context, auth Authenticator, email, password string) bool {
	v.mu.Lock()
	v.errMsg = ""
	v.lastErr = nil
	v.mu.Unlock()

	if _, err := auth.SignIn(ctx, v.guard.SessionID(), email, password); err != nil {
		v.mu.Lock()
		v.errMsg = domain.InvalidCredentialsMessage
		v.lastErr = err
		v.mu.Unlock()
		return false
	}
	return true
}

// Err is the error behind the last failed SignIn, for callers that tell an outage apart
// from rejected credentials.
func (v *LoginView) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

func (v *LoginView) Error() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}
