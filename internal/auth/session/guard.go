// Package session observes the externally owned sign-in state of one browser session
// and turns it into page decisions.
package session

import (
	"context"
	"sync"

	"github.com/haleem-akmal/portfolio/internal/auth/domain"
)

// CookieName carries the opaque session id.
const CookieName = "portfolio_session"

// Subscription delivers identity-or-nil updates. The first value is the state at subscribe time.
// Updates is closed once the subscription ends.
type Subscription interface {
	Updates() <-chan *domain.Identity
	Close() error
}

// Source is where session changes are pushed from.
type Source interface {
	Subscribe(ctx context.Context, sessionID string) (Subscription, error)
}

type Decision int

const (
	// Pending means the first notification has not arrived; render nothing.
	Pending Decision = iota
	// Redirect means resolved and signed out; send the visitor to the login view.
	Redirect
	// Allow means resolved and signed in.
	Allow
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Redirect:
		return "redirect"
	case Allow:
		return "allow"
	}
	return "unknown"
}

// Guard mirrors the session state pushed by a Source. It never sets the state itself.
type Guard struct {
	sessionID string
	sub       Subscription

	mu        sync.Mutex
	identity  *domain.Identity
	resolved  bool
	closed    bool
	changes   int
	observers []func(*domain.Identity)

	ready     chan struct{}
	readyOnce sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

// New subscribes to src for sessionID. An empty sessionID has nothing to observe and
// resolves immediately as signed out.
func New(ctx context.Context, src Source, sessionID string) (*Guard, error) {
	g := &Guard{
		sessionID: sessionID,
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
	}

	if sessionID == "" {
		g.apply(nil)
		close(g.done)
		return g, nil
	}

	sub, err := src.Subscribe(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	g.sub = sub

	go g.run()
	return g, nil
}

func (g *Guard) run() {
	defer close(g.done)
	for id := range g.sub.Updates() {
		g.apply(id)
	}
}

func (g *Guard) apply(id *domain.Identity) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	if !sameIdentity(g.identity, id) {
		g.changes++
	}
	g.identity = id
	g.resolved = true
	observers := append([]func(*domain.Identity){}, g.observers...)
	g.mu.Unlock()

	g.readyOnce.Do(func() { close(g.ready) })
	for _, fn := range observers {
		fn(id)
	}
}

func sameIdentity(a, b *domain.Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UID == b.UID
}

func (g *Guard) SessionID() string { return g.sessionID }

// Identity returns the current identity and whether one is present.
func (g *Guard) Identity() (*domain.Identity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.identity, g.identity != nil
}

func (g *Guard) Resolved() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resolved
}

// Changes counts identity transitions observed so far.
func (g *Guard) Changes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.changes
}

// Ready is closed once the first notification has been applied.
func (g *Guard) Ready() <-chan struct{} { return g.ready }

func (g *Guard) Decide() Decision {
	g.mu.Lock()
	defer g.mu.Unlock()
	switch {
	case !g.resolved:
		return Pending
	case g.identity == nil:
		return Redirect
	}
	return Allow
}

// Wait blocks until the guard resolves or ctx ends, then decides.
func (g *Guard) Wait(ctx context.Context) Decision {
	select {
	case <-g.ready:
	case <-ctx.Done():
	}
	return g.Decide()
}

// observe registers fn for later notifications and returns the state at registration.
func (g *Guard) observe(fn func(*domain.Identity)) *domain.Identity {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.observers = append(g.observers, fn)
	return g.identity
}

// Close unsubscribes. Notifications that arrive afterwards are ignored.
func (g *Guard) Close() {
	g.closeOnce.Do(func() {
		g.mu.Lock()
		g.closed = true
		g.observers = nil
		g.mu.Unlock()

		if g.sub != nil {
			_ = g.sub.Close()
		}
		<-g.done
	})
}
