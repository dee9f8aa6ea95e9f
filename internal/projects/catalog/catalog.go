// Package catalog holds a fetched project list and derives the filtered view shown to visitors
// and admins.
package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/logging"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

const (
	MessageNothingPublished = "No projects published yet."
	MessageNoProjects       = "No projects yet."
	MessageNoMatches        = "No projects match your search."
)

// Loader fetches the base list.
type Loader func(ctx context.Context) ([]domain.Project, error)

// View is a consistent snapshot of a Catalog.
type View struct {
	State    State            `json:"state"`
	Filter   Filter           `json:"filter"`
	Projects []domain.Project `json:"projects"`
	Total    int              `json:"total"`
	Message  string           `json:"message,omitempty"`
}

// Empty reports whether nothing is visible.
func (v View) Empty() bool { return len(v.Projects) == 0 }

// Catalog is safe for concurrent use. Overlapping refreshes are not ordered: the last result
// to arrive replaces the base list.
type Catalog struct {
	mu           sync.Mutex
	state        State
	base         []domain.Project
	filter       Filter
	emptyMessage string
	closed       bool
	logger       *zap.Logger
}

// New returns a catalog in the loading state. emptyMessage is shown when nothing exists at all.
func New(emptyMessage string, logger *zap.Logger) *Catalog {
	return &Catalog{state: StateLoading, emptyMessage: emptyMessage, logger: logger}
}

// NewPublic is the visitor-facing catalog.
func NewPublic(logger *zap.Logger) *Catalog { return New(MessageNothingPublished, logger) }

// NewAdmin is the dashboard catalog, which lists drafts too.
func NewAdmin(logger *zap.Logger) *Catalog { return New(MessageNoProjects, logger) }

// Refresh re-enters loading and replaces the base list with the loader's result. A failure
// leaves an empty list in the error state. Results landing after Close are dropped.
func (c *Catalog) Refresh(ctx context.Context, load Loader) State {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return StateLoading
	}
	c.state = StateLoading
	c.mu.Unlock()

	projects, err := load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return c.state
	}
	if err != nil {
		logging.Op(ctx, c.logger, "catalog.refresh", err)
		c.base = nil
		c.state = StateError
		return c.state
	}
	c.base = projects
	c.state = StateReady
	return c.state
}

func (c *Catalog) SetFilter(f Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
}

func (c *Catalog) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View derives the visible projects from the current base list and filter.
func (c *Catalog) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	visible := Apply(c.base, c.filter)
	v := View{
		State:    c.state,
		Filter:   Filter{Search: c.filter.Search, Category: c.filter.category()},
		Projects: visible,
		Total:    len(c.base),
	}
	if c.state != StateLoading && len(visible) == 0 {
		v.Message = c.emptyMessage
		if len(c.base) > 0 {
			v.Message = MessageNoMatches
		}
	}
	return v
}

// Close tears the catalog down. Later refreshes are ignored.
func (c *Catalog) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
