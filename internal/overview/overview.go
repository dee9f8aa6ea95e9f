// Package overview assembles the admin dashboard summary.
package overview

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/haleem-akmal/portfolio/internal/logging"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/store"
)

const (
	SkillsCollection   = "skills"
	MessagesCollection = "messages"

	// RecentLimit caps the recent projects and recent messages lists.
	RecentLimit = 5
)

// Projects is the slice of the project repository the overview reads.
type Projects interface {
	Count(ctx context.Context, filters ...store.Filter) (int, error)
	CountByStatus(ctx context.Context, status domain.Status) (int, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Project, error)
}

type ProjectStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Draft     int `json:"draft"`
}

type MessageStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// Snapshot is published only once every section has finished. Sections that failed hold
// zero counts or empty lists and are named in Degraded.
type Snapshot struct {
	Projects       ProjectStats     `json:"projects"`
	RecentProjects []domain.Project `json:"recentProjects"`
	Skills         int              `json:"skills"`
	Messages       MessageStats     `json:"messages"`
	RecentMessages []Message        `json:"recentMessages"`
	Degraded       []string         `json:"degraded,omitempty"`
}

type Service struct {
	projects Projects
	store    store.Store
	logger   *zap.Logger
}

func NewService(projects Projects, s store.Store, logger *zap.Logger) *Service {
	return &Service{projects: projects, store: s, logger: logger}
}

// Snapshot issues every read concurrently and waits for all of them.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	snap := Snapshot{RecentProjects: []domain.Project{}, RecentMessages: []Message{}}

	var mu sync.Mutex
	degrade := func(section string, err error) {
		logging.Op(ctx, s.logger, "overview."+section, err)
		mu.Lock()
		snap.Degraded = append(snap.Degraded, section)
		mu.Unlock()
	}

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		n, err := s.projects.Count(egCtx)
		if err != nil {
			degrade("projects_total", err)
		}
		snap.Projects.Total = n
		return nil
	})
	eg.Go(func() error {
		n, err := s.projects.CountByStatus(egCtx, domain.StatusPublished)
		if err != nil {
			degrade("projects_published", err)
		}
		snap.Projects.Published = n
		return nil
	})
	eg.Go(func() error {
		n, err := s.projects.CountByStatus(egCtx, domain.StatusDraft)
		if err != nil {
			degrade("projects_draft", err)
		}
		snap.Projects.Draft = n
		return nil
	})
	eg.Go(func() error {
		recent, err := s.projects.ListRecent(egCtx, RecentLimit)
		if err != nil {
			degrade("recent_projects", err)
			return nil
		}
		snap.RecentProjects = recent
		return nil
	})
	eg.Go(func() error {
		n, err := store.CountOrFetch(egCtx, s.store, store.Query{Collection: SkillsCollection})
		if err != nil {
			degrade("skills", err)
		}
		snap.Skills = n
		return nil
	})
	eg.Go(func() error {
		n, err := store.CountOrFetch(egCtx, s.store, store.Query{Collection: MessagesCollection})
		if err != nil {
			degrade("messages_total", err)
		}
		snap.Messages.Total = n
		return nil
	})
	eg.Go(func() error {
		n, err := store.CountOrFetch(egCtx, s.store, store.Query{
			Collection: MessagesCollection,
			Filters:    []store.Filter{store.Where(FieldRead, store.OpEqual, false)},
		})
		if err != nil {
			degrade("messages_unread", err)
		}
		snap.Messages.Unread = n
		return nil
	})
	eg.Go(func() error {
		recent, err := s.RecentMessages(egCtx, RecentLimit)
		if err != nil {
			degrade("recent_messages", err)
			return nil
		}
		snap.RecentMessages = recent
		return nil
	})

	_ = eg.Wait()
	return snap
}

// RecentMessages returns the newest contact messages first.
func (s *Service) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	docs, err := s.store.Find(ctx, store.Query{
		Collection: MessagesCollection,
		Orders:     []store.Order{{Field: FieldCreatedAt, Direction: store.Desc}},
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}

	out := make([]Message, 0, len(docs))
	for _, d := range docs {
		out = append(out, MessageFromDocument(d.ID, d.Fields))
	}
	return out, nil
}
