package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/logging"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/store"
)

var newestFirst = []store.Order{{Field: domain.FieldCreatedAt, Direction: store.Desc}}

// Repo reads and writes projects through the document store. Every gateway error is
// logged and returned as a *domain.Failure.
type Repo struct {
	store  store.Store
	logger *zap.Logger
}

func NewRepo(s store.Store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// ListPublished returns published projects newest first. limit <= 0 means no cap.
func (r *Repo) ListPublished(ctx context.Context, limit int) ([]domain.Project, error) {
	return r.list(ctx, "projects.list_published", store.Query{
		Collection: domain.Collection,
		Filters:    []store.Filter{store.Where(domain.FieldStatus, store.OpEqual, string(domain.StatusPublished))},
		Orders:     newestFirst,
		Limit:      limit,
	})
}

// Loader binds ListPublished to limit for list refreshes.
func (r *Repo) Loader(limit int) func(ctx context.Context) ([]domain.Project, error) {
	return func(ctx context.Context) ([]domain.Project, error) {
		return r.ListPublished(ctx, limit)
	}
}

// ListAll returns every project regardless of status, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.ListRecent(ctx, 0)
}

// ListRecent returns the newest projects of any status. limit <= 0 means no cap.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.Project, error) {
	return r.list(ctx, "projects.list_all", store.Query{
		Collection: domain.Collection,
		Orders:     newestFirst,
		Limit:      limit,
	})
}

func (r *Repo) list(ctx context.Context, op string, q store.Query) ([]domain.Project, error) {
	docs, err := r.store.Find(ctx, q)
	if err != nil {
		logging.Op(ctx, r.logger, op, err)
		return nil, domain.NewFailure(domain.ErrFetchFailed, err)
	}

	projects := make([]domain.Project, 0, len(docs))
	for _, d := range docs {
		projects = append(projects, domain.FromDocument(d.ID, d.Fields))
	}
	return projects, nil
}

// Count counts projects matching filters. When the store cannot aggregate it fetches the
// matching documents and measures them; if that fails too it returns 0 and a fetch failure.
func (r *Repo) Count(ctx context.Context, filters ...store.Filter) (int, error) {
	n, err := store.CountOrFetch(ctx, r.store, store.Query{
		Collection: domain.Collection,
		Filters:    filters,
	})
	if err != nil {
		logging.Op(ctx, r.logger, "projects.count", err)
		return 0, domain.NewFailure(domain.ErrFetchFailed, err)
	}
	return n, nil
}

// CountByStatus counts projects with the given status.
func (r *Repo) CountByStatus(ctx context.Context, status domain.Status) (int, error) {
	return r.Count(ctx, store.Where(domain.FieldStatus, store.OpEqual, string(status)))
}

func (r *Repo) Get(ctx context.Context, id string) (*domain.Project, error) {
	doc, err := r.store.Get(ctx, domain.Collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, domain.NewFailure(domain.ErrFetchFailed, domain.ErrNotFound)
	}
	if err != nil {
		logging.Op(ctx, r.logger, "projects.get", err, zap.String("id", id))
		return nil, domain.NewFailure(domain.ErrFetchFailed, err)
	}

	p := domain.FromDocument(doc.ID, doc.Fields)
	return &p, nil
}

// Create validates f and inserts it; createdAt is assigned by the store. It returns the new id.
func (r *Repo) Create(ctx context.Context, f domain.Fields) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	id, _, err := r.store.Insert(ctx, domain.Collection, f.Document())
	if err != nil {
		logging.Op(ctx, r.logger, "projects.create", err)
		return "", domain.NewFailure(domain.ErrCreateFailed, err)
	}

	logging.FromContext(ctx, r.logger).Info("project created", zap.String("id", id))
	return id, nil
}

// Update merges the present members of p into project id and stamps updatedAt.
func (r *Repo) Update(ctx context.Context, id string, p domain.Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	err := r.store.Update(ctx, domain.Collection, id, p.Document())
	if errors.Is(err, store.ErrNotFound) {
		return domain.NewFailure(domain.ErrUpdateFailed, domain.ErrNotFound)
	}
	if err != nil {
		logging.Op(ctx, r.logger, "projects.update", err, zap.String("id", id))
		return domain.NewFailure(domain.ErrUpdateFailed, err)
	}
	return nil
}

// Delete removes project id permanently. Callers confirm with the user first.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, domain.Collection, id); err != nil {
		logging.Op(ctx, r.logger, "projects.delete", err, zap.String("id", id))
		return domain.NewFailure(domain.ErrDeleteFailed, err)
	}

	logging.FromContext(ctx, r.logger).Info("project deleted", zap.String("id", id))
	return nil
}
