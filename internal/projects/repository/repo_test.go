package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/store"
	"github.com/haleem-akmal/portfolio/internal/store/memory"
)

func steppingClock() func() time.Time {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func validFields(title string, status domain.Status) domain.Fields {
	return domain.Fields{
		Title:       title,
		Description: "D",
		Category:    "Dashboard",
		Tags:        domain.ParseTags("a, b"),
		ImageURL:    "https://img/demo.png",
		LiveLink:    "https://demo.example",
		GithubLink:  "https://github.com/example/demo",
		Status:      status,
	}
}

// brokenStore fails every call.
type brokenStore struct{ store.Store }

var errOffline = errors.New("offline")

func (brokenStore) Get(context.Context, string, string) (store.Document, error) {
	return store.Document{}, errOffline
}
func (brokenStore) Find(context.Context, store.Query) ([]store.Document, error) {
	return nil, errOffline
}
func (brokenStore) Count(context.Context, store.Query) (int, error) {
	return 0, store.ErrCountUnavailable
}
func (brokenStore) Insert(context.Context, string, map[string]any) (string, time.Time, error) {
	return "", time.Time{}, errOffline
}
func (brokenStore) Update(context.Context, string, string, map[string]any) error { return errOffline }
func (brokenStore) Delete(context.Context, string, string) error                 { return errOffline }

func TestRepo_CreateThenListAll(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(memory.New(memory.WithClock(steppingClock())), zap.NewNop())

	id, err := repo.Create(ctx, validFields("Demo", domain.StatusDraft))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	p := all[0]
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Demo", p.Title)
	assert.Equal(t, []string{"a", "b"}, p.Tags)
	assert.Equal(t, domain.StatusDraft, p.Status)
	assert.False(t, p.CreatedAt.IsZero())

	published, err := repo.ListPublished(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, published)
}

func TestRepo_CreateRejectsMissingFields(t *testing.T) {
	s := memory.New()
	repo := NewRepo(s, zap.NewNop())

	f := validFields("", domain.StatusPublished)
	f.GithubLink = "   "

	_, err := repo.Create(context.Background(), f)
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{domain.FieldTitle, domain.FieldGithubLink}, verr.Missing)

	docs, err := s.Find(context.Background(), store.Query{Collection: domain.Collection})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRepo_ListPublishedNewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(memory.New(memory.WithClock(steppingClock())), zap.NewNop())

	for _, f := range []domain.Fields{
		validFields("one", domain.StatusPublished),
		validFields("two", domain.StatusDraft),
		validFields("three", domain.StatusPublished),
		validFields("four", domain.StatusPublished),
	} {
		_, err := repo.Create(ctx, f)
		require.NoError(t, err)
	}

	got, err := repo.ListPublished(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "four", got[0].Title)
	assert.Equal(t, "three", got[1].Title)

	recent, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, "two", recent[2].Title)
}

func TestRepo_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(memory.New(memory.WithClock(steppingClock())), zap.NewNop())

	id, err := repo.Create(ctx, validFields("Demo", domain.StatusDraft))
	require.NoError(t, err)

	published := domain.StatusPublished
	require.NoError(t, repo.Update(ctx, id, domain.Patch{Status: &published}))

	p, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPublished, p.Status)
	assert.Equal(t, "Demo", p.Title)
	assert.False(t, p.UpdatedAt.IsZero())

	err = repo.Update(ctx, "missing", domain.Patch{Status: &published})
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, id))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = repo.Get(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Count(t *testing.T) {
	ctx := context.Background()

	for name, opts := range map[string][]memory.Option{
		"aggregation": nil,
		"fallback":    {memory.WithoutCount()},
	} {
		t.Run(name, func(t *testing.T) {
			repo := NewRepo(memory.New(opts...), zap.NewNop())
			for _, st := range []domain.Status{domain.StatusPublished, domain.StatusDraft, domain.StatusPublished} {
				_, err := repo.Create(ctx, validFields("p", st))
				require.NoError(t, err)
			}

			total, err := repo.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 3, total)

			drafts, err := repo.CountByStatus(ctx, domain.StatusDraft)
			require.NoError(t, err)
			assert.Equal(t, 1, drafts)
		})
	}
}

func TestRepo_GatewayFailures(t *testing.T) {
	ctx := context.Background()
	repo := NewRepo(brokenStore{}, zap.NewNop())

	_, err := repo.ListPublished(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.ErrorIs(t, err, errOffline)

	n, err := repo.Count(ctx)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Zero(t, n)

	_, err = repo.Create(ctx, validFields("Demo", domain.StatusPublished))
	assert.ErrorIs(t, err, domain.ErrCreateFailed)

	title := "x"
	err = repo.Update(ctx, "p1", domain.Patch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrUpdateFailed)

	err = repo.Delete(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
}
