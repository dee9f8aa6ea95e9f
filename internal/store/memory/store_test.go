package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleem-akmal/portfolio/internal/store"
)

func steppingClock(start time.Time) func() time.Time {
	now := start
	return func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
}

func TestStore_InsertFindOrdered(t *testing.T) {
	ctx := context.Background()
	s := New(WithClock(steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))))

	var ids []string
	for _, status := range []string{"Published", "Draft", "Published"} {
		id, _, err := s.Insert(ctx, "projects", map[string]any{
			"status":    status,
			"createdAt": store.ServerTimestamp,
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	docs, err := s.Find(ctx, store.Query{
		Collection: "projects",
		Filters:    []store.Filter{store.Where("status", store.OpEqual, "Published")},
		Orders:     []store.Order{{Field: "createdAt", Direction: store.Desc}},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, ids[2], docs[0].ID)
	assert.Equal(t, ids[0], docs[1].ID)
	assert.IsType(t, time.Time{}, docs[0].Fields["createdAt"])

	limited, err := s.Find(ctx, store.Query{
		Collection: "projects",
		Orders:     []store.Order{{Field: "createdAt", Direction: store.Desc}},
		Limit:      1,
	})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, ids[2], limited[0].ID)
}

func TestStore_FindSkipsDocumentsWithoutOrderField(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed("projects", "legacy", map[string]any{"title": "no timestamp"})
	_, _, err := s.Insert(ctx, "projects", map[string]any{"createdAt": store.ServerTimestamp})
	require.NoError(t, err)

	docs, err := s.Find(ctx, store.Query{
		Collection: "projects",
		Orders:     []store.Order{{Field: "createdAt"}},
	})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	all, err := s.Find(ctx, store.Query{Collection: "projects"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_Count(t *testing.T) {
	ctx := context.Background()
	q := store.Query{
		Collection: "messages",
		Filters:    []store.Filter{store.Where("read", store.OpEqual, false)},
	}

	t.Run("aggregation available", func(t *testing.T) {
		s := New()
		s.Seed("messages", "m1", map[string]any{"read": false})
		s.Seed("messages", "m2", map[string]any{"read": true})

		n, err := s.Count(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("aggregation unavailable", func(t *testing.T) {
		s := New(WithoutCount())
		_, err := s.Count(ctx, q)
		assert.True(t, errors.Is(err, store.ErrCountUnavailable))
	})
}

func TestStore_UpdateMergesAndStamps(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, _, err := s.Insert(ctx, "projects", map[string]any{"title": "A", "status": "Draft"})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "projects", id, map[string]any{
		"status":    "Published",
		"updatedAt": store.ServerTimestamp,
	}))

	docs, err := s.Find(ctx, store.Query{Collection: "projects"})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "A", docs[0].Fields["title"])
	assert.Equal(t, "Published", docs[0].Fields["status"])
	assert.IsType(t, time.Time{}, docs[0].Fields["updatedAt"])

	err = s.Update(ctx, "projects", "missing", map[string]any{"title": "B"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, _, err := s.Insert(ctx, "projects", map[string]any{"title": "A"})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "projects", id))
	require.NoError(t, s.Delete(ctx, "projects", id))

	docs, err := s.Find(ctx, store.Query{Collection: "projects"})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStore_RangeFilters(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed("skills", "a", map[string]any{"level": 1})
	s.Seed("skills", "b", map[string]any{"level": 3.5})
	s.Seed("skills", "c", map[string]any{"level": int64(5)})

	docs, err := s.Find(ctx, store.Query{
		Collection: "skills",
		Filters:    []store.Filter{store.Where("level", store.OpGreaterOrEqual, 3)},
	})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	_, err = s.Find(ctx, store.Query{
		Collection: "skills",
		Filters:    []store.Filter{store.Where("level", "array-contains", 3)},
	})
	assert.ErrorIs(t, err, store.ErrUnsupportedQuery)
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.Seed("projects", "p1", map[string]any{"title": "A"})

	doc, err := s.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Fields["title"])

	doc.Fields["title"] = "mutated"
	again, err := s.Get(ctx, "projects", "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Fields["title"])

	_, err = s.Get(ctx, "projects", "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
