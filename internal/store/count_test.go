package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleem-akmal/portfolio/internal/store"
	"github.com/haleem-akmal/portfolio/internal/store/memory"
)

type failingFind struct {
	*memory.Store
}

func (f failingFind) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	return nil, errors.New("offline")
}

func TestCountOrFetch(t *testing.T) {
	ctx := context.Background()
	q := store.Query{Collection: "skills"}

	t.Run("aggregation", func(t *testing.T) {
		s := memory.New()
		s.Seed("skills", "a", map[string]any{})
		n, err := store.CountOrFetch(ctx, s, q)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("fallback measures every matching document", func(t *testing.T) {
		s := memory.New(memory.WithoutCount())
		for _, id := range []string{"a", "b", "c"} {
			s.Seed("skills", id, map[string]any{})
		}
		n, err := store.CountOrFetch(ctx, s, q)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("both fail", func(t *testing.T) {
		n, err := store.CountOrFetch(ctx, failingFind{memory.New(memory.WithoutCount())}, q)
		assert.Equal(t, 0, n)
		assert.Error(t, err)
		assert.ErrorIs(t, err, store.ErrCountUnavailable)
	})
}
