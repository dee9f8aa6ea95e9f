package store

import (
	"context"
	"errors"
	"fmt"
)

// CountOrFetch counts with the backend's aggregation and falls back to fetching every
// matching document when aggregation fails. If both fail it returns 0 and the fetch error.
func CountOrFetch(ctx context.Context, s Store, q Query) (int, error) {
	n, countErr := s.Count(ctx, q)
	if countErr == nil {
		return n, nil
	}

	docs, err := s.Find(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", q.Collection, errors.Join(err, countErr))
	}
	return len(docs), nil
}
