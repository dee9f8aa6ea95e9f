// Package firestore adapts a Cloud Firestore client to store.Store.
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/haleem-akmal/portfolio/internal/store"
)

const countAlias = "all"

type Store struct {
	client *firestore.Client
}

func New(client *firestore.Client) *Store {
	return &Store{client: client}
}

func (s *Store) query(q store.Query) (firestore.Query, error) {
	fq := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		switch f.Op {
		case store.OpEqual, store.OpNotEqual, store.OpLess, store.OpLessOrEqual, store.OpGreater, store.OpGreaterOrEqual:
		default:
			return fq, fmt.Errorf("%w: operator %q", store.ErrUnsupportedQuery, f.Op)
		}
		fq = fq.Where(f.Field, string(f.Op), f.Value)
	}
	for _, o := range q.Orders {
		dir := firestore.Asc
		if o.Direction == store.Desc {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(o.Field, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}
	return fq, nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, fmt.Errorf("firestore get %s/%s: %w", collection, id, err)
	}
	return store.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	fq, err := s.query(q)
	if err != nil {
		return nil, err
	}

	snaps, err := fq.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query %s: %w", q.Collection, err)
	}

	docs := make([]store.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, store.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}
	return docs, nil
}

// Count runs a server-side count aggregation. Any aggregation failure is reported as
// store.ErrCountUnavailable so callers can fall back to fetching.
func (s *Store) Count(ctx context.Context, q store.Query) (int, error) {
	fq, err := s.query(q)
	if err != nil {
		return 0, err
	}

	res, err := fq.NewAggregationQuery().WithCount(countAlias).Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrCountUnavailable, err)
	}

	v, ok := res[countAlias].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("%w: unexpected result %T", store.ErrCountUnavailable, res[countAlias])
	}
	return int(v.GetIntegerValue()), nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, time.Time, error) {
	ref, wr, err := s.client.Collection(collection).Add(ctx, toFirestore(fields))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("firestore add %s: %w", collection, err)
	}
	return ref.ID, wr.UpdateTime, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	data := toFirestore(fields)

	paths := make([]string, 0, len(data))
	for k := range data {
		paths = append(paths, k)
	}
	sort.Strings(paths)

	updates := make([]firestore.Update, 0, len(paths))
	for _, p := range paths {
		updates = append(updates, firestore.Update{Path: p, Value: data[p]})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return store.ErrNotFound
		}
		return fmt.Errorf("firestore update %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("firestore delete %s/%s: %w", collection, id, err)
	}
	return nil
}

// Ping lists the first root collection, which needs a reachable backend and valid credentials.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.Collections(ctx).Next()
	if err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func toFirestore(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if store.IsServerTimestamp(v) {
			out[k] = firestore.ServerTimestamp
			continue
		}
		out[k] = v
	}
	return out
}
