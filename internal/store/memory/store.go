// Package memory is an in-process store.Store used for local development and tests.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haleem-akmal/portfolio/internal/store"
)

type Option func(*Store)

// WithClock replaces the clock used for server timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithoutCount makes Count report store.ErrCountUnavailable, like a backend without aggregation.
func WithoutCount() Option {
	return func(s *Store) { s.countDisabled = true }
}

type collection struct {
	order []string
	docs  map[string]map[string]any
}

type Store struct {
	mu            sync.RWMutex
	collections   map[string]*collection
	now           func() time.Time
	countDisabled bool
}

func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]*collection),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

// Seed writes a document verbatim under a caller-chosen id.
func (s *Store) Seed(collectionName, id string, fields map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collectionName)
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = s.resolve(fields)
}

func (s *Store) Get(ctx context.Context, collectionName, id string) (store.Document, error) {
	if err := ctx.Err(); err != nil {
		return store.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	fields, ok := c.docs[id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	return store.Document{ID: id, Fields: copyFields(fields)}, nil
}

func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.find(q)
}

func (s *Store) find(q store.Query) ([]store.Document, error) {
	c, ok := s.collections[q.Collection]
	if !ok {
		return []store.Document{}, nil
	}

	out := make([]store.Document, 0, len(c.order))
	for _, id := range c.order {
		fields := c.docs[id]
		match, err := matches(fields, q.Filters)
		if err != nil {
			return nil, err
		}
		if !match || !hasAll(fields, q.Orders) {
			continue
		}
		out = append(out, store.Document{ID: id, Fields: copyFields(fields)})
	}

	if len(q.Orders) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Orders {
				cmp, _ := compare(out[i].Fields[o.Field], out[j].Fields[o.Field])
				if cmp == 0 {
					continue
				}
				if o.Direction == store.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, q store.Query) (int, error) {
	if s.countDisabled {
		return 0, store.ErrCountUnavailable
	}
	docs, err := s.Find(ctx, q)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

func (s *Store) Insert(ctx context.Context, collectionName string, fields map[string]any) (string, time.Time, error) {
	if err := ctx.Err(); err != nil {
		return "", time.Time{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	now := s.now()
	c := s.coll(collectionName)
	c.order = append(c.order, id)
	c.docs[id] = s.resolveAt(fields, now)
	return id, now, nil
}

func (s *Store) Update(ctx context.Context, collectionName, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return store.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return store.ErrNotFound
	}
	for k, v := range s.resolve(fields) {
		doc[k] = v
	}
	return nil
}

// Delete removes id; deleting a missing document is not an error.
func (s *Store) Delete(ctx context.Context, collectionName, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error { return nil }

func (s *Store) resolve(fields map[string]any) map[string]any {
	return s.resolveAt(fields, s.now())
}

func (s *Store) resolveAt(fields map[string]any, now time.Time) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if store.IsServerTimestamp(v) {
			out[k] = now
			continue
		}
		out[k] = v
	}
	return out
}

func copyFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func hasAll(fields map[string]any, orders []store.Order) bool {
	for _, o := range orders {
		if _, ok := fields[o.Field]; !ok {
			return false
		}
	}
	return true
}

func matches(fields map[string]any, filters []store.Filter) (bool, error) {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok {
			return false, nil
		}
		if f.Op == store.OpEqual || f.Op == store.OpNotEqual {
			eq := equal(v, f.Value)
			if (f.Op == store.OpEqual) != eq {
				return false, nil
			}
			continue
		}

		cmp, ok := compare(v, f.Value)
		if !ok {
			return false, nil
		}
		var keep bool
		switch f.Op {
		case store.OpLess:
			keep = cmp < 0
		case store.OpLessOrEqual:
			keep = cmp <= 0
		case store.OpGreater:
			keep = cmp > 0
		case store.OpGreaterOrEqual:
			keep = cmp >= 0
		default:
			return false, fmt.Errorf("%w: operator %q", store.ErrUnsupportedQuery, f.Op)
		}
		if !keep {
			return false, nil
		}
	}
	return true, nil
}

func equal(a, b any) bool {
	if cmp, ok := compare(a, b); ok {
		return cmp == 0
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two scalar values of the same kind. Numbers compare across int/float types.
func compare(a, b any) (int, bool) {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok {
			return 0, false
		}
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		}
		return 0, true
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(av, bv), true
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return av.Compare(bv), true
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case av == bv:
			return 0, true
		case !av:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
