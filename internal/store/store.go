// Package store is the document-store gateway the rest of the service talks to.
// Backends translate Query values into their own query language; none of them
// reimplements indexing or persistence.
package store

import (
	"context"
	"time"
)

type Operator string

const (
	OpEqual          Operator = "=="
	OpNotEqual       Operator = "!="
	OpLess           Operator = "<"
	OpLessOrEqual    Operator = "<="
	OpGreater        Operator = ">"
	OpGreaterOrEqual Operator = ">="
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Filter is a single field/operator/value predicate.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

func Where(field string, op Operator, value any) Filter {
	return Filter{Field: field, Op: op, Value: value}
}

type Order struct {
	Field     string
	Direction Direction
}

// Query is a collection-scoped read. Limit <= 0 means no limit.
type Query struct {
	Collection string
	Filters    []Filter
	Orders     []Order
	Limit      int
}

// Document is a stored record: the store-assigned id plus its field map.
type Document struct {
	ID     string
	Fields map[string]any
}

type serverTimestamp struct{}

// ServerTimestamp is a field value that asks the backend to stamp its own clock.
var ServerTimestamp = serverTimestamp{}

// IsServerTimestamp reports whether v is the ServerTimestamp sentinel.
func IsServerTimestamp(v any) bool {
	_, ok := v.(serverTimestamp)
	return ok
}

type Store interface {
	// Get returns ErrNotFound when id does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)
	Find(ctx context.Context, q Query) ([]Document, error)
	// Count may fail with ErrCountUnavailable when the backend has no aggregation support.
	Count(ctx context.Context, q Query) (int, error)
	Insert(ctx context.Context, collection string, fields map[string]any) (string, time.Time, error)
	// Update merges fields into an existing document; it returns ErrNotFound when id does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error
	Delete(ctx context.Context, collection, id string) error
	Ping(ctx context.Context) error
	Close() error
}
