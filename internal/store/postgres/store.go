// Package postgres stores documents as jsonb rows, for deployments that run without Firestore.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haleem-akmal/portfolio/internal/store"
)

// Timestamp fields live in their own columns so the database clock can stamp them.
var timestampColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

var operators = map[store.Operator]string{
	store.OpEqual:          "=",
	store.OpNotEqual:       "<>",
	store.OpLess:           "<",
	store.OpLessOrEqual:    "<=",
	store.OpGreater:        ">",
	store.OpGreaterOrEqual: ">=",
}

const createTable = `
create table if not exists documents (
  collection text not null,
  id text not null,
  data jsonb not null default '{}'::jsonb,
  created_at timestamptz not null default now(),
  updated_at timestamptz,
  primary key (collection, id)
)`

const createIndex = `
create index if not exists documents_collection_created_at_idx
  on documents (collection, created_at desc)`

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range []string{createTable, createIndex} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate documents: %w", err)
		}
	}
	return nil
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Document, error) {
	var (
		raw       []byte
		createdAt time.Time
		updatedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx,
		"select data, created_at, updated_at from documents where collection = $1 and id = $2",
		collection, id,
	).Scan(&raw, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Document{}, store.ErrNotFound
	}
	if err != nil {
		return store.Document{}, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}

	fields, err := decode(raw, createdAt, updatedAt)
	if err != nil {
		return store.Document{}, fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return store.Document{ID: id, Fields: fields}, nil
}

func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("select id, data, created_at, updated_at from documents where ")
	b.WriteString(where)

	if len(q.Orders) > 0 {
		parts := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			var expr string
			if col, ok := timestampColumns[o.Field]; ok {
				expr = col
			} else {
				args = append(args, o.Field)
				expr = fmt.Sprintf("data -> $%d", len(args))
			}
			if o.Direction == store.Desc {
				expr += " desc"
			}
			parts = append(parts, expr)
		}
		b.WriteString(" order by ")
		b.WriteString(strings.Join(parts, ", "))
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, " limit $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	defer rows.Close()

	docs := []store.Document{}
	for rows.Next() {
		var (
			id        string
			raw       []byte
			createdAt time.Time
			updatedAt sql.NullTime
		)
		if err := rows.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		fields, err := decode(raw, createdAt, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", q.Collection, id, err)
		}
		docs = append(docs, store.Document{ID: id, Fields: fields})
	}
	return docs, rows.Err()
}

func (s *Store) Count(ctx context.Context, q store.Query) (int, error) {
	where, args, err := buildWhere(q)
	if err != nil {
		return 0, err
	}

	query := "select count(*) from documents where " + where
	if q.Limit > 0 {
		args = append(args, q.Limit)
		query = fmt.Sprintf("select count(*) from (select 1 from documents where %s limit $%d) t", where, len(args))
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrCountUnavailable, err)
	}
	return n, nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, time.Time, error) {
	data, stamps, err := split(fields)
	if err != nil {
		return "", time.Time{}, err
	}

	updatedExpr := "null"
	if stamps["updated_at"] {
		updatedExpr = "now()"
	}

	id := uuid.NewString()
	query := fmt.Sprintf(
		"insert into documents (collection, id, data, created_at, updated_at) values ($1, $2, $3::jsonb, now(), %s) returning created_at",
		updatedExpr,
	)

	var createdAt time.Time
	if err := s.db.QueryRowContext(ctx, query, collection, id, data).Scan(&createdAt); err != nil {
		return "", time.Time{}, fmt.Errorf("insert %s: %w", collection, err)
	}
	return id, createdAt, nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	data, stamps, err := split(fields)
	if err != nil {
		return err
	}

	set := "data = data || $1::jsonb"
	for _, col := range []string{"created_at", "updated_at"} {
		if stamps[col] {
			set += ", " + col + " = now()"
		}
	}

	res, err := s.db.ExecContext(ctx,
		"update documents set "+set+" where collection = $2 and id = $3",
		data, collection, id,
	)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.db.ExecContext(ctx,
		"delete from documents where collection = $1 and id = $2",
		collection, id,
	); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func buildWhere(q store.Query) (string, []any, error) {
	args := []any{q.Collection}
	clauses := []string{"collection = $1"}

	for _, f := range q.Filters {
		op, ok := operators[f.Op]
		if !ok {
			return "", nil, fmt.Errorf("%w: operator %q", store.ErrUnsupportedQuery, f.Op)
		}

		if col, ok := timestampColumns[f.Field]; ok {
			args = append(args, f.Value)
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", col, op, len(args)))
			continue
		}

		value, err := json.Marshal(f.Value)
		if err != nil {
			return "", nil, fmt.Errorf("encode filter %s: %w", f.Field, err)
		}
		args = append(args, f.Field, string(value))
		clauses = append(clauses, fmt.Sprintf("data -> $%d %s $%d::jsonb", len(args)-1, op, len(args)))
	}

	return strings.Join(clauses, " and "), args, nil
}

func decode(raw []byte, createdAt time.Time, updatedAt sql.NullTime) (map[string]any, error) {
	fields := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
	}
	fields["createdAt"] = createdAt
	if updatedAt.Valid {
		fields["updatedAt"] = updatedAt.Time
	}
	return fields, nil
}

// split separates server-stamped timestamp columns from the jsonb payload.
func split(fields map[string]any) (string, map[string]bool, error) {
	data := make(map[string]any, len(fields))
	stamps := map[string]bool{}
	for k, v := range fields {
		if col, ok := timestampColumns[k]; ok && store.IsServerTimestamp(v) {
			stamps[col] = true
			continue
		}
		if store.IsServerTimestamp(v) {
			return "", nil, fmt.Errorf("%w: server timestamp on %s", store.ErrUnsupportedQuery, k)
		}
		data[k] = v
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", nil, err
	}
	return string(raw), stamps, nil
}
