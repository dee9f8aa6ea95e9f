package store

import "errors"

var (
	ErrNotFound         = errors.New("document not found")
	ErrCountUnavailable = errors.New("count aggregation unavailable")
	ErrUnsupportedQuery = errors.New("unsupported query")
)
