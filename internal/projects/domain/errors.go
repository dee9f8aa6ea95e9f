package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFetchFailed  = errors.New("could not load projects")
	ErrCreateFailed = errors.New("could not create project")
	ErrUpdateFailed = errors.New("could not update project")
	ErrDeleteFailed = errors.New("could not delete project")

	ErrValidation = errors.New("invalid project")
	ErrNotFound   = errors.New("project not found")
)

// Failure is a gateway error classified by the operation that hit it.
// errors.Is matches both the kind and the underlying error.
type Failure struct {
	Kind error
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Kind.Error()
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() []error {
	return []error{f.Kind, f.Err}
}

func NewFailure(kind, err error) *Failure {
	return &Failure{Kind: kind, Err: err}
}

// ValidationError lists required fields that were empty after trimming and fields
// holding a value outside their enumeration.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
