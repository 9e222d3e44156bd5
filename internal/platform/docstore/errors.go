package docstore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when the target id is absent from the
	// relevant collection. The operation has no side effects.
	ErrNotFound = errors.New("record not found")

	// ErrAllocationConflict is returned when a freshly allocated
	// patient id already exists. Unreachable under single-writer
	// access; seeing it means the document is corrupted or a second
	// writer bypassed the store.
	ErrAllocationConflict = errors.New("allocated patient id already exists")
)

// StoreError wraps an I/O or parse failure of the underlying document.
// It is never retried; the in-memory document is discarded.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("document store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ValidationError reports required fields missing on create or update.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
