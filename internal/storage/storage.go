package storage

import (
	"context"
	"errors"
	"fmt"

	"surveyor/internal/question"
)

// ErrNotFound reports a cache miss on Get.
var ErrNotFound = errors.New("answer not found")

// StorageError wraps a backend I/O failure. The workflow treats it as
// retryable at the per-question level: a failed read degrades to a cache
// miss and a failed write downgrades to a warning, never failing a question
// that already has an answer.
type StorageError struct {
	Op         string
	QuestionID string
	Err        error
}

// Error returns a readable message for the storage failure.
func (e *StorageError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.QuestionID, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Provider persists answers keyed by question id. Implementations must
// tolerate concurrent calls from all in-flight dispatches of a run.
type Provider interface {
	// Exists reports whether an answer for the id has been persisted. It has
	// no side effects and reflects every prior successful Put in the same
	// process and, for durable backends, across restarts.
	Exists(ctx context.Context, id string) (bool, error)
	// Get returns the stored answer, or ErrNotFound when the id is absent.
	Get(ctx context.Context, id string) (question.Answer, error)
	// Put persists an answer keyed by its question id. Put is idempotent and
	// first-write-wins: putting an id that is already present is a no-op
	// regardless of content, so cached answers stay immutable. Writes are
	// atomic; a cancelled run never leaves a partial entry.
	Put(ctx context.Context, ans question.Answer) error
	// Close releases the backend.
	Close() error
}
