// Package workflow orchestrates cache-aware question answering: it expands a
// question set, serves persisted answers without dispatching, and queries
// the provider for the rest under a concurrency bound, retrying per policy
// and persisting every fresh answer before reporting it.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"surveyor/internal/logging"
	"surveyor/internal/provider"
	"surveyor/internal/question"
	"surveyor/internal/retry"
	"surveyor/internal/storage"
)

// DefaultConcurrency bounds in-flight provider queries when Options leaves
// Concurrency zero.
const DefaultConcurrency = 5

// Options tunes one workflow instance.
type Options struct {
	Concurrency int
	Retry       retry.Policy
	Observer    Observer
	Logger      *slog.Logger
}

// Workflow coordinates storage lookups and provider dispatch for question
// sets. Instances are safe for concurrent use; simultaneous AskMultiple
// calls share the concurrency bound.
type Workflow struct {
	store    storage.Provider
	handler  provider.Handler
	sem      *semaphore.Weighted
	retry    retry.Policy
	observer Observer
	logger   *slog.Logger
}

// New builds a workflow over the given storage and query handler.
func New(store storage.Provider, handler provider.Handler, opts Options) (*Workflow, error) {
	if store == nil {
		return nil, errors.New("workflow: storage provider is required")
	}
	if handler == nil {
		return nil, errors.New("workflow: query handler is required")
	}
	concurrency := opts.Concurrency
	if concurrency == 0 {
		concurrency = DefaultConcurrency
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("workflow: concurrency must be positive, got %d", opts.Concurrency)
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Workflow{
		store:    store,
		handler:  handler,
		sem:      semaphore.NewWeighted(int64(concurrency)),
		retry:    opts.Retry.Normalize(),
		observer: observer,
		logger:   logger,
	}, nil
}

// AskMultiple expands the set and answers every question: cached answers are
// served without dispatch, the rest are queried under the concurrency bound.
// Outcomes follow expansion order regardless of completion order. One
// question's failure never aborts the batch; per-question failures land in
// Result.Errors and the returned error reports batch-level conditions only
// (context cancellation).
func (w *Workflow) AskMultiple(ctx context.Context, set question.Set) (Result, error) {
	questions := set.Expand()
	result := Result{Outcomes: make([]Outcome, len(questions))}
	if len(questions) == 0 {
		return result, nil
	}
	for index, q := range questions {
		w.emit(Event{Type: EventQueued, Index: index, Question: q})
	}

	askCh := make(chan askResult, len(questions))
	for index, q := range questions {
		go func(index int, q question.Question) {
			askCh <- w.ask(ctx, index, q, set.Schema())
		}(index, q)
	}

	warnings := make([]*Failure, len(questions))
	for range questions {
		res := <-askCh
		result.Outcomes[res.index] = res.outcome
		warnings[res.index] = res.warning
	}
	for i := range result.Outcomes {
		if result.Outcomes[i].Err != nil {
			result.Errors = append(result.Errors, *result.Outcomes[i].Err)
		}
		if warnings[i] != nil {
			result.StorageWarnings = append(result.StorageWarnings, *warnings[i])
		}
	}
	return result, ctx.Err()
}

// emit stamps and delivers one observer event.
func (w *Workflow) emit(event Event) {
	event.At = w.retry.Clock.Now()
	w.observer.OnEvent(event)
}
