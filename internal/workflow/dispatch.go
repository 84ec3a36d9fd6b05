package workflow

import (
	"context"

	"surveyor/internal/provider"
	"surveyor/internal/question"
	"surveyor/internal/schema"
)

// askResult pairs one question's outcome with its expansion index so the
// fan-in can restore input order.
type askResult struct {
	index   int
	outcome Outcome
	warning *Failure
}

// ask resolves a single question: cache hit, or bounded dispatch with
// retries followed by persistence.
func (w *Workflow) ask(ctx context.Context, index int, q question.Question, s schema.Schema) askResult {
	// The cache check runs before taking a concurrency slot so a fully
	// cached batch never queues behind live dispatches.
	if ans, ok := w.cached(ctx, q); ok {
		w.emit(Event{Type: EventCacheHit, Index: index, Question: q})
		w.logger.Debug("cache hit", "question", q.ID)
		return askResult{index: index, outcome: Outcome{Question: q, Answer: &ans, Cached: true}}
	}

	if err := w.sem.Acquire(ctx, 1); err != nil {
		failure := &Failure{
			QuestionID: q.ID,
			Kind:       FailureKindProvider,
			Message:    "cancelled before dispatch: " + err.Error(),
		}
		w.emit(Event{Type: EventFailed, Index: index, Question: q, Err: failure.Message})
		return askResult{index: index, outcome: Outcome{Question: q, Err: failure}}
	}
	defer w.sem.Release(1)

	resp, attempts, err := w.dispatch(ctx, index, q, s)
	if err != nil {
		failure := failureFrom(q.ID, attempts, err)
		w.emit(Event{Type: EventFailed, Index: index, Question: q, Attempt: attempts, Err: failure.Message})
		w.logger.Error("question failed", "question", q.ID, "attempts", attempts, "kind", failure.Kind, "error", err)
		return askResult{index: index, outcome: Outcome{Question: q, Attempts: attempts, Err: failure}}
	}

	ans := question.Answer{
		QuestionID:     q.ID,
		StructuredData: resp.StructuredData,
		Citations:      resp.Citations,
		RawResponse:    resp.RawResponse,
		FetchedAt:      w.retry.Clock.Now().UTC(),
	}
	var warning *Failure
	if putErr := w.store.Put(ctx, ans); putErr != nil {
		// The answer exists even though persistence failed; report it and
		// downgrade the write error to a warning.
		w.logger.Warn("persist answer", "question", q.ID, "error", putErr)
		warning = &Failure{
			QuestionID: q.ID,
			Kind:       FailureKindStorage,
			Message:    putErr.Error(),
			Attempts:   attempts,
		}
	} else {
		w.emit(Event{Type: EventPersisted, Index: index, Question: q, Attempt: attempts})
		w.logger.Debug("persisted", "question", q.ID, "attempts", attempts)
	}
	return askResult{
		index:   index,
		outcome: Outcome{Question: q, Answer: &ans, Attempts: attempts},
		warning: warning,
	}
}

// cached returns the stored answer when the id is already persisted. Read
// failures degrade to a miss so a flaky cache cannot fail a batch.
func (w *Workflow) cached(ctx context.Context, q question.Question) (question.Answer, bool) {
	exists, err := w.store.Exists(ctx, q.ID)
	if err != nil {
		w.logger.Warn("cache lookup failed, dispatching", "question", q.ID, "error", err)
		return question.Answer{}, false
	}
	if !exists {
		return question.Answer{}, false
	}
	ans, err := w.store.Get(ctx, q.ID)
	if err != nil {
		w.logger.Warn("cache read failed, dispatching", "question", q.ID, "error", err)
		return question.Answer{}, false
	}
	return ans, true
}

// dispatch queries the handler under the retry policy, returning the
// attempts spent alongside the terminal result.
func (w *Workflow) dispatch(ctx context.Context, index int, q question.Question, s schema.Schema) (provider.Response, int, error) {
	req := provider.Request{
		QuestionID:   q.ID,
		RenderedText: q.RenderedText,
		Schema:       s,
	}
	attempts := 0
	for {
		attempts++
		w.emit(Event{Type: EventDispatch, Index: index, Question: q, Attempt: attempts})
		w.logger.Debug("dispatch", "question", q.ID, "attempt", attempts)
		resp, err := w.handler.Query(ctx, req)
		if err == nil {
			return resp, attempts, nil
		}
		if attempts >= w.retry.AttemptsFor(err) {
			return provider.Response{}, attempts, err
		}
		delay := w.retry.Backoff(attempts, err)
		w.emit(Event{Type: EventRetry, Index: index, Question: q, Attempt: attempts, Wait: delay, Err: err.Error()})
		w.logger.Debug("retry", "question", q.ID, "attempt", attempts, "wait", delay, "error", err)
		if sleepErr := w.retry.Sleep(ctx, delay); sleepErr != nil {
			return provider.Response{}, attempts, err
		}
	}
}
