// Package provider defines the boundary between the ask workflow and the AI
// query services that answer questions. Handlers are transport-only: they
// take one rendered question and return schema-conforming JSON, while the
// workflow owns caching, retries and persistence.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"surveyor/internal/question"
	"surveyor/internal/schema"
)

// Request carries one rendered question to a handler.
type Request struct {
	QuestionID   string
	RenderedText string
	Schema       schema.Schema
}

// Response is the transport-level result of one query. The workflow stamps
// FetchedAt and assembles the persisted Answer.
type Response struct {
	StructuredData json.RawMessage
	Citations      []question.Citation
	RawResponse    string
}

// Handler answers a single question with JSON conforming to the request
// schema. Implementations must be safe for concurrent use; the workflow
// issues up to its concurrency bound of queries at once.
type Handler interface {
	Query(ctx context.Context, req Request) (Response, error)
}

// ProviderError reports a transport-level failure: connection errors,
// non-2xx statuses, request timeouts. The retry policy grants these the full
// provider attempt budget.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Err        error
}

// Error renders the provider name, status and message.
func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// Unwrap exposes the underlying transport error, if any.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// SchemaViolation reports a response that parsed as JSON but did not conform
// to the requested schema, or that was not JSON at all. Violations tend to
// repeat for the same question, so the retry policy grants them a smaller
// attempt budget than transport failures.
type SchemaViolation struct {
	Detail string
	Raw    string
}

// Error returns the validation detail.
func (e *SchemaViolation) Error() string {
	return "schema violation: " + e.Detail
}
