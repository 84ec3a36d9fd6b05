package workflow

import (
	"errors"

	"surveyor/internal/provider"
	"surveyor/internal/question"
	"surveyor/internal/storage"
)

// Failure kinds recorded in Result.Errors and Result.StorageWarnings.
const (
	FailureKindTemplate = "template"
	FailureKindProvider = "provider"
	FailureKindSchema   = "schema"
	FailureKindStorage  = "storage"
	FailureKindUnknown  = "unknown"
)

// Outcome is the per-question result of AskMultiple. Exactly one of Answer
// and Err is set.
type Outcome struct {
	Question question.Question
	Answer   *question.Answer
	Cached   bool
	Attempts int
	Err      *Failure
}

// Failure is the structured record of one question's terminal failure.
type Failure struct {
	QuestionID string
	Kind       string
	Message    string
	Attempts   int
}

// Result aggregates a batch. Outcomes follow expansion order regardless of
// completion order; Errors and StorageWarnings follow outcome order. Storage
// put failures are warnings because the answer was still obtained and
// returned.
type Result struct {
	Outcomes        []Outcome
	Errors          []Failure
	StorageWarnings []Failure
}

// Failed reports whether any question ended without an answer.
func (r Result) Failed() bool {
	return len(r.Errors) > 0
}

// failureFrom classifies a terminal dispatch error into its structured
// record.
func failureFrom(questionID string, attempts int, err error) *Failure {
	failure := &Failure{
		QuestionID: questionID,
		Kind:       FailureKindUnknown,
		Message:    err.Error(),
		Attempts:   attempts,
	}
	var schemaErr *provider.SchemaViolation
	var provErr *provider.ProviderError
	var templateErr *question.TemplateError
	var storageErr *storage.StorageError
	switch {
	case errors.As(err, &schemaErr):
		failure.Kind = FailureKindSchema
	case errors.As(err, &provErr):
		failure.Kind = FailureKindProvider
	case errors.As(err, &templateErr):
		failure.Kind = FailureKindTemplate
	case errors.As(err, &storageErr):
		failure.Kind = FailureKindStorage
	}
	return failure
}
