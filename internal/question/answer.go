package question

import (
	"encoding/json"
	"time"
)

// Citation pairs a claim fragment with the source URL backing it.
type Citation struct {
	Claim string `json:"claim"`
	URL   string `json:"url"`
}

// Answer is the persisted result of one successful provider query. Answers
// are created once, never updated in place; a re-ask of a cached question is
// a no-op read.
type Answer struct {
	QuestionID     string          `json:"question_id"`
	StructuredData json.RawMessage `json:"structured_data"`
	Citations      []Citation      `json:"citations,omitempty"`
	RawResponse    string          `json:"raw_response,omitempty"`
	FetchedAt      time.Time       `json:"fetched_at"`
}

// Clone returns a deep copy so cached answers cannot be mutated through
// shared slices.
func (a Answer) Clone() Answer {
	out := a
	if a.StructuredData != nil {
		out.StructuredData = append(json.RawMessage(nil), a.StructuredData...)
	}
	if a.Citations != nil {
		out.Citations = append([]Citation(nil), a.Citations...)
	}
	return out
}
