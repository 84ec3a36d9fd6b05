package live

import "time"

// Row statuses shown in the question table.
const (
	statusQueued   = "queued"
	statusRunning  = "running"
	statusWaiting  = "waiting"
	statusCached   = "cached"
	statusAnswered = "answered"
	statusFailed   = "failed"
)

// QuestionRow holds UI state for a single question.
type QuestionRow struct {
	Index      int
	ID         string
	Text       string
	Status     string
	Attempts   int
	Wait       time.Duration
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued   int
	Running  int
	Waiting  int
	Done     int
	Cached   int
	Answered int
	Failed   int
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	Provider  string
	Model     string
	Total     int
	StartedAt time.Time
	LastEvent string
	Rows      []QuestionRow
	Counts    StatusCounts
	Finished  bool
}

// inFlight reports whether the run is still working through questions.
func (s State) inFlight() bool {
	if s.Finished {
		return false
	}
	total := s.Total
	if total < len(s.Rows) {
		total = len(s.Rows)
	}
	return total == 0 || s.Counts.Done < total
}
