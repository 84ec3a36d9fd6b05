package live

import "surveyor/internal/workflow"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventQuestion delivers a question status update.
	EventQuestion
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind     EventKind
	RunID    string
	Provider string
	Model    string
	Total    int
	Question workflow.Event
}
