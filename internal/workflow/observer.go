package workflow

import (
	"time"

	"surveyor/internal/question"
)

// EventType identifies a question status transition for observers.
type EventType string

const (
	// EventQueued marks a question known but not yet looked up.
	EventQueued EventType = "queued"
	// EventCacheHit marks a question served from storage without dispatch.
	EventCacheHit EventType = "cache_hit"
	// EventDispatch marks a provider query attempt starting.
	EventDispatch EventType = "dispatch"
	// EventRetry marks a failed attempt that will be retried after Wait.
	EventRetry EventType = "retry"
	// EventPersisted marks a fresh answer written to storage.
	EventPersisted EventType = "persisted"
	// EventFailed marks a question that exhausted its attempt budget.
	EventFailed EventType = "failed"
)

// Event carries a single status update for one question of a batch.
type Event struct {
	Type     EventType
	Index    int
	Question question.Question
	Attempt  int
	Wait     time.Duration
	Err      string
	At       time.Time
}

// Observer receives workflow events. Implementations must tolerate
// concurrent calls; events for different questions arrive interleaved.
type Observer interface {
	OnEvent(event Event)
}

// nopObserver drops every event.
type nopObserver struct{}

func (nopObserver) OnEvent(Event) {}
