package live

import (
	"fmt"

	"surveyor/internal/workflow"
)

// Reduce applies a workflow event to the UI state.
func Reduce(state State, event workflow.Event) State {
	state = ensureRow(state, event)
	state = applyQuestionEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event workflow.Event) State {
	if event.Index < 0 {
		return state
	}
	if event.Index < len(state.Rows) {
		return state
	}
	rows := make([]QuestionRow, event.Index+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = QuestionRow{Index: i, Status: statusQueued}
	}
	state.Rows = rows
	return state
}

// applyQuestionEvent updates a row with the given event.
func applyQuestionEvent(state State, event workflow.Event) State {
	if event.Index < 0 || event.Index >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.Index]
	if row.ID == "" {
		row.ID = event.Question.ID
	}
	if row.Text == "" {
		row.Text = event.Question.RenderedText
	}
	switch event.Type {
	case workflow.EventQueued:
		row.Status = statusQueued
	case workflow.EventCacheHit:
		row.Status = statusCached
		if !event.At.IsZero() {
			row.FinishedAt = event.At
		}
	case workflow.EventDispatch:
		row.Status = statusRunning
		row.Attempts = event.Attempt
		row.Wait = 0
		if row.StartedAt.IsZero() && !event.At.IsZero() {
			row.StartedAt = event.At
		}
	case workflow.EventRetry:
		row.Status = statusWaiting
		row.Attempts = event.Attempt
		row.Wait = event.Wait
	case workflow.EventPersisted:
		row.Status = statusAnswered
		row.Attempts = event.Attempt
		if !event.At.IsZero() {
			row.FinishedAt = event.At
		}
	case workflow.EventFailed:
		row.Status = statusFailed
		row.Attempts = event.Attempt
		row.Error = event.Err
		if !event.At.IsZero() {
			row.FinishedAt = event.At
		}
	}
	state.Rows[event.Index] = row
	return state
}

// recount recomputes status counts for the current rows.
func recount(rows []QuestionRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case statusQueued:
			counts.Queued++
		case statusRunning:
			counts.Running++
		case statusWaiting:
			counts.Waiting++
		case statusCached:
			counts.Done++
			counts.Cached++
		case statusAnswered:
			counts.Done++
			counts.Answered++
		case statusFailed:
			counts.Done++
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event workflow.Event) string {
	switch event.Type {
	case workflow.EventCacheHit:
		return fmt.Sprintf("Q%d served from cache", event.Index+1)
	case workflow.EventRetry:
		if event.Wait > 0 {
			return fmt.Sprintf("Q%d retrying in %s (attempt %d)", event.Index+1, formatDuration(event.Wait), event.Attempt)
		}
		return fmt.Sprintf("Q%d retrying (attempt %d)", event.Index+1, event.Attempt)
	case workflow.EventPersisted:
		return fmt.Sprintf("Q%d answered", event.Index+1)
	case workflow.EventFailed:
		return fmt.Sprintf("Q%d failed: %s", event.Index+1, event.Err)
	}
	return ""
}
