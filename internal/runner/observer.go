package runner

import (
	"log/slog"

	"surveyor/internal/logging"
	"surveyor/internal/workflow"
)

// LogObserver writes workflow events as plain log lines. It is the
// non-interactive counterpart of the live UI.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver builds an observer that logs question progress.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = logging.Discard()
	}
	return &LogObserver{logger: logger}
}

// OnEvent logs one workflow event. Queued events are not logged; the run
// banner already reports the question count.
func (o *LogObserver) OnEvent(event workflow.Event) {
	attrs := []any{
		"question", event.Question.RenderedText,
		"id", shortID(event.Question.ID),
	}
	switch event.Type {
	case workflow.EventCacheHit:
		o.logger.Info("cache hit", attrs...)
	case workflow.EventDispatch:
		o.logger.Debug("dispatching", append(attrs, "attempt", event.Attempt)...)
	case workflow.EventRetry:
		o.logger.Warn("retrying", append(attrs, "attempt", event.Attempt, "wait", event.Wait)...)
	case workflow.EventPersisted:
		o.logger.Info("answered", append(attrs, "attempts", event.Attempt)...)
	case workflow.EventFailed:
		o.logger.Error("failed", append(attrs, "error", event.Err)...)
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
