package runner

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"surveyor/internal/logging"
	"surveyor/internal/question"
	"surveyor/internal/workflow"
)

func TestLogObserverRecordsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(logging.New(&buf, true))

	q := question.Question{ID: "0123456789abcdef", RenderedText: "What is the population of France?"}
	obs.OnEvent(workflow.Event{Type: workflow.EventCacheHit, Question: q})
	obs.OnEvent(workflow.Event{Type: workflow.EventDispatch, Question: q, Attempt: 1})
	obs.OnEvent(workflow.Event{Type: workflow.EventRetry, Question: q, Attempt: 1, Wait: 2 * time.Second})
	obs.OnEvent(workflow.Event{Type: workflow.EventPersisted, Question: q, Attempt: 2})
	obs.OnEvent(workflow.Event{Type: workflow.EventFailed, Question: q, Attempt: 4, Err: "503 from provider"})

	out := buf.String()
	for _, want := range []string{"cache hit", "dispatching", "retrying", "answered", "failed", "503 from provider", "0123456789ab"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestLogObserverIgnoresQueued(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(logging.New(&buf, true))

	obs.OnEvent(workflow.Event{Type: workflow.EventQueued, Question: question.Question{ID: "abc"}})

	if buf.Len() != 0 {
		t.Fatalf("expected no output for queued events, got:\n%s", buf.String())
	}
}

func TestNewLogObserverDefaultsToDiscard(t *testing.T) {
	obs := NewLogObserver(nil)
	obs.OnEvent(workflow.Event{Type: workflow.EventFailed, Question: question.Question{ID: "abc"}, Err: "boom"})
}
