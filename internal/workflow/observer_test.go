package workflow

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"surveyor/internal/provider"
	"surveyor/internal/question"
	"surveyor/internal/storage/memory"
	"surveyor/internal/testutil"
)

// recordingObserver collects events for assertion.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *recordingObserver) OnEvent(event Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) byIndex(index int) []EventType {
	o.mu.Lock()
	defer o.mu.Unlock()
	var types []EventType
	for _, event := range o.events {
		if event.Index == index {
			types = append(types, event.Type)
		}
	}
	return types
}

func sameTypes(got, want []EventType) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestAskMultipleEmitsLifecycleEvents(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := memory.New()
	set := testSet(t, "France", "Germany", "Atlantis")
	questions := set.Expand()

	// Seed one cached answer and fail one question permanently.
	if err := store.Put(ctx, question.Answer{
		QuestionID:     questions[0].ID,
		StructuredData: json.RawMessage(`{"answer":"cached"}`),
	}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	handler := newFakeHandler(func(req provider.Request) (provider.Response, error) {
		if strings.Contains(req.RenderedText, "Atlantis") {
			return provider.Response{}, &provider.SchemaViolation{Detail: "no data"}
		}
		return responseFor(req), nil
	})

	observer := &recordingObserver{}
	w := newTestWorkflow(t, store, handler, Options{Observer: observer})
	if _, err := w.AskMultiple(ctx, set); err != nil {
		t.Fatalf("ask multiple: %v", err)
	}

	if got := observer.byIndex(0); !sameTypes(got, []EventType{EventQueued, EventCacheHit}) {
		t.Fatalf("cached question events: %v", got)
	}
	if got := observer.byIndex(1); !sameTypes(got, []EventType{EventQueued, EventDispatch, EventPersisted}) {
		t.Fatalf("fresh question events: %v", got)
	}
	// Schema budget is 2: dispatch, retry, dispatch, failed.
	if got := observer.byIndex(2); !sameTypes(got, []EventType{EventQueued, EventDispatch, EventRetry, EventDispatch, EventFailed}) {
		t.Fatalf("failed question events: %v", got)
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()
	for i, event := range observer.events {
		if event.At.IsZero() {
			t.Fatalf("event %d missing timestamp", i)
		}
		if event.Question.ID == "" {
			t.Fatalf("event %d missing question", i)
		}
	}
}
