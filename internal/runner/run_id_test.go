package runner

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRunID(t *testing.T) {
	now := time.Date(2024, 3, 5, 12, 30, 45, 0, time.UTC)
	id := FormatRunID(now, "a1b2c3d4-e5f6-7890-abcd-ef0123456789")
	if id != "20240305T123045Z-a1b2c3d4" {
		t.Fatalf("unexpected run id %q", id)
	}
}

func TestNewRunIDShapeAndUniqueness(t *testing.T) {
	first, err := NewRunID()
	if err != nil {
		t.Fatalf("new run id: %v", err)
	}
	second, err := NewRunID()
	if err != nil {
		t.Fatalf("new run id: %v", err)
	}
	if first == second {
		t.Fatalf("expected unique run ids, got %q twice", first)
	}
	parts := strings.SplitN(first, "-", 2)
	if len(parts) != 2 || len(parts[1]) != runIDSuffixLen {
		t.Fatalf("unexpected run id shape %q", first)
	}
	if _, err := time.Parse("20060102T150405Z", parts[0]); err != nil {
		t.Fatalf("run id timestamp does not parse: %v", err)
	}
}
