package schema

import (
	"strings"
	"testing"
)

const statsDoc = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["gdp_usd", "year"],
  "properties": {
    "gdp_usd": { "type": "number" },
    "year": { "type": "integer" }
  }
}`

func TestNewRequiresNameAndDoc(t *testing.T) {
	if _, err := New("", []byte(statsDoc)); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := New("stats", nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := New("stats", []byte("{not json")); err == nil {
		t.Fatalf("expected error for malformed document")
	}
}

func TestIDIsDeterministic(t *testing.T) {
	first, err := New("stats", []byte(statsDoc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, err := New("stats", []byte(statsDoc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if first.ID() == "" {
		t.Fatalf("expected non-empty id")
	}
	if first.ID() != second.ID() {
		t.Fatalf("ids differ for identical schemas: %s vs %s", first.ID(), second.ID())
	}
}

func TestIDDependsOnNameAndDoc(t *testing.T) {
	base, err := New("stats", []byte(statsDoc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	renamed, err := New("stats_v2", []byte(statsDoc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if base.ID() == renamed.ID() {
		t.Fatalf("expected different ids for different names")
	}
	reshaped, err := New("stats", []byte(`{"type": "object"}`))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if base.ID() == reshaped.ID() {
		t.Fatalf("expected different ids for different documents")
	}
}

func TestValidate(t *testing.T) {
	s, err := New("stats", []byte(statsDoc))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Validate([]byte(`{"gdp_usd": 3.1e12, "year": 2023}`)); err != nil {
		t.Fatalf("expected conforming payload to pass: %v", err)
	}
	err = s.Validate([]byte(`{"gdp_usd": "large"}`))
	if err == nil {
		t.Fatalf("expected non-conforming payload to fail")
	}
	if !strings.Contains(err.Error(), "stats") {
		t.Fatalf("expected schema name in error, got %q", err.Error())
	}
	if err := s.Validate([]byte(`{"gdp_usd":`)); err == nil {
		t.Fatalf("expected malformed JSON to fail")
	}
}

func TestZeroSchemaRejectsValidation(t *testing.T) {
	var s Schema
	if err := s.Validate([]byte(`{}`)); err == nil {
		t.Fatalf("expected zero schema to reject validation")
	}
	if s.ID() != "" {
		t.Fatalf("expected empty id for zero schema")
	}
}
