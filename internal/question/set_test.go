package question

import (
	"errors"
	"testing"

	"surveyor/internal/schema"
)

func testSchema(t *testing.T) schema.Schema {
	t.Helper()
	s, err := schema.New("stats", []byte(`{"type": "object"}`))
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	return s
}

func TestNewSetRejectsMismatches(t *testing.T) {
	s := testSchema(t)
	cases := []struct {
		name     string
		template string
		wordSets []WordSet
	}{
		{
			name:     "placeholder without word set",
			template: "Get stats for {country}",
			wordSets: nil,
		},
		{
			name:     "word set not referenced",
			template: "Get stats for {country}",
			wordSets: []WordSet{
				{Name: "country", Values: []string{"France"}},
				{Name: "year", Values: []string{"2023"}},
			},
		},
		{
			name:     "duplicate word set",
			template: "Get stats for {country}",
			wordSets: []WordSet{
				{Name: "country", Values: []string{"France"}},
				{Name: "country", Values: []string{"Germany"}},
			},
		},
		{
			name:     "malformed template",
			template: "Get stats for {country",
			wordSets: []WordSet{{Name: "country", Values: []string{"France"}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSet(tc.template, tc.wordSets, s)
			var templateErr *TemplateError
			if !errors.As(err, &templateErr) {
				t.Fatalf("expected TemplateError, got %v", err)
			}
		})
	}
}

func TestExpandSingleWordSet(t *testing.T) {
	set, err := NewSet("Get stats for {country}", []WordSet{
		{Name: "country", Values: []string{"France", "Germany"}},
	}, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	questions := set.Expand()
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].RenderedText != "Get stats for France" {
		t.Fatalf("unexpected first question: %q", questions[0].RenderedText)
	}
	if questions[1].RenderedText != "Get stats for Germany" {
		t.Fatalf("unexpected second question: %q", questions[1].RenderedText)
	}
}

func TestExpandOrderAcrossWordSets(t *testing.T) {
	set, err := NewSet("{metric} for {country}", []WordSet{
		{Name: "metric", Values: []string{"GDP", "population"}},
		{Name: "country", Values: []string{"France", "Germany"}},
	}, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	questions := set.Expand()
	want := []string{
		"GDP for France",
		"GDP for Germany",
		"population for France",
		"population for Germany",
	}
	if len(questions) != len(want) {
		t.Fatalf("expected %d questions, got %d", len(want), len(questions))
	}
	for i, text := range want {
		if questions[i].RenderedText != text {
			t.Fatalf("question %d: got %q, want %q", i, questions[i].RenderedText, text)
		}
	}
}

func TestExpandIsStableAcrossCalls(t *testing.T) {
	set, err := NewSet("{metric} for {country}", []WordSet{
		{Name: "metric", Values: []string{"GDP", "population"}},
		{Name: "country", Values: []string{"France", "Germany", "Italy"}},
	}, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	first := set.Expand()
	second := set.Expand()
	if len(first) != len(second) {
		t.Fatalf("expansion size changed between calls")
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("expansion order changed at %d", i)
		}
	}
}

func TestExpandCollapsesDuplicates(t *testing.T) {
	set, err := NewSet("Get stats for {country}", []WordSet{
		{Name: "country", Values: []string{"France", "Germany", "France"}},
	}, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if set.Count() != 3 {
		t.Fatalf("Count should include duplicates, got %d", set.Count())
	}
	questions := set.Expand()
	if len(questions) != 2 {
		t.Fatalf("expected duplicates to collapse to 2 questions, got %d", len(questions))
	}
	if questions[0].RenderedText != "Get stats for France" || questions[1].RenderedText != "Get stats for Germany" {
		t.Fatalf("collapse changed ordering: %q, %q", questions[0].RenderedText, questions[1].RenderedText)
	}
}

func TestExpandNoWordSets(t *testing.T) {
	set, err := NewSet("Get stats for the EU", nil, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	questions := set.Expand()
	if len(questions) != 1 {
		t.Fatalf("expected a single question, got %d", len(questions))
	}
	if questions[0].RenderedText != "Get stats for the EU" {
		t.Fatalf("unexpected question: %q", questions[0].RenderedText)
	}
}

func TestExpandEmptyValueList(t *testing.T) {
	set, err := NewSet("Get stats for {country}", []WordSet{
		{Name: "country", Values: nil},
	}, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if set.Count() != 0 {
		t.Fatalf("expected zero combinations, got %d", set.Count())
	}
	if questions := set.Expand(); len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
}

func TestExpandUsesSchemaIdentity(t *testing.T) {
	wordSets := []WordSet{{Name: "country", Values: []string{"France"}}}
	first, err := NewSet("Get stats for {country}", wordSets, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	other, err := schema.New("stats_v2", []byte(`{"type": "object"}`))
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	second, err := NewSet("Get stats for {country}", wordSets, other)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if first.Expand()[0].ID == second.Expand()[0].ID {
		t.Fatalf("questions under different schemas share an id")
	}
}

func TestSetAccessorsCopy(t *testing.T) {
	set, err := NewSet("Get stats for {country}", []WordSet{
		{Name: "country", Values: []string{"France"}},
	}, testSchema(t))
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	got := set.WordSets()
	got[0].Values[0] = "mutated"
	if set.WordSets()[0].Values[0] != "France" {
		t.Fatalf("WordSets returned a shared slice")
	}
}

func TestQuestionBindingsCopied(t *testing.T) {
	bindings := map[string]string{"country": "France"}
	q, err := New("Get stats for {country}", bindings, "s")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bindings["country"] = "Germany"
	if q.Bindings["country"] != "France" {
		t.Fatalf("question bindings were not copied")
	}
	if q.ID != Identity("Get stats for {country}", map[string]string{"country": "France"}, "s") {
		t.Fatalf("id drifted after caller mutation")
	}
}
