package question

import (
	"fmt"

	"surveyor/internal/schema"
)

// Set expands a template and named word sets into the full combination of
// questions. A Set is only constructible through NewSet, so a successfully
// built Set always satisfies the template/word-set invariants and Expand
// cannot fail.
type Set struct {
	template string
	wordSets []WordSet
	schema   schema.Schema
}

// NewSet validates that every placeholder in the template has a word set and
// every word set is referenced by the template. Violations are TemplateErrors
// raised here, at construction time, never during expansion or dispatch.
func NewSet(template string, wordSets []WordSet, s schema.Schema) (Set, error) {
	placeholders, err := Placeholders(template)
	if err != nil {
		return Set{}, err
	}

	byName := make(map[string]WordSet, len(wordSets))
	for _, ws := range wordSets {
		if err := checkPlaceholderName(ws.Name); err != nil {
			return Set{}, err
		}
		if _, dup := byName[ws.Name]; dup {
			return Set{}, &TemplateError{Detail: fmt.Sprintf("duplicate word set %q", ws.Name)}
		}
		byName[ws.Name] = ws
	}

	for _, name := range placeholders {
		if _, ok := byName[name]; !ok {
			return Set{}, &TemplateError{Detail: fmt.Sprintf("placeholder {%s} has no word set", name)}
		}
	}
	referenced := make(map[string]struct{}, len(placeholders))
	for _, name := range placeholders {
		referenced[name] = struct{}{}
	}
	for _, ws := range wordSets {
		if _, ok := referenced[ws.Name]; !ok {
			return Set{}, &TemplateError{Detail: fmt.Sprintf("word set %q is not referenced by the template", ws.Name)}
		}
	}

	copied := make([]WordSet, len(wordSets))
	for i, ws := range wordSets {
		copied[i] = WordSet{Name: ws.Name, Values: append([]string(nil), ws.Values...)}
	}
	return Set{template: template, wordSets: copied, schema: s}, nil
}

// Template returns the set's question template.
func (s Set) Template() string {
	return s.template
}

// WordSets returns the declared word sets in order.
func (s Set) WordSets() []WordSet {
	out := make([]WordSet, len(s.wordSets))
	for i, ws := range s.wordSets {
		out[i] = WordSet{Name: ws.Name, Values: append([]string(nil), ws.Values...)}
	}
	return out
}

// Schema returns the response schema answers must conform to.
func (s Set) Schema() schema.Schema {
	return s.schema
}

// Count returns the size of the full combination before duplicate collapse:
// the product of all word-set value counts. A set with no word sets counts as
// one question. Callers should check Count before expanding; the product
// grows multiplicatively with every word set and the core imposes no limit.
func (s Set) Count() int {
	count := 1
	for _, ws := range s.wordSets {
		count *= len(ws.Values)
	}
	return count
}

// Expand returns the ordered questions for the full Cartesian product of the
// word sets: lexicographic over declared word-set order, then value order
// within each set, so the first declared set varies slowest. Duplicate
// bindings collapse to a single question by id, keeping the earliest
// position. Expansion is deterministic and side-effect-free.
func (s Set) Expand() []Question {
	total := s.Count()
	if total == 0 {
		return nil
	}
	questions := make([]Question, 0, total)
	seen := make(map[string]struct{}, total)
	indices := make([]int, len(s.wordSets))
	for {
		bindings := make(map[string]string, len(s.wordSets))
		for i, ws := range s.wordSets {
			bindings[ws.Name] = ws.Values[indices[i]]
		}
		// NewSet guarantees every placeholder is bound, so New cannot fail
		// for a set built through it.
		q, err := New(s.template, bindings, s.schema.ID())
		if err == nil {
			if _, dup := seen[q.ID]; !dup {
				seen[q.ID] = struct{}{}
				questions = append(questions, q)
			}
		}
		axis := len(indices) - 1
		for ; axis >= 0; axis-- {
			indices[axis]++
			if indices[axis] < len(s.wordSets[axis].Values) {
				break
			}
			indices[axis] = 0
		}
		if axis < 0 {
			break
		}
	}
	return questions
}
