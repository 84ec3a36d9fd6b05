package config

import (
	"fmt"
	"os"
	"path/filepath"

	"surveyor/internal/question"
	"surveyor/internal/schema"
)

// BuildSet compiles the configured schema and assembles the question set.
// Template and word-set mismatches surface here as question.TemplateError.
func BuildSet(cfg Config, baseDir string) (question.Set, error) {
	if baseDir == "" {
		baseDir = "."
	}
	schemaPath := cfg.Question.Schema.File
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(baseDir, schemaPath)
	}
	doc, err := os.ReadFile(schemaPath)
	if err != nil {
		return question.Set{}, fmt.Errorf("read schema file: %w", err)
	}
	s, err := schema.New(cfg.Question.Schema.Name, doc)
	if err != nil {
		return question.Set{}, err
	}

	wordSets := make([]question.WordSet, len(cfg.Question.WordSets))
	for i, ws := range cfg.Question.WordSets {
		wordSets[i] = question.WordSet{
			Name:   ws.Name,
			Values: append([]string(nil), ws.Values...),
		}
	}
	return question.NewSet(cfg.Question.Template, wordSets, s)
}
