package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a config for correctness and referenced files. Relative
// paths resolve against baseDir, the directory holding the config file.
func Validate(cfg *Config, baseDir string) error {
	collector := &issueCollector{}

	if cfg.Version == 0 {
		collector.add("version", "is required")
	} else if cfg.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if baseDir == "" {
		baseDir = "."
	}

	validateQuestion(cfg, baseDir, collector.add)
	validateProvider(cfg, collector.add)
	validateStorage(cfg, collector.add)
	validateRun(cfg, collector.add)

	return collector.result()
}

func validateQuestion(cfg *Config, baseDir string, add issueAdder) {
	if strings.TrimSpace(cfg.Question.Template) == "" {
		add("question.template", "is required")
	}

	names := map[string]struct{}{}
	for i, ws := range cfg.Question.WordSets {
		fieldPrefix := fmt.Sprintf("question.word_sets[%d]", i)
		name := strings.TrimSpace(ws.Name)
		if name == "" {
			add(fieldPrefix+".name", "is required")
		} else if _, exists := names[name]; exists {
			add("question.word_sets.name", fmt.Sprintf("duplicate name %q", name))
		} else {
			names[name] = struct{}{}
		}
		if len(ws.Values) == 0 {
			add(fieldPrefix+".values", "must include at least one entry")
		}
		for valueIndex, value := range ws.Values {
			if strings.TrimSpace(value) == "" {
				add(fmt.Sprintf("%s.values[%d]", fieldPrefix, valueIndex), "is required")
			}
		}
	}

	if strings.TrimSpace(cfg.Question.Schema.Name) == "" {
		add("question.schema.name", "is required")
	}
	schemaFile := strings.TrimSpace(cfg.Question.Schema.File)
	if schemaFile == "" {
		add("question.schema.file", "is required")
		return
	}
	schemaPath := schemaFile
	if !filepath.IsAbs(schemaPath) {
		schemaPath = filepath.Join(baseDir, schemaPath)
	}
	info, err := os.Stat(schemaPath)
	if err != nil {
		add("question.schema.file", fmt.Sprintf("schema not found at %q", schemaFile))
	} else if info.IsDir() {
		add("question.schema.file", fmt.Sprintf("schema path %q is a directory", schemaFile))
	}
}

func validateProvider(cfg *Config, add issueAdder) {
	switch strings.TrimSpace(cfg.Provider.Kind) {
	case KindSonar, KindAnthropic:
	case "":
		add("provider.kind", "is required")
	default:
		add("provider.kind", fmt.Sprintf("unsupported kind %q", cfg.Provider.Kind))
	}
	if cfg.Provider.TimeoutSeconds < 0 {
		add("provider.timeout_seconds", "must be >= 0")
	}
	if cfg.Provider.RequestsPerSecond < 0 {
		add("provider.requests_per_second", "must be >= 0")
	}
}

func validateStorage(cfg *Config, add issueAdder) {
	switch strings.TrimSpace(cfg.Storage.Backend) {
	case BackendDuckDB:
		if strings.TrimSpace(cfg.Storage.Path) == "" {
			add("storage.path", "is required for the duckdb backend")
		}
	case BackendMemory:
	case "":
		add("storage.backend", "is required")
	default:
		add("storage.backend", fmt.Sprintf("unsupported backend %q", cfg.Storage.Backend))
	}
}

func validateRun(cfg *Config, add issueAdder) {
	if cfg.Run.Concurrency < 0 {
		add("run.concurrency", "must be >= 0")
	}
	if cfg.Run.ProviderAttempts < 0 {
		add("run.provider_attempts", "must be >= 0")
	}
	if cfg.Run.SchemaAttempts < 0 {
		add("run.schema_attempts", "must be >= 0")
	}
	if strings.TrimSpace(cfg.Run.OutputDir) == "" {
		add("run.output_dir", "is required")
	}
	switch strings.TrimSpace(cfg.Run.UI) {
	case UIAuto, UILive, UIPlain:
	case "":
		add("run.ui", "is required")
	default:
		add("run.ui", fmt.Sprintf("unsupported mode %q", cfg.Run.UI))
	}
}
