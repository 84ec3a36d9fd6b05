// Package runner wires a loaded config into the workflow: it opens the
// configured store, builds the provider handler, runs the batch, and writes
// the run outputs.
package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"

	"surveyor/internal/config"
	"surveyor/internal/logging"
	"surveyor/internal/provider"
	"surveyor/internal/retry"
	"surveyor/internal/storage"
	"surveyor/internal/workflow"
)

// Dependencies are the injectable collaborators of Run. Zero values select
// the production implementations.
type Dependencies struct {
	Handler  provider.Handler
	Store    storage.Provider
	RunID    func() (string, error)
	Clock    clockwork.Clock
	Observer workflow.Observer
	Logger   *slog.Logger
}

// Params configures a single run.
type Params struct {
	ConfigPath string
	BaseDir    string
	OutputDir  string
	Deps       Dependencies
}

// Run expands the configured question set and asks every question through
// the workflow, returning the assembled run record.
func Run(ctx context.Context, cfg config.Config, params Params) (Results, error) {
	baseDir := resolveBaseDir(params)
	logger := params.Deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	clock := params.Deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	digest, err := configDigest(params.ConfigPath)
	if err != nil {
		return Results{}, err
	}

	set, err := config.BuildSet(cfg, baseDir)
	if err != nil {
		return Results{}, err
	}

	store := params.Deps.Store
	if store == nil {
		opened, closeStore, err := OpenStore(cfg.Storage, baseDir)
		if err != nil {
			return Results{}, err
		}
		if closeStore != nil {
			defer closeStore()
		}
		store = opened
	}

	handler := params.Deps.Handler
	if handler == nil {
		built, err := HandlerFromEnv(cfg.Provider, logger)
		if err != nil {
			return Results{}, err
		}
		handler = built
	}

	flow, err := workflow.New(store, handler, workflow.Options{
		Concurrency: cfg.Run.Concurrency,
		Retry: retry.Policy{
			ProviderAttempts: cfg.Run.ProviderAttempts,
			SchemaAttempts:   cfg.Run.SchemaAttempts,
			Jitter:           true,
			Clock:            clock,
		},
		Observer: params.Deps.Observer,
		Logger:   logger,
	})
	if err != nil {
		return Results{}, err
	}

	startedAt := clock.Now().UTC()
	logger.Info("run started", "run_id", runID, "questions", set.Count())
	result, runErr := flow.AskMultiple(ctx, set)
	finishedAt := clock.Now().UTC()

	results := buildResults(runID, digest, cfg, startedAt, finishedAt, result)
	logger.Info("run finished",
		"run_id", runID,
		"cached", results.Summary.Cached,
		"fresh", results.Summary.Fresh,
		"failed", results.Summary.Failed)
	if runErr != nil {
		return results, runErr
	}
	return results, nil
}

// RunAndWrite runs the batch and writes results.json and report.html under
// the output directory.
func RunAndWrite(ctx context.Context, cfg config.Config, params Params) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return results, OutputPaths{}, err
	}
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Run.OutputDir
	}
	outputDir = resolveOutputDir(resolveBaseDir(params), outputDir)
	paths, err := WriteRunOutputs(results, outputDir)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

func resolveBaseDir(params Params) string {
	if strings.TrimSpace(params.BaseDir) != "" {
		return params.BaseDir
	}
	if strings.TrimSpace(params.ConfigPath) != "" {
		return config.BaseDirFromConfigPath(params.ConfigPath)
	}
	return "."
}

func resolveOutputDir(baseDir, outputDir string) string {
	if outputDir == "" || filepath.IsAbs(outputDir) {
		return outputDir
	}
	return filepath.Join(baseDir, outputDir)
}

func ensureRunID(generator func() (string, error)) (string, error) {
	if generator != nil {
		return generator()
	}
	return NewRunID()
}

// configDigest fingerprints the config file so a results.json can be traced
// back to the exact configuration that produced it.
func configDigest(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return "", nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return "", fmt.Errorf("read config for digest: %w", err)
	}
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:]), nil
}
