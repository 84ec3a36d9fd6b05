package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"surveyor/internal/runner"
)

func LoadResults(path string) (runner.Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runner.Results{}, err
	}
	var results runner.Results
	if err := json.Unmarshal(data, &results); err != nil {
		return runner.Results{}, err
	}
	return results, nil
}

// ResolveRun locates a run under outputDir and loads its results. An empty
// ref selects the most recent run; run ids sort lexically because they start
// with a UTC timestamp.
func ResolveRun(outputDir, ref string) (runner.Results, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		runDir, err := findLatestRunDir(outputDir)
		if err != nil {
			return runner.Results{}, "", err
		}
		results, err := LoadResults(filepath.Join(runDir, "results.json"))
		return results, runDir, err
	}
	runDir := filepath.Join(outputDir, ref)
	if info, err := os.Stat(runDir); err != nil || !info.IsDir() {
		return runner.Results{}, "", fmt.Errorf("run %s not found in %s", ref, outputDir)
	}
	results, err := LoadResults(filepath.Join(runDir, "results.json"))
	return results, runDir, err
}

// ListRuns loads every run's results under outputDir, newest first. Run
// directories without a readable results.json are skipped.
func ListRuns(outputDir string) ([]runner.Results, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	runs := make([]runner.Results, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		results, err := LoadResults(filepath.Join(outputDir, entry.Name(), "results.json"))
		if err != nil {
			continue
		}
		runs = append(runs, results)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].RunID > runs[j].RunID })
	return runs, nil
}

func findLatestRunDir(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no runs found in %s", outputDir)
		}
		return "", err
	}
	runIDs := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			runIDs = append(runIDs, entry.Name())
		}
	}
	if len(runIDs) == 0 {
		return "", fmt.Errorf("no runs found in %s", outputDir)
	}
	sort.Strings(runIDs)
	return filepath.Join(outputDir, runIDs[len(runIDs)-1]), nil
}
