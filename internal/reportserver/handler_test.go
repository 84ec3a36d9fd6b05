package reportserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"surveyor/internal/runner"
)

func writeRun(t *testing.T, outputDir, runID string) {
	t.Helper()
	results := runner.Results{
		RunID:     runID,
		Provider:  runner.ProviderInfo{Kind: "sonar", Model: "sonar-pro"},
		Storage:   runner.StorageInfo{Backend: "memory"},
		StartedAt: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		Questions: []runner.QuestionRow{
			{ID: "q1", Question: "What is the population of France?", Status: runner.StatusFresh, Attempts: 1},
		},
		Summary: runner.Summary{QuestionsTotal: 1, Fresh: 1, SuccessRate: 1},
	}
	if _, err := runner.WriteRunOutputs(results, outputDir); err != nil {
		t.Fatalf("write outputs: %v", err)
	}
}

// TestNewHandlerServesIndex ensures the root path lists recorded runs.
func TestNewHandlerServesIndex(t *testing.T) {
	outputDir := t.TempDir()
	writeRun(t, outputDir, "20240301T000000Z-aaaa1111")
	writeRun(t, outputDir, "20240302T000000Z-bbbb2222")

	handler, err := NewHandler(Config{OutputDir: outputDir})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"20240301T000000Z-aaaa1111",
		"20240302T000000Z-bbbb2222",
		"/runs/20240301T000000Z-aaaa1111/report.html",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected index to contain %q", want)
		}
	}
}

// TestNewHandlerServesRunFiles ensures run reports and results are served.
func TestNewHandlerServesRunFiles(t *testing.T) {
	outputDir := t.TempDir()
	writeRun(t, outputDir, "20240301T000000Z-aaaa1111")

	handler, err := NewHandler(Config{OutputDir: outputDir})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/runs/20240301T000000Z-aaaa1111/report.html", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for report, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "What is the population of France?") {
		t.Fatalf("expected report body to contain the question")
	}

	req = httptest.NewRequest(http.MethodGet, "http://example.com/runs/20240301T000000Z-aaaa1111/results.json", nil)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for results, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"run_id"`) {
		t.Fatalf("expected results payload, got: %s", resp.Body.String())
	}
}

// TestNewHandlerRejectsNonGETRunFiles ensures writes to run files are refused.
func TestNewHandlerRejectsNonGETRunFiles(t *testing.T) {
	outputDir := t.TempDir()
	writeRun(t, outputDir, "20240301T000000Z-aaaa1111")

	handler, err := NewHandler(Config{OutputDir: outputDir})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "http://example.com/runs/20240301T000000Z-aaaa1111/results.json", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", resp.Code)
	}
}

// TestNewHandlerUnknownPath ensures paths outside the index and runs 404.
func TestNewHandlerUnknownPath(t *testing.T) {
	handler, err := NewHandler(Config{OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com/nope", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

// TestNewHandlerRequiresOutputDir verifies config validation.
func TestNewHandlerRequiresOutputDir(t *testing.T) {
	if _, err := NewHandler(Config{}); err == nil {
		t.Fatalf("expected error for missing output dir")
	}
}

// TestServeRequiresAddr verifies server config validation.
func TestServeRequiresAddr(t *testing.T) {
	if err := Serve(context.Background(), Config{OutputDir: t.TempDir()}); err == nil {
		t.Fatalf("expected error for missing addr")
	}
}
