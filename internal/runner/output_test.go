package runner

import (
	"context"
	"strings"
	"testing"
	"time"
)

func sampleResults() Results {
	return Results{
		RunID:        "20240305T123045Z-abcd1234",
		ConfigDigest: "digest",
		Provider:     ProviderInfo{Kind: "sonar", Model: "sonar-pro"},
		Storage:      StorageInfo{Backend: "memory"},
		StartedAt:    time.Date(2024, 3, 5, 12, 30, 45, 0, time.UTC),
		FinishedAt:   time.Date(2024, 3, 5, 12, 31, 45, 0, time.UTC),
		Questions: []QuestionRow{
			{ID: "q1", Question: "What is the population of France?", Status: StatusFresh, Attempts: 1, Citations: 2},
			{ID: "q2", Question: "What is the population of Germany?", Status: StatusCached},
			{ID: "q3", Question: "What is the population of Atlantis?", Status: StatusFailed, Attempts: 4, ErrorKind: "provider", ErrorMessage: "503 from provider"},
		},
		Warnings: []string{"put failed for q1"},
		Summary:  Summary{QuestionsTotal: 3, Cached: 1, Fresh: 1, Failed: 1, SuccessRate: 2.0 / 3.0},
	}
}

func TestNewOutputPathsValidation(t *testing.T) {
	if _, err := NewOutputPaths("", "run-1"); err == nil {
		t.Fatalf("expected error for empty root")
	}
	if _, err := NewOutputPaths("out", ""); err == nil {
		t.Fatalf("expected error for empty run id")
	}
	paths, err := NewOutputPaths("out", "run-1")
	if err != nil {
		t.Fatalf("new output paths: %v", err)
	}
	if !strings.HasSuffix(paths.ResultsPath(), "results.json") {
		t.Fatalf("unexpected results path %q", paths.ResultsPath())
	}
	if !strings.HasSuffix(paths.ReportPath(), "report.html") {
		t.Fatalf("unexpected report path %q", paths.ReportPath())
	}
}

func TestWriteRunOutputsRequiresDir(t *testing.T) {
	if _, err := WriteRunOutputs(sampleResults(), ""); err == nil {
		t.Fatalf("expected error for empty output dir")
	}
}

func TestRenderReportHTMLListsRows(t *testing.T) {
	html, err := RenderReportHTML(context.Background(), sampleResults())
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	for _, want := range []string{
		"Run 20240305T123045Z-abcd1234",
		"What is the population of France?",
		"503 from provider",
		"put failed for q1",
		"3 questions: 1 cached, 1 fresh, 1 failed",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected report to contain %q", want)
		}
	}
}

func TestRenderReportHTMLEscapesContent(t *testing.T) {
	results := sampleResults()
	results.Questions[0].Question = `<script>alert("x")</script>`

	html, err := RenderReportHTML(context.Background(), results)
	if err != nil {
		t.Fatalf("render report: %v", err)
	}
	if strings.Contains(html, "<script>alert") {
		t.Fatalf("expected question text to be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped question text in report")
	}
}
