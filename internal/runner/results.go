package runner

import (
	"time"

	"surveyor/internal/config"
	"surveyor/internal/workflow"
)

// Question row statuses in results.json.
const (
	StatusCached = "cached"
	StatusFresh  = "fresh"
	StatusFailed = "failed"
)

// Results is the persisted record of one run. Answers themselves live in
// storage; rows carry enough to audit the run without duplicating them.
type Results struct {
	RunID        string        `json:"run_id"`
	ConfigDigest string        `json:"config_digest,omitempty"`
	Provider     ProviderInfo  `json:"provider"`
	Storage      StorageInfo   `json:"storage"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Questions    []QuestionRow `json:"questions"`
	Warnings     []string      `json:"warnings,omitempty"`
	Summary      Summary       `json:"summary"`
}

type ProviderInfo struct {
	Kind  string `json:"kind"`
	Model string `json:"model,omitempty"`
}

type StorageInfo struct {
	Backend string `json:"backend"`
	Path    string `json:"path,omitempty"`
}

// QuestionRow records how one expanded question fared.
type QuestionRow struct {
	ID           string `json:"id"`
	Question     string `json:"question"`
	Status       string `json:"status"`
	Attempts     int    `json:"attempts,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	Citations    int    `json:"citations"`
}

// Summary aggregates row statuses for a run.
type Summary struct {
	QuestionsTotal int     `json:"questions_total"`
	Cached         int     `json:"cached"`
	Fresh          int     `json:"fresh"`
	Failed         int     `json:"failed"`
	SuccessRate    float64 `json:"success_rate"`
}

func buildResults(runID, digest string, cfg config.Config, startedAt, finishedAt time.Time, result workflow.Result) Results {
	rows := make([]QuestionRow, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		rows = append(rows, questionRow(outcome))
	}
	warnings := make([]string, 0, len(result.StorageWarnings))
	for _, warning := range result.StorageWarnings {
		warnings = append(warnings, warning.Message)
	}
	return Results{
		RunID:        runID,
		ConfigDigest: digest,
		Provider:     ProviderInfo{Kind: cfg.Provider.Kind, Model: cfg.Provider.Model},
		Storage:      StorageInfo{Backend: cfg.Storage.Backend, Path: cfg.Storage.Path},
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
		Questions:    rows,
		Warnings:     warnings,
		Summary:      summarize(rows),
	}
}

func questionRow(outcome workflow.Outcome) QuestionRow {
	row := QuestionRow{
		ID:       outcome.Question.ID,
		Question: outcome.Question.RenderedText,
		Attempts: outcome.Attempts,
	}
	if outcome.Err != nil {
		row.Status = StatusFailed
		row.ErrorKind = outcome.Err.Kind
		row.ErrorMessage = outcome.Err.Message
		return row
	}
	if outcome.Cached {
		row.Status = StatusCached
	} else {
		row.Status = StatusFresh
	}
	if outcome.Answer != nil {
		row.Citations = len(outcome.Answer.Citations)
	}
	return row
}

func summarize(rows []QuestionRow) Summary {
	summary := Summary{QuestionsTotal: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case StatusCached:
			summary.Cached++
		case StatusFresh:
			summary.Fresh++
		case StatusFailed:
			summary.Failed++
		}
	}
	if summary.QuestionsTotal > 0 {
		answered := summary.Cached + summary.Fresh
		summary.SuccessRate = float64(answered) / float64(summary.QuestionsTotal)
	}
	return summary
}
