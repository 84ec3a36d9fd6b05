package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatQuestionLabel returns the display label for a question row.
func formatQuestionLabel(row QuestionRow) string {
	return "Q" + pad2(row.Index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return ""
	}
	const limit = 70
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status cell for a row.
func formatStatus(row QuestionRow, noColor bool) string {
	text := row.Status
	if row.Status == statusWaiting && row.Wait > 0 {
		text = "waiting " + formatDuration(row.Wait)
	}
	if row.Status == statusFailed && row.Error != "" {
		text = "failed: " + formatQuestionText(row.Error)
	}
	if noColor {
		return text
	}
	return statusStyle(row.Status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status string) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case statusAnswered:
		color = lipgloss.Color("42")
	case statusCached:
		color = lipgloss.Color("39")
	case statusFailed:
		color = lipgloss.Color("196")
	case statusRunning:
		color = lipgloss.Color("33")
	case statusWaiting:
		color = lipgloss.Color("220")
	case statusQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row QuestionRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatAttempts formats attempt counts for display.
func formatAttempts(attempts int) string {
	if attempts <= 0 {
		return ""
	}
	return fmtInt(attempts)
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}
