package live

import (
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the run header line.
func renderHeader(state State, now time.Time, spinnerView string, noColor bool) string {
	line := "Run " + state.RunID
	if state.Provider != "" {
		line += " | " + state.Provider
		if state.Model != "" {
			line += " (" + state.Model + ")"
		}
	}
	if !state.StartedAt.IsZero() {
		line += " | Elapsed: " + now.Sub(state.StartedAt).Round(100*time.Millisecond).String()
	}
	if state.inFlight() && spinnerView != "" {
		line += " " + spinnerView
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderSummary renders the status counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	total := state.Total
	if total < len(state.Rows) {
		total = len(state.Rows)
	}
	line := "Questions: " + fmtInt(total) +
		" Queued: " + fmtInt(counts.Queued) +
		" Running: " + fmtInt(counts.Running) +
		" Waiting: " + fmtInt(counts.Waiting) +
		" Cached: " + fmtInt(counts.Cached) +
		" Answered: " + fmtInt(counts.Answered) +
		" Failed: " + fmtInt(counts.Failed)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders the last event line or the completion notice.
func renderFooter(state State, noColor bool) string {
	if state.Finished {
		counts := state.Counts
		line := "Run complete: " + fmtInt(counts.Cached) + " cached, " +
			fmtInt(counts.Answered) + " answered, " + fmtInt(counts.Failed) + " failed"
		return stylize(line, noColor, lipgloss.Color("42"))
	}
	if state.LastEvent == "" {
		return ""
	}
	return stylize("Last event: "+state.LastEvent, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
