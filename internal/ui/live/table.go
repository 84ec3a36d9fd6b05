package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the question table layout for an unknown width.
func defaultColumns() []table.Column {
	return columnsForWidth(110)
}

// columnsForWidth sizes the question column to fill the terminal.
func columnsForWidth(width int) []table.Column {
	const fixed = 4 + 26 + 8 + 8
	question := width - fixed - 10
	if question < 24 {
		question = 24
	}
	if question > 78 {
		question = 78
	}
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Question", Width: question},
		{Title: "Status", Width: 26},
		{Title: "Attempts", Width: 8},
		{Title: "Elapsed", Width: 8},
	}
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatQuestionLabel(row),
			formatQuestionText(row.Text),
			formatStatus(row, noColor),
			formatAttempts(row.Attempts),
			formatRowDuration(row, now),
		})
	}
	return rows
}
