package report

import "fmt"

// formatSuccessRate returns a percentage string for index output.
func formatSuccessRate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}
