package report

import (
	"surveyor/internal/runner"
)

// BuildIndexHTML renders the run overview page for a set of runs.
func BuildIndexHTML(runs []runner.Results) string {
	html, err := renderIndexHTML(runs)
	if err != nil {
		return ""
	}
	return html
}
