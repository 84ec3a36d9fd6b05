package report

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"

	"surveyor/internal/runner"
)

const indexStyle = `body{font-family:sans-serif;margin:2rem;color:#1a1a1a}
h1{font-size:1.3rem}
table{border-collapse:collapse;margin-top:1rem}
th,td{border:1px solid #ccc;padding:0.35rem 0.6rem;text-align:left;font-size:0.9rem}
td.failed{color:#a32020}
p.empty{color:#555}`

// renderIndexHTML renders the run index page into a string.
func renderIndexHTML(runs []runner.Results) (string, error) {
	var builder strings.Builder
	if err := IndexPage(runs).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// IndexPage builds the HTML overview of all runs, newest first. Each row
// links to the run's static report and raw results.
func IndexPage(runs []runner.Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &htmlBuilder{w: w}
		b.writef("<!doctype html>\n<html><head><meta charset=\"utf-8\">")
		b.writef("<title>surveyor runs</title>")
		b.writef("<style>%s</style></head><body>", indexStyle)
		b.writef("<h1>Surveyor runs</h1>")

		if len(runs) == 0 {
			b.writef(`<p class="empty">No runs recorded yet.</p>`)
			b.writef("</body></html>\n")
			return b.err
		}

		b.writef("<table><thead><tr><th>Run</th><th>Started</th><th>Provider</th><th>Questions</th><th>Cached</th><th>Fresh</th><th>Failed</th><th>Answered</th><th></th></tr></thead><tbody>")
		for _, run := range runs {
			id := html.EscapeString(run.RunID)
			b.writef(`<tr><td><a href="/runs/%s/report.html">%s</a></td>`, id, id)
			b.writef("<td>%s</td>", run.StartedAt.UTC().Format(time.RFC3339))
			provider := run.Provider.Kind
			if run.Provider.Model != "" {
				provider += " (" + run.Provider.Model + ")"
			}
			b.writef("<td>%s</td>", html.EscapeString(provider))
			b.writef("<td>%d</td><td>%d</td><td>%d</td>", run.Summary.QuestionsTotal, run.Summary.Cached, run.Summary.Fresh)
			failedClass := ""
			if run.Summary.Failed > 0 {
				failedClass = ` class="failed"`
			}
			b.writef("<td%s>%d</td>", failedClass, run.Summary.Failed)
			b.writef("<td>%s</td>", formatSuccessRate(run.Summary.SuccessRate))
			b.writef(`<td><a href="/runs/%s/results.json">results.json</a></td></tr>`, id)
		}
		b.writef("</tbody></table>")
		b.writef("</body></html>\n")
		return b.err
	})
}

// htmlBuilder latches the first write error so page assembly reads straight
// through.
type htmlBuilder struct {
	w   io.Writer
	err error
}

func (b *htmlBuilder) writef(format string, args ...any) {
	if b.err != nil {
		return
	}
	_, b.err = fmt.Fprintf(b.w, format, args...)
}
