package runner

import (
	"context"
	"fmt"
	"html"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

const reportStyle = `body{font-family:sans-serif;margin:2rem;color:#1a1a1a}
h1{font-size:1.3rem}
p.meta{color:#555}
table{border-collapse:collapse;margin-top:1rem}
th,td{border:1px solid #ccc;padding:0.35rem 0.6rem;text-align:left;font-size:0.9rem}
tr.cached td{background:#eef6ff}
tr.fresh td{background:#eefbee}
tr.failed td{background:#fdeaea}
p.warning{color:#8a5300}`

// RenderReportHTML renders the single-run report page into a string.
func RenderReportHTML(ctx context.Context, results Results) (string, error) {
	var builder strings.Builder
	if err := ReportPage(results).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// ReportPage builds the static HTML report for one run.
func ReportPage(results Results) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &htmlBuilder{w: w}
		b.writef("<!doctype html>\n<html><head><meta charset=\"utf-8\">")
		b.writef("<title>surveyor run %s</title>", html.EscapeString(results.RunID))
		b.writef("<style>%s</style></head><body>", reportStyle)
		b.writef("<h1>Run %s</h1>", html.EscapeString(results.RunID))

		b.writef(`<p class="meta">provider %s`, html.EscapeString(results.Provider.Kind))
		if results.Provider.Model != "" {
			b.writef(" (%s)", html.EscapeString(results.Provider.Model))
		}
		b.writef(" &middot; storage %s", html.EscapeString(results.Storage.Backend))
		b.writef(" &middot; started %s</p>", results.StartedAt.UTC().Format(time.RFC3339))

		b.writef(`<p class="summary">%d questions: %d cached, %d fresh, %d failed (%.0f%% answered)</p>`,
			results.Summary.QuestionsTotal, results.Summary.Cached,
			results.Summary.Fresh, results.Summary.Failed,
			results.Summary.SuccessRate*100)

		b.writef("<table><thead><tr><th>#</th><th>Question</th><th>Status</th><th>Attempts</th><th>Citations</th><th>Error</th></tr></thead><tbody>")
		for i, row := range results.Questions {
			b.writef(`<tr class="%s"><td>%d</td><td>%s</td><td>%s</td><td>%d</td><td>%d</td>`,
				html.EscapeString(row.Status), i+1,
				html.EscapeString(row.Question), html.EscapeString(row.Status),
				row.Attempts, row.Citations)
			if row.ErrorMessage != "" {
				b.writef("<td>%s: %s</td>", html.EscapeString(row.ErrorKind), html.EscapeString(row.ErrorMessage))
			} else {
				b.writef("<td></td>")
			}
			b.writef("</tr>")
		}
		b.writef("</tbody></table>")

		for _, warning := range results.Warnings {
			b.writef(`<p class="warning">%s</p>`, html.EscapeString(warning))
		}
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
