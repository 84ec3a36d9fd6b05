package reportserver

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"surveyor/internal/report"
)

// NewHandler builds the HTTP handler for the run index and run files.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("reportserver: output dir is required")
	}

	mux := http.NewServeMux()
	mux.Handle("/", serveIndex(cfg.OutputDir))
	mux.Handle("/runs/", serveRunFiles(cfg.OutputDir))
	return mux, nil
}

// serveIndex renders the run overview. Runs are listed per request so new
// runs appear without restarting the server.
func serveIndex(outputDir string) http.Handler {
	index := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		runs, err := report.ListRuns(outputDir)
		if err != nil {
			return err
		}
		return report.IndexPage(runs).Render(ctx, w)
	})
	handler := templ.Handler(index)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

// serveRunFiles serves report.html and results.json for recorded runs.
func serveRunFiles(outputDir string) http.Handler {
	files := http.StripPrefix("/runs/", http.FileServer(http.Dir(outputDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		files.ServeHTTP(w, r)
	})
}
