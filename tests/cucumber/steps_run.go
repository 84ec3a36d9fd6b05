//go:build cucumber

package cucumber

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"

	"surveyor/internal/cli"
)

// stubAnswer is a chat-completions response whose content conforms to the
// population schema used by the scenario config.
const stubAnswer = `{
  "choices": [
    {"message": {"content": "{\"population\": 68000000}"}}
  ],
  "citations": ["https://example.com/population"],
  "search_results": [
    {"url": "https://example.com/population", "title": "Population statistics"}
  ]
}`

// iRunCommand executes a CLI command for the scenario.
func (s *featureState) iRunCommand(command string) error {
	args := strings.Fields(command)
	if len(args) == 0 {
		return fmt.Errorf("command is empty")
	}
	if args[0] == "surveyor" {
		args = args[1:]
	}
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// aStubProviderIsListening starts an HTTP stub for the provider API and
// points the CLI at it through the environment.
func (s *featureState) aStubProviderIsListening() error {
	if s.provider != nil {
		return nil
	}
	s.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.requests, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, stubAnswer)
	}))
	if err := s.setEnv("PERPLEXITY_API_KEY", "test-key"); err != nil {
		return err
	}
	return s.setEnv("PERPLEXITY_BASE_URL", s.provider.URL)
}

// theStubProviderServedRequests asserts the cumulative provider request count.
func (s *featureState) theStubProviderServedRequests(expected int) error {
	if s.provider == nil {
		return fmt.Errorf("stub provider is not listening")
	}
	if got := atomic.LoadInt64(&s.requests); got != int64(expected) {
		return fmt.Errorf("expected %d provider requests, got %d", expected, got)
	}
	return nil
}
