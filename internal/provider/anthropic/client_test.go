package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"surveyor/internal/provider"
	"surveyor/internal/schema"
)

const statsSchemaDoc = `{
	"type": "object",
	"properties": {
		"population": {"type": "number"},
		"citations": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"claim": {"type": "string"},
					"url": {"type": "string"}
				}
			}
		}
	},
	"required": ["population"]
}`

func testRequest(t *testing.T) provider.Request {
	t.Helper()
	s, err := schema.New("country_stats", []byte(statsSchemaDoc))
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	return provider.Request{
		QuestionID:   "q-1",
		RenderedText: "What is the population of Germany?",
		Schema:       s,
	}
}

// messagesResponse renders a minimal Messages API response with the given
// assistant text.
func messagesResponse(text string) string {
	encoded, _ := json.Marshal(text)
	return fmt.Sprintf(`{
		"id": "msg_test",
		"type": "message",
		"role": "assistant",
		"model": "claude-sonnet-4-0",
		"content": [{"type": "text", "text": %s}],
		"stop_reason": "end_turn",
		"usage": {"input_tokens": 12, "output_tokens": 34}
	}`, encoded)
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := New(Options{
		APIKey:     "test-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Timeout:    5 * time.Second,
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestClientQueryParsesFencedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messagesResponse("```json\n{\"population\": 83.2}\n```"))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	resp, err := client.Query(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var decoded struct {
		Population float64 `json:"population"`
	}
	if err := json.Unmarshal(resp.StructuredData, &decoded); err != nil {
		t.Fatalf("decode structured data: %v", err)
	}
	if decoded.Population != 83.2 {
		t.Fatalf("unexpected population %v", decoded.Population)
	}
	if resp.RawResponse == "" {
		t.Fatalf("expected raw response to be preserved")
	}
}

func TestClientQueryCitationsFromPayload(t *testing.T) {
	answer := `{"population": 83.2, "citations": [{"claim": "83.2 million", "url": "https://example.org/de"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messagesResponse(answer))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	resp, err := client.Query(context.Background(), testRequest(t))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(resp.Citations) != 1 {
		t.Fatalf("unexpected citations: %+v", resp.Citations)
	}
	if resp.Citations[0].URL != "https://example.org/de" || resp.Citations[0].Claim != "83.2 million" {
		t.Fatalf("unexpected citation: %+v", resp.Citations[0])
	}
}

func TestClientQuerySchemaViolation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, messagesResponse(`{"capital": "Berlin"}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	_, err := client.Query(context.Background(), testRequest(t))
	var violation *provider.SchemaViolation
	if !errors.As(err, &violation) {
		t.Fatalf("expected SchemaViolation, got %v", err)
	}
}

func TestClientQueryAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"type": "error", "error": {"type": "rate_limit_error", "message": "rate limited"}}`)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(t, server)
	_, err := client.Query(context.Background(), testRequest(t))
	var provErr *provider.ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if provErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("unexpected status %d", provErr.StatusCode)
	}
	if provErr.RetryAfter != 3*time.Second {
		t.Fatalf("unexpected retry-after %v", provErr.RetryAfter)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected missing api key error")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "bare json", content: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", content: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "plain fence", content: "```\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "single line fence", content: "```json{\"a\":1}```", want: `{"a":1}`},
		{name: "surrounding space", content: "\n  {\"a\":1}  \n", want: `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.content); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.content, got, tc.want)
			}
		})
	}
}
