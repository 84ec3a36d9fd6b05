// Package sonar implements the provider handler for the Perplexity Sonar
// chat-completions API with native structured output.
package sonar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"surveyor/internal/logging"
	"surveyor/internal/provider"
)

const (
	// defaultBaseURL is the Perplexity API base URL.
	defaultBaseURL = "https://api.perplexity.ai"
	// defaultModel is the cheapest search-grounded Sonar model.
	defaultModel = "sonar"
	// defaultTimeout bounds one request; structured output on a fresh schema
	// can be slow server-side.
	defaultTimeout = 60 * time.Second

	providerName = "sonar"
)

// HTTPDoer abstracts the HTTP client used by the handler.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	Model             string
	APIKey            string
	BaseURL           string
	Client            HTTPDoer
	Timeout           time.Duration
	RequestsPerSecond float64
	Logger            *slog.Logger
}

// Client is a provider.Handler that queries Perplexity Sonar. It is safe for
// concurrent use; outbound requests share one pacing limiter.
type Client struct {
	model   string
	apiKey  string
	baseURL string
	client  HTTPDoer
	timeout time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New constructs a Sonar handler with explicit settings.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("sonar: api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		model:   model,
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		timeout: timeout,
		limiter: limiter,
		logger:  logger,
	}, nil
}

// Query sends one rendered question and returns its schema-conforming
// answer. Transport failures come back as *provider.ProviderError and
// non-conforming payloads as *provider.SchemaViolation.
func (c *Client) Query(ctx context.Context, req provider.Request) (provider.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return provider.Response{}, &provider.ProviderError{
				Provider: providerName,
				Message:  "request pacing interrupted",
				Err:      err,
			}
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "user", Content: promptFor(req)},
		},
		ResponseFormat: &responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchemaFormat{Schema: json.RawMessage(req.Schema.Doc())},
		},
	})
	if err != nil {
		return provider.Response{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return provider.Response{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sonar request", "model", c.model, "question", req.QuestionID)
	resp, err := c.client.Do(httpReq)
	if err != nil {
		msg := "request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "request timed out"
		}
		return provider.Response{}, &provider.ProviderError{
			Provider: providerName,
			Message:  msg,
			Err:      err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.Response{}, &provider.ProviderError{
			Provider: providerName,
			Message:  "read response body",
			Err:      err,
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return provider.Response{}, &provider.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			RetryAfter: retryAfterHeader(resp),
		}
	}
	if len(body) == 0 {
		return provider.Response{}, &provider.ProviderError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Message:    "empty response body",
		}
	}
	return parseResponse(req, body)
}

// promptFor renders the user message: the question followed by the schema so
// the model sees field descriptions even when response_format is dropped
// server-side.
func promptFor(req provider.Request) string {
	var b strings.Builder
	b.WriteString(req.RenderedText)
	b.WriteString("\n\n")
	b.WriteString("Respond with JSON that conforms to the schema below. ")
	b.WriteString("Field descriptions state what is expected for each field.\n\n")
	b.WriteString("JSON Schema:\n")
	b.WriteString(req.Schema.Doc())
	return b.String()
}

// retryAfterHeader parses a Retry-After header given in seconds.
func retryAfterHeader(resp *http.Response) time.Duration {
	value := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
