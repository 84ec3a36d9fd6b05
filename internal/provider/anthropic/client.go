// Package anthropic implements the provider handler for the Anthropic
// Messages API. Claude has no native JSON-schema response format, so the
// schema rides in the system prompt and the handler tolerates fenced output.
package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"surveyor/internal/logging"
	"surveyor/internal/provider"
	"surveyor/internal/question"
)

const (
	defaultModel     = "claude-sonnet-4-0"
	defaultMaxTokens = 4096
	defaultTimeout   = 60 * time.Second

	providerName = "anthropic"
)

// Options configures a Client.
type Options struct {
	Model      string
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	MaxTokens  int64
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client is a provider.Handler backed by the official Anthropic SDK.
type Client struct {
	client    sdk.Client
	model     sdk.Model
	maxTokens int64
	timeout   time.Duration
	logger    *slog.Logger
}

// New constructs an Anthropic handler.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("anthropic: api key is required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	// The workflow's retry policy owns retries; the SDK must not stack its
	// own on top.
	requestOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		requestOpts = append(requestOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.HTTPClient != nil {
		requestOpts = append(requestOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	return &Client{
		client:    sdk.NewClient(requestOpts...),
		model:     sdk.Model(model),
		maxTokens: maxTokens,
		timeout:   timeout,
		logger:    logger,
	}, nil
}

// Query sends one rendered question and returns its schema-conforming
// answer.
func (c *Client) Query(ctx context.Context, req provider.Request) (provider.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.logger.Debug("anthropic request", "model", c.model, "question", req.QuestionID)
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []sdk.TextBlockParam{
			{Type: "text", Text: systemPromptFor(req)},
		},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.RenderedText)),
		},
	})
	if err != nil {
		return provider.Response{}, providerErrorFrom(err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	content := extractJSON(text)
	if content == "" {
		return provider.Response{}, &provider.SchemaViolation{
			Detail: "no text content in response",
			Raw:    msg.RawJSON(),
		}
	}
	if err := req.Schema.Validate([]byte(content)); err != nil {
		return provider.Response{}, &provider.SchemaViolation{
			Detail: err.Error(),
			Raw:    content,
		}
	}
	return provider.Response{
		StructuredData: json.RawMessage(content),
		Citations:      extractCitations([]byte(content)),
		RawResponse:    msg.RawJSON(),
	}, nil
}

// systemPromptFor instructs the model to emit schema-conforming JSON and
// nothing else.
func systemPromptFor(req provider.Request) string {
	var b strings.Builder
	b.WriteString("Answer the user's question with a single JSON object conforming to the schema below. ")
	b.WriteString("Do not add prose before or after the JSON. ")
	b.WriteString("Field descriptions state what is expected for each field.\n\n")
	b.WriteString("JSON Schema:\n")
	b.WriteString(req.Schema.Doc())
	return b.String()
}

// providerErrorFrom maps SDK failures to the retryable provider error type.
func providerErrorFrom(err error) error {
	provErr := &provider.ProviderError{
		Provider: providerName,
		Message:  "request failed",
		Err:      err,
	}
	if errors.Is(err, context.DeadlineExceeded) {
		provErr.Message = "request timed out"
	}
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		provErr.StatusCode = apiErr.StatusCode
		provErr.Message = "api error"
		if apiErr.Response != nil {
			provErr.RetryAfter = retryAfterHeader(apiErr.Response)
		}
	}
	return provErr
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

// extractJSON strips a surrounding markdown code fence when present.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	rest := content[3:]
	if newline := strings.IndexByte(rest, '\n'); newline >= 0 {
		rest = rest[newline+1:]
	} else {
		rest = strings.TrimPrefix(rest, "json")
	}
	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// extractCitations surfaces a conventional citations field when the answer
// schema asked for one. Absent or differently-shaped fields yield none.
func extractCitations(data []byte) []question.Citation {
	var payload struct {
		Citations []question.Citation `json:"citations"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}
	return payload.Citations
}
