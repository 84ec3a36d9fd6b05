package sonar

import (
	"encoding/json"
	"strings"

	"surveyor/internal/provider"
	"surveyor/internal/question"
)

// chatRequest is the chat-completions request body.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type       string           `json:"type"`
	JSONSchema jsonSchemaFormat `json:"json_schema"`
}

type jsonSchemaFormat struct {
	Schema json.RawMessage `json:"schema"`
}

// chatResponse is the subset of the chat-completions response the handler
// reads. Citations are bare URLs; search_results carry their titles.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations     []string       `json:"citations"`
	SearchResults []searchResult `json:"search_results"`
}

type searchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// parseResponse extracts, validates and enriches one successful response.
func parseResponse(req provider.Request, body []byte) (provider.Response, error) {
	var decoded chatResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return provider.Response{}, &provider.ProviderError{
			Provider: providerName,
			Message:  "malformed response body",
			Err:      err,
		}
	}
	if len(decoded.Choices) == 0 {
		return provider.Response{}, &provider.SchemaViolation{
			Detail: "response has no choices",
			Raw:    string(body),
		}
	}
	content := stripThink(decoded.Choices[0].Message.Content)
	if content == "" {
		return provider.Response{}, &provider.SchemaViolation{
			Detail: "empty content in response",
			Raw:    string(body),
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
		Citations:      enrichCitations(decoded.Citations, decoded.SearchResults),
		RawResponse:    string(body),
	}, nil
}

// stripThink drops the leading <think> block reasoning models prepend to the
// structured payload.
func stripThink(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "<think>") {
		if end := strings.Index(content, "</think>"); end >= 0 {
			content = content[end+len("</think>"):]
		}
	}
	return strings.TrimSpace(content)
}

// enrichCitations joins bare citation URLs against search results so each
// citation carries the page title (or snippet) as its claim text.
func enrichCitations(urls []string, results []searchResult) []question.Citation {
	if len(urls) == 0 {
		return nil
	}
	byURL := make(map[string]searchResult, len(results))
	for _, result := range results {
		if result.URL != "" {
			byURL[result.URL] = result
		}
	}
	citations := make([]question.Citation, 0, len(urls))
	for _, url := range urls {
		citation := question.Citation{URL: url}
		if match, ok := byURL[url]; ok {
			citation.Claim = match.Title
			if citation.Claim == "" {
				citation.Claim = match.Snippet
			}
		}
		citations = append(citations, citation)
	}
	return citations
}
