// ABOUTME: Tavily search API client used by the news and book responders
// ABOUTME: Posts JSON queries to /search and decodes title/content results
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/harper/triage/internal/models"
)

const (
	// DefaultBaseURL is the public Tavily API endpoint
	DefaultBaseURL = "https://api.tavily.com"
	// DefaultMaxResults matches the responders' result budget
	DefaultMaxResults = 3
)

// Searcher runs a single search query against an external provider
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error)
}

// SearcherFunc adapts a function to the Searcher interface
type SearcherFunc func(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error)

// Search calls f(ctx, query, maxResults)
func (f SearcherFunc) Search(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error) {
	return f(ctx, query, maxResults)
}

// TavilyConfig holds configuration for the Tavily client
type TavilyConfig struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// TavilyClient talks to the Tavily /search endpoint.
// An empty API key is sent as-is; Tavily rejects it and the caller sees that error.
type TavilyClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTavilyClient creates a client with the default endpoint
func NewTavilyClient(apiKey string) *TavilyClient {
	return NewTavilyClientWithConfig(&TavilyConfig{APIKey: apiKey})
}

// NewTavilyClientWithConfig creates a client with custom configuration
func NewTavilyClientWithConfig(config *TavilyConfig) *TavilyClient {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &TavilyClient{
		apiKey:     config.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type searchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Query   string            `json:"query"`
	Answer  string            `json:"answer"`
	Results []json.RawMessage `json:"results"`
}

// Search posts query to Tavily and returns up to maxResults results
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) (*models.SearchResponse, error) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	body, err := json.Marshal(searchRequest{
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, data)
	}

	var decoded searchResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	out := &models.SearchResponse{
		Query:   decoded.Query,
		Answer:  decoded.Answer,
		Results: make([]models.SearchResult, 0, len(decoded.Results)),
	}
	raws := decoded.Results
	if len(raws) > maxResults {
		raws = raws[:maxResults]
	}
	for _, raw := range raws {
		result, ok, err := decodeResult(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding result: %w", err)
		}
		if ok {
			out.Results = append(out.Results, result)
		}
	}
	return out, nil
}

// decodeResult accepts a result object or a bare string.
// Anything else (null, numbers, arrays) is skipped with ok=false.
func decodeResult(raw json.RawMessage) (result models.SearchResult, ok bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return models.SearchResult{}, false, nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return models.SearchResult{}, false, err
		}
		return models.SearchResult{Bare: true, Raw: s}, true, nil
	case '{':
		var r struct {
			Title   *string `json:"title"`
			URL     string  `json:"url"`
			Content string  `json:"content"`
			Score   float64 `json:"score"`
		}
		if err := json.Unmarshal(trimmed, &r); err != nil {
			return models.SearchResult{}, false, err
		}
		result = models.SearchResult{URL: r.URL, Content: r.Content, Score: r.Score}
		if r.Title != nil {
			result.Title, result.TitleSet = *r.Title, true
		}
		return result, true, nil
	}
	return models.SearchResult{}, false, nil
}

// APIError is a non-2xx reply from the provider
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrUnauthorized matches any 401 APIError via errors.Is
var ErrUnauthorized = errors.New("unauthorized")

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// apiError pulls the provider's message out of {"detail": {"error": "..."}} when present
func apiError(status int, body []byte) error {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		var detail struct {
			Error string `json:"error"`
		}
		var detailStr string
		switch {
		case json.Unmarshal(payload.Detail, &detail) == nil && detail.Error != "":
			msg = detail.Error
		case json.Unmarshal(payload.Detail, &detailStr) == nil && detailStr != "":
			msg = detailStr
		case payload.Error != "":
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: fmt.Sprintf("%d %s", status, msg)}
}
