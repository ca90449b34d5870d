// ABOUTME: News, book, and math responders that turn a query into an answer
// ABOUTME: Each delegates to the search provider or language model and never fails outward
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/triage/internal/llm"
	"github.com/harper/triage/internal/mathexpr"
	"github.com/harper/triage/internal/models"
	"github.com/harper/triage/internal/search"
)

const (
	newsQueryPrefix = "latest news about "
	bookQueryPrefix = "book information "

	// contentPreviewRunes bounds each result's content in the formatted answer
	contentPreviewRunes = 200

	mathPrompt = "Solve the following math problem and return only the final answer:\n\n%s"
)

// ErrNoSearcher is reported when a search responder has no provider
var ErrNoSearcher = errors.New("search provider not configured")

// Responder produces an answer for a query on one route
type Responder interface {
	Route() models.Route
	Respond(ctx context.Context, query string) models.Result
}

// Answer runs r and renders its result as the boundary string
func Answer(ctx context.Context, r Responder, query string) string {
	return respondSafely(ctx, r, query).Render()
}

// respondSafely converts a panicking responder into an error result
func respondSafely(ctx context.Context, r Responder, query string) (result models.Result) {
	defer func() {
		if p := recover(); p != nil {
			result = models.Err(r.Route(), fmt.Errorf("%v", p))
		}
	}()
	return r.Respond(ctx, query)
}

// SearchResponder answers by querying the search provider with a fixed prefix
type SearchResponder struct {
	route      models.Route
	prefix     string
	searcher   search.Searcher
	maxResults int
}

// NewNewsResponder searches "latest news about <query>"
func NewNewsResponder(searcher search.Searcher, maxResults int) *SearchResponder {
	return newSearchResponder(models.RouteNews, newsQueryPrefix, searcher, maxResults)
}

// NewBookResponder searches "book information <query>"
func NewBookResponder(searcher search.Searcher, maxResults int) *SearchResponder {
	return newSearchResponder(models.RouteBook, bookQueryPrefix, searcher, maxResults)
}

func newSearchResponder(route models.Route, prefix string, searcher search.Searcher, maxResults int) *SearchResponder {
	if maxResults <= 0 {
		maxResults = search.DefaultMaxResults
	}
	return &SearchResponder{
		route:      route,
		prefix:     prefix,
		searcher:   searcher,
		maxResults: maxResults,
	}
}

func (s *SearchResponder) Route() models.Route {
	return s.route
}

func (s *SearchResponder) Respond(ctx context.Context, query string) models.Result {
	if s.searcher == nil {
		return models.Err(s.route, ErrNoSearcher)
	}

	resp, err := s.searcher.Search(ctx, s.prefix+query, s.maxResults)
	if err != nil {
		return models.Err(s.route, err)
	}
	if resp == nil {
		return models.Empty(s.route)
	}

	formatted := FormatResults(resp.Results)
	if formatted == "" {
		return models.Empty(s.route)
	}
	return models.Ok(s.route, formatted)
}

// FormatResults renders one "- title: preview..." line per result.
// The preview is the first 200 runes of content and always ends in "...".
// Only a result with no title key at all is shown as "Untitled".
func FormatResults(results []models.SearchResult) string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		if r.Bare {
			lines = append(lines, "- "+r.Raw)
			continue
		}
		title := r.Title
		if title == "" && !r.TitleSet {
			title = "Untitled"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s...", title, truncateRunes(r.Content, contentPreviewRunes)))
	}
	return strings.Join(lines, "\n")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// MathResponder evaluates plain arithmetic locally and sends anything else to the model
type MathResponder struct {
	model llm.Completer
}

// NewMathResponder creates a MathResponder. A nil model fails word problems with ErrNoModel.
func NewMathResponder(model llm.Completer) *MathResponder {
	return &MathResponder{model: model}
}

func (m *MathResponder) Route() models.Route {
	return models.RouteMath
}

func (m *MathResponder) Respond(ctx context.Context, expression string) models.Result {
	if mathexpr.Allowed(expression) {
		v, err := mathexpr.Evaluate(expression)
		if err != nil {
			return models.Err(models.RouteMath, err)
		}
		return models.Ok(models.RouteMath, v.String())
	}

	if m.model == nil {
		return models.Err(models.RouteMath, llm.ErrNoModel)
	}
	reply, err := m.model.Complete(ctx, fmt.Sprintf(mathPrompt, expression))
	if err != nil {
		return models.Err(models.RouteMath, err)
	}
	return models.Ok(models.RouteMath, strings.TrimSpace(reply))
}
