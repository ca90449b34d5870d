// ABOUTME: Router classifies a query into NEWS, MATH, or BOOK
// ABOUTME: Asks the language model first, then applies deterministic keyword matching
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/harper/triage/internal/llm"
	"github.com/harper/triage/internal/models"
	"github.com/harper/triage/internal/telemetry"
)

const classificationPrompt = `You are a routing agent. Pick the single best agent for this query: %s

Available agents:
- news_agent: Provides the latest news on a topic.
- math_agent: Solves arithmetic and math problems.
- book_agent: Looks up information about books.

Reply with only the agent name: news_agent, math_agent, or book_agent.`

// arithmeticChars mark a classification text as math when no keyword matched first
const arithmeticChars = "+-*/="

// Router is the decision function consulted at the workflow's branch point
type Router struct {
	model  llm.Completer
	tracer trace.Tracer
}

// NewRouter creates a Router. A nil model routes every query by keyword fallback.
func NewRouter(model llm.Completer, opts ...Option) *Router {
	o := buildOptions(opts)
	return &Router{
		model:  model,
		tracer: telemetry.Tracer(o.tracerProvider),
	}
}

// BuildClassificationPrompt embeds the query and the candidate agents
func BuildClassificationPrompt(query string) string {
	return fmt.Sprintf(classificationPrompt, query)
}

// Route returns exactly one route for query. Model failures are logged and
// degrade to matching the raw query; they are never returned.
func (r *Router) Route(ctx context.Context, query string) models.RoutingDecision {
	ctx, span := r.tracer.Start(ctx, "router.classify")
	defer span.End()

	input, usedFallback := query, true
	if r.model != nil {
		reply, err := r.model.Complete(ctx, BuildClassificationPrompt(query))
		if err != nil {
			log.Printf("[Router] Model classification failed, using keyword fallback: %v", err)
			span.RecordError(err)
		} else {
			input, usedFallback = reply, false
		}
	}

	normalized := normalize(input)
	decision := models.RoutingDecision{
		Route:        ClassifyText(normalized),
		Input:        normalized,
		UsedFallback: usedFallback,
	}

	span.SetAttributes(
		attribute.String("route", decision.Route.String()),
		attribute.Bool("used_fallback", decision.UsedFallback),
	)
	return decision
}

// ClassifyText maps classification text to a route. Order matters:
// "news" wins over everything, then "book", then arithmetic characters or
// "math". Anything else defaults to NEWS.
func ClassifyText(text string) models.Route {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "news"):
		return models.RouteNews
	case strings.Contains(text, "book"):
		return models.RouteBook
	case strings.ContainsAny(text, arithmeticChars), strings.Contains(text, "math"):
		return models.RouteMath
	default:
		return models.RouteNews
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
