// ABOUTME: Tests for Router classification and keyword fallback
// ABOUTME: Verifies match precedence, model normalization, and failure degradation

package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/harper/triage/internal/llm"
	"github.com/harper/triage/internal/models"
)

func staticModel(reply string) llm.Completer {
	return llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return reply, nil
	})
}

func failingModel(err error) llm.Completer {
	return llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", err
	})
}

func TestClassifyText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.Route
	}{
		{"news label", "news_agent", models.RouteNews},
		{"book label", "book_agent", models.RouteBook},
		{"math label", "math_agent", models.RouteMath},
		{"uppercase news", "NEWS", models.RouteNews},
		{"news beats book", "book news", models.RouteNews},
		{"news beats operators", "news about 2+2", models.RouteNews},
		{"news beats math", "math news", models.RouteNews},
		{"book beats operators", "book priced 10*2", models.RouteBook},
		{"book beats math", "math book", models.RouteBook},
		{"plus", "2+2", models.RouteMath},
		{"minus", "10-3", models.RouteMath},
		{"star", "6*7", models.RouteMath},
		{"slash", "8/2", models.RouteMath},
		{"equals", "x = 4", models.RouteMath},
		{"math word", "mathematics homework", models.RouteMath},
		{"hyphenated words count as math", "state-of-the-art", models.RouteMath},
		{"substring news", "newsletter", models.RouteNews},
		{"substring book", "facebook", models.RouteBook},
		{"empty", "", models.RouteNews},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyText(tt.text); got != tt.want {
				t.Errorf("ClassifyText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// NEWS is the default when nothing matches; pinned so a change is deliberate
func TestClassifyText_DefaultsToNews(t *testing.T) {
	for _, text := range []string{"hello there", "who wrote it", "weather in paris", "?"} {
		if got := ClassifyText(text); got != models.RouteNews {
			t.Errorf("ClassifyText(%q) = %v, want NEWS default", text, got)
		}
	}
}

func TestClassifyText_Precedence(t *testing.T) {
	fillers := []string{"", "tell me ", "2+2 ", "math ", "book ", "x=1 "}

	for _, a := range fillers {
		for _, b := range fillers {
			withNews := a + "news" + " " + b
			if got := ClassifyText(withNews); got != models.RouteNews {
				t.Errorf("ClassifyText(%q) = %v, want NEWS", withNews, got)
			}

			withBook := strings.ReplaceAll(a+"book "+b, "news", "")
			if got := ClassifyText(withBook); got != models.RouteBook {
				t.Errorf("ClassifyText(%q) = %v, want BOOK", withBook, got)
			}
		}
	}
}

func TestRouter_UsesModelReply(t *testing.T) {
	tests := []struct {
		reply string
		want  models.Route
	}{
		{"news_agent", models.RouteNews},
		{"  MATH_AGENT \n", models.RouteMath},
		{"book_agent", models.RouteBook},
		{"I think book_agent is best", models.RouteBook},
		{"no idea", models.RouteNews},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			router := NewRouter(staticModel(tt.reply))
			// The query would route to MATH on its own; the model reply must win
			decision := router.Route(context.Background(), "12 * 7")

			if decision.Route != tt.want {
				t.Errorf("Route = %v, want %v", decision.Route, tt.want)
			}
			if decision.UsedFallback {
				t.Error("UsedFallback = true, want false when the model answered")
			}
			if decision.Input != strings.ToLower(strings.TrimSpace(tt.reply)) {
				t.Errorf("Input = %q, want normalized reply", decision.Input)
			}
		})
	}
}

func TestRouter_ModelFailureFallsBackToQuery(t *testing.T) {
	router := NewRouter(failingModel(errors.New("connection refused")))

	tests := []struct {
		query string
		want  models.Route
	}{
		{"What is 12 * 7?", models.RouteMath},
		{"Any NEWS on the election?", models.RouteNews},
		{"Best Book by Ursula Le Guin", models.RouteBook},
		{"tell me something", models.RouteNews},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			decision := router.Route(context.Background(), tt.query)
			if decision.Route != tt.want {
				t.Errorf("Route = %v, want %v", decision.Route, tt.want)
			}
			if !decision.UsedFallback {
				t.Error("UsedFallback = false, want true after model failure")
			}
			if decision.Input != strings.ToLower(tt.query) {
				t.Errorf("Input = %q, want lowercased query", decision.Input)
			}
		})
	}
}

func TestRouter_NilModel(t *testing.T) {
	router := NewRouter(nil)

	decision := router.Route(context.Background(), "3/4")
	if decision.Route != models.RouteMath {
		t.Errorf("Route = %v, want MATH", decision.Route)
	}
	if !decision.UsedFallback {
		t.Error("UsedFallback = false, want true with no model")
	}
}

func TestRouter_PromptContents(t *testing.T) {
	var gotPrompt string
	router := NewRouter(llm.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "news_agent", nil
	}))

	router.Route(context.Background(), "who won the match last night")

	for _, want := range []string{"who won the match last night", "news_agent", "math_agent", "book_agent"} {
		if !strings.Contains(gotPrompt, want) {
			t.Errorf("prompt should contain %q, got:\n%s", want, gotPrompt)
		}
	}
	if gotPrompt != BuildClassificationPrompt("who won the match last night") {
		t.Error("Route should send BuildClassificationPrompt(query)")
	}
}

func TestRouter_RecordsSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	router := NewRouter(failingModel(errors.New("boom")), WithTracerProvider(tp))
	router.Route(context.Background(), "2+2")

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("len(spans) = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "router.classify" {
		t.Errorf("span name = %q", span.Name())
	}

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["route"].AsString() != "MATH" {
		t.Errorf("route attribute = %q, want MATH", attrs["route"].AsString())
	}
	if !attrs["used_fallback"].AsBool() {
		t.Error("used_fallback attribute should be true")
	}
	if len(span.Events()) == 0 {
		t.Error("model error should be recorded as a span event")
	}
}
