// ABOUTME: Assembles the router, responders, and workflow from configuration
// ABOUTME: Shared by the CLI and the standalone MCP server binary
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/harper/triage/internal/config"
	"github.com/harper/triage/internal/core"
	"github.com/harper/triage/internal/llm"
	"github.com/harper/triage/internal/search"
	"github.com/harper/triage/internal/telemetry"
)

// App bundles everything needed to answer queries
type App struct {
	Config   *config.Config
	Router   *core.Router
	Workflow *core.Workflow

	shutdown telemetry.ShutdownFunc
}

// New loads .env files and the environment, then builds an App.
// Spans are written to traceOut when TRIAGE_TRACE=stdout.
func New(traceOut io.Writer) (*App, error) {
	if loaded, err := config.LoadDotEnv(); err != nil {
		return nil, err
	} else if len(loaded) > 0 {
		log.Printf("Loaded environment from %s", strings.Join(loaded, ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return NewWithConfig(cfg, traceOut)
}

// NewWithConfig builds an App from an already loaded configuration.
// A missing OpenAI key is not fatal: routing falls back to keywords.
func NewWithConfig(cfg *config.Config, traceOut io.Writer) (*App, error) {
	// Keep model an untyped nil when unset so the router sees no model
	var model llm.Completer
	if cfg.HasModel() {
		client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
			APIKey:     cfg.OpenAIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			ChatModel:  cfg.ChatModel,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("initializing OpenAI client: %w", err)
		}
		model = client
		log.Printf("Using OpenAI model %s", client.Model())
	} else {
		log.Println("Warning: OPENAI_API_KEY not set - routing uses keyword fallback")
	}

	if cfg.TavilyKey == "" {
		log.Println("Warning: TAVILY_API_KEY not set - news and book searches will fail")
	}
	searcher := search.NewTavilyClientWithConfig(&search.TavilyConfig{
		APIKey:  cfg.TavilyKey,
		BaseURL: cfg.TavilyBaseURL,
	})

	shutdown, err := telemetry.InitTracing(config.AppName, cfg.Trace == config.TraceStdout, traceOut)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}

	router := core.NewRouter(model)
	workflow, err := core.Compile(router, []core.Responder{
		core.NewNewsResponder(searcher, cfg.MaxResults),
		core.NewMathResponder(model),
		core.NewBookResponder(searcher, cfg.MaxResults),
	})
	if err != nil {
		_ = shutdown(context.Background())
		return nil, fmt.Errorf("compiling workflow: %w", err)
	}

	return &App{Config: cfg, Router: router, Workflow: workflow, shutdown: shutdown}, nil
}

// Close flushes any buffered spans
func (a *App) Close(ctx context.Context) error {
	if a.shutdown == nil {
		return nil
	}
	return a.shutdown(ctx)
}
