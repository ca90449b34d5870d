// ABOUTME: Workflow sequences classify → dispatch to one responder → done
// ABOUTME: Fixed topology compiled once; every invocation works on its own state copy
package core

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/harper/triage/internal/models"
	"github.com/harper/triage/internal/telemetry"
)

// ErrEmptyHistory is returned when a state carries no messages to route
var ErrEmptyHistory = errors.New("workflow state has no messages")

// Workflow is the compiled graph:
//
//	START → router_agent ─┬─ news_agent ─┐
//	                      ├─ math_agent ─┼→ END
//	                      └─ book_agent ─┘
//
// It holds no mutable state, so one Workflow serves concurrent invocations.
type Workflow struct {
	router *Router
	news   Responder
	math   Responder
	book   Responder
	tracer trace.Tracer
}

// Compile validates that every route has exactly one responder and returns the workflow
func Compile(router *Router, responders []Responder, opts ...Option) (*Workflow, error) {
	if router == nil {
		return nil, fmt.Errorf("router is required")
	}

	o := buildOptions(opts)
	w := &Workflow{
		router: router,
		tracer: telemetry.Tracer(o.tracerProvider),
	}

	for _, r := range responders {
		if r == nil {
			return nil, fmt.Errorf("responder cannot be nil")
		}
		var slot *Responder
		switch r.Route() {
		case models.RouteNews:
			slot = &w.news
		case models.RouteMath:
			slot = &w.math
		case models.RouteBook:
			slot = &w.book
		default:
			return nil, fmt.Errorf("responder has unknown route %v", r.Route())
		}
		if *slot != nil {
			return nil, fmt.Errorf("duplicate responder for route %v", r.Route())
		}
		*slot = r
	}

	for _, route := range models.Routes {
		if w.responder(route) == nil {
			return nil, fmt.Errorf("no responder for route %v", route)
		}
	}

	return w, nil
}

// responder is the exhaustive branch on the routing decision
func (w *Workflow) responder(route models.Route) Responder {
	switch route {
	case models.RouteNews:
		return w.news
	case models.RouteMath:
		return w.math
	case models.RouteBook:
		return w.book
	}
	return nil
}

// Run starts a fresh invocation for a single query
func (w *Workflow) Run(ctx context.Context, query string) (*models.WorkflowState, error) {
	return w.Invoke(ctx, models.NewWorkflowState(uuid.New().String(), query))
}

// Invoke routes the first message, dispatches the last message to the chosen
// responder, and returns the final state. The input state is not modified.
func (w *Workflow) Invoke(ctx context.Context, initial *models.WorkflowState) (*models.WorkflowState, error) {
	if initial == nil || len(initial.Messages) == 0 {
		return nil, ErrEmptyHistory
	}

	state := initial.Clone()
	if state.RunID == "" {
		state.RunID = uuid.New().String()
	}
	state.Phase = models.PhaseStart
	state.Answer = ""
	state.Decision = nil

	ctx, span := w.tracer.Start(ctx, "workflow.invoke", trace.WithAttributes(
		attribute.String("run_id", state.RunID),
	))
	defer span.End()

	// router_agent is a pass-through node; the decision is made at the branch
	w.transition(state, models.PhaseRouting)
	decision := w.router.Route(ctx, state.Query())
	state.Decision = &decision
	state.Route = decision.Route

	responder := w.responder(decision.Route)
	if responder == nil {
		return nil, fmt.Errorf("no responder for route %v", decision.Route)
	}
	w.transition(state, models.PhaseDispatched)

	result := w.respond(ctx, responder, state.Last())
	state.Answer = result.Render()
	w.transition(state, models.PhaseDone)

	span.SetAttributes(
		attribute.String("route", decision.Route.String()),
		attribute.Bool("used_fallback", decision.UsedFallback),
		attribute.Bool("responder_failed", result.Failed()),
	)
	return state, nil
}

func (w *Workflow) respond(ctx context.Context, r Responder, query string) models.Result {
	ctx, span := w.tracer.Start(ctx, "responder."+r.Route().Node())
	defer span.End()

	result := respondSafely(ctx, r, query)
	if result.Failed() {
		span.RecordError(result.Err)
		log.Printf("[Workflow] %s failed: %v", r.Route().Node(), result.Err)
	}
	return result
}

func (w *Workflow) transition(state *models.WorkflowState, to models.Phase) {
	log.Printf("[Workflow] run=%s %s → %s", state.RunID, state.Phase, to)
	state.Phase = to
}
