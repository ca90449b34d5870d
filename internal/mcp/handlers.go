// ABOUTME: MCP tool handler implementations for the triage server
// ABOUTME: Tool failures are reported as tool-result errors, never as Go errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/harper/triage/internal/core"
	"github.com/harper/triage/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	workflow *core.Workflow
	router   *core.Router
	inflight *sync.WaitGroup // Track tool calls still running at shutdown
}

// RouteQuery handles the route_query tool
func (h *Handlers) RouteQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.inflight.Add(1)
	defer h.inflight.Done()

	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query argument is required and must be a non-empty string"), nil
	}

	state := models.NewWorkflowState("", query)
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		if raw, exists := args["history"]; exists {
			history, ok := toStrings(raw)
			if !ok {
				return mcp.NewToolResultError("history must be an array of strings"), nil
			}
			state.Messages = append(state.Messages, history...)
		}
	}

	final, err := h.workflow.Invoke(ctx, state)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("routing failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"run_id":        final.RunID,
		"route":         final.Route.String(),
		"answer":        final.Answer,
		"used_fallback": final.Decision.UsedFallback,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ClassifyQuery handles the classify_query tool
func (h *Handlers) ClassifyQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.inflight.Add(1)
	defer h.inflight.Done()

	query, err := request.RequireString("query")
	if err != nil || strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query argument is required and must be a non-empty string"), nil
	}

	decision := h.router.Route(ctx, query)

	responseJSON, err := json.Marshal(decision)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// Shutdown waits for in-flight tool calls to complete
func (h *Handlers) Shutdown() {
	log.Println("Waiting for in-flight tool calls to complete...")
	h.inflight.Wait()
	log.Println("All tool calls completed")
}

// toStrings converts a JSON array argument into a string slice
func toStrings(raw interface{}) ([]string, bool) {
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
