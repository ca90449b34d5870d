// ABOUTME: MCP tool definitions and registration for the triage server
// ABOUTME: Exposes full query routing and classification-only tools over MCP
package mcp

import (
	"sync"

	"github.com/harper/triage/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerName and ServerVersion identify the MCP server to clients
const (
	ServerName    = "Triage Query Router"
	ServerVersion = "0.1.0"
)

// NewServer creates an MCP server with all tools registered
func NewServer(workflow *core.Workflow, router *core.Router) (*mcpserver.MCPServer, *Handlers) {
	server := mcpserver.NewMCPServer(ServerName, ServerVersion)
	handlers := RegisterTools(server, workflow, router)
	return server, handlers
}

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, workflow *core.Workflow, router *core.Router) *Handlers {
	handlers := &Handlers{
		workflow: workflow,
		router:   router,
		inflight: &sync.WaitGroup{},
	}

	// 1. route_query - classify and answer a query
	server.AddTool(mcp.Tool{
		Name:        "route_query",
		Description: "Answer a query by routing it to the news, book, or math responder. Returns the chosen route and the responder's answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The user's question",
				},
				"history": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Optional follow-up messages; the first message routes, the last one is answered",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RouteQuery)

	// 2. classify_query - routing decision only
	server.AddTool(mcp.Tool{
		Name:        "classify_query",
		Description: "Classify a query as NEWS, MATH, or BOOK without calling any responder.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "The user's question",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.ClassifyQuery)

	return handlers
}
