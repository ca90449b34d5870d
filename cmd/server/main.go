// ABOUTME: Main entry point for the triage MCP server with stdio transport
// ABOUTME: Builds the routing workflow and serves route_query and classify_query
package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/harper/triage/internal/app"
	"github.com/harper/triage/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// stdout carries the protocol; logs and spans go to stderr
	log.SetOutput(os.Stderr)

	if err := run(os.Stderr, func(s *mcpserver.MCPServer) error {
		return mcpserver.ServeStdio(s)
	}); err != nil {
		log.Printf("Server error: %v", err)
		os.Exit(1)
	}
}

// run builds the server, hands it to serve, and flushes spans before returning
func run(traceOut io.Writer, serve func(*mcpserver.MCPServer) error) (err error) {
	a, err := app.New(traceOut)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(context.Background()); cerr != nil && err == nil {
			err = cerr
		}
	}()

	server, _ := mcp.NewServer(a.Workflow, a.Router)

	log.Println("Triage MCP server starting on stdio...")
	return serve(server)
}
