// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents route queries through triage via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/triage/internal/app"
	"github.com/harper/triage/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs triage as an MCP (Model Context Protocol) server, exposing the
route_query and classify_query tools to LLM agents via stdio.

Logs go to stderr; stdout carries only the protocol.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  triage mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "triage": {
  #       "command": "triage",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := app.New(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	server, handlers := mcp.NewServer(a.Workflow, a.Router)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Triage MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, gracefully shutting down...")
		}

		handlers.Shutdown()

		// Flush any buffered spans
		if err := a.Close(context.Background()); err != nil {
			log.Printf("Warning: Error flushing traces: %v", err)
		}

		if !quiet {
			log.Println("Shutdown complete")
		}

	case err := <-serverErr:
		_ = a.Close(context.Background())
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
