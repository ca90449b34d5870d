// ABOUTME: CLI command to show the routing decision for a query
// ABOUTME: Runs only the classifier; no search or math responder is called
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/triage/internal/app"
)

// NewClassifyCmd creates the classify command
func NewClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [query]",
		Short: "Show which responder a question would be routed to",
		Long: `Show which responder a question would be routed to.

Prints NEWS, MATH, or BOOK without calling any responder. Use --verbose
to see whether the model or the keyword fallback made the decision.

Examples:
  triage classify "2 + 2"
  triage classify --format yaml "new book by Le Guin"`,
		RunE: runClassify,
	}

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	query, err := queryFromArgs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := app.New(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() { _ = a.Close(context.Background()) }()

	decision := a.Router.Route(ctx, query)

	w := cmd.OutOrStdout()
	switch format := resolveFormat(w); format {
	case "json", "yaml":
		return writeStructured(w, format, decision)
	default:
		fmt.Fprintln(w, decision.Route)
		if verbose {
			source := "model"
			if decision.UsedFallback {
				source = "keyword fallback"
			}
			fmt.Fprintf(w, "decided by %s on %q\n", source, truncate(decision.Input, 80))
		}
		return nil
	}
}
