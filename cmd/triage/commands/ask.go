// ABOUTME: CLI command to answer a single query through the routing workflow
// ABOUTME: Reads the query from arguments or stdin and prints the routed answer
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/triage/internal/app"
	"github.com/harper/triage/internal/models"
)

// answerOutput is the structured form of one routed answer
type answerOutput struct {
	RunID        string `json:"run_id" yaml:"run_id"`
	Query        string `json:"query" yaml:"query"`
	Route        string `json:"route" yaml:"route"`
	Answer       string `json:"answer" yaml:"answer"`
	UsedFallback bool   `json:"used_fallback" yaml:"used_fallback"`
}

func newAnswerOutput(state *models.WorkflowState) answerOutput {
	out := answerOutput{
		RunID:  state.RunID,
		Query:  state.Query(),
		Route:  state.Route.String(),
		Answer: state.Answer,
	}
	if state.Decision != nil {
		out.UsedFallback = state.Decision.UsedFallback
	}
	return out
}

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Answer a question via the news, math, or book responder",
		Long: `Answer a question by routing it to the news, math, or book responder.

The query is classified by the language model when OPENAI_API_KEY is set,
and by keyword matching otherwise. With no arguments the query is read
from stdin.

Examples:
  triage ask "what is 12 * 7"
  triage ask "latest on the mars rover"
  echo "who wrote Dune" | triage ask --format json`,
		RunE: runAsk,
	}

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
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

	state, err := a.Workflow.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("routing query: %w", err)
	}

	return printAnswer(cmd, newAnswerOutput(state))
}

func printAnswer(cmd *cobra.Command, out answerOutput) error {
	w := cmd.OutOrStdout()
	switch format := resolveFormat(w); format {
	case "json", "yaml":
		return writeStructured(w, format, out)
	default:
		if !quiet {
			fmt.Fprintf(w, "[%s] ", out.Route)
		}
		fmt.Fprintln(w, out.Answer)
		return nil
	}
}
