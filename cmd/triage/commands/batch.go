// ABOUTME: CLI command to answer a file of queries through the routing workflow
// ABOUTME: Each query is an independent invocation; results keep input order
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/harper/triage/internal/app"
	"github.com/harper/triage/internal/core"
)

var (
	batchConcurrency int
	batchRate        float64
)

// batchFile accepts either a bare list of queries or a document with a queries key
type batchFile struct {
	Queries []string `yaml:"queries"`
}

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Answer every query in a YAML or JSON file",
		Long: `Answer every query in a YAML or JSON file.

The file holds either a list of strings or a mapping with a "queries"
list. Each query runs as its own workflow invocation, so one failing
search does not affect the others. Results are printed in input order.

Examples:
  triage batch questions.yaml
  triage batch --concurrency 4 --rate 2 questions.json --format json`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}

	cmd.Flags().IntVar(&batchConcurrency, "concurrency", 1, "Maximum queries answered at once")
	cmd.Flags().Float64Var(&batchRate, "rate", 0, "Maximum queries started per second (0 = unlimited)")

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(batchConcurrency, "concurrency"); err != nil {
		return err
	}
	if batchRate < 0 {
		return fmt.Errorf("rate must not be negative, got %v", batchRate)
	}

	queries, err := loadBatchFile(args[0])
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

	results, err := answerAll(ctx, a.Workflow, queries, batchConcurrency, batchRate)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch format := resolveFormat(w); format {
	case "json", "yaml":
		return writeStructured(w, format, results)
	default:
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Q: %s\n[%s] %s\n", truncate(r.Query, 120), r.Route, r.Answer)
		}
		return nil
	}
}

// loadBatchFile parses path as YAML; JSON documents parse the same way
func loadBatchFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parsing batch file: %w", err)
	}
	if len(node.Content) == 0 {
		return nil, fmt.Errorf("batch file %s is empty", path)
	}

	var queries []string
	switch doc := node.Content[0]; doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&queries); err != nil {
			return nil, fmt.Errorf("parsing batch file: %w", err)
		}
	case yaml.MappingNode:
		var f batchFile
		if err := doc.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing batch file: %w", err)
		}
		queries = f.Queries
	default:
		return nil, fmt.Errorf("batch file must contain a list of queries")
	}

	if len(queries) == 0 {
		return nil, fmt.Errorf("batch file %s has no queries", path)
	}
	for i, q := range queries {
		if q == "" {
			return nil, fmt.Errorf("query %d is empty", i+1)
		}
	}
	return queries, nil
}

// answerAll runs one workflow invocation per query, at most concurrency at a time.
// A positive perSecond throttles how fast invocations start.
func answerAll(ctx context.Context, wf *core.Workflow, queries []string, concurrency int, perSecond float64) ([]answerOutput, error) {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if perSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}

	results := make([]answerOutput, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, q := range queries {
		g.Go(func() error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			state, err := wf.Run(ctx, q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i+1, err)
			}
			results[i] = newAnswerOutput(state)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
