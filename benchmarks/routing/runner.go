// ABOUTME: Benchmark runner that routes labeled cases and collects a report
// ABOUTME: Classifies only; responders are never called

package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harper/triage/internal/core"
)

// BenchmarkRunner routes labeled cases through a Router
type BenchmarkRunner struct {
	router  *core.Router
	verbose bool
}

// NewBenchmarkRunner creates a runner around router
func NewBenchmarkRunner(router *core.Router, verbose bool) (*BenchmarkRunner, error) {
	if router == nil {
		return nil, fmt.Errorf("router is required")
	}
	return &BenchmarkRunner{router: router, verbose: verbose}, nil
}

// Run classifies every case in order and scores the outcomes
func (r *BenchmarkRunner) Run(ctx context.Context, cases []Case) (Report, error) {
	outcomes := make([]Outcome, 0, len(cases))
	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		decision := r.router.Route(ctx, c.Query)
		o := Outcome{
			CaseID:       c.ID,
			Query:        c.Query,
			Expected:     c.Expected,
			Got:          decision.Route,
			UsedFallback: decision.UsedFallback,
		}
		outcomes = append(outcomes, o)

		if r.verbose {
			mark := "✓"
			if !o.Correct() {
				mark = "✗"
			}
			fmt.Printf("%s %-8s expected=%-4s got=%-4s %q\n", mark, c.ID, c.Expected, o.Got, c.Query)
		}
	}
	return Score(outcomes), nil
}

// ExportReport writes the report as indented JSON
func (r *BenchmarkRunner) ExportReport(report Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
