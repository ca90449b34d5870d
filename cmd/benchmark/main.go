// ABOUTME: Command-line runner for the routing classification benchmark
// ABOUTME: Routes labeled queries and writes accuracy results as JSON

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"

	"github.com/harper/triage/benchmarks/routing"
	"github.com/harper/triage/internal/app"
)

func main() {
	keywordOnly := flag.Bool("keyword-only", false, "Run only cases the keyword fallback should get right")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	minAccuracy := flag.Float64("min-accuracy", 0, "Exit non-zero when accuracy falls below this value")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	// Router logs every model failure; keep them out of the summary unless asked
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	a, err := app.New(os.Stderr)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer a.Close(context.Background())

	cases := routing.DefaultCases()
	if *keywordOnly || !a.Config.HasModel() {
		if !a.Config.HasModel() {
			fmt.Println("OPENAI_API_KEY not set - running keyword-only cases")
		}
		cases = routing.KeywordCases(cases)
	}

	fmt.Println("========================================")
	fmt.Println("Triage Routing Benchmark")
	fmt.Println("========================================")
	fmt.Printf("Cases: %d\n\n", len(cases))

	runner, err := routing.NewBenchmarkRunner(a.Router, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	report, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")
	fmt.Printf("Accuracy:      %.2f (%d/%d)\n", report.Accuracy, report.Correct, report.Total)
	fmt.Printf("Fallback rate: %.2f\n", report.FallbackRate)

	routes := make([]string, 0, len(report.PerRoute))
	for route := range report.PerRoute {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	for _, route := range routes {
		s := report.PerRoute[route]
		fmt.Printf("  %-4s precision=%.2f recall=%.2f support=%d\n", route, s.Precision, s.Recall, s.Support)
	}
	fmt.Println("========================================")

	if err := runner.ExportReport(report, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if report.Accuracy < *minAccuracy {
		fmt.Fprintf(os.Stderr, "accuracy %.2f below minimum %.2f\n", report.Accuracy, *minAccuracy)
		os.Exit(1)
	}
}
