// ABOUTME: Accuracy, per-route precision and recall, and fallback rate for routing runs
// ABOUTME: Pure functions over case outcomes so scores are deterministic

package routing

import (
	"github.com/harper/triage/internal/models"
)

// Outcome is the result of routing one case
type Outcome struct {
	CaseID       string       `json:"case_id"`
	Query        string       `json:"query"`
	Expected     models.Route `json:"expected"`
	Got          models.Route `json:"got"`
	UsedFallback bool         `json:"used_fallback"`
}

// Correct reports whether the route matched the label
func (o Outcome) Correct() bool {
	return o.Expected == o.Got
}

// RouteScore holds precision and recall for one route
type RouteScore struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	Support   int     `json:"support"`
}

// Report summarizes a benchmark run
type Report struct {
	Total        int                   `json:"total"`
	Correct      int                   `json:"correct"`
	Accuracy     float64               `json:"accuracy"`
	FallbackRate float64               `json:"fallback_rate"`
	PerRoute     map[string]RouteScore `json:"per_route"`
	// Confusion[expected][got] counts outcomes
	Confusion map[string]map[string]int `json:"confusion"`
	Outcomes  []Outcome                 `json:"outcomes"`
}

// Score computes a Report from outcomes. Ratios with a zero denominator are 0.
func Score(outcomes []Outcome) Report {
	report := Report{
		Total:     len(outcomes),
		PerRoute:  make(map[string]RouteScore, len(models.Routes)),
		Confusion: make(map[string]map[string]int, len(models.Routes)),
		Outcomes:  outcomes,
	}

	fallbacks := 0
	for _, route := range models.Routes {
		report.Confusion[route.String()] = make(map[string]int, len(models.Routes))
	}
	for _, o := range outcomes {
		if o.Correct() {
			report.Correct++
		}
		if o.UsedFallback {
			fallbacks++
		}
		if row, ok := report.Confusion[o.Expected.String()]; ok {
			row[o.Got.String()]++
		}
	}

	report.Accuracy = ratio(report.Correct, report.Total)
	report.FallbackRate = ratio(fallbacks, report.Total)

	for _, route := range models.Routes {
		var truePos, predicted, actual int
		for _, o := range outcomes {
			if o.Got == route {
				predicted++
			}
			if o.Expected == route {
				actual++
				if o.Got == route {
					truePos++
				}
			}
		}
		report.PerRoute[route.String()] = RouteScore{
			Precision: ratio(truePos, predicted),
			Recall:    ratio(truePos, actual),
			Support:   actual,
		}
	}

	return report
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
