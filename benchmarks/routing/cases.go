// ABOUTME: Labeled routing cases for the classification benchmark
// ABOUTME: Each case pairs a user query with the route a reader would expect

package routing

import "github.com/harper/triage/internal/models"

// Case is one labeled query
type Case struct {
	ID       string       `json:"id" yaml:"id"`
	Query    string       `json:"query" yaml:"query"`
	Expected models.Route `json:"expected" yaml:"expected"`
	// KeywordOnly marks cases the keyword fallback is expected to get right
	KeywordOnly bool `json:"keyword_only" yaml:"keyword_only"`
}

// DefaultCases returns the built-in labeled set
func DefaultCases() []Case {
	return []Case{
		{ID: "news-1", Query: "What's the latest news on the Mars rover?", Expected: models.RouteNews, KeywordOnly: true},
		{ID: "news-2", Query: "Who won the election in Brazil?", Expected: models.RouteNews, KeywordOnly: true},
		{ID: "news-3", Query: "Any updates about the stock market today", Expected: models.RouteNews, KeywordOnly: true},
		{ID: "news-4", Query: "Breaking: earthquake in Chile", Expected: models.RouteNews, KeywordOnly: true},
		{ID: "news-5", Query: "What happened at the G20 summit", Expected: models.RouteNews, KeywordOnly: true},

		{ID: "math-1", Query: "2 + 2", Expected: models.RouteMath, KeywordOnly: true},
		{ID: "math-2", Query: "What is 12 * 7?", Expected: models.RouteMath, KeywordOnly: true},
		{ID: "math-3", Query: "(3 + 4) / 2", Expected: models.RouteMath, KeywordOnly: true},
		{ID: "math-4", Query: "Help with my math homework on fractions", Expected: models.RouteMath, KeywordOnly: true},
		{ID: "math-5", Query: "What is the square root of 144", Expected: models.RouteMath},
		{ID: "math-6", Query: "Integrate x squared from zero to three", Expected: models.RouteMath},

		{ID: "book-1", Query: "Recommend a book like Dune", Expected: models.RouteBook, KeywordOnly: true},
		{ID: "book-2", Query: "Who wrote the book Beloved?", Expected: models.RouteBook, KeywordOnly: true},
		{ID: "book-3", Query: "Summary of the novel Middlemarch", Expected: models.RouteBook},
		{ID: "book-4", Query: "Best fantasy novels by Ursula Le Guin", Expected: models.RouteBook},
	}
}

// KeywordCases returns the subset the keyword fallback should classify correctly
func KeywordCases(cases []Case) []Case {
	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		if c.KeywordOnly {
			out = append(out, c)
		}
	}
	return out
}
