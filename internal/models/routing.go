// ABOUTME: Routing labels and decisions for the query router
// ABOUTME: Defines the closed set of responder routes and their boundary strings
package models

import (
	"fmt"
	"strings"
)

// Route identifies which responder handles a query
type Route int

const (
	// RouteNews - latest news lookup via the search provider
	RouteNews Route = iota
	// RouteMath - arithmetic evaluation or model-solved math problem
	RouteMath
	// RouteBook - book information lookup via the search provider
	RouteBook
)

// Routes lists every route in declaration order
var Routes = []Route{RouteNews, RouteMath, RouteBook}

// String returns the routing label (NEWS, MATH, BOOK)
func (r Route) String() string {
	switch r {
	case RouteNews:
		return "NEWS"
	case RouteMath:
		return "MATH"
	case RouteBook:
		return "BOOK"
	}
	return fmt.Sprintf("Route(%d)", int(r))
}

// Node returns the workflow node name for the route
func (r Route) Node() string {
	switch r {
	case RouteNews:
		return "news_agent"
	case RouteMath:
		return "math_agent"
	case RouteBook:
		return "book_agent"
	}
	return ""
}

// ErrorPrefix is prepended to a responder failure message
func (r Route) ErrorPrefix() string {
	switch r {
	case RouteNews:
		return "News search error: "
	case RouteMath:
		return "Math error: "
	case RouteBook:
		return "Book search error: "
	}
	return ""
}

// EmptySentinel is returned when a responder succeeds with nothing to report.
// Math has no sentinel; an empty model reply is passed through as-is.
func (r Route) EmptySentinel() string {
	switch r {
	case RouteNews:
		return "No news found."
	case RouteBook:
		return "No books found."
	}
	return ""
}

// Valid reports whether r is one of the declared routes
func (r Route) Valid() bool {
	return r >= RouteNews && r <= RouteBook
}

// ParseRoute accepts a label ("news") or node name ("news_agent"), case-insensitive
func ParseRoute(s string) (Route, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "news", "news_agent":
		return RouteNews, nil
	case "math", "math_agent":
		return RouteMath, nil
	case "book", "book_agent":
		return RouteBook, nil
	}
	return 0, fmt.Errorf("unknown route %q", s)
}

// MarshalText renders the route as its label
func (r Route) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid route %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText parses a label or node name
func (r *Route) UnmarshalText(text []byte) error {
	parsed, err := ParseRoute(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoutingDecision contains the chosen route and how it was reached
type RoutingDecision struct {
	Route Route `json:"route" yaml:"route"`
	// Input is the normalized text the keyword matcher ran against
	Input string `json:"input" yaml:"input"`
	// UsedFallback is true when the model was unavailable and the raw query was matched
	UsedFallback bool `json:"used_fallback" yaml:"used_fallback"`
}
