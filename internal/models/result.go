// ABOUTME: Tagged responder outcome with boundary rendering
// ABOUTME: Keeps errors typed internally while producing the legacy answer strings
package models

import "errors"

// ResultKind tags a responder outcome
type ResultKind int

const (
	// ResultOK - responder produced an answer
	ResultOK ResultKind = iota
	// ResultEmpty - responder succeeded but found nothing
	ResultEmpty
	// ResultError - the external capability failed
	ResultError
)

// Result is what a responder produces for one query
type Result struct {
	Route Route
	Kind  ResultKind
	Text  string
	Err   error
}

// Ok wraps a successful answer
func Ok(route Route, text string) Result {
	return Result{Route: route, Kind: ResultOK, Text: text}
}

// Empty marks a successful lookup with no results
func Empty(route Route) Result {
	return Result{Route: route, Kind: ResultEmpty}
}

// Err wraps a responder failure
func Err(route Route, err error) Result {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Result{Route: route, Kind: ResultError, Err: err}
}

// Failed reports whether the result carries an error
func (r Result) Failed() bool {
	return r.Kind == ResultError
}

// Render produces the answer string callers see.
// Errors become "<prefix><message>", empty results become the route's sentinel.
func (r Result) Render() string {
	switch r.Kind {
	case ResultError:
		return r.Route.ErrorPrefix() + r.Err.Error()
	case ResultEmpty:
		return r.Route.EmptySentinel()
	}
	return r.Text
}
