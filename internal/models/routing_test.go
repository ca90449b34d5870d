// ABOUTME: Tests for Route labels and RoutingDecision types
// ABOUTME: Verifies parsing, boundary strings, and text marshaling

package models

import (
	"encoding/json"
	"testing"
)

func TestRoute_String(t *testing.T) {
	tests := []struct {
		route Route
		want  string
		node  string
	}{
		{RouteNews, "NEWS", "news_agent"},
		{RouteMath, "MATH", "math_agent"},
		{RouteBook, "BOOK", "book_agent"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.route.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if got := tt.route.Node(); got != tt.node {
				t.Errorf("Node() = %q, want %q", got, tt.node)
			}
		})
	}
}

func TestRoute_Valid(t *testing.T) {
	for _, r := range Routes {
		if !r.Valid() {
			t.Errorf("%v.Valid() = false, want true", r)
		}
	}
	if Route(7).Valid() {
		t.Error("Route(7).Valid() = true, want false")
	}
	if Route(-1).Valid() {
		t.Error("Route(-1).Valid() = true, want false")
	}
}

func TestParseRoute(t *testing.T) {
	tests := []struct {
		input   string
		want    Route
		wantErr bool
	}{
		{"news", RouteNews, false},
		{"NEWS", RouteNews, false},
		{" news_agent ", RouteNews, false},
		{"math", RouteMath, false},
		{"Math_Agent", RouteMath, false},
		{"book", RouteBook, false},
		{"book_agent", RouteBook, false},
		{"", 0, true},
		{"weather", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRoute(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRoute(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRoute(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoute_BoundaryStrings(t *testing.T) {
	if RouteNews.ErrorPrefix() != "News search error: " {
		t.Errorf("news prefix = %q", RouteNews.ErrorPrefix())
	}
	if RouteBook.ErrorPrefix() != "Book search error: " {
		t.Errorf("book prefix = %q", RouteBook.ErrorPrefix())
	}
	if RouteMath.ErrorPrefix() != "Math error: " {
		t.Errorf("math prefix = %q", RouteMath.ErrorPrefix())
	}
	if RouteNews.EmptySentinel() != "No news found." {
		t.Errorf("news sentinel = %q", RouteNews.EmptySentinel())
	}
	if RouteBook.EmptySentinel() != "No books found." {
		t.Errorf("book sentinel = %q", RouteBook.EmptySentinel())
	}
	if RouteMath.EmptySentinel() != "" {
		t.Errorf("math sentinel = %q, want empty", RouteMath.EmptySentinel())
	}
}

func TestRoutingDecision_JSON(t *testing.T) {
	decision := RoutingDecision{
		Route:        RouteBook,
		Input:        "book_agent",
		UsedFallback: false,
	}

	data, err := json.Marshal(decision)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"route":"BOOK","input":"book_agent","used_fallback":false}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded RoutingDecision
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != decision {
		t.Errorf("decoded = %+v, want %+v", decoded, decision)
	}
}

func TestRoute_MarshalInvalid(t *testing.T) {
	if _, err := json.Marshal(Route(9)); err == nil {
		t.Error("expected error marshaling invalid route")
	}
}
