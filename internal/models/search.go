// ABOUTME: Search provider result types
// ABOUTME: Shared by the search client and the news/book responders
package models

// SearchResult is a single hit from the search provider
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	// TitleSet is true when the provider sent a title key, even an empty one
	TitleSet bool `json:"-"`
	// Bare marks a plain string result; its text is in Raw
	Bare bool   `json:"-"`
	Raw  string `json:"-"`
}

// SearchResponse is the provider's reply to one query
type SearchResponse struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer,omitempty"`
	Results []SearchResult `json:"results"`
}
