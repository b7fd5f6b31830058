// Package search defines web search result types.
package search

// MaxResults caps how many results a single query returns.
const MaxResults = 6

// Result is one (title, url) pair. A result list preserves source-document
// order; this system does no ranking of its own.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
