// Package duckduckgo fetches and parses DuckDuckGo's HTML search endpoint.
// The provider markup is an unversioned external contract: extraction is
// tolerant, and a layout drift that merely reduces matches to zero is
// success, not an error.
package duckduckgo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/search"
)

// resultLinkSelector matches the anchor class the provider uses for
// organic result links.
const resultLinkSelector = "a.result__a"

// Client fetches search result pages with a browser-like user agent.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a search client for the given provider base URL.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw results page for query. Network errors,
// timeouts, and non-2xx statuses all wrap domain.ErrUnavailable.
func (c *Client) Fetch(ctx context.Context, query string) ([]byte, error) {
	u := fmt.Sprintf("%s/html/?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search provider %w: %v", domain.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("search provider %w: status %d", domain.ErrUnavailable, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search provider %w: %v", domain.ErrUnavailable, err)
	}
	return data, nil
}

// Extract pulls at most search.MaxResults (title, url) pairs from the
// page, in document order. Nested markup inside an anchor is stripped to
// its text. Extraction never fails: unparseable input yields no results.
func (c *Client) Extract(html []byte) []search.Result {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil
	}

	var results []search.Result
	doc.Find(resultLinkSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			return true
		}
		results = append(results, search.Result{
			Title: strings.TrimSpace(s.Text()),
			URL:   href,
		})
		return len(results) < search.MaxResults
	})
	return results
}
