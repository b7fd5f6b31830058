package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/openbobs/gateway/internal/domain/search"
	"github.com/openbobs/gateway/internal/port/cache"
)

// Fetcher retrieves the raw HTML of a results page for a query.
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]byte, error)
}

// Extractor pulls structured results out of a results page.
type Extractor interface {
	Extract(html []byte) []search.Result
}

// SearchService runs web searches through a fetcher/extractor pair, with
// an optional short-lived cache in front of the fetch.
type SearchService struct {
	fetcher   Fetcher
	extractor Extractor
	cache     cache.Cache
	cacheTTL  time.Duration
	logger    *slog.Logger
}

// NewSearchService creates a SearchService. c may be nil to disable
// caching.
func NewSearchService(f Fetcher, e Extractor, c cache.Cache, ttl time.Duration, logger *slog.Logger) *SearchService {
	return &SearchService{
		fetcher:   f,
		extractor: e,
		cache:     c,
		cacheTTL:  ttl,
		logger:    logger,
	}
}

// Search returns results for query, never nil. Cache failures are logged
// and ignored; a stale-free miss just falls through to the live fetch.
func (s *SearchService) Search(ctx context.Context, query string) ([]search.Result, error) {
	cacheKey := "search:" + query

	if s.cache != nil {
		if data, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			var results []search.Result
			if err := json.Unmarshal(data, &results); err == nil {
				return results, nil
			}
		}
	}

	html, err := s.fetcher.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	results := s.extractor.Extract(html)
	if results == nil {
		results = []search.Result{}
	}

	if s.cache != nil && len(results) > 0 {
		if data, err := json.Marshal(results); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil && s.logger != nil {
				s.logger.Warn("search cache write failed", "error", err)
			}
		}
	}

	return results, nil
}
