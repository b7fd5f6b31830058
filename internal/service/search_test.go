package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openbobs/gateway/internal/domain/search"
	"github.com/openbobs/gateway/internal/service"
)

type fakeFetcher struct {
	calls int
	html  []byte
	err   error
}

func (f *fakeFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls++
	return f.html, f.err
}

type fakeExtractor struct {
	results []search.Result
}

func (f *fakeExtractor) Extract([]byte) []search.Result { return f.results }

type memCache struct {
	data map[string][]byte
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestSearchReturnsResults(t *testing.T) {
	want := []search.Result{{Title: "Example", URL: "https://example.com"}}
	fetcher := &fakeFetcher{html: []byte("<html/>")}
	svc := service.NewSearchService(fetcher, &fakeExtractor{results: want}, nil, 0, nil)

	got, err := svc.Search(t.Context(), "example")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("results = %v, want %v", got, want)
	}
}

func TestSearchNeverReturnsNilResults(t *testing.T) {
	svc := service.NewSearchService(&fakeFetcher{html: []byte("<html/>")}, &fakeExtractor{results: nil}, nil, 0, nil)

	got, err := svc.Search(t.Context(), "nothing here")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Error("results must be an empty slice, not nil")
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestSearchPropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("connection refused")
	svc := service.NewSearchService(&fakeFetcher{err: fetchErr}, &fakeExtractor{}, nil, 0, nil)

	if _, err := svc.Search(t.Context(), "x"); !errors.Is(err, fetchErr) {
		t.Errorf("err = %v, want fetch error", err)
	}
}

func TestSearchCacheHitSkipsFetch(t *testing.T) {
	want := []search.Result{{Title: "Cached", URL: "https://cached.example"}}
	fetcher := &fakeFetcher{html: []byte("<html/>")}
	c := &memCache{data: map[string][]byte{}}
	svc := service.NewSearchService(fetcher, &fakeExtractor{results: want}, c, time.Minute, nil)

	if _, err := svc.Search(t.Context(), "repeat"); err != nil {
		t.Fatal(err)
	}
	got, err := svc.Search(t.Context(), "repeat")
	if err != nil {
		t.Fatal(err)
	}

	if fetcher.calls != 1 {
		t.Errorf("fetch called %d times, want 1 (second hit served from cache)", fetcher.calls)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("cached results = %v, want %v", got, want)
	}
}

func TestSearchEmptyResultsNotCached(t *testing.T) {
	fetcher := &fakeFetcher{html: []byte("<html/>")}
	c := &memCache{data: map[string][]byte{}}
	svc := service.NewSearchService(fetcher, &fakeExtractor{results: nil}, c, time.Minute, nil)

	if _, err := svc.Search(t.Context(), "q"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Search(t.Context(), "q"); err != nil {
		t.Fatal(err)
	}
	if fetcher.calls != 2 {
		t.Errorf("fetch called %d times, want 2 (empty result set is not cached)", fetcher.calls)
	}
}
