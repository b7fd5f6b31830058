package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/agentlib"
	"github.com/openbobs/gateway/internal/port/library"
)

// maxImportBytes bounds how much of a remote agent document is read.
const maxImportBytes = 1 << 20

// LibraryService manages the agent definition library: listing, saving
// local edits, fetching raw documents, and importing definitions by URL.
type LibraryService struct {
	store     library.Store
	http      *http.Client
	userAgent string
}

// NewLibraryService wraps store with import support. importTimeout bounds
// the whole remote fetch.
func NewLibraryService(store library.Store, importTimeout time.Duration, userAgent string) *LibraryService {
	return &LibraryService{
		store:     store,
		http:      &http.Client{Timeout: importTimeout},
		userAgent: userAgent,
	}
}

// List enumerates the stored agent definitions.
func (s *LibraryService) List(ctx context.Context) ([]agentlib.Entry, error) {
	return s.store.List(ctx)
}

// Get returns the raw stored bytes for file.
func (s *LibraryService) Get(ctx context.Context, file string) ([]byte, error) {
	return s.store.Get(ctx, file)
}

// Save persists an edited definition with local-edit provenance.
func (s *LibraryService) Save(ctx context.Context, def agentlib.Definition) (agentlib.Entry, error) {
	if def == nil {
		return agentlib.Entry{}, fmt.Errorf("%w: agent must be a JSON object", domain.ErrValidation)
	}
	return s.store.Save(ctx, def, agentlib.SourceLocalEdit)
}

// Import fetches a JSON agent definition from url and stores it with the
// URL as provenance. A body that is not a JSON object is rejected before
// anything touches disk.
func (s *LibraryService) Import(ctx context.Context, url string) (agentlib.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return agentlib.Entry{}, fmt.Errorf("%w: bad import url: %v", domain.ErrValidation, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.http.Do(req)
	if err != nil {
		return agentlib.Entry{}, fmt.Errorf("import fetch %w: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return agentlib.Entry{}, fmt.Errorf("import fetch %w: status %d", domain.ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImportBytes))
	if err != nil {
		return agentlib.Entry{}, fmt.Errorf("import fetch %w: %v", domain.ErrUnavailable, err)
	}

	var def agentlib.Definition
	if err := json.Unmarshal(body, &def); err != nil {
		return agentlib.Entry{}, fmt.Errorf("%w: imported document is not valid JSON", domain.ErrValidation)
	}

	return s.store.Save(ctx, def, url)
}
