// Package fsstore implements the agent library port as one JSON file per
// definition in a flat directory. The layout is deliberately simple and
// human-inspectable; there is no index beyond the directory itself.
package fsstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/agentlib"
)

// downloadPrefix is the URL path under which stored files are served back.
const downloadPrefix = "/api/agents/library/"

// Store is a filesystem-backed agent library.
type Store struct {
	dir string
}

// New creates the library directory if absent and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create library dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// List enumerates stored definitions sorted by filename. A file that fails
// to parse is listed with empty content rather than omitted: visibility
// wins over strict validity.
func (s *Store) List(_ context.Context) ([]agentlib.Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read library dir: %w", err)
	}

	items := make([]agentlib.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}

		info, err := de.Info()
		if err != nil {
			continue
		}

		content := agentlib.Definition{}
		if data, err := os.ReadFile(filepath.Join(s.dir, de.Name())); err == nil {
			if err := json.Unmarshal(data, &content); err != nil {
				content = agentlib.Definition{}
			}
		}

		name, _ := content["name"].(string)
		if name == "" {
			name = strings.TrimSuffix(de.Name(), ".json")
		}
		source, _ := content[agentlib.FieldSource].(string)

		items = append(items, agentlib.Entry{
			File:        de.Name(),
			Name:        name,
			Source:      source,
			Size:        info.Size(),
			DownloadURL: downloadPrefix + de.Name(),
			Content:     content,
		})
	}
	return items, nil
}

// Save stamps provenance onto def and writes it under its derived
// filename. The document lands via temp-file-and-rename, so a concurrent
// save of the same name is last-write-wins but never a torn file.
func (s *Store) Save(_ context.Context, def agentlib.Definition, source string) (agentlib.Entry, error) {
	if def == nil {
		return agentlib.Entry{}, fmt.Errorf("%w: agent must be a JSON object", domain.ErrValidation)
	}

	name := agentlib.DeriveName(def)
	file := agentlib.SanitizeFileName(name) + ".json"

	def[agentlib.FieldSource] = source
	def[agentlib.FieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return agentlib.Entry{}, fmt.Errorf("marshal agent: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return agentlib.Entry{}, fmt.Errorf("write agent: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return agentlib.Entry{}, fmt.Errorf("write agent: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return agentlib.Entry{}, fmt.Errorf("write agent: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, file)); err != nil {
		_ = os.Remove(tmp.Name())
		return agentlib.Entry{}, fmt.Errorf("write agent: %w", err)
	}

	return agentlib.Entry{
		File:        file,
		Name:        name,
		Source:      source,
		Size:        int64(len(data)),
		DownloadURL: downloadPrefix + file,
		Content:     def,
	}, nil
}

// Get returns the raw stored bytes for file. The name must be a bare
// filename; anything resembling a path is rejected before touching disk.
func (s *Store) Get(_ context.Context, file string) ([]byte, error) {
	if file == "" || file != filepath.Base(file) || strings.Contains(file, "..") || !strings.HasSuffix(file, ".json") {
		return nil, fmt.Errorf("%w: bad file name", domain.ErrValidation)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, file)) //nolint:gosec // G304: name validated above
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("agent %s: %w", file, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read agent: %w", err)
	}
	return data, nil
}
