package fsstore_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openbobs/gateway/internal/adapter/fsstore"
	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/agentlib"
)

func newStore(t *testing.T) (*fsstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := fsstore.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, dir
}

func TestSaveListRoundTrip(t *testing.T) {
	s, _ := newStore(t)

	entry, err := s.Save(t.Context(), agentlib.Definition{"name": "Recon Bot"}, agentlib.SourceLocalEdit)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if entry.File != "Recon-Bot.json" {
		t.Errorf("file = %q, want Recon-Bot.json", entry.File)
	}
	if entry.Name != "Recon Bot" {
		t.Errorf("name = %q", entry.Name)
	}
	if entry.DownloadURL != "/api/agents/library/Recon-Bot.json" {
		t.Errorf("downloadUrl = %q", entry.DownloadURL)
	}

	items, err := s.List(t.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].Name != "Recon Bot" || items[0].File != "Recon-Bot.json" {
		t.Errorf("listed entry = %+v", items[0])
	}
	if got := items[0].Content[agentlib.FieldSource]; got != agentlib.SourceLocalEdit {
		t.Errorf("_source = %v, want local-edit", got)
	}
	if _, ok := items[0].Content[agentlib.FieldUpdatedAt].(string); !ok {
		t.Error("_updatedAt not stamped")
	}
}

func TestReSaveSameIdentityOverwrites(t *testing.T) {
	s, dir := newStore(t)

	if _, err := s.Save(t.Context(), agentlib.Definition{"name": "x", "v": float64(1)}, agentlib.SourceLocalEdit); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(t.Context(), agentlib.Definition{"name": "x", "v": float64(2)}, agentlib.SourceLocalEdit); err != nil {
		t.Fatal(err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files on disk, want 1 (last write wins)", len(files))
	}

	data, err := s.Get(t.Context(), "x.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var content map[string]any
	if err := json.Unmarshal(data, &content); err != nil {
		t.Fatal(err)
	}
	if content["v"] != float64(2) {
		t.Errorf("v = %v, want the second payload", content["v"])
	}
}

func TestSaveRejectsNilDefinition(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Save(t.Context(), nil, agentlib.SourceLocalEdit); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestListToleratesUnparseableFile(t *testing.T) {
	s, dir := newStore(t)

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(t.Context(), agentlib.Definition{"name": "good"}, agentlib.SourceLocalEdit); err != nil {
		t.Fatal(err)
	}

	items, err := s.List(t.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (broken file still listed)", len(items))
	}
	// Sorted by filename ascending: broken.json before good.json.
	if items[0].File != "broken.json" || items[1].File != "good.json" {
		t.Errorf("order = %s, %s", items[0].File, items[1].File)
	}
	if len(items[0].Content) != 0 {
		t.Errorf("broken file content = %v, want empty object", items[0].Content)
	}
	if items[0].Name != "broken" {
		t.Errorf("broken file name = %q, want filename stem", items[0].Name)
	}
}

func TestGetRejectsPathTraversal(t *testing.T) {
	s, _ := newStore(t)
	for _, name := range []string{"../secret.json", "a/b.json", "..", "", "noext"} {
		if _, err := s.Get(t.Context(), name); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Get(%q): expected ErrValidation, got %v", name, err)
		}
	}
}

func TestGetMissingFileIsNotFound(t *testing.T) {
	s, _ := newStore(t)
	if _, err := s.Get(t.Context(), "ghost.json"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
