// Package agentlib defines the stored agent-definition model and the
// filename rules for the on-disk library.
package agentlib

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	// SourceLocalEdit marks a definition saved from the local editor, as
	// opposed to one imported from a remote URL.
	SourceLocalEdit = "local-edit"

	// FieldSource and FieldUpdatedAt are reserved provenance fields stamped
	// onto every definition at save time.
	FieldSource    = "_source"
	FieldUpdatedAt = "_updatedAt"
)

// Definition is a caller-supplied agent document. Any JSON object is
// accepted; the library imposes no schema beyond the reserved fields.
type Definition map[string]any

// Entry is a read-time projection over one stored file. It is never
// persisted itself.
type Entry struct {
	File        string     `json:"file"`
	Name        string     `json:"name"`
	Source      string     `json:"source"`
	Size        int64      `json:"size"`
	DownloadURL string     `json:"downloadUrl"`
	Content     Definition `json:"content"`
}

// identityFields, in precedence order, supply the storage identity.
var identityFields = []string{"name", "id", "title"}

// DeriveName returns the best available identity for def: name, then id,
// then title, falling back to a generated agent-<timestamp> label.
func DeriveName(def Definition) string {
	for _, key := range identityFields {
		if v, ok := def[key].(string); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return fallbackName()
}

var unsafeRuns = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeFileName maps an arbitrary label to a safe filesystem segment.
// Any run of characters outside [A-Za-z0-9._-] collapses to a single '-',
// and leading/trailing '-' are trimmed. An empty result falls back to a
// generated agent-<timestamp> label, so the function is total.
func SanitizeFileName(s string) string {
	out := strings.Trim(unsafeRuns.ReplaceAllString(s, "-"), "-")
	if out == "" {
		return fallbackName()
	}
	return out
}

func fallbackName() string {
	return fmt.Sprintf("agent-%d", time.Now().Unix())
}
