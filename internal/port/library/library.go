// Package library defines the repository port for the agent library, so
// an alternative backing store can replace the filesystem one in tests.
package library

import (
	"context"

	"github.com/openbobs/gateway/internal/domain/agentlib"
)

// Store persists agent definitions keyed by their derived filename.
type Store interface {
	// List enumerates every stored definition sorted by filename. Documents
	// that fail to parse are still listed, with empty content.
	List(ctx context.Context) ([]agentlib.Entry, error)

	// Save stamps provenance fields onto def and writes it under its derived
	// filename, overwriting any prior document with the same name.
	Save(ctx context.Context, def agentlib.Definition, source string) (agentlib.Entry, error)

	// Get returns the raw stored document bytes for the given filename.
	// Wraps domain.ErrNotFound when no such file exists.
	Get(ctx context.Context, file string) ([]byte, error)
}
