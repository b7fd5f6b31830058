// Package llm defines the port interface for the chat inference backend.
package llm

import (
	"context"

	"github.com/openbobs/gateway/internal/domain/chat"
)

// Client is the outbound interface to the inference backend.
//
// Chat errors that wrap domain.ErrUnavailable mean the backend itself was
// unreachable — an expected condition reported as a soft failure. Any
// other error is an internal fault.
type Client interface {
	Chat(ctx context.Context, model string, messages []chat.Message) (string, error)
	ListModels(ctx context.Context) ([]string, error)
}
