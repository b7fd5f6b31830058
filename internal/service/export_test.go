package service

import (
	"context"
	"time"
)

// NewToolServiceForTest builds a ToolService with the PATH lookup and the
// process runner replaced by test doubles.
func NewToolServiceForTest(
	probeTimeout time.Duration,
	outputLimit int,
	lookPath func(string) (string, error),
	execute func(context.Context, []string) (string, string, error),
) *ToolService {
	return &ToolService{
		probeTimeout: probeTimeout,
		outputLimit:  outputLimit,
		lookPath:     lookPath,
		execute:      execute,
	}
}
