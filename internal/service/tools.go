package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openbobs/gateway/internal/domain"
	"github.com/openbobs/gateway/internal/domain/tool"
)

// ToolService reports the security-tool catalog and executes probe
// commands for allow-listed tools. The probe argv is always the statically
// configured one; nothing from the request ever reaches the command line
// beyond selecting the tool name.
type ToolService struct {
	probeTimeout time.Duration
	outputLimit  int

	// lookPath and execute are swappable for tests: a spy can prove that a
	// rejected tool never spawns a process.
	lookPath func(name string) (string, error)
	execute  func(ctx context.Context, argv []string) (stdout, stderr string, err error)
}

// NewToolService creates a ToolService with the given probe timeout and
// output truncation limit.
func NewToolService(probeTimeout time.Duration, outputLimit int) *ToolService {
	return &ToolService{
		probeTimeout: probeTimeout,
		outputLimit:  outputLimit,
		lookPath:     exec.LookPath,
		execute:      runCommand,
	}
}

// Status reports every cataloged tool with its live installed-state.
// Installation can change between calls, so PATH is resolved on every
// query; the lookups run concurrently since each one hits the filesystem.
func (s *ToolService) Status(_ context.Context) []tool.Descriptor {
	names := tool.Names()
	descs := make([]tool.Descriptor, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			entry, _ := tool.Lookup(name)
			_, err := s.lookPath(entry.Binary)
			installed := err == nil
			descs[i] = tool.Descriptor{
				Name:         name,
				Installed:    installed,
				Executable:   installed && entry.Probe != nil,
				ProbeCommand: entry.Probe,
			}
			return nil
		})
	}
	_ = g.Wait()

	return descs
}

// Run executes the probe command for name. Policy failures (unknown or
// non-allow-listed tool, tool not installed) return an error wrapping
// domain.ErrRejected before any process is spawned. Once the probe runs,
// the result is always a RunResult: OK mirrors exit status zero, a timeout
// is reported distinctly, and output is kept even on failure.
func (s *ToolService) Run(ctx context.Context, name string) (tool.RunResult, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	entry, known := tool.Lookup(name)
	if !known || entry.Probe == nil {
		return tool.RunResult{}, fmt.Errorf("%w: unsupported tool: %s", domain.ErrRejected, name)
	}
	if _, err := s.lookPath(entry.Binary); err != nil {
		return tool.RunResult{}, fmt.Errorf("%w: %s is not installed in this runtime", domain.ErrRejected, name)
	}

	command := strings.Join(entry.Probe, " ")

	runCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	stdout, stderr, err := s.execute(runCtx, entry.Probe)
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return tool.RunResult{
			OK:      false,
			Tool:    name,
			Command: command,
			Error:   fmt.Sprintf("probe timed out after %s", s.probeTimeout),
		}, nil
	}

	output := strings.TrimSpace(stdout)
	if output == "" {
		output = strings.TrimSpace(stderr)
	}
	if len(output) > s.outputLimit {
		output = output[:s.outputLimit]
	}

	return tool.RunResult{
		OK:      err == nil,
		Tool:    name,
		Command: command,
		Output:  output,
	}, nil
}

// runCommand executes argv and captures stdout and stderr separately.
func runCommand(ctx context.Context, argv []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // G204: argv comes from the static catalog, never from callers
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	err := cmd.Run()
	return out.String(), errb.String(), err
}
