// Package toolchain wraps the external packaging tools (python -m build,
// twine, pip, and the package's own console script) behind a Runner interface
// so workflow steps can be exercised without spawning real processes.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Invocation describes a single external tool call.
type Invocation struct {
	// Name is the executable to run (resolved via PATH).
	Name string
	// Args are passed verbatim; globs must be expanded by the caller.
	Args []string
	// Dir is the working directory for the call.
	Dir string
}

// Result carries the captured output of a finished invocation. A nonzero
// ExitCode is not an error at this layer; steps decide what it means.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Runner executes tool invocations. The production implementation is
// ExecRunner; tests substitute scripted fakes.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs invocations with os/exec. When Echo is set, tool output is
// streamed there as it is produced (the operator watches build and upload
// progress live) in addition to being captured.
type ExecRunner struct {
	Echo io.Writer
}

// Run executes the invocation and captures stdout/stderr. The returned error
// covers spawn failures (missing executable, bad dir); tool failures surface
// through Result.ExitCode.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	if inv.Name == "" {
		return Result{}, fmt.Errorf("toolchain: invocation name is empty")
	}
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir

	var stdout, stderr bytes.Buffer
	if r.Echo != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.Echo)
		cmd.Stderr = io.MultiWriter(&stderr, r.Echo)
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("toolchain: run %s: %w", inv.Name, err)
	}
	return result, nil
}

// Probe performs a minimal invocation (typically a --version call) and
// reports failure when the tool is absent or exits nonzero.
func Probe(ctx context.Context, runner Runner, inv Invocation) error {
	result, err := runner.Run(ctx, inv)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("toolchain: %s exited %d: %s", inv.Name, result.ExitCode, Snippet(result.Stderr, 3))
	}
	return nil
}

// Snippet returns up to maxLines trailing lines of tool output, trimmed, for
// embedding in error messages.
func Snippet(output []byte, maxLines int) string {
	text := strings.TrimSpace(string(output))
	if text == "" {
		return "(no output)"
	}
	lines := strings.Split(text, "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, " / ")
}
