// Package entrypoint smoke-tests the console script the package registers.
// Unlike the other steps it does not go through the interpreter: the script
// itself must be resolvable on PATH, exactly as an end user would run it.
package entrypoint

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "entrypoint"
	stepVersion = "1.0.0"
)

// Register installs the entrypoint step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step invokes the installed console script with --help.
type Step struct {
	*step.Base
}

// New constructs the entrypoint step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Entry Point Probe",
		Description: "Runs the installed console script with --help to confirm registration.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	return &Step{Base: &base}
}

// Run executes `<entrypoint> --help` and judges the exit code.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Entry Point"))

	script := ctx.Config.Project.Project.Entrypoint
	result, err := ctx.Runner.Run(ctx.Ctx, toolchain.Invocation{
		Name: script,
		Args: []string{"--help"},
		Dir:  ctx.Config.ProjectDir,
	})
	if err != nil {
		// Spawn failure: the script is not on PATH at all.
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("console script %s is not on PATH — the entry point was not installed (%v)", script, err),
		}, nil
	}
	if result.ExitCode != 0 {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("%s --help exited %d — the entry point is not correctly registered: %s", script, result.ExitCode, toolchain.Snippet(result.Stderr, 3)),
		}, nil
	}

	tui.Printf(ctx.Out, "%s", tui.Success(script+" --help ok"))
	tui.Printf(ctx.Out, "%s", tui.Hint("package verified — run `wheelhouse publish` when you are ready to upload"))
	return step.Result{Status: step.StatusCompleted, Message: script + " responds to --help"}, nil
}
