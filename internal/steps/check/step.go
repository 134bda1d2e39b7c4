// Package check gates tests and uploads behind twine's metadata validation.
// A malformed distribution stops here; neither the install smoke test nor the
// upload ever sees it.
package check

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "check"
	stepVersion = "1.0.0"
)

// Register installs the check step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step validates every built artifact with `twine check`.
type Step struct {
	*step.Base
}

// New constructs the check step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Validate Artifacts",
		Description: "Runs twine check against every file in the output directory.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	base.SetInputs(artifact.DistFiles)
	return &Step{Base: &base}
}

// Run enumerates the artifact set and passes every file to twine check.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Check"))

	set, err := artifact.Enumerate(ctx.Config.DistDir())
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if set.Empty() {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("no artifacts in %s — did the build run?", ctx.Config.Project.DistDir),
		}, nil
	}

	args := append([]string{"-m", "twine", "check"}, set.Paths()...)
	result, err := ctx.Runner.Run(ctx.Ctx, toolchain.Invocation{
		Name: ctx.Config.Python(),
		Args: args,
		Dir:  ctx.Config.ProjectDir,
	})
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if result.ExitCode != 0 {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("twine check rejected the artifacts: %s", toolchain.Snippet(result.Stdout, 5)),
		}, nil
	}

	tui.Printf(ctx.Out, "%s", tui.Success(fmt.Sprintf("%d artifact(s) passed metadata validation", len(set.Files))))
	return step.Result{Status: step.StatusCompleted}, nil
}
