package build

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "build"
	stepVersion = "1.0.0"
)

// Register installs the build step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step clears previous build output and invokes the external build tool.
type Step struct {
	*step.Base
}

// New constructs the build step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Build Distributions",
		Description: "Clears stale build output and runs the package build tool.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	base.SetInputs(artifact.PyprojectMarker, artifact.SetupScriptMarker)
	base.SetOutputs(artifact.DistDir, artifact.DistFiles)
	return &Step{Base: &base}
}

// Run removes dist/, build/, and *.egg-info, then regenerates the output
// directory via `python -m build`.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Build"))

	if err := artifact.Clean(ctx.Config.ProjectDir, ctx.Config.DistDir()); err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	tui.Printf(ctx.Out, "%s", tui.Success("cleaned dist/, build/, *.egg-info"))

	inv := toolchain.Invocation{
		Name: ctx.Config.Python(),
		Args: []string{"-m", "build"},
		Dir:  ctx.Config.ProjectDir,
	}
	result, err := ctx.Runner.Run(ctx.Ctx, inv)
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if result.ExitCode != 0 {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("build tool exited %d: %s", result.ExitCode, toolchain.Snippet(result.Stderr, 5)),
		}, nil
	}

	set, err := artifact.Enumerate(ctx.Config.DistDir())
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	tui.Printf(ctx.Out, "%s", tui.Success(fmt.Sprintf("built %d artifact(s)", len(set.Files))))
	return step.Result{Status: step.StatusCompleted, Message: fmt.Sprintf("%d artifact(s) in %s", len(set.Files), ctx.Config.Project.DistDir)}, nil
}
