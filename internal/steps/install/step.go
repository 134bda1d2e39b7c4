// Package install puts the freshly built wheel into the current environment,
// forcing reinstallation so repeated verify runs always test the new build.
package install

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "install"
	stepVersion = "1.0.0"
)

// Register installs the install step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step installs the built wheel with pip.
type Step struct {
	*step.Base
}

// New constructs the install step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Install Wheel",
		Description: "Installs the built wheel into the current environment with --force-reinstall.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	base.SetInputs(artifact.DistFiles)
	return &Step{Base: &base}
}

// Run picks the wheel out of the artifact set and pip-installs it.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Install"))

	set, err := artifact.Enumerate(ctx.Config.DistDir())
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	wheel, ok := set.Wheel()
	if !ok {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("no wheel found in %s", ctx.Config.Project.DistDir),
		}, nil
	}

	result, err := ctx.Runner.Run(ctx.Ctx, toolchain.Invocation{
		Name: ctx.Config.Python(),
		Args: []string{"-m", "pip", "install", "--force-reinstall", wheel.Path},
		Dir:  ctx.Config.ProjectDir,
	})
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if result.ExitCode != 0 {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("pip install exited %d: %s", result.ExitCode, toolchain.Snippet(result.Stderr, 5)),
		}, nil
	}

	tui.Printf(ctx.Out, "%s", tui.Success("installed "+wheel.Name))
	return step.Result{Status: step.StatusCompleted, Message: "installed " + wheel.Name}, nil
}
