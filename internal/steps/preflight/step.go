package preflight

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "preflight"
	stepVersion = "1.0.0"
)

// Register installs the preflight step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step verifies the working directory and tool availability before any other
// step runs.
type Step struct {
	*step.Base
}

// New constructs the preflight step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Preflight Checks",
		Description: "Verifies the project root markers and probes the build and twine tools.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	base.SetInputs(artifact.PyprojectMarker, artifact.SetupScriptMarker)
	return &Step{Base: &base}
}

// Run checks both markers first; no tool is invoked until the directory
// qualifies as a project root.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Preflight"))

	for _, marker := range []artifact.Ref{artifact.PyprojectMarker, artifact.SetupScriptMarker} {
		result, err := ctx.Artifacts.Check(marker)
		if err != nil {
			return step.Result{Status: step.StatusFailed}, err
		}
		if result.State != artifact.StateReady {
			return step.Result{
				Status: step.StatusFailed,
				Message: fmt.Sprintf("%s not found — run wheelhouse from the project root (both pyproject.toml and setup.py are required)",
					marker.Name),
			}, nil
		}
	}
	tui.Printf(ctx.Out, "%s", tui.Success("project root markers present"))

	python := ctx.Config.Python()
	probes := []struct {
		tool        string
		args        []string
		remediation string
	}{
		{tool: "build", args: []string{"-m", "build", "--version"}, remediation: python + " -m pip install build"},
		{tool: "twine", args: []string{"-m", "twine", "--version"}, remediation: python + " -m pip install twine"},
	}
	for _, probe := range probes {
		inv := toolchain.Invocation{Name: python, Args: probe.args, Dir: ctx.Config.ProjectDir}
		if err := toolchain.Probe(ctx.Ctx, ctx.Runner, inv); err != nil {
			return step.Result{
				Status: step.StatusFailed,
				Message: fmt.Sprintf("%s is not available: %v (install with: %s)",
					probe.tool, err, probe.remediation),
			}, nil
		}
		tui.Printf(ctx.Out, "%s", tui.Success(probe.tool+" available"))
	}

	return step.Result{Status: step.StatusCompleted, Message: "environment ready"}, nil
}
