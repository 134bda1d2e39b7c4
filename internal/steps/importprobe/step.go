package importprobe

import (
	"fmt"

	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "import-probe"
	stepVersion = "1.0.0"
)

// Register installs the import probe step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step imports the package's primary symbol inside the interpreter.
type Step struct {
	*step.Base
}

// New constructs the import probe step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Import Probe",
		Description: "Imports the package's primary symbol from the installed distribution.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	return &Step{Base: &base}
}

// Run executes a one-line import inside the configured interpreter.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Import Probe"))

	pkg := ctx.Config.Project.Project.Import
	symbol := ctx.Config.Project.Project.Symbol
	script := fmt.Sprintf("from %s import %s", pkg, symbol)

	result, err := ctx.Runner.Run(ctx.Ctx, toolchain.Invocation{
		Name: ctx.Config.Python(),
		Args: []string{"-c", script},
		Dir:  ctx.Config.ProjectDir,
	})
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if result.ExitCode != 0 {
		return step.Result{
			Status: step.StatusFailed,
			Message: fmt.Sprintf("installed distribution is broken: cannot import %s from %s (%s) — check the packaging metadata, not the build tool",
				symbol, pkg, toolchain.Snippet(result.Stderr, 3)),
		}, nil
	}

	tui.Printf(ctx.Out, "%s", tui.Success(fmt.Sprintf("import %s.%s ok", pkg, symbol)))
	return step.Result{Status: step.StatusCompleted}, nil
}
