package publish

import (
	"fmt"
	"strings"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

const (
	stepID      = "publish"
	stepVersion = "1.0.0"
)

// Register installs the publish step factory.
func Register(reg *step.Registry) {
	if reg == nil {
		return
	}
	reg.MustRegister(stepID, func(step.Config) (step.Step, error) {
		return New(), nil
	})
}

// Step uploads the artifact set after operator confirmation.
type Step struct {
	*step.Base
}

// New constructs the publish step.
func New() *Step {
	info := step.Info{
		ID:          stepID,
		Name:        "Publish to Index",
		Description: "Lists the artifacts, asks for confirmation, and uploads with twine.",
		Version:     stepVersion,
	}
	base := step.NewBase(info)
	base.SetInputs(artifact.DistFiles)
	base.SetOutputs(artifact.ReceiptsDir)
	return &Step{Base: &base}
}

// Run lists the artifact set for review, confirms, uploads, and writes the
// receipt.
func (s *Step) Run(ctx *step.Context) (step.Result, error) {
	tui.Printf(ctx.Out, "%s", tui.Banner("Publish"))

	if ctx.Confirm == nil {
		return step.Result{Status: step.StatusFailed}, fmt.Errorf("publish: no confirmer wired into the step context")
	}

	set, err := artifact.Enumerate(ctx.Config.DistDir())
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if set.Empty() {
		return step.Result{
			Status:  step.StatusFailed,
			Message: fmt.Sprintf("no artifacts in %s to upload", ctx.Config.Project.DistDir),
		}, nil
	}

	project := ctx.Config.Project.Project.Name
	repository := ctx.Config.Project.Index.Repository
	target := "PyPI"
	if repository != "" {
		target = repository
	}

	tui.Printf(ctx.Out, "About to upload %d artifact(s) of %s to %s:", len(set.Files), project, target)
	for _, file := range set.Files {
		tui.Printf(ctx.Out, "%s", tui.Bullet(file.Name, humanSize(file.Size)))
	}

	ok, err := ctx.Confirm.Confirm(fmt.Sprintf("Upload to %s?", target))
	if err != nil {
		return step.Result{Status: step.StatusFailed}, err
	}
	if !ok {
		manual := fmt.Sprintf("%s -m twine upload %s/*", ctx.Config.Python(), ctx.Config.Project.DistDir)
		tui.Printf(ctx.Out, "%s", tui.Warning("upload cancelled"))
		tui.Printf(ctx.Out, "%s", tui.Hint("publish manually later with: "+manual))
		return step.Result{Status: step.StatusCancelled, Message: "operator declined the upload"}, nil
	}

	args := []string{"-m", "twine", "upload"}
	if repository != "" {
		args = append(args, "--repository", repository)
	}
	args = append(args, set.Paths()...)
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
			Message: fmt.Sprintf("twine upload exited %d: %s", result.ExitCode, toolchain.Snippet(result.Stderr, 5)),
		}, nil
	}

	if path, err := s.writeReceipt(ctx, set, target); err != nil {
		// The upload went through; a failed receipt is worth a warning, not
		// a failed run.
		ctx.Logbook.Warn("publish: receipt not written: %v", err)
	} else {
		tui.Printf(ctx.Out, "%s", tui.Hint("receipt: "+path))
	}

	tui.Printf(ctx.Out, "%s", tui.Success(fmt.Sprintf("published %s (%d artifacts) to %s", project, len(set.Files), target)))
	tui.Printf(ctx.Out, "%s", tui.Hint(fmt.Sprintf("install with: pip install %s", project)))
	if repository == "" {
		tui.Printf(ctx.Out, "%s", tui.Hint(fmt.Sprintf("view at: https://pypi.org/project/%s/", project)))
	}
	return step.Result{Status: step.StatusCompleted, Message: fmt.Sprintf("uploaded %d artifact(s)", len(set.Files))}, nil
}

func (s *Step) writeReceipt(ctx *step.Context, set artifact.Set, target string) (string, error) {
	sums, err := set.Checksums()
	if err != nil {
		return "", err
	}
	meta := artifact.Metadata{
		StepID:   stepID,
		Version:  stepVersion,
		Workflow: "publish",
		Files:    set.Names(),
		Notes:    map[string]string{"repository": target},
	}
	var body strings.Builder
	fmt.Fprintf(&body, "# Published %s\n\n", ctx.Config.Project.Project.Name)
	for _, name := range set.Names() {
		fmt.Fprintf(&body, "- %s  sha256:%s\n", name, sums[name])
	}
	return ctx.Artifacts.WriteReceipt(ctx.RunID, meta, []byte(body.String()))
}

func humanSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("(%.1f MiB)", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("(%.1f KiB)", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("(%d B)", size)
	}
}
