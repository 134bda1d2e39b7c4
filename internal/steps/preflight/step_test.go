package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/wheelhouse/internal/config"
	"github.com/kingrea/wheelhouse/internal/logbook"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
)

type fakeRunner struct {
	calls []toolchain.Invocation
	fail  map[string]toolchain.Result
}

func (r *fakeRunner) Run(_ context.Context, inv toolchain.Invocation) (toolchain.Result, error) {
	r.calls = append(r.calls, inv)
	key := strings.Join(inv.Args, " ")
	if result, ok := r.fail[key]; ok {
		return result, nil
	}
	return toolchain.Result{}, nil
}

func newTestContext(t *testing.T, runner toolchain.Runner) *step.Context {
	t.Helper()
	projectDir := t.TempDir()
	if err := config.InitWheelhouseDir(projectDir); err != nil {
		t.Fatalf("init wheelhouse dir: %v", err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	book, err := logbook.New(filepath.Join(cfg.LogsDir(), "run.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	return step.NewContext(context.Background(), cfg, runner, book)
}

func seedMarkers(t *testing.T, ctx *step.Context, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(ctx.Config.ProjectDir, name)
		if err := os.WriteFile(path, []byte("# marker\n"), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

func TestRunFailsBeforeAnyToolWhenMarkerMissing(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner)
	seedMarkers(t, ctx, "pyproject.toml") // setup.py deliberately absent

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != step.StatusFailed {
		t.Fatalf("status = %s", result.Status)
	}
	if !strings.Contains(result.Message, "setup.py") || !strings.Contains(result.Message, "project root") {
		t.Fatalf("message = %q", result.Message)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("no tool may be invoked before markers pass, calls=%v", runner.calls)
	}
}

func TestRunNamesMissingToolWithRemediation(t *testing.T) {
	runner := &fakeRunner{fail: map[string]toolchain.Result{
		"-m twine --version": {ExitCode: 1, Stderr: []byte("No module named twine")},
	}}
	ctx := newTestContext(t, runner)
	seedMarkers(t, ctx, "pyproject.toml", "setup.py")

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != step.StatusFailed {
		t.Fatalf("status = %s", result.Status)
	}
	if !strings.Contains(result.Message, "twine") || !strings.Contains(result.Message, "pip install twine") {
		t.Fatalf("message must name the tool and remediation: %q", result.Message)
	}
}

func TestRunSucceedsWithMarkersAndTools(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner)
	seedMarkers(t, ctx, "pyproject.toml", "setup.py")

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != step.StatusCompleted {
		t.Fatalf("status = %s", result.Status)
	}
	if len(runner.calls) != 2 {
		t.Fatalf("expected two probes, got %d", len(runner.calls))
	}
	for _, call := range runner.calls {
		if call.Name != "python3" {
			t.Fatalf("probe must use the configured interpreter, got %s", call.Name)
		}
	}
}
