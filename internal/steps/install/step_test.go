package install

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
	calls  []toolchain.Invocation
	result toolchain.Result
}

func (r *fakeRunner) Run(_ context.Context, inv toolchain.Invocation) (toolchain.Result, error) {
	r.calls = append(r.calls, inv)
	return r.result, nil
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

func TestRunRequiresWheel(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner)
	if err := os.MkdirAll(ctx.Config.DistDir(), 0o755); err != nil {
		t.Fatalf("mkdir dist: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ctx.Config.DistDir(), "pkg-0.1.0.tar.gz"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed sdist: %v", err)
	}

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != step.StatusFailed || !strings.Contains(result.Message, "no wheel") {
		t.Fatalf("result = %+v", result)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("pip must not run without a wheel")
	}
}

func TestRunForceReinstallsWheel(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner)
	wheel := filepath.Join(ctx.Config.DistDir(), "pkg-0.1.0-py3-none-any.whl")
	if err := os.MkdirAll(ctx.Config.DistDir(), 0o755); err != nil {
		t.Fatalf("mkdir dist: %v", err)
	}
	if err := os.WriteFile(wheel, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed wheel: %v", err)
	}

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != step.StatusCompleted {
		t.Fatalf("status = %s (%s)", result.Status, result.Message)
	}
	joined := strings.Join(runner.calls[0].Args, " ")
	if !strings.Contains(joined, "--force-reinstall") || !strings.Contains(joined, wheel) {
		t.Fatalf("args = %q", joined)
	}
}

func TestRunSurfacesPipFailure(t *testing.T) {
	runner := &fakeRunner{result: toolchain.Result{ExitCode: 1, Stderr: []byte("dependency conflict")}}
	ctx := newTestContext(t, runner)
	if err := os.MkdirAll(ctx.Config.DistDir(), 0o755); err != nil {
		t.Fatalf("mkdir dist: %v", err)
	}
	if err := os.WriteFile(filepath.Join(ctx.Config.DistDir(), "pkg-0.1.0-py3-none-any.whl"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed wheel: %v", err)
	}

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Status != step.StatusFailed || !strings.Contains(result.Message, "dependency conflict") {
		t.Fatalf("result = %+v", result)
	}
}
