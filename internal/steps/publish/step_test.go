package publish

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/wheelhouse/internal/artifact"
	"github.com/kingrea/wheelhouse/internal/config"
	"github.com/kingrea/wheelhouse/internal/logbook"
	"github.com/kingrea/wheelhouse/internal/step"
	"github.com/kingrea/wheelhouse/internal/toolchain"
	"github.com/kingrea/wheelhouse/internal/tui"
)

type fakeRunner struct {
	calls  []toolchain.Invocation
	result toolchain.Result
}

func (r *fakeRunner) Run(_ context.Context, inv toolchain.Invocation) (toolchain.Result, error) {
	r.calls = append(r.calls, inv)
	return r.result, nil
}

func newTestContext(t *testing.T, runner toolchain.Runner, answer bool) *step.Context {
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
	return step.NewContext(context.Background(), cfg, runner, book).
		WithConfirmer(&tui.StaticConfirmer{Answer: answer}).
		WithRunID("publish-20260301-120000").
		WithOut(io.Discard)
}

func seedArtifacts(t *testing.T, ctx *step.Context, names ...string) {
	t.Helper()
	if err := os.MkdirAll(ctx.Config.DistDir(), 0o755); err != nil {
		t.Fatalf("mkdir dist: %v", err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(ctx.Config.DistDir(), name), []byte(name), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

func TestRunUploadsAfterConfirmation(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner, true)
	seedArtifacts(t, ctx, "fcsp_api-0.2.0-py3-none-any.whl", "fcsp_api-0.2.0.tar.gz")

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != step.StatusCompleted {
		t.Fatalf("status = %s, want %s", result.Status, step.StatusCompleted)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("invocations = %d, want 1", len(runner.calls))
	}
	got := strings.Join(runner.calls[0].Args, " ")
	if !strings.HasPrefix(got, "-m twine upload ") {
		t.Fatalf("unexpected upload invocation: %s", got)
	}
	for _, name := range []string{"fcsp_api-0.2.0-py3-none-any.whl", "fcsp_api-0.2.0.tar.gz"} {
		if !strings.Contains(got, name) {
			t.Fatalf("upload missing %s: %s", name, got)
		}
	}
}

func TestRunWritesReceipt(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner, true)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx = ctx.WithArtifacts(artifact.NewStore(ctx.Config, artifact.WithClock(func() time.Time { return fixed })))
	seedArtifacts(t, ctx, "fcsp_api-0.2.0-py3-none-any.whl")

	if _, err := New().Run(ctx); err != nil {
		t.Fatalf("run: %v", err)
	}
	meta, body, err := ctx.Artifacts.ReadReceipt(ctx.RunID)
	if err != nil {
		t.Fatalf("read receipt: %v", err)
	}
	if meta.StepID != "publish" || meta.Workflow != "publish" {
		t.Fatalf("unexpected receipt metadata: %+v", meta)
	}
	if !meta.CreatedAt.Equal(fixed) {
		t.Fatalf("created at = %s, want %s", meta.CreatedAt, fixed)
	}
	if len(meta.Files) != 1 || meta.Files[0] != "fcsp_api-0.2.0-py3-none-any.whl" {
		t.Fatalf("receipt files = %v", meta.Files)
	}
	if !strings.Contains(string(body), "sha256:") {
		t.Fatalf("receipt body missing checksums: %s", body)
	}
}

func TestRunDeclineCancelsWithoutUploading(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner, false)
	seedArtifacts(t, ctx, "fcsp_api-0.2.0.tar.gz")

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != step.StatusCancelled {
		t.Fatalf("status = %s, want %s", result.Status, step.StatusCancelled)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("declined publish still ran %d invocation(s)", len(runner.calls))
	}
	if _, _, err := ctx.Artifacts.ReadReceipt(ctx.RunID); err == nil {
		t.Fatal("declined publish wrote a receipt")
	}
}

func TestRunFailsOnEmptyDist(t *testing.T) {
	runner := &fakeRunner{}
	ctx := newTestContext(t, runner, true)

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != step.StatusFailed {
		t.Fatalf("status = %s, want %s", result.Status, step.StatusFailed)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("empty dist still ran %d invocation(s)", len(runner.calls))
	}
}

func TestRunSurfacesUploadFailure(t *testing.T) {
	runner := &fakeRunner{result: toolchain.Result{
		ExitCode: 1,
		Stderr:   []byte("HTTPError: 403 Forbidden"),
	}}
	ctx := newTestContext(t, runner, true)
	seedArtifacts(t, ctx, "fcsp_api-0.2.0.tar.gz")

	result, err := New().Run(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Status != step.StatusFailed {
		t.Fatalf("status = %s, want %s", result.Status, step.StatusFailed)
	}
	if !strings.Contains(result.Message, "403 Forbidden") {
		t.Fatalf("message does not surface twine output: %s", result.Message)
	}
}

func TestRunRequiresConfirmer(t *testing.T) {
	runner := &fakeRunner{}
	base := newTestContext(t, runner, true)
	ctx := base.WithConfirmer(nil)
	seedArtifacts(t, ctx, "fcsp_api-0.2.0.tar.gz")

	if _, err := New().Run(ctx); err == nil {
		t.Fatal("expected an error when no confirmer is wired")
	}
}
