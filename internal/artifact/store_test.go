package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kingrea/wheelhouse/internal/config"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	projectDir := t.TempDir()
	if err := config.InitWheelhouseDir(projectDir); err != nil {
		t.Fatalf("init wheelhouse dir: %v", err)
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	return cfg
}

func TestCheckMarkerStates(t *testing.T) {
	cfg := newTestConfig(t)
	store := NewStore(cfg)

	result, err := store.Check(PyprojectMarker)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.State != StateMissing {
		t.Fatalf("expected missing, got %s", result.State)
	}

	if err := os.WriteFile(PyprojectMarker.Path(cfg), []byte("[build-system]\n"), 0o644); err != nil {
		t.Fatalf("seed marker: %v", err)
	}
	result, err = store.Check(PyprojectMarker)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.State != StateReady {
		t.Fatalf("expected ready, got %s", result.State)
	}
}

func TestCheckFileSetRequiresArtifacts(t *testing.T) {
	cfg := newTestConfig(t)
	store := NewStore(cfg)

	if err := os.MkdirAll(cfg.DistDir(), 0o755); err != nil {
		t.Fatalf("mkdir dist: %v", err)
	}
	result, err := store.Check(DistFiles)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.State != StateInvalid {
		t.Fatalf("empty dist should be invalid, got %s", result.State)
	}

	if err := os.WriteFile(filepath.Join(cfg.DistDir(), "pkg-0.1.0.tar.gz"), []byte("x"), 0o644); err != nil {
		t.Fatalf("seed artifact: %v", err)
	}
	result, err = store.Check(DistFiles)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.State != StateReady {
		t.Fatalf("expected ready, got %s", result.State)
	}
}

func TestWriteAndReadReceipt(t *testing.T) {
	cfg := newTestConfig(t)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewStore(cfg, WithClock(func() time.Time { return fixed }))

	meta := Metadata{
		StepID:   "publish",
		Version:  "1.0.0",
		Workflow: "publish",
		Files:    []string{"pkg-0.1.0-py3-none-any.whl", "pkg-0.1.0.tar.gz"},
		Notes:    map[string]string{"repository": "testpypi"},
	}
	path, err := store.WriteReceipt("publish-20260301-120000", meta, []byte("# Published pkg 0.1.0\n"))
	if err != nil {
		t.Fatalf("write receipt: %v", err)
	}
	if filepath.Dir(path) != cfg.ReceiptsDir() {
		t.Fatalf("receipt written outside receipts dir: %s", path)
	}

	got, body, err := store.ReadReceipt("publish-20260301-120000")
	if err != nil {
		t.Fatalf("read receipt: %v", err)
	}
	if got.ArtifactID != "publish-receipt" || got.StepID != "publish" {
		t.Fatalf("unexpected metadata: %+v", got)
	}
	if !got.CreatedAt.Equal(fixed) {
		t.Fatalf("created at = %s, want %s", got.CreatedAt, fixed)
	}
	if len(got.Files) != 2 || got.Notes["repository"] != "testpypi" {
		t.Fatalf("metadata lost fields: %+v", got)
	}
	if !strings.Contains(string(body), "Published pkg") {
		t.Fatalf("body missing: %s", body)
	}
}

func TestWriteReceiptRejectsIncompleteMetadata(t *testing.T) {
	cfg := newTestConfig(t)
	store := NewStore(cfg)

	// Provenance is the whole point of a receipt; refuse to write one
	// without the producing step.
	_, err := store.WriteReceipt("publish-20260301-120000", Metadata{Version: "1.0.0"}, []byte("body"))
	if err == nil || !strings.Contains(err.Error(), "step id") {
		t.Fatalf("expected step id error, got %v", err)
	}
	_, err = store.WriteReceipt("publish-20260301-120000", Metadata{StepID: "publish"}, []byte("body"))
	if err == nil || !strings.Contains(err.Error(), "version") {
		t.Fatalf("expected version error, got %v", err)
	}
}

func TestParseFrontMatterRejectsGarbage(t *testing.T) {
	if _, _, err := ParseFrontMatter(nil); err != ErrMissingFrontMatter {
		t.Fatalf("nil content: %v", err)
	}
	if _, _, err := ParseFrontMatter([]byte("no fences here")); err != ErrMissingFrontMatter {
		t.Fatalf("unfenced content: %v", err)
	}
	if _, _, err := ParseFrontMatter([]byte("---\nwheelhouse:\n  artifact: x\n")); err != ErrMalformedFrontMatter {
		t.Fatalf("unterminated fence: %v", err)
	}
}
