package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/kingrea/wheelhouse/internal/config"
)

// Store manages artifact IO rooted at the project directory.
type Store struct {
	cfg *config.Config
	now func() time.Time
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithClock overrides the clock used for metadata timestamps.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = clock
	}
}

// NewStore builds a store for a project configuration.
func NewStore(cfg *config.Config, opts ...StoreOption) *Store {
	store := &Store{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Check inspects the artifact on disk and returns its status. Markers and
// directories are judged by shape alone; file sets must be non-empty;
// documents must carry valid frontmatter matching the ref.
func (s *Store) Check(ref Ref) (CheckResult, error) {
	path := ref.Path(s.cfg)
	if path == "" {
		err := fmt.Errorf("artifact: %s path could not be resolved", ref.ID)
		return CheckResult{Ref: ref, Path: path, State: StateError, Err: err}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return CheckResult{Ref: ref, Path: path, State: StateMissing}, nil
		}
		return CheckResult{Ref: ref, Path: path, State: StateError, Err: err}, err
	}
	switch ref.Kind {
	case KindMarker:
		if info.IsDir() {
			return invalidResult(ref, path, fmt.Errorf("artifact: expected marker file got directory"))
		}
		return CheckResult{Ref: ref, Path: path, State: StateReady}, nil
	case KindDirectory:
		if !info.IsDir() {
			return invalidResult(ref, path, fmt.Errorf("artifact: expected directory"))
		}
		return CheckResult{Ref: ref, Path: path, State: StateReady}, nil
	case KindFileSet:
		if !info.IsDir() {
			return invalidResult(ref, path, fmt.Errorf("artifact: expected directory of files"))
		}
		set, enumErr := Enumerate(path)
		if enumErr != nil {
			return CheckResult{Ref: ref, Path: path, State: StateError, Err: enumErr}, enumErr
		}
		if set.Empty() {
			return invalidResult(ref, path, fmt.Errorf("artifact: %s is empty", ref.ID))
		}
		return CheckResult{Ref: ref, Path: path, State: StateReady}, nil
	default:
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return CheckResult{Ref: ref, Path: path, State: StateError, Err: readErr}, readErr
		}
		meta, _, metaErr := ParseFrontMatter(data)
		if metaErr != nil {
			return invalidResult(ref, path, metaErr)
		}
		if meta.ArtifactID != ref.ID {
			return invalidResult(ref, path, fmt.Errorf("artifact: metadata id %s does not match %s", meta.ArtifactID, ref.ID))
		}
		return CheckResult{Ref: ref, Path: path, State: StateReady, Metadata: &meta}, nil
	}
}

// WriteReceipt renders a publish receipt document under the receipts
// directory and returns its path. The run ID becomes the file name so
// receipts sort chronologically.
func (s *Store) WriteReceipt(runID string, meta Metadata, body []byte) (string, error) {
	if runID == "" {
		return "", fmt.Errorf("artifact: receipt run id is required")
	}
	ref, ok := Lookup(PublishReceipt.ID)
	if !ok {
		return "", fmt.Errorf("artifact: receipt ref %s is not registered", PublishReceipt.ID)
	}
	prepared := meta.WithDefaults(ref, s.now())
	if err := prepared.ValidateFor(ref); err != nil {
		return "", err
	}
	content, err := WriteFrontMatter(prepared, body)
	if err != nil {
		return "", err
	}
	dir := s.cfg.ReceiptsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("artifact: ensure receipts dir: %w", err)
	}
	path := filepath.Join(dir, runID+".md")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("artifact: write receipt: %w", err)
	}
	return path, nil
}

// ReadReceipt loads a receipt by run ID.
func (s *Store) ReadReceipt(runID string) (Metadata, []byte, error) {
	path := filepath.Join(s.cfg.ReceiptsDir(), runID+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("artifact: read receipt: %w", err)
	}
	return ParseFrontMatter(data)
}

func invalidResult(ref Ref, path string, err error) (CheckResult, error) {
	return CheckResult{Ref: ref, Path: path, State: StateInvalid, Err: err}, nil
}
