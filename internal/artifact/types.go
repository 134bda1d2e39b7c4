// Package artifact defines the filesystem-level contracts (inputs/outputs)
// that workflow steps exchange. Each artifact has a stable identifier, kind,
// and a resolver that maps to the actual path within the Python project tree.

package artifact

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/kingrea/wheelhouse/internal/config"
)

// Kind captures the storage shape for an artifact.
type Kind string

const (
	// KindMarker represents a file whose mere presence carries the signal.
	KindMarker Kind = "marker"
	// KindDirectory represents a directory that must exist.
	KindDirectory Kind = "directory"
	// KindFileSet represents an enumerable set of files under a directory.
	KindFileSet Kind = "file-set"
	// KindDocument represents a markdown-like document with YAML frontmatter.
	KindDocument Kind = "document"
)

// PathResolver returns the fully-qualified path to an artifact for the
// current project configuration.
type PathResolver func(*config.Config) string

// Ref declares a stable identifier and metadata for an artifact.
type Ref struct {
	ID          string
	Name        string
	Description string
	Kind        Kind
	Optional    bool
	path        PathResolver
}

// Path resolves the artifact path for the provided configuration.
func (r Ref) Path(cfg *config.Config) string {
	if cfg == nil || r.path == nil {
		return ""
	}
	return filepath.Clean(r.path(cfg))
}

// Validate ensures the reference is well-formed.
func (r Ref) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("artifact: id is required")
	}
	if r.Kind == "" {
		return fmt.Errorf("artifact: kind is required for %s", r.ID)
	}
	if r.path == nil {
		return fmt.Errorf("artifact: path resolver missing for %s", r.ID)
	}
	return nil
}

// Metadata captures provenance stored inside a receipt's frontmatter.
type Metadata struct {
	ArtifactID string
	StepID     string
	Version    string
	Workflow   string
	Files      []string
	CreatedAt  time.Time
	Checksum   string
	Notes      map[string]string
}

// WithDefaults ensures metadata carries the artifact ID and timestamps.
func (m Metadata) WithDefaults(ref Ref, now time.Time) Metadata {
	clone := m
	if clone.ArtifactID == "" {
		clone.ArtifactID = ref.ID
	}
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now.UTC()
	} else {
		clone.CreatedAt = clone.CreatedAt.UTC()
	}
	return clone
}

// ValidateFor ensures metadata matches the artifact contract.
func (m Metadata) ValidateFor(ref Ref) error {
	if m.ArtifactID != ref.ID {
		return fmt.Errorf("artifact: metadata id %s does not match ref %s", m.ArtifactID, ref.ID)
	}
	if m.StepID == "" {
		return fmt.Errorf("artifact: step id is required for %s", ref.ID)
	}
	if m.Version == "" {
		return fmt.Errorf("artifact: version is required for %s", ref.ID)
	}
	return nil
}

// State captures the readiness of an artifact on disk.
type State string

const (
	StateMissing State = "missing"
	StateReady   State = "ready"
	StateInvalid State = "invalid"
	StateError   State = "error"
)

// CheckResult captures Store.Check results.
type CheckResult struct {
	Ref      Ref
	Path     string
	State    State
	Metadata *Metadata
	Err      error
}

// helper to register global references
func register(ref Ref) Ref {
	if refs == nil {
		refs = map[string]Ref{}
	}
	refs[ref.ID] = ref
	return ref
}

var refs map[string]Ref

// Lookup returns a registered artifact reference by ID.
func Lookup(id string) (Ref, bool) {
	ref, ok := refs[id]
	return ref, ok
}

func newMarkerRef(id, name, desc string, resolver PathResolver) Ref {
	return Ref{ID: id, Name: name, Description: desc, Kind: KindMarker, path: resolver}
}

func newDirectoryRef(id, name, desc string, resolver PathResolver) Ref {
	return Ref{ID: id, Name: name, Description: desc, Kind: KindDirectory, path: resolver}
}

func newFileSetRef(id, name, desc string, resolver PathResolver) Ref {
	return Ref{ID: id, Name: name, Description: desc, Kind: KindFileSet, path: resolver}
}

func newDirectoryRefOptional(id, name, desc string, resolver PathResolver) Ref {
	ref := newDirectoryRef(id, name, desc, resolver)
	ref.Optional = true
	return ref
}

// Canonical artifact references for the publish and verify workflows.
var (
	PyprojectMarker = register(newMarkerRef("pyproject-marker", "pyproject.toml", "Marker identifying a PEP 517 project root", func(cfg *config.Config) string {
		return filepath.Join(cfg.ProjectDir, "pyproject.toml")
	}))
	SetupScriptMarker = register(newMarkerRef("setup-marker", "setup.py", "Marker identifying a setuptools project root", func(cfg *config.Config) string {
		return filepath.Join(cfg.ProjectDir, "setup.py")
	}))

	DistDir = register(newDirectoryRef("dist-dir", "Distribution Directory", "Directory the build tool writes wheels and sdists into", func(cfg *config.Config) string {
		return cfg.DistDir()
	}))
	DistFiles = register(newFileSetRef("dist-files", "Distribution Files", "The built artifact set passed to twine and pip", func(cfg *config.Config) string {
		return cfg.DistDir()
	}))

	ReceiptsDir = register(newDirectoryRefOptional("receipts-dir", "Publish Receipts", "Directory storing one receipt document per successful upload", func(cfg *config.Config) string {
		return cfg.ReceiptsDir()
	}))
	PublishReceipt = register(Ref{
		ID:          "publish-receipt",
		Name:        "Publish Receipt",
		Description: "Frontmatter document recording what a run uploaded",
		Kind:        KindDocument,
		Optional:    true,
		path: func(cfg *config.Config) string {
			return cfg.ReceiptsDir()
		},
	})
)
