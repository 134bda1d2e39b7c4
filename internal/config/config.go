// internal/config/config.go
//
// This package handles configuration and the .wheelhouse directory structure.
// Every Python project that uses wheelhouse gets a .wheelhouse/ folder created
// in its root.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// WheelhouseDir is the name of the directory we create in each project
	WheelhouseDir = ".wheelhouse"

	defaultPython     = "python3"
	defaultDistDir    = "dist"
	defaultName       = "fcsp-api"
	defaultImport     = "fcsp_api"
	defaultSymbol     = "FCSP"
	defaultEntrypoint = "fcsp-scanner"
)

const defaultProjectConfigYAML = `# wheelhouse project configuration
version: 1

# Interpreter used to drive build, twine, and pip. Must be on PATH.
python: python3

# The package under release. Defaults describe fcsp-api; adjust for your project.
project:
  name: fcsp-api         # name on the package index
  import: fcsp_api       # importable package
  symbol: FCSP           # primary symbol the smoke test imports
  entrypoint: fcsp-scanner  # console script registered by the package

# Directory the build tool writes artifacts into, relative to the project root.
dist_dir: dist

# Optional named repository passed to twine (--repository). Empty uses the
# twine default (PyPI).
index:
  repository: ""
`

// ProjectRef identifies the Python package the workflows operate on.
type ProjectRef struct {
	Name       string `yaml:"name"`
	Import     string `yaml:"import"`
	Symbol     string `yaml:"symbol"`
	Entrypoint string `yaml:"entrypoint"`
}

// IndexConfig captures package-index preferences for uploads.
type IndexConfig struct {
	Repository string `yaml:"repository,omitempty"`
}

// ProjectConfig models .wheelhouse/config.yaml.
type ProjectConfig struct {
	Version int         `yaml:"version"`
	Python  string      `yaml:"python"`
	Project ProjectRef  `yaml:"project"`
	DistDir string      `yaml:"dist_dir"`
	Index   IndexConfig `yaml:"index"`
}

// Config holds the runtime configuration for wheelhouse.
type Config struct {
	// ProjectDir is the directory where the user ran `wheelhouse` from. It is
	// expected to be the Python project root (pyproject.toml + setup.py).
	ProjectDir string

	// WheelhouseProjectDir is ProjectDir/.wheelhouse
	WheelhouseProjectDir string

	Project ProjectConfig
}

// InitWheelhouseDir creates the .wheelhouse directory structure in the given
// project directory. This is called on every CLI invocation before any
// workflow runs.
//
// Structure created:
// .wheelhouse/
// ├── logs/      <- diagnostics log + per-run logbooks
// └── receipts/  <- publish receipts (one document per successful upload)
func InitWheelhouseDir(projectDir string) error {
	wheelhouseDir := filepath.Join(projectDir, WheelhouseDir)

	dirs := []string{
		filepath.Join(wheelhouseDir, "logs"),
		filepath.Join(wheelhouseDir, "receipts"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return ensureProjectConfig(filepath.Join(wheelhouseDir, "config.yaml"))
}

// NewConfig creates a Config populated from .wheelhouse/config.yaml, falling
// back to defaults when the file is absent.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:           projectDir,
		WheelhouseProjectDir: filepath.Join(projectDir, WheelhouseDir),
		Project:              defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(cfg.ProjectConfigPath(), false); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewConfigFromFile behaves like NewConfig but reads an explicit config path
// (the --config flag).
func NewConfigFromFile(projectDir, path string) (*Config, error) {
	cfg := &Config{
		ProjectDir:           projectDir,
		WheelhouseProjectDir: filepath.Join(projectDir, WheelhouseDir),
		Project:              defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(path, true); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProjectConfigPath returns the path to .wheelhouse/config.yaml.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.WheelhouseProjectDir, "config.yaml")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.WheelhouseProjectDir, "logs")
}

// ReceiptsDir returns the path to the publish receipts directory.
func (c *Config) ReceiptsDir() string {
	return filepath.Join(c.WheelhouseProjectDir, "receipts")
}

// DistDir returns the absolute path of the build output directory.
func (c *Config) DistDir() string {
	return filepath.Join(c.ProjectDir, c.Project.DistDir)
}

// Python returns the interpreter executable used for all tool invocations.
func (c *Config) Python() string {
	return c.Project.Python
}

func (c *Config) loadProjectConfig(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		// The implicit .wheelhouse/config.yaml may be absent (defaults
		// apply), but an explicitly requested file must exist.
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644); err != nil {
		return fmt.Errorf("config: write default %s: %w", path, err)
	}
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Python:  defaultPython,
		Project: ProjectRef{
			Name:       defaultName,
			Import:     defaultImport,
			Symbol:     defaultSymbol,
			Entrypoint: defaultEntrypoint,
		},
		DistDir: defaultDistDir,
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if strings.TrimSpace(pc.Python) == "" {
		pc.Python = defaultPython
	}
	if strings.TrimSpace(pc.DistDir) == "" {
		pc.DistDir = defaultDistDir
	}
	def := defaultProjectConfig().Project
	if strings.TrimSpace(pc.Project.Name) == "" {
		pc.Project.Name = def.Name
	}
	if strings.TrimSpace(pc.Project.Import) == "" {
		pc.Project.Import = def.Import
	}
	if strings.TrimSpace(pc.Project.Symbol) == "" {
		pc.Project.Symbol = def.Symbol
	}
	if strings.TrimSpace(pc.Project.Entrypoint) == "" {
		pc.Project.Entrypoint = def.Entrypoint
	}
}

func (pc *ProjectConfig) normalize() {
	pc.Python = strings.TrimSpace(pc.Python)
	pc.DistDir = strings.TrimSpace(pc.DistDir)
	pc.Project.Name = strings.TrimSpace(pc.Project.Name)
	pc.Project.Import = strings.TrimSpace(pc.Project.Import)
	pc.Project.Symbol = strings.TrimSpace(pc.Project.Symbol)
	pc.Project.Entrypoint = strings.TrimSpace(pc.Project.Entrypoint)
	pc.Index.Repository = strings.TrimSpace(pc.Index.Repository)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	// The build step removes this directory wholesale; anything that
	// resolves at or above the project root must never get that far.
	// IsLocal alone accepts "." and paths that clean to it.
	if cleaned := filepath.Clean(pc.DistDir); cleaned == "." || !filepath.IsLocal(cleaned) {
		return fmt.Errorf("dist_dir %q must name a directory inside the project root", pc.DistDir)
	}
	if strings.ContainsAny(pc.Project.Import, " -") {
		return fmt.Errorf("project.import %q is not an importable module name", pc.Project.Import)
	}
	return nil
}
