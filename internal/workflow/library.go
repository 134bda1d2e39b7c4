package workflow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CustomDir is the directory under .wheelhouse where user-defined workflow
// definitions live, one YAML file per workflow.
const CustomDir = "workflows"

// DefinitionFile pairs a parsed workflow definition with its on-disk source.
type DefinitionFile struct {
	Definition Definition
	Path       string
}

// LoadDefinitionFile reads a YAML file from disk and returns the parsed
// workflow definition.
func LoadDefinitionFile(path string) (DefinitionFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("workflow: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return DefinitionFile{}, fmt.Errorf("workflow: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("workflow: read %s: %w", path, err)
	}
	def, err := ParseDefinitionYAML(data)
	if err != nil {
		return DefinitionFile{}, fmt.Errorf("workflow: %s: %w", path, err)
	}
	return DefinitionFile{Definition: def, Path: filepath.Clean(path)}, nil
}

// LoadDefinitionDir scans a directory for *.yaml workflows and returns the
// parsed definitions. Missing directories are treated as "no custom
// workflows" to simplify startup.
func LoadDefinitionDir(dir string) ([]DefinitionFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("workflow: read %s: %w", trimmed, err)
	}
	var defs []DefinitionFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !isYAMLFile(entry.Name()) {
			continue
		}
		def, err := LoadDefinitionFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Path < defs[j].Path })
	return defs, nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Library resolves workflow definitions by ID, preferring the built-ins and
// falling back to user-defined YAML workflows from a custom directory.
type Library struct {
	builtin map[string]Definition
	custom  map[string]Definition
	order   []string
}

// NewLibrary loads the built-in workflows plus any custom definitions found
// under customDir. A custom definition may not shadow a built-in ID.
func NewLibrary(customDir string) (*Library, error) {
	lib := &Library{
		builtin: make(map[string]Definition),
		custom:  make(map[string]Definition),
	}
	for _, def := range []Definition{Publish(), Verify()} {
		lib.builtin[def.ID] = def
		lib.order = append(lib.order, def.ID)
	}
	files, err := LoadDefinitionDir(customDir)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]string)
	for _, file := range files {
		id := file.Definition.ID
		if _, ok := lib.builtin[id]; ok {
			return nil, fmt.Errorf("workflow: %s redefines built-in workflow %s", file.Path, id)
		}
		if existing, ok := seen[id]; ok {
			return nil, fmt.Errorf("workflow: duplicate workflow id %s (%s and %s)", id, existing, file.Path)
		}
		seen[id] = file.Path
		lib.custom[id] = file.Definition
		lib.order = append(lib.order, id)
	}
	return lib, nil
}

// Lookup returns the definition registered under id.
func (l *Library) Lookup(id string) (Definition, bool) {
	if def, ok := l.builtin[id]; ok {
		return def.Clone(), true
	}
	if def, ok := l.custom[id]; ok {
		return def.Clone(), true
	}
	return Definition{}, false
}

// IDs lists every known workflow, built-ins first and custom workflows in
// path order.
func (l *Library) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}
