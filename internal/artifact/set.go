package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File is a single built distributable (wheel or source archive).
type File struct {
	Path string
	Name string
	Size int64
}

// Set is the enumerable artifact set produced by a build. Beyond filenames
// the contents are opaque; later steps hand the paths to external tools.
type Set struct {
	Dir   string
	Files []File
}

// Enumerate lists the files currently present in the output directory,
// sorted by name. A missing directory yields an empty set, not an error.
func Enumerate(dir string) (Set, error) {
	set := Set{Dir: dir}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return set, fmt.Errorf("artifact: enumerate %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return set, fmt.Errorf("artifact: stat %s: %w", entry.Name(), err)
		}
		set.Files = append(set.Files, File{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
			Size: info.Size(),
		})
	}
	sort.Slice(set.Files, func(i, j int) bool { return set.Files[i].Name < set.Files[j].Name })
	return set, nil
}

// Empty reports whether the set holds no artifacts.
func (s Set) Empty() bool {
	return len(s.Files) == 0
}

// Paths returns the artifact paths in enumeration order.
func (s Set) Paths() []string {
	paths := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		paths = append(paths, f.Path)
	}
	return paths
}

// Names returns the artifact file names in enumeration order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		names = append(names, f.Name)
	}
	return names
}

// Wheel returns the first wheel in the set, if any.
func (s Set) Wheel() (File, bool) {
	for _, f := range s.Files {
		if strings.HasSuffix(f.Name, ".whl") {
			return f, true
		}
	}
	return File{}, false
}

// Checksums computes a sha256 digest per artifact, keyed by file name.
func (s Set) Checksums() (map[string]string, error) {
	sums := make(map[string]string, len(s.Files))
	for _, f := range s.Files {
		sum, err := checksumFile(f.Path)
		if err != nil {
			return nil, err
		}
		sums[f.Name] = sum
	}
	return sums, nil
}

func checksumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("artifact: open %s: %w", path, err)
	}
	defer file.Close()
	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("artifact: hash %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
