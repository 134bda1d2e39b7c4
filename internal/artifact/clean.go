package artifact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Clean removes the output directory and the transient metadata directories
// the build tool leaves behind (build/ and every *.egg-info in the project
// root). Missing directories are not an error, so a fresh checkout and a
// dirty tree both end up in the same state.
func Clean(projectDir, distDir string) error {
	targets := []string{
		distDir,
		filepath.Join(projectDir, "build"),
	}
	eggInfo, err := filepath.Glob(filepath.Join(projectDir, "*.egg-info"))
	if err != nil {
		return fmt.Errorf("artifact: glob egg-info: %w", err)
	}
	targets = append(targets, eggInfo...)

	for _, target := range targets {
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("artifact: remove %s: %w", target, err)
		}
	}
	return nil
}
