package build

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bldrhq/bldr/internal/paths"
)

// Build descriptor files copied verbatim into the workspace alongside
// the source tree.
var descriptorFiles = []string{"dub.json", "Makefile"}

// Resolves the project root for a manifest directory.
//
// A bundled layout keeps dub.json next to the manifest; in the repo
// layout the project root is two levels up from the manifest directory.
func ResolveSourceRoot(manifestDir string) string {
	if _, err := os.Stat(filepath.Join(manifestDir, "dub.json")); err == nil {
		return manifestDir
	}
	return filepath.Dir(filepath.Dir(manifestDir))
}

// Materializes a fresh workspace from the source root.
//
// Any existing build directory is deleted first, so no stale files leak
// across runs. The source tree and the build descriptor files are copied
// in; everything else stays out of the workspace.
func stageWorkspace(sourceRoot, buildDir string) error {
	slog.Debug("staging workspace", "source", sourceRoot, "build", buildDir)

	if err := os.RemoveAll(buildDir); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkspace, err)
	}
	if err := os.MkdirAll(buildDir, paths.DefaultDirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkspace, err)
	}

	if err := copyDir(filepath.Join(sourceRoot, "source"), filepath.Join(buildDir, "source")); err != nil {
		return fmt.Errorf("%w: copying source tree: %w", ErrWorkspace, err)
	}

	for _, name := range descriptorFiles {
		if err := copyFile(filepath.Join(sourceRoot, name), filepath.Join(buildDir, name)); err != nil {
			return fmt.Errorf("%w: copying %s: %w", ErrWorkspace, name, err)
		}
	}

	return nil
}
