package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	toolName = "bldr"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644

	// Permission mode for installed executables.
	ExecutableMode os.FileMode = 0755
)

// Path to the root of the artifact cache.
//
//	Linux:   ~/.cache/bldr
//	macOS:   ~/Library/Caches/bldr
func CacheRoot() string {
	return filepath.Join(xdg.CacheHome, toolName)
}

// Path to the directory holding extracted toolchain trees.
//
// Each pinned toolchain version extracts into its own subdirectory
// (e.g., ldc-1.35.0-linux-x86_64), so a version bump creates a new
// entry rather than overwriting an old one.
func Toolchains() string {
	return filepath.Join(CacheRoot(), "toolchains")
}

// Path to the directory holding downloaded launcher binaries.
//
// Binaries are keyed by tool name and version (e.g., bin/bldr-2.0.0/bldr).
func Binaries() string {
	return filepath.Join(CacheRoot(), "bin")
}
