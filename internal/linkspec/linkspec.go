package linkspec

import (
	"context"
	"path/filepath"

	"github.com/bldrhq/bldr/internal/runner"
)

const (

	// Name of the D static library produced by the secondary stage.
	primaryLib = "builder-core"

	// Name of the aggregated native object archive.
	objectLib = "builder-c"
)

// Candidate pkg-config names for the tree-sitter dependency, in probe
// order. The fallback mirrors the first candidate.
var treeSitterCandidates = []string{"tree-sitter", "libtree-sitter"}

// Runtime libraries required unconditionally by the D runtime.
var dRuntimeLibs = []string{"phobos2-ldc", "druntime-ldc"}

// Extra search paths consulted only on macOS, where homebrew installs
// libraries outside the default linker paths.
var darwinSearchPaths = []string{"/opt/homebrew/lib", "/usr/local/lib"}

// Inputs for composing the directive sequence.
type Inputs struct {
	OS              string        // Target operating system.
	SourceRoot      string        // Project root, for rerun triggers.
	LibraryDir      string        // Directory holding the D static library.
	ObjectDir       string        // Directory holding the aggregated object archive.
	ToolchainLibDir string        // lib dir of a downloaded toolchain. Empty when system tools were used.
	Runner          runner.Runner // Runner for dependency probes.
}

// Composes the full directive sequence for one build.
//
// Search paths are emitted before the libraries that live in them, and
// the D runtime libraries come last so their symbols resolve references
// from everything before them.
func Compose(ctx context.Context, in Inputs) *Set {
	set := &Set{}

	// Runtime libraries of a downloaded toolchain are not on the default
	// linker path.
	if in.ToolchainLibDir != "" {
		set.AddSearchPath(in.ToolchainLibDir)
	}

	set.AddSearchPath(in.LibraryDir)
	set.AddStaticLib(primaryLib)

	set.AddSearchPath(in.ObjectDir)
	set.AddStaticLib(objectLib)

	probe := ProbeSystemLib(ctx, in.Runner, treeSitterCandidates, "tree-sitter")
	for _, path := range probe.SearchPaths {
		set.AddSearchPath(path)
	}
	for _, lib := range probe.Libs {
		set.AddDynamicLib(lib)
	}

	if in.OS == "darwin" {
		for _, path := range darwinSearchPaths {
			set.AddSearchPath(path)
		}
		// The D runtime needs the C++ standard library when linked into
		// a foreign main on macOS.
		set.AddDynamicLib("c++")
	}

	for _, lib := range dRuntimeLibs {
		set.AddDynamicLib(lib)
	}

	for _, trigger := range []string{
		filepath.Join(in.SourceRoot, "source"),
		filepath.Join(in.SourceRoot, "dub.json"),
		filepath.Join(in.SourceRoot, "Makefile"),
	} {
		set.AddRerunTrigger(trigger)
	}

	return set
}
