package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/bldrhq/bldr/internal/artifact"
	"github.com/bldrhq/bldr/internal/platform"
	"github.com/bldrhq/bldr/internal/runner"
)

const (
	compilerExe = "ldc2"
	builderExe  = "dub"
)

// Resolved paths to the build tools.
type Tools struct {
	Compiler      string // Path to the ldc2 compiler.
	Builder       string // Path to the dub build tool.
	ExtraPath     string // Search-path entry for subprocesses. Empty when system tools are used.
	RuntimeLibDir string // lib directory of a downloaded toolchain. Empty when system tools are used.
}

// Controls toolchain resolution.
type Options struct {
	Version  string                       // Pinned toolchain version. Empty uses the default.
	Platform platform.Key                 // Target platform for auto-download.
	Cache    *artifact.Cache              // Artifact cache for auto-download.
	Runner   runner.Runner                // Runner for version probes.
	LookPath func(string) (string, error) // Search-path lookup. Nil uses exec.LookPath.
}

// Resolves executable paths for the required build tools.
//
// System tools win when both probe successfully; otherwise the pinned
// toolchain is acquired and executables are resolved under its bin
// directory. The platform is resolved before any network access, so an
// unsupported platform aborts without touching the cache.
func Ensure(ctx context.Context, opts Options) (*Tools, error) {
	version := opts.Version
	if version == "" {
		version = platform.DefaultToolchainVersion
	}
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	compiler, compilerOK := probe(ctx, opts.Runner, lookPath, compilerExe)
	builder, builderOK := probe(ctx, opts.Runner, lookPath, builderExe)

	if compilerOK && builderOK {
		slog.Debug("using system toolchain", "compiler", compiler, "builder", builder)
		return &Tools{Compiler: compiler, Builder: builder}, nil
	}

	slog.Info("toolchain not found on search path, downloading",
		"version", version,
		"os", opts.Platform.OS,
		"arch", opts.Platform.Arch,
	)

	desc, err := platform.ResolveToolchain(opts.Platform, version)
	if err != nil {
		return nil, err
	}

	installed, err := opts.Cache.EnsureTree(ctx, desc)
	if err != nil {
		return nil, err
	}

	binDir := filepath.Join(installed, "bin")
	tools := &Tools{
		Compiler:      filepath.Join(binDir, compilerExe),
		Builder:       filepath.Join(binDir, builderExe),
		ExtraPath:     binDir,
		RuntimeLibDir: filepath.Join(installed, "lib"),
	}

	for _, path := range []string{tools.Compiler, tools.Builder} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s not found in installed toolchain", ErrToolchain, path)
		}
	}

	return tools, nil
}

// Probes a tool on the ambient search path with a version check.
//
// A tool only counts as present when it both resolves on the search path
// and exits zero from the probe; a broken install (wrong architecture,
// missing shared libraries) fails here and triggers the download path.
func probe(ctx context.Context, r runner.Runner, lookPath func(string) (string, error), name string) (string, bool) {
	path, err := lookPath(name)
	if err != nil {
		return "", false
	}

	res, err := r.Run(ctx, runner.Cmd{Path: path, Args: []string{"--version"}})
	if err != nil || res.ExitCode != 0 {
		slog.Debug("version probe failed", "tool", name, "path", path)
		return "", false
	}

	return path, true
}
