package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	goruntime "runtime"
	"time"

	"github.com/bldrhq/bldr/internal/archive"
	"github.com/bldrhq/bldr/internal/artifact"
	"github.com/bldrhq/bldr/internal/build"
	"github.com/bldrhq/bldr/internal/linkspec"
	"github.com/bldrhq/bldr/internal/paths"
	"github.com/bldrhq/bldr/internal/platform"
	"github.com/bldrhq/bldr/internal/runner"
	"github.com/bldrhq/bldr/internal/toolchain"
)

// Name of the aggregated native object archive, without the lib prefix.
const objectArchiveName = "builder-c"

// Runs the two-stage build and emits link directives on stdout.
type BuildCmd struct {
	Manifest         string        `short:"m" default:"." type:"existingdir" help:"Directory holding the build manifest (dub.json)."`
	Out              string        `short:"o" env:"OUT_DIR" help:"Workspace directory for build output. Defaults to <manifest>/build."`
	ToolchainVersion string        `default:"${toolchain_version}" help:"Pinned D toolchain version used when no system toolchain is found."`
	TargetOS         string        `name:"os" help:"Target operating system. Defaults to the host."`
	TargetArch       string        `name:"arch" help:"Target architecture. Defaults to the host."`
	CacheDir         string        `type:"path" help:"Override the toolchain cache directory."`
	Timeout          time.Duration `help:"Deadline applied to each external command. Zero disables it."`
}

// Executes the build command.
//
// The pipeline resolves the toolchain, stages and runs the two build
// stages, aggregates the native objects, and finally writes the link
// directives to stdout. Each step owns its own failure reporting; a
// failed step aborts the pipeline with its error unwrapped for the
// caller.
func (c *BuildCmd) Run(ctx context.Context) error {
	manifestDir, err := filepath.Abs(c.Manifest)
	if err != nil {
		return err
	}
	sourceRoot := build.ResolveSourceRoot(manifestDir)

	buildDir := c.Out
	if buildDir == "" {
		buildDir = filepath.Join(manifestDir, "build")
	}
	buildDir, err = filepath.Abs(buildDir)
	if err != nil {
		return err
	}

	key := platform.Key{OS: c.TargetOS, Arch: c.TargetArch}
	if key.OS == "" {
		key.OS = goruntime.GOOS
	}
	if key.Arch == "" {
		key.Arch = goruntime.GOARCH
	}

	cacheDir := c.CacheDir
	if cacheDir == "" {
		cacheDir = paths.Toolchains()
	}

	run := &runner.System{Timeout: c.Timeout}

	slog.Info("starting build",
		"source", sourceRoot,
		"workspace", buildDir,
		"os", key.OS,
		"arch", key.Arch,
	)

	tools, err := toolchain.Ensure(ctx, toolchain.Options{
		Version:  c.ToolchainVersion,
		Platform: key,
		Cache:    &artifact.Cache{Root: cacheDir},
		Runner:   run,
	})
	if err != nil {
		return err
	}

	result, err := build.Run(ctx, build.Options{
		SourceRoot: sourceRoot,
		BuildDir:   buildDir,
		Tools:      tools,
		Runner:     run,
	})
	if err != nil {
		return err
	}

	if _, err := archive.Aggregate(ctx, archive.Options{
		ObjectDir: result.ObjectDir,
		Name:      objectArchiveName,
		Runner:    run,
	}); err != nil {
		return err
	}

	set := linkspec.Compose(ctx, linkspec.Inputs{
		OS:              key.OS,
		SourceRoot:      sourceRoot,
		LibraryDir:      result.LibraryDir,
		ObjectDir:       result.ObjectDir,
		ToolchainLibDir: tools.RuntimeLibDir,
		Runner:          run,
	})

	return set.Emit(os.Stdout)
}
