package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bldrhq/bldr/internal/runner"
	"github.com/bldrhq/bldr/internal/toolchain"
)

// Controls a build run.
type Options struct {
	SourceRoot string           // Project root holding source/, dub.json, and Makefile.
	BuildDir   string           // Disposable workspace, exclusively owned by this run.
	Tools      *toolchain.Tools // Resolved build tools.
	Runner     runner.Runner    // Runner for the stage subprocesses.
}

// Returned after a successful build run.
type Result struct {
	BuildDir   string // The populated workspace.
	LibraryDir string // Directory containing the D static library (bin/).
	ObjectDir  string // Directory containing the native object files (bin/obj/).
}

// Runs the build end-to-end inside a fresh workspace.
//
// The workspace is staged first, then the native stage runs, then the
// secondary stage. A stage failure aborts the run; partial builds are
// not resumable, the next run starts from a clean workspace again.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := stageWorkspace(opts.SourceRoot, opts.BuildDir); err != nil {
		return nil, err
	}

	if err := runNativeStage(ctx, opts); err != nil {
		return nil, err
	}

	if err := runSecondaryStage(ctx, opts); err != nil {
		return nil, err
	}

	return &Result{
		BuildDir:   opts.BuildDir,
		LibraryDir: filepath.Join(opts.BuildDir, "bin"),
		ObjectDir:  filepath.Join(opts.BuildDir, "bin", "obj"),
	}, nil
}

// Runs the native build stage.
//
// Compiles the C objects via the Makefile's build-c target. A non-zero
// exit is fatal and the secondary stage is never attempted.
func runNativeStage(ctx context.Context, opts Options) error {
	slog.Info("running native build stage", "dir", opts.BuildDir)

	res, err := opts.Runner.Run(ctx, runner.Cmd{
		Path: "make",
		Args: []string{"build-c"},
		Dir:  opts.BuildDir,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNativeStage, err)
	}
	if res.ExitCode != 0 {
		return stageError(ErrNativeStage, res)
	}

	return nil
}

// Runs the secondary build stage.
//
// Builds the D static library via dub. The resolved compiler is passed
// explicitly rather than relying on ambient lookup, and when the
// toolchain was downloaded its bin directory is prepended to PATH for
// this invocation only so dub can discover sibling tools.
func runSecondaryStage(ctx context.Context, opts Options) error {
	slog.Info("running secondary build stage", "dir", opts.BuildDir, "compiler", opts.Tools.Compiler)

	cmd := runner.Cmd{
		Path: opts.Tools.Builder,
		Args: []string{
			"build",
			"--config=library",
			"--build=release",
			"--compiler=" + opts.Tools.Compiler,
		},
		Dir: opts.BuildDir,
	}

	if opts.Tools.ExtraPath != "" {
		path := opts.Tools.ExtraPath + string(os.PathListSeparator) + os.Getenv("PATH")
		cmd.Env = []string{"PATH=" + path}
	}

	res, err := opts.Runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSecondaryStage, err)
	}
	if res.ExitCode != 0 {
		return stageError(ErrSecondaryStage, res)
	}

	return nil
}

// Builds a stage failure error carrying the exit code and stderr.
func stageError(sentinel error, res *runner.Result) error {
	stderr := strings.TrimSpace(res.Stderr)
	if stderr == "" {
		return fmt.Errorf("%w: exit code %d", sentinel, res.ExitCode)
	}
	return fmt.Errorf("%w: exit code %d: %s", sentinel, res.ExitCode, stderr)
}
