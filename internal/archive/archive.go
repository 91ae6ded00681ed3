package archive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bldrhq/bldr/internal/runner"
)

// Controls object aggregation.
type Options struct {
	ObjectDir string        // Directory scanned for *.o files.
	Name      string        // Library name without the lib prefix or .a suffix.
	Runner    runner.Runner // Runner for the ar invocation.
}

// Archives the object files found in the object directory and returns
// the archive path.
//
// The object set is discovered at call time, not incrementally
// maintained. Objects are passed to ar in sorted order so the archive
// is reproducible across runs.
func Aggregate(ctx context.Context, opts Options) (string, error) {
	objects, err := filepath.Glob(filepath.Join(opts.ObjectDir, "*.o"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if len(objects) == 0 {
		return "", fmt.Errorf("%w: nothing matched %s", ErrNoObjects, filepath.Join(opts.ObjectDir, "*.o"))
	}
	sort.Strings(objects)

	archivePath := filepath.Join(opts.ObjectDir, "lib"+opts.Name+".a")

	// Always rebuilt, never patched in place.
	if err := os.Remove(archivePath); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}

	slog.Info("aggregating objects", "archive", archivePath, "objects", len(objects))

	res, err := opts.Runner.Run(ctx, runner.Cmd{
		Path: "ar",
		Args: append([]string{"rcs", archivePath}, objects...),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrArchive, err)
	}
	if res.ExitCode != 0 {
		return "", fmt.Errorf("%w: ar exit code %d: %s", ErrArchive, res.ExitCode, strings.TrimSpace(res.Stderr))
	}

	return archivePath, nil
}
