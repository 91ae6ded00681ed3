package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	goruntime "runtime"
	"strings"

	"github.com/bldrhq/bldr/internal"
	"github.com/bldrhq/bldr/internal/artifact"
	"github.com/bldrhq/bldr/internal/platform"
)

// Default pinned binary version, used when no version is injected.
const DefaultVersion = "2.0.0"

// Environment variable overriding the pinned binary version.
//
// The launcher cannot take a flag for this: its whole argument list
// belongs to the forwarded binary.
const VersionEnv = "BLDR_VERSION"

// Controls binary acquisition.
type Options struct {
	Cache    *artifact.Cache // Cache for downloaded binaries.
	Version  string          // Binary version. Empty uses VersionEnv, then DefaultVersion.
	Platform platform.Key    // Target platform. Zero value uses the host.

	urlBase string // Release URL override for tests.
}

// Guarantees a runnable binary is cached and returns its path.
//
// A cached binary for the requested version is used directly with no
// network call. Every failure mode folds into [ErrUnavailable] so the
// caller has a single recoverable outcome to map to its fallback UX.
func Ensure(ctx context.Context, opts Options) (string, error) {
	version := opts.Version
	if version == "" {
		version = os.Getenv(VersionEnv)
	}
	if version == "" {
		version = DefaultVersion
	}

	key := opts.Platform
	if key == (platform.Key{}) {
		key = platform.Key{OS: goruntime.GOOS, Arch: goruntime.GOARCH}
	}

	desc, err := platform.ResolveAsset(internal.Name, key, version)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if opts.urlBase != "" {
		desc.URL = opts.urlBase + "/v" + version + "/" + desc.ArchiveName
	}

	binary, err := opts.Cache.EnsureExecutable(ctx, desc, internal.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return binary, nil
}

// Executes the resolved binary as a child process.
//
// All invocation arguments are forwarded unmodified and the standard
// streams are inherited. Returns the child's exit status unmodified; an
// error is returned only when the child could not be started or
// observed at all.
func Exec(ctx context.Context, binary string, args []string) (int, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		return 0, err
	}

	return 0, nil
}

// Returns the human-readable alternate-install instructions printed when
// acquisition fails entirely.
func InstallHint() string {
	return strings.TrimSpace(`
Could not download a prebuilt bldr binary for this platform.

Alternative installation options:

  - Build from source:    dub build --build=release
  - Install via package:  see https://github.com/bldrhq/bldr#installation
  - Download manually:    https://github.com/bldrhq/bldr/releases

If you are behind a proxy, set HTTPS_PROXY and try again.
`)
}
