package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gookit/color"

	"github.com/bldrhq/bldr/internal"
	"github.com/bldrhq/bldr/internal/artifact"
	"github.com/bldrhq/bldr/internal/launcher"
	"github.com/bldrhq/bldr/internal/paths"
)

// The entry point for the bldr launcher.
//
// Guarantees the pinned bldr binary is cached, then executes it with the
// full argument list forwarded unmodified. The launcher interprets no
// arguments of its own: flags, subcommands, and even --help belong to the
// forwarded binary. Exits with the child's status.
func main() {
	os.Exit(run())
}

func run() int {
	slog.SetDefault(logger())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	binary, err := launcher.Ensure(ctx, launcher.Options{
		Cache: &artifact.Cache{Root: paths.Binaries()},
	})
	if err != nil {
		slog.Error(err.Error())
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, color.Yellow.Render(launcher.InstallHint()))
		return 1
	}

	code, err := launcher.Exec(ctx, binary, os.Args[1:])
	if err != nil {
		slog.Error(err.Error())
		return 1
	}

	return code
}

// Creates a stderr logger seeded from build-time linker flags.
//
// The launcher takes no flags, so linker flags and BLDR_VERSION are the
// only configuration it has.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if internal.IsDebug() {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler).WithGroup(internal.Name)
}
