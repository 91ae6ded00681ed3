package linkspec

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bldrhq/bldr/internal/runner"
)

// Records how a system dependency's link flags were determined.
type Provenance int

const (
	Probed  Provenance = iota // Flags came from a successful pkg-config probe.
	Assumed                   // Probe failed; the default library name is trusted.
)

// Returns a log-friendly name for the provenance.
func (p Provenance) String() string {
	if p == Probed {
		return "probed"
	}
	return "assumed"
}

// Resolved link flags for one system dependency.
type ProbeResult struct {
	SearchPaths []string   // -L paths from the probe. Empty when assumed.
	Libs        []string   // Library names to link.
	Provenance  Provenance // Whether the flags were probed or assumed.
}

// Probes a system dependency via pkg-config, falling back to the bare
// library name.
//
// Candidate package names are tried in order; different distributions
// register the same library under different names. The first candidate
// whose probe exits zero wins. When every candidate fails (including
// pkg-config itself being absent), the fallback library name is assumed
// and the default linker search paths are trusted. That case is logged
// at warning level so it is distinguishable from a successful probe.
func ProbeSystemLib(ctx context.Context, r runner.Runner, candidates []string, fallback string) ProbeResult {
	for _, name := range candidates {
		res, err := r.Run(ctx, runner.Cmd{
			Path: "pkg-config",
			Args: []string{"--libs", name},
		})
		if err != nil || res.ExitCode != 0 {
			continue
		}

		probed := parseLibFlags(res.Stdout)
		if len(probed.Libs) == 0 && len(probed.SearchPaths) == 0 {
			continue
		}

		slog.Debug("system dependency probed", "package", name, "libs", probed.Libs)
		probed.Provenance = Probed
		return probed
	}

	slog.Warn("pkg-config probe failed, assuming default linker search paths",
		"candidates", strings.Join(candidates, ","),
		"fallback", fallback,
	)
	return ProbeResult{Libs: []string{fallback}, Provenance: Assumed}
}

// Parses pkg-config --libs output into search paths and library names.
//
// Unrecognized flags are dropped; only -L and -l matter to the directive
// sequence.
func parseLibFlags(out string) ProbeResult {
	var result ProbeResult
	for _, field := range strings.Fields(out) {
		switch {
		case strings.HasPrefix(field, "-L"):
			result.SearchPaths = append(result.SearchPaths, strings.TrimPrefix(field, "-L"))
		case strings.HasPrefix(field, "-l"):
			result.Libs = append(result.Libs, strings.TrimPrefix(field, "-l"))
		}
	}
	return result
}
