// Package launcher acquires and runs the prebuilt bldr binary.
//
// At invocation time the launcher guarantees a complete, executable,
// correct-platform binary is cached locally, then executes it as a
// child process with every argument forwarded verbatim and the child's
// exit status propagated unmodified. The launcher itself interprets
// nothing: flags, subcommands, and file arguments all belong to the
// resolved binary.
//
// Acquisition reuses the artifact cache's pattern but shares no process
// state with the build-time tooling. Any failure to obtain a working
// binary is an [ErrUnavailable] result, never a panic; the caller is
// expected to print alternate-install instructions and exit non-zero.
package launcher
