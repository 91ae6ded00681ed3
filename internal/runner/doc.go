// Package runner executes external processes behind a single small
// abstraction.
//
// Every subprocess this tool spawns (make, dub, ar, pkg-config, version
// probes) goes through [Runner], so acquisition and build logic can be
// exercised in tests against [Fake] without a real toolchain installed.
//
// A non-zero exit code is not treated as an error: the [Result] carries
// the exit code and captured output, and the caller decides how to handle
// it. Errors are reserved for failures to start or observe the process.
//
// [System] runs commands on the host. Each invocation blocks until the
// child exits. On Unix the child is placed in its own process group and
// the whole group is signalled on cancellation, so terminating the parent
// also terminates a currently-blocked build stage.
package runner
