// Package linkspec translates build outputs into link directives for the
// consuming build graph.
//
// Directives form an ordered sequence: search paths must precede the
// library names that depend on them, and the order of libraries matters
// to the linker on at least Linux. The sequence is rendered in the
// cargo build-script line format the host build graph consumes.
//
// System dependencies are resolved through a pkg-config probe that
// carries provenance: a successful probe emits the probed flags, a
// failed probe falls back to naming the library directly and trusting
// the default linker search paths. The two cases log differently so a
// downstream link failure is diagnosable from the build output.
package linkspec
