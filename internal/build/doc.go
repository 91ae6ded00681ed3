// Package build orchestrates the two-stage native-then-D build.
//
// A run owns a disposable workspace: the build directory is deleted and
// recreated at the start of every run, then populated with a copy of the
// source tree and the build descriptor files (dub.json, Makefile). No
// state survives between runs.
//
// Stages execute strictly in order with short-circuit on failure. The
// native stage compiles the C objects via make; the secondary stage
// builds the D static library via dub, with the resolved compiler passed
// explicitly and the toolchain's bin directory prepended to PATH for
// that one invocation only. Failures identify which stage failed, since
// the two stages use different toolchains and diagnose differently.
//
// Example usage:
//
//	result, err := build.Run(ctx, build.Options{
//	    SourceRoot: root,
//	    BuildDir:   filepath.Join(out, "build"),
//	    Tools:      tools,
//	    Runner:     &runner.System{},
//	})
//	if err != nil {
//	    return err
//	}
package build
