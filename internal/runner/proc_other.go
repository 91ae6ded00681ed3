//go:build !unix

package runner

import "os/exec"

// No process-group handling outside Unix. The platform table rejects
// these targets before any subprocess runs, so this only keeps the
// package compiling.
func setProcessGroup(c *exec.Cmd) {}
