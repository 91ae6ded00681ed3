//go:build unix

package runner

import (
	"os/exec"
	"syscall"
	"time"
)

// Places the child in its own process group and arranges for cancellation
// to signal the whole group.
//
// Build stages spawn their own children (dub invokes ldc2, make invokes
// the C compiler); killing only the direct child would leave those
// orphaned and still holding the build directory.
func setProcessGroup(c *exec.Cmd) {
	c.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	c.Cancel = func() error {
		if c.Process == nil {
			return nil
		}
		// Negative pid signals the process group.
		return syscall.Kill(-c.Process.Pid, syscall.SIGTERM)
	}
	c.WaitDelay = 5 * time.Second
}
