package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"
)

// Describes one external process invocation.
type Cmd struct {
	Path string   // Executable path or name resolved via the search path.
	Args []string // Arguments, not including the executable itself.
	Dir  string   // Working directory. Empty means the caller's.
	Env  []string // "key=value" overrides merged over the ambient environment.
}

// Output of a completed process.
type Result struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Runs external processes.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (*Result, error)
}

// Executes processes on the host system.
type System struct {
	Timeout time.Duration // Deadline applied to each invocation. Zero means none.
}

// Runs the command and waits for it to exit.
//
// The environment is the ambient environment with cmd.Env entries merged
// on top, scoped to this invocation only. When a timeout is configured,
// it bounds this single invocation; the context still cancels the child
// (and its process group, on Unix) when the parent is terminated.
func (s *System) Run(ctx context.Context, cmd Cmd) (*Result, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	slog.Debug("exec",
		"command", shellquote.Join(append([]string{cmd.Path}, cmd.Args...)...),
		"dir", cmd.Dir,
	)

	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = mergeEnv(os.Environ(), cmd.Env)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	setProcessGroup(c)

	err := c.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	return &Result{
		ExitCode: c.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// Merges override env vars on top of a base env slice.
//
// Later entries win. Malformed entries without an equals sign are dropped.
func mergeEnv(base, overrides []string) []string {
	merged := make(map[string]string, len(base)+len(overrides))
	order := make([]string, 0, len(base)+len(overrides))

	for _, entry := range append(append([]string{}, base...), overrides...) {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := merged[k]; !seen {
			order = append(order, k)
		}
		merged[k] = v
	}

	result := make([]string, 0, len(merged))
	for _, k := range order {
		result = append(result, k+"="+merged[k])
	}
	return result
}
