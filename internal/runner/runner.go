// Package runner executes external commands with a hard deadline and
// captures their output for the source adapters.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/sdpower/ccwatch-go/internal/types"
)

// Result holds the captured output of a completed command.
type Result struct {
	Stdout string
	Stderr string
}

// Runner spawns one OS process per Run call.
type Runner struct {
	// KillGrace bounds how long a timed-out process may linger between
	// the kill signal and reaping. Defaults to 2s.
	KillGrace time.Duration
}

func New() *Runner {
	return &Runner{KillGrace: 2 * time.Second}
}

// Run executes name with args and waits at most timeout. On clean exit it
// returns the captured stdout/stderr. A deadline hit kills the process
// and returns *types.TimeoutError; a non-zero exit returns
// *types.ProcessError carrying stderr.
func (r *Runner) Run(ctx context.Context, name string, args []string, timeout time.Duration) (*Result, error) {
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// WaitDelay guarantees Wait returns even if the killed process left
	// descendants holding the output pipes, so no zombie survives a
	// timeout.
	cmd.WaitDelay = r.KillGrace

	err := cmd.Run()
	if runCtx.Err() == context.DeadlineExceeded {
		return nil, &types.TimeoutError{Command: name, Timeout: timeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &types.ProcessError{
				Command: name,
				Stderr:  strings.TrimSpace(stderr.String()),
				Err:     err,
			}
		}
		// Startup failures (binary missing, permission denied).
		return nil, &types.ProcessError{Command: name, Err: err}
	}

	return &Result{Stdout: stdout.String(), Stderr: stderr.String()}, nil
}
