package playerctl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner executes the playerctl binary once and captures the outcome of
// the finished process.
//
// Implementations must return an error only when the process could not
// be started or communicated with (binary missing, permission denied);
// a process that runs and exits non-zero is a normal Result, not an
// error. The Client supplies an os/exec-backed default; tests substitute
// their own.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// Result is the captured outcome of one finished invocation.
type Result struct {
	ExitCode int    // Process exit status, 0 on success
	Stdout   string // Captured standard output
	Stderr   string // Captured standard error
}

// execRunner is the default Runner, spawning the binary with os/exec.
type execRunner struct {
	bin string
}

// Run executes the binary and waits for it to finish. Context
// cancellation kills the process.
func (r *execRunner) Run(ctx context.Context, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, r.bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, fmt.Errorf("failed to run %s: %w", r.bin, err)
	}
	return res, nil
}
