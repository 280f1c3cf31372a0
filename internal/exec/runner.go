// Package exec provides abstractions for running the external checker.
package exec

//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=exec

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
)

// Result captures one command execution. A non-zero exit code is not an
// error at this layer; callers decide what it means.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded reports whether the command exited zero.
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Runner executes external commands with output capture and a default
// timeout.
type Runner interface {
	// Run executes a command.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// RunWithStdin executes a command feeding stdin from the reader.
	RunWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) (*Result, error)
}

type runner struct {
	timeout time.Duration
}

// NewRunner creates a Runner that bounds every command by timeout unless
// the caller's context expires first.
func NewRunner(timeout time.Duration) Runner {
	return &runner{timeout: timeout}
}

// Run executes a command.
func (r *runner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	return r.RunWithStdin(ctx, nil, name, args...)
}

// RunWithStdin executes a command feeding stdin from the reader.
func (r *runner) RunWithStdin(
	ctx context.Context,
	stdin io.Reader,
	name string,
	args ...string,
) (*Result, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, errors.Wrapf(ctxErr, "running %s", name)
		}

		return result, errors.Wrapf(err, "running %s", name)
	}

	return result, nil
}
