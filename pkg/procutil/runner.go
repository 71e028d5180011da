package procutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes an external command and captures its result.
type Runner interface {
	Run(ctx context.Context, workDir string, name string, args ...string) (*Result, error)
}

// Result represents the outcome of a command execution
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// ExitError reports a command that could not be launched or exited nonzero.
// It carries the captured output streams for diagnostic logging.
type ExitError struct {
	Cmd      string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %q exited with code %d", e.Cmd, e.ExitCode)
	}
	return fmt.Sprintf("command %q failed to run: %v", e.Cmd, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in workDir and captures stdout/stderr separately.
// A nonzero exit or launch failure returns a *ExitError alongside the captured
// streams; the returned Result is non-nil in both cases.
func (r *ExecRunner) Run(ctx context.Context, workDir string, name string, args ...string) (*Result, error) {
	startTime := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(startTime),
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		result.ExitCode = exitCode
		return result, &ExitError{
			Cmd:      commandLine(name, args),
			ExitCode: exitCode,
			Stdout:   result.Stdout,
			Stderr:   result.Stderr,
			Err:      err,
		}
	}

	return result, nil
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
