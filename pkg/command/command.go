// Package command runs external programs and captures their output.
//
// It is the single place where homebrew-automation shells out; the brew and
// macos packages describe what to run and interpret the Result.
package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
	"github.com/arthur-debert/homebrew-automation/pkg/logging"
	"github.com/rs/zerolog"
)

// Cmd describes a process to run.
type Cmd struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
	// Env is appended to the current environment as KEY=VALUE entries.
	Env map[string]string
}

// String renders the command line for logs and error messages.
func (c Cmd) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs a Cmd to completion.
//
// A process that starts but exits non-zero yields a populated Result with
// ExitCode > 0 and a COMMAND_FAILED error. A process that cannot be started
// yields ExitCode -1.
type Runner interface {
	Run(ctx context.Context, cmd Cmd) (Result, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Cmd) (Result, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, cmd Cmd) (Result, error) {
	return f(ctx, cmd)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	logger zerolog.Logger
	// Stdout and Stderr, when set, receive the process output as it is
	// produced, in addition to it being captured.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner creates a runner that only captures output.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		logger: logging.GetLogger("command.exec"),
	}
}

// WithOutput streams process output to the given writers.
func (r *ExecRunner) WithOutput(stdout, stderr io.Writer) *ExecRunner {
	r.Stdout = stdout
	r.Stderr = stderr
	return r
}

// Run executes cmd and waits for it.
func (r *ExecRunner) Run(ctx context.Context, cmd Cmd) (Result, error) {
	if cmd.Name == "" {
		return Result{ExitCode: -1}, errors.New(errors.ErrInvalidInput, "command requires a name")
	}

	logging.LogCommand(r.logger, cmd.Name, cmd.Args)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if cmd.Dir != "" {
		if _, err := os.Stat(cmd.Dir); err != nil {
			return Result{ExitCode: -1}, errors.Wrapf(err, errors.ErrFileAccess,
				"working directory does not exist: %s", cmd.Dir)
		}
		c.Dir = cmd.Dir
	}

	c.Env = os.Environ()
	for key, value := range cmd.Env {
		c.Env = append(c.Env, fmt.Sprintf("%s=%s", key, value))
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = tee(&stdout, r.Stdout)
	c.Stderr = tee(&stderr, r.Stderr)

	err := c.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		r.logger.Debug().
			Str("command", cmd.String()).
			Msg("Command executed successfully")
		return result, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
	} else {
		result.ExitCode = -1
	}

	r.logger.Debug().
		Err(err).
		Str("command", cmd.String()).
		Int("exitCode", result.ExitCode).
		Str("stderr", result.Stderr).
		Msg("Command execution failed")

	return result, errors.Wrapf(err, errors.ErrCommandFailed,
		"failed to execute command: %s", cmd.String()).
		WithDetail("exitCode", result.ExitCode).
		WithDetail("stderr", strings.TrimSpace(result.Stderr))
}

func tee(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}
