// Package executor runs the external package manager.
//
// An [Executor] runs one command in one package directory and reports the
// outcome as an error value. The orchestrator inspects every result before
// it advances its schedule, so executors never need callbacks.
//
// Errors carry one of two codes:
//
//   - EXTERNAL_TOOL_MISSING: the binary could not be located or started.
//     Schedules treat this as fatal.
//   - EXTERNAL_COMMAND_FAILED: the process ran and exited non-zero. The
//     error holds an [*ExitError] with the exit code and captured stderr.
//
// Processes are never killed once started. The context passed to Run is
// consulted before spawning only.
package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/matzehuels/autolink/pkg/errors"
)

// Executor runs a command of the package manager in dir.
type Executor interface {
	Run(ctx context.Context, dir string, args ...string) error
}

// ExitError describes a command that ran and exited non-zero.
type ExitError struct {
	Tool   string
	Args   []string
	Dir    string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %s exited with code %d", e.Tool, strings.Join(e.Args, " "), e.Code)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// maxStderr bounds the stderr tail kept on an ExitError.
const maxStderr = 4 << 10

// Compile-time check that Process implements Executor.
var _ Executor = (*Process)(nil)

// Process executes Tool as a child process.
type Process struct {
	Tool   string    // Binary name or path, resolved through PATH
	Stdout io.Writer // Receives child stdout; discarded when nil
	Stderr io.Writer // Receives child stderr in addition to the captured tail

	once     sync.Once
	resolved string
	lookErr  error
}

// NewProcess creates a Process for tool writing child output to stdout and
// stderr.
func NewProcess(tool string, stdout, stderr io.Writer) *Process {
	return &Process{Tool: tool, Stdout: stdout, Stderr: stderr}
}

// Run starts the tool in dir and waits for it to exit.
func (p *Process) Run(ctx context.Context, dir string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	bin, err := p.lookPath()
	if err != nil {
		return errors.Wrap(errors.ErrCodeExternalToolMissing, err, "%s not found", p.Tool)
	}

	//nolint:gosec // G204: tool and args come from configuration and manifests
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stdout = p.Stdout
	if p.Stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, p.Stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(errors.ErrCodeExternalToolMissing, err, "start %s in %s", p.Tool, dir)
	}

	if err := cmd.Wait(); err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return errors.Wrap(errors.ErrCodeExternalCommandFailed, err, "%s %s", p.Tool, strings.Join(args, " "))
		}
		ee := &ExitError{
			Tool:   p.Tool,
			Args:   args,
			Dir:    dir,
			Code:   exitErr.ExitCode(),
			Stderr: tail(strings.TrimSpace(stderr.String()), maxStderr),
		}
		return errors.Wrap(errors.ErrCodeExternalCommandFailed, ee, "%s failed in %s", p.Tool, dir)
	}
	return nil
}

func (p *Process) lookPath() (string, error) {
	p.once.Do(func() {
		p.resolved, p.lookErr = exec.LookPath(p.Tool)
	})
	return p.resolved, p.lookErr
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
