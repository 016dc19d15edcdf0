// Package execx runs external commands and turns non-zero exits into errors
// carrying the captured stderr.
package execx

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Runner executes commands in a fixed working directory.
type Runner struct {
	dir string
}

// New creates a runner for the given directory. An empty dir means the
// process working directory.
func New(dir string) *Runner {
	return &Runner{dir: dir}
}

// Run executes the command and returns its trimmed stdout. On failure the
// error carries the command line and stderr output.
func (x *Runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = x.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapExecErr(err, name, args, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunWithStdin is Run with the given string piped to the command's stdin.
func (x *Runner) RunWithStdin(ctx context.Context, stdin, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = x.dir
	cmd.Stdin = strings.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", wrapExecErr(err, name, args, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunPassthrough executes the command with stdout and stderr attached to the
// terminal, for long-running commands that render their own progress.
func (x *Runner) RunPassthrough(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = x.dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return wrapExecErr(err, name, args, "")
	}
	return nil
}

// Installed reports whether the named command is on PATH.
func Installed(name string) error {
	if _, err := exec.LookPath(name); err != nil {
		return goerr.Wrap(err, "command not found", goerr.V("cmd", name))
	}
	return nil
}

func wrapExecErr(err error, name string, args []string, stderr string) error {
	return goerr.Wrap(err, "command failed",
		goerr.V("cmd", name+" "+strings.Join(args, " ")),
		goerr.V("stderr", strings.TrimSpace(stderr)),
	)
}
