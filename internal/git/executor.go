package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
)

// RunOptions configures how a git command is executed.
type RunOptions struct {
	// Dir is the working directory for the command.
	// If empty, the current working directory is used.
	Dir string

	// Env contains additional environment variables.
	// These are appended to the current environment.
	Env []string
}

// Available returns true if git is installed and in PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Run executes a git command and returns its trimmed stdout.
// If the command fails, a *GitError is returned with stderr context.
func Run(ctx context.Context, args []string, opts *RunOptions) (string, error) {
	out, err := run(ctx, args, opts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// run executes git and returns stdout untouched, which matters for
// NUL-separated output.
func run(ctx context.Context, args []string, opts *RunOptions) (string, error) {
	if !Available() {
		return "", ErrGitNotFound
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if opts != nil && opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	cmd.Env = os.Environ()
	if opts != nil && len(opts.Env) > 0 {
		cmd.Env = append(cmd.Env, opts.Env...)
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		exitCode := 1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return "", &GitError{
			Command:  args,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
		}
	}

	return stdout.String(), nil
}
