package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGitNotFound is returned when git is not installed or not in PATH.
var ErrGitNotFound = errors.New("git is not installed or not in PATH")

// GitError wraps errors from git command execution with full context.
type GitError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *GitError) Error() string {
	cmd := "(none)"
	if len(e.Command) > 0 {
		cmd = e.Command[0]
	}
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed (exit %d): %s", cmd, e.ExitCode, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("git %s failed (exit %d)", cmd, e.ExitCode)
}

// ErrNotARepository is returned when the directory is not inside a git repository.
type ErrNotARepository struct {
	Dir string
}

func (e *ErrNotARepository) Error() string {
	return fmt.Sprintf("'%s' is not a git repository (or any parent directory)", e.Dir)
}

// ErrRefNotFound is returned when a ref doesn't exist.
type ErrRefNotFound struct {
	Ref       string
	IsShallow bool
}

func (e *ErrRefNotFound) Error() string {
	msg := fmt.Sprintf("ref '%s' not found", e.Ref)
	if e.IsShallow {
		msg += "\n\nThis repository is a shallow clone. The ref may exist but is not in the local history.\n"
		msg += "To fix, fetch the ref:\n\n"
		msg += fmt.Sprintf("  git fetch origin %s\n\n", e.Ref)
		msg += "Or fetch full history:\n\n"
		msg += "  git fetch --unshallow"
	}
	return msg
}

// ErrVersionTooOld is returned when git version is below the minimum required.
type ErrVersionTooOld struct {
	Current  string
	Required string
}

func (e *ErrVersionTooOld) Error() string {
	return fmt.Sprintf("git version %s is below minimum required %s\n\n"+
		"Please upgrade git: https://git-scm.com/downloads", e.Current, e.Required)
}

// IsNotFound returns true if the error indicates a ref was not found.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var refErr *ErrRefNotFound
	if errors.As(err, &refErr) {
		return true
	}

	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		return false
	}

	// rev-parse --verify --quiet exits 1 for a missing ref
	if gitErr.ExitCode == 1 {
		return true
	}
	if gitErr.ExitCode == 128 {
		stderr := strings.ToLower(gitErr.Stderr)
		for _, s := range []string{"unknown revision", "bad object", "bad revision", "needed a single revision"} {
			if strings.Contains(stderr, s) {
				return true
			}
		}
	}
	return false
}
