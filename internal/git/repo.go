package git

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FindGitRoot finds the root directory of the git repository containing dir.
func FindGitRoot(ctx context.Context, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	root, err := Run(ctx, []string{"rev-parse", "--show-toplevel"}, &RunOptions{Dir: absDir})
	if err != nil {
		if errors.Is(err, ErrGitNotFound) {
			return "", err
		}
		return "", &ErrNotARepository{Dir: dir}
	}

	return root, nil
}

// IsShallowClone returns true if the repository at dir is a shallow clone.
// A shallow clone has a .git/shallow file.
func IsShallowClone(ctx context.Context, dir string) (bool, error) {
	gitDir, err := getGitDir(ctx, dir)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(filepath.Join(gitDir, "shallow"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// getGitDir returns the path to the .git directory for a repository.
func getGitDir(ctx context.Context, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	gitDir, err := Run(ctx, []string{"rev-parse", "--git-dir"}, &RunOptions{Dir: absDir})
	if err != nil {
		return "", &ErrNotARepository{Dir: dir}
	}

	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(absDir, gitDir)
	}

	return gitDir, nil
}
