// Package loader reads the text files to validate.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jokarl/banlist/internal/pathfilter"
	"github.com/jokarl/banlist/internal/validator"
)

// DefaultMaxFileSize is the largest file Load reads; bigger files are skipped
const DefaultMaxFileSize = 4 << 20

// sniffLen is how much of a file is inspected for NUL bytes
const sniffLen = 8000

// Skipped records a file that was not loaded and why
type Skipped struct {
	Path   string
	Reason string
}

// Result holds loaded targets and the files passed over
type Result struct {
	Root    string
	Targets []validator.Target
	Skipped []Skipped
}

// Loader reads targets from disk
type Loader struct {
	Filter      *pathfilter.Filter
	MaxFileSize int64
}

// New creates a Loader. A nil filter means pathfilter.DefaultFilter.
func New(filter *pathfilter.Filter) *Loader {
	if filter == nil {
		filter = pathfilter.DefaultFilter()
	}
	return &Loader{
		Filter:      filter,
		MaxFileSize: DefaultMaxFileSize,
	}
}

// Load reads path. A directory is walked with the filter and targets are
// named by their slash separated path relative to it; a single file is read
// regardless of the filter.
func (l *Loader) Load(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("path does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		res := &Result{Root: filepath.Dir(path)}
		if err := l.add(res, path, filepath.ToSlash(path)); err != nil {
			return nil, err
		}
		return res, nil
	}

	files, err := l.Filter.Files(path)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return l.LoadFiles(path, files)
}

// LoadFiles reads the given paths relative to root. Paths that no longer
// exist are skipped, which is the case for files deleted on a branch.
func (l *Loader) LoadFiles(root string, rel []string) (*Result, error) {
	res := &Result{Root: root}
	for _, name := range rel {
		if err := l.add(res, filepath.Join(root, filepath.FromSlash(name)), name); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (l *Loader) add(res *Result, path, name string) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		res.Skipped = append(res.Skipped, Skipped{Path: name, Reason: "deleted"})
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", name, err)
	}
	if l.MaxFileSize > 0 && info.Size() > l.MaxFileSize {
		res.Skipped = append(res.Skipped, Skipped{Path: name, Reason: fmt.Sprintf("larger than %d bytes", l.MaxFileSize)})
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if isBinary(data) {
		res.Skipped = append(res.Skipped, Skipped{Path: name, Reason: "binary"})
		return nil
	}

	res.Targets = append(res.Targets, validator.Target{Name: name, Text: string(data)})
	return nil
}

func isBinary(data []byte) bool {
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
