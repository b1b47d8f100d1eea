// Package pathfilter selects the files to scan using doublestar globs.
package pathfilter

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter holds the include and exclude patterns for file filtering
type Filter struct {
	include []string
	exclude []string
}

// New creates a new Filter with the given include and exclude patterns.
// Patterns are validated up front so matching never fails later.
func New(include, exclude []string) (*Filter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid glob pattern: %q", p)
		}
	}
	return &Filter{
		include: include,
		exclude: exclude,
	}, nil
}

// DefaultFilter returns a filter with default patterns
func DefaultFilter() *Filter {
	return &Filter{
		include: []string{"**/*.txt", "**/*.md"},
		exclude: []string{".git/**", "node_modules/**", "vendor/**"},
	}
}

// Match reports whether a slash separated relative path is included and not
// excluded.
func (f *Filter) Match(path string) bool {
	path = filepath.ToSlash(path)

	included := false
	for _, pattern := range f.include {
		if doublestar.MatchUnvalidated(pattern, path) {
			included = true
			break
		}
	}
	if !included {
		return false
	}

	return !f.excluded(path)
}

func (f *Filter) excluded(path string) bool {
	for _, pattern := range f.exclude {
		if doublestar.MatchUnvalidated(pattern, path) {
			return true
		}
	}
	return false
}

// excludedDir reports whether every file below dir is excluded, so the walk
// can skip it.
func (f *Filter) excludedDir(dir string) bool {
	for _, pattern := range f.exclude {
		prefix := strings.TrimSuffix(pattern, "/**")
		if prefix == pattern {
			continue
		}
		if doublestar.MatchUnvalidated(prefix, dir) {
			return true
		}
	}
	return false
}

// Files walks dir and returns the matching files as sorted slash separated
// paths relative to dir.
func (f *Filter) Files(dir string) ([]string, error) {
	var result []string
	err := f.WalkDir(dir, func(rel string, _ fs.DirEntry) error {
		result = append(result, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(result)
	return result, nil
}

// Select returns the paths of a list that match the filter, keeping order
func (f *Filter) Select(paths []string) []string {
	var result []string
	for _, p := range paths {
		if f.Match(p) {
			result = append(result, filepath.ToSlash(p))
		}
	}
	return result
}

// WalkDir walks the directory applying the filter and calling fn with the
// relative path of each matching file.
func (f *Filter) WalkDir(dir string, fn func(rel string, d fs.DirEntry) error) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		// Normalize to forward slashes for pattern matching
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && f.excludedDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !f.Match(rel) {
			return nil
		}
		return fn(rel, d)
	})
}
