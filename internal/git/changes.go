package git

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// ChangedFiles lists files under dir that were added, modified or renamed
// since ref, plus untracked files that are not ignored. Paths are relative
// to dir, slash separated and sorted. Deleted files are left out.
func ChangedFiles(ctx context.Context, dir, ref string) ([]string, error) {
	if _, err := ResolveRef(ctx, dir, ref); err != nil {
		return nil, err
	}

	opts := &RunOptions{Dir: dir}
	diff, err := run(ctx, []string{"diff", "--name-only", "--relative", "-z", "--diff-filter=d", ref, "--", "."}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list changes since %q: %w", ref, err)
	}
	untracked, err := run(ctx, []string{"ls-files", "--others", "--exclude-standard", "-z", "--", "."}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}

	files := append(splitNUL(diff), splitNUL(untracked)...)
	slices.Sort(files)
	return slices.Compact(files), nil
}

func splitNUL(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "\x00") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
