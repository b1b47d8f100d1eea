package git

import (
	"context"
	"fmt"
)

// ResolveRef resolves a ref to its commit SHA in a local repository.
func ResolveRef(ctx context.Context, dir, ref string) (string, error) {
	sha, err := Run(ctx, []string{"rev-parse", "--verify", ref + "^{commit}"}, &RunOptions{Dir: dir})
	if err != nil {
		if IsNotFound(err) {
			isShallow, _ := IsShallowClone(ctx, dir)
			return "", &ErrRefNotFound{Ref: ref, IsShallow: isShallow}
		}
		return "", fmt.Errorf("failed to resolve ref %q: %w", ref, err)
	}
	return sha, nil
}
