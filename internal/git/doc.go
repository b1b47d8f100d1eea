// Package git wraps the system git binary for change-scoped checks.
//
// banlist only needs a narrow slice of git: locating the repository,
// resolving a ref, and listing the files that changed since that ref so
// `banlist check --since <ref>` can limit a scan. Everything is delegated to
// the installed git so the user's configuration applies unchanged.
//
// Example usage:
//
//	if err := git.CheckMinVersion(ctx); err != nil {
//	    return err
//	}
//	files, err := git.ChangedFiles(ctx, "docs", "origin/main")
package git
