// Package repo probes the filesystem for an enclosing git repository and
// exposes a set of pure observations over it: head resolution, working
// tree dirtiness, stash count, merge state, and ahead/behind divergence
// against a remote-tracking branch.
package repo

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// Handle is an opaque, read-only reference to an open repository.
// It is created by Probe and never mutated afterwards.
type Handle struct {
	repo *git.Repository
	root string
}

// Root returns the absolute path to the repository's working tree.
func (h *Handle) Root() string {
	return h.root
}

// Probe walks upward from cwd looking for the nearest enclosing repository.
// It returns (nil, false) when no repository is found, which callers treat
// as "no repository": every observation becomes empty rather than an error.
func Probe(cwd string) (*Handle, bool) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return nil, false
	}

	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, false
	}

	wt, err := r.Worktree()
	if err != nil {
		// Bare repositories have no worktree; treat like "no repository"
		// since this tool only ever summarizes a primary checkout.
		return nil, false
	}

	return &Handle{repo: r, root: wt.Filesystem.Root()}, true
}

func (h *Handle) gitDir() string {
	return filepath.Join(h.root, ".git")
}
