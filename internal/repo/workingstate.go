package repo

import "github.com/go-git/go-git/v5"

// WorkingState summarizes the index/working-tree diff as four mutually
// exclusive, non-negative counts. A path in conflict is counted only under
// Conflicts, never under the other three buckets.
type WorkingState struct {
	Untracked             int
	UnstagedModifications int
	StagedModifications   int
	Conflicts             int

	// StagedAdditions is the subset of StagedModifications whose index
	// entry is a brand new path (git.Added), not a modification of an
	// already-tracked one. It backs the "new_commit" leaf, which is
	// finer-grained than the spec's four-bucket WorkingState.
	StagedAdditions int
}

// WorkingState performs a single classification pass over the index and
// working tree. Every path contributes to exactly one bucket; conflicts
// are checked first, then staged changes, then unstaged changes, then
// untracked files.
func (h *Handle) WorkingState() WorkingState {
	wt, err := h.repo.Worktree()
	if err != nil {
		return WorkingState{}
	}
	status, err := wt.Status()
	if err != nil {
		return WorkingState{}
	}

	var ws WorkingState
	for _, fs := range status {
		switch {
		case fs.Staging == git.UpdatedButUnmerged || fs.Worktree == git.UpdatedButUnmerged:
			ws.Conflicts++
		case fs.Staging != git.Unmodified && fs.Staging != git.Untracked:
			ws.StagedModifications++
			if fs.Staging == git.Added {
				ws.StagedAdditions++
			}
		case fs.Worktree == git.Untracked:
			ws.Untracked++
		case fs.Worktree != git.Unmodified:
			ws.UnstagedModifications++
		}
	}
	return ws
}
