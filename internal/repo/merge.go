package repo

import (
	"os"
	"path/filepath"
)

// MergeState reports whether the repository has a merge in progress,
// i.e. whether git has recorded a MERGE_HEAD marker for the worktree.
func (h *Handle) MergeState() bool {
	_, err := os.Stat(filepath.Join(h.gitDir(), "MERGE_HEAD"))
	return err == nil
}
