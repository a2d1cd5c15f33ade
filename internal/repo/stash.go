package repo

import (
	"bufio"
	"os"
	"path/filepath"
)

// StashCount returns the number of entries recorded in the stash reflog,
// or zero if nothing has ever been stashed.
func (h *Handle) StashCount() int {
	f, err := os.Open(filepath.Join(h.gitDir(), "logs", "refs", "stash"))
	if err != nil {
		return 0
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			count++
		}
	}
	return count
}
