package repo

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// Divergence is the ahead/behind relationship between local HEAD and a
// remote-tracking branch. Present is false when the remote-tracking ref
// does not exist (or HEAD is detached or unborn), in which case Ahead and
// Behind carry no meaning.
type Divergence struct {
	Present bool
	Ahead   int
	Behind  int
}

// maxAncestors bounds the ancestry walk so a pathological history cannot
// make a prompt redraw hang; the same bound the teacher CLI's repository
// scanner uses for its own ahead/behind approximation.
const maxAncestors = 20000

// Upstream returns the remote name and remote branch short name configured
// as the tracking branch for the current local branch, if any.
func (h *Handle) Upstream() (remote, branch string, ok bool) {
	head := h.HeadRef()
	if head.Kind != HeadBranch {
		return "", "", false
	}

	cfg, err := h.repo.Config()
	if err != nil {
		return "", "", false
	}
	b, ok := cfg.Branches[head.Name]
	if !ok || b.Remote == "" || b.Merge == "" {
		return "", "", false
	}
	return b.Remote, b.Merge.Short(), true
}

// RemoteDivergence resolves refs/remotes/<remote>/<branch> and, if present,
// computes ahead/behind via the symmetric difference of the ancestor sets
// of local HEAD and that ref, relative to their merge base.
func (h *Handle) RemoteDivergence(remote, branch string) Divergence {
	if remote == "" || branch == "" {
		return Divergence{}
	}
	head := h.HeadRef()
	if head.Kind != HeadBranch {
		return Divergence{}
	}

	headRef, err := h.repo.Head()
	if err != nil {
		return Divergence{}
	}

	remoteRefName := plumbing.NewRemoteReferenceName(remote, branch)
	remoteRef, err := h.repo.Reference(remoteRefName, true)
	if err != nil {
		return Divergence{}
	}

	localHash := headRef.Hash()
	remoteHash := remoteRef.Hash()
	if localHash == remoteHash {
		return Divergence{Present: true}
	}

	localAncestors := h.ancestorSet(localHash)
	remoteAncestors := h.ancestorSet(remoteHash)

	ahead := 0
	for hash := range localAncestors {
		if _, ok := remoteAncestors[hash]; !ok {
			ahead++
		}
	}
	behind := 0
	for hash := range remoteAncestors {
		if _, ok := localAncestors[hash]; !ok {
			behind++
		}
	}

	return Divergence{Present: true, Ahead: ahead, Behind: behind}
}

func (h *Handle) ancestorSet(start plumbing.Hash) map[plumbing.Hash]struct{} {
	seen := map[plumbing.Hash]struct{}{}
	queue := []plumbing.Hash{start}
	for len(queue) > 0 && len(seen) < maxAncestors {
		hash := queue[0]
		queue = queue[1:]
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		commit, err := h.repo.CommitObject(hash)
		if err != nil {
			continue
		}
		queue = append(queue, commit.ParentHashes...)
	}
	return seen
}
