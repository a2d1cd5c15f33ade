package repo

import (
	"github.com/go-git/go-git/v5/plumbing"
)

// HeadKind tags the three possible shapes of HEAD.
type HeadKind int

const (
	HeadBranch HeadKind = iota
	HeadDetached
	HeadUnborn
)

// HeadRef is the resolved identity of the current HEAD.
type HeadRef struct {
	Kind HeadKind
	// Name holds the branch short name for HeadBranch and HeadUnborn.
	Name string
	// Hex holds the full commit hash for HeadDetached.
	Hex string
}

// HeadRef resolves the current HEAD. It is total: an unborn branch or a
// detached commit are both reported through the Kind tag, never an error.
func (h *Handle) HeadRef() HeadRef {
	ref, err := h.repo.Head()
	if err != nil {
		// No commits yet: HEAD points at an unborn branch. go-git surfaces
		// this as ErrReferenceNotFound on the symbolic ref's target; fall
		// back to reading the symbolic ref itself to recover the name.
		if name := h.unbornBranchName(); name != "" {
			return HeadRef{Kind: HeadUnborn, Name: name}
		}
		return HeadRef{Kind: HeadUnborn, Name: "master"}
	}

	if ref.Name().IsBranch() {
		return HeadRef{Kind: HeadBranch, Name: ref.Name().Short()}
	}

	return HeadRef{Kind: HeadDetached, Hex: ref.Hash().String()}
}

func (h *Handle) unbornBranchName() string {
	ref, err := h.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return ""
	}
	if ref.Type() != plumbing.SymbolicReference {
		return ""
	}
	return ref.Target().Short()
}

// ShortHex returns the first n characters of hex, or hex itself if shorter.
func ShortHex(hex string, n int) string {
	if len(hex) <= n {
		return hex
	}
	return hex[:n]
}
