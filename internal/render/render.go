// Package render walks a parsed promptconfig.Document against a repo.Handle
// and produces the single-line prompt string. It implements the two-pass
// evaluator the spec describes: render every node to a fragment first, then
// resolve separator visibility across the fragment list as a second pass.
package render

import (
	"strconv"
	"strings"

	"gitprompt/internal/promptconfig"
	"gitprompt/internal/repo"
)

type fragKind int

const (
	fragValue fragKind = iota
	fragSeparator
)

// fragment is the intermediate, per-node rendering result the two-pass
// evaluator operates on.
type fragment struct {
	kind    fragKind
	text    string
	emitted bool
	display promptconfig.SeparatorDisplay
}

// evalCtx carries the state that differs between top-level evaluation and
// evaluation inside a RemoteDifference: which branch name the <LOCAL_BRANCH>
// placeholder substitutes, and the ahead/behind counts Ahead/Behind leaves
// read.
type evalCtx struct {
	handle       *repo.Handle
	inRemoteDiff bool
	localBranch  string
	ahead        int
	behind       int
}

// Render evaluates doc against h (nil meaning "no repository") and returns
// the rendered prompt string.
func Render(doc *promptconfig.Document, h *repo.Handle) string {
	ctx := &evalCtx{handle: h}
	frags := renderChildren(doc.Root.Children, ctx)
	return strings.TrimSuffix(resolveSeparators(frags), "\n")
}

func renderChildren(nodes []promptconfig.Node, ctx *evalCtx) []fragment {
	out := make([]fragment, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, renderNode(n, ctx))
	}
	return out
}

func renderNode(n promptconfig.Node, ctx *evalCtx) fragment {
	switch v := n.(type) {
	case promptconfig.SeparatorNode:
		return fragment{kind: fragSeparator, text: v.Pre + v.Post, display: v.Display}
	case promptconfig.LeafNode:
		return renderLeaf(v, ctx)
	case promptconfig.GroupNode:
		return renderGroup(v, ctx)
	case promptconfig.RemoteDifferenceNode:
		return renderRemoteDifference(v, ctx)
	default:
		return fragment{}
	}
}

func renderGroup(n promptconfig.GroupNode, ctx *evalCtx) fragment {
	inner := resolveSeparators(renderChildren(n.Children, ctx))
	if inner == "" {
		return fragment{}
	}
	return fragment{kind: fragValue, emitted: true, text: n.Pre + inner + n.Post}
}

func renderRemoteDifference(n promptconfig.RemoteDifferenceNode, ctx *evalCtx) fragment {
	if ctx.handle == nil {
		return fragment{}
	}

	remote, branch, ok := resolveRemoteBranch(n.RemoteBranch, ctx.handle)
	if !ok {
		return fragment{}
	}
	div := ctx.handle.RemoteDivergence(remote, branch)
	if !div.Present {
		return fragment{}
	}

	head := ctx.handle.HeadRef()
	childCtx := &evalCtx{
		handle:       ctx.handle,
		inRemoteDiff: true,
		localBranch:  head.Name,
		ahead:        div.Ahead,
		behind:       div.Behind,
	}
	inner := resolveSeparators(renderChildren(n.Children, childCtx))

	if div.Ahead == 0 && div.Behind == 0 && !n.DisplayIfUpToDate {
		return fragment{}
	}
	emitted := inner != "" || n.DisplayIfUpToDate
	if !emitted {
		return fragment{}
	}
	return fragment{kind: fragValue, emitted: true, text: n.Pre + inner + n.Post}
}

func resolveRemoteBranch(remoteBranch string, h *repo.Handle) (remote, branch string, ok bool) {
	if remoteBranch != "" {
		parts := strings.SplitN(remoteBranch, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", "", false
		}
		return parts[0], parts[1], true
	}
	return h.Upstream()
}

func renderLeaf(n promptconfig.LeafNode, ctx *evalCtx) fragment {
	if ctx.handle == nil {
		return fragment{}
	}

	switch n.Kind {
	case promptconfig.LeafName:
		return renderName(n, ctx)
	case promptconfig.LeafMerge:
		if ctx.handle.MergeState() {
			return fragment{kind: fragValue, emitted: true, text: n.Pre + n.Post}
		}
		return fragment{}
	case promptconfig.LeafAhead:
		return renderCount(n, ctx.inRemoteDiff, ctx.ahead)
	case promptconfig.LeafBehind:
		return renderCount(n, ctx.inRemoteDiff, ctx.behind)
	case promptconfig.LeafNewCommit:
		ws := ctx.handle.WorkingState()
		return renderCount(n, true, ws.StagedAdditions)
	case promptconfig.LeafChanged:
		ws := ctx.handle.WorkingState()
		return renderCount(n, true, ws.UnstagedModifications)
	case promptconfig.LeafStaged:
		ws := ctx.handle.WorkingState()
		return renderCount(n, true, ws.StagedModifications)
	case promptconfig.LeafConflicts:
		ws := ctx.handle.WorkingState()
		return renderCount(n, true, ws.Conflicts)
	case promptconfig.LeafDifference:
		ws := ctx.handle.WorkingState()
		return renderCount(n, true, ws.Untracked)
	case promptconfig.LeafStashed:
		return renderCount(n, true, ctx.handle.StashCount())
	default:
		return fragment{}
	}
}

func renderName(n promptconfig.LeafNode, ctx *evalCtx) fragment {
	if ctx.inRemoteDiff {
		text := strings.ReplaceAll(n.Pre, "<LOCAL_BRANCH>", ctx.localBranch) + n.Post
		return fragment{kind: fragValue, emitted: true, text: text}
	}
	return fragment{kind: fragValue, emitted: true, text: n.Pre + headLabel(ctx.handle) + n.Post}
}

// headLabel implements the branch/detached/unborn half of the Name leaf's
// top-level rendering. The merge-in-progress case is a separate leaf kind
// (LeafMerge); see DESIGN.md for why this splits from spec.md's §4.3 wording.
func headLabel(h *repo.Handle) string {
	head := h.HeadRef()
	switch head.Kind {
	case repo.HeadBranch, repo.HeadUnborn:
		return head.Name
	case repo.HeadDetached:
		return repo.ShortHex(head.Hex, 7)
	default:
		return ""
	}
}

func renderCount(n promptconfig.LeafNode, applicable bool, value int) fragment {
	if !applicable || value <= 0 {
		return fragment{}
	}
	return fragment{kind: fragValue, emitted: true, text: n.Pre + strconv.Itoa(value) + n.Post}
}
