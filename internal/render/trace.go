package render

import (
	"fmt"

	"gitprompt/internal/promptconfig"
	"gitprompt/internal/repo"
)

// TraceRow is one node's evaluation result, surfaced by the doctor
// subcommand so a user debugging their config can see exactly what each
// node resolved to and whether it rendered.
type TraceRow struct {
	Depth   int
	Type    string
	Pre     string
	Post    string
	Value   string
	Emitted bool
}

// Trace walks doc the same way Render does, but returns one row per node
// instead of collapsing the tree into a single string.
func Trace(doc *promptconfig.Document, h *repo.Handle) []TraceRow {
	ctx := &evalCtx{handle: h}
	return traceChildren(doc.Root.Children, ctx, 0)
}

func traceChildren(nodes []promptconfig.Node, ctx *evalCtx, depth int) []TraceRow {
	frags := make([]fragment, len(nodes))
	for i, n := range nodes {
		frags[i] = renderNode(n, ctx)
	}
	included := computeSeparatorInclusion(frags)
	// Apply the same run-collapsing resolveSeparators does, so a surrounded
	// separator that is dropped from the output is not reported as emitted.
	lastWasSurroundedSep := false
	for i, f := range frags {
		if f.kind == fragSeparator {
			if !included[i] {
				continue
			}
			if f.display == promptconfig.DisplaySurrounded && lastWasSurroundedSep {
				included[i] = false
				continue
			}
			lastWasSurroundedSep = f.display == promptconfig.DisplaySurrounded
		} else if f.emitted {
			lastWasSurroundedSep = false
		}
	}

	var rows []TraceRow
	for i, n := range nodes {
		rows = append(rows, traceRow(n, frags[i], included[i], depth))
		rows = append(rows, traceDescend(n, ctx, depth+1)...)
	}
	return rows
}

func traceDescend(n promptconfig.Node, ctx *evalCtx, depth int) []TraceRow {
	switch v := n.(type) {
	case promptconfig.GroupNode:
		return traceChildren(v.Children, ctx, depth)
	case promptconfig.RemoteDifferenceNode:
		if ctx.handle == nil {
			return nil
		}
		remote, branch, ok := resolveRemoteBranch(v.RemoteBranch, ctx.handle)
		if !ok {
			return nil
		}
		div := ctx.handle.RemoteDivergence(remote, branch)
		if !div.Present {
			return nil
		}
		head := ctx.handle.HeadRef()
		childCtx := &evalCtx{
			handle:       ctx.handle,
			inRemoteDiff: true,
			localBranch:  head.Name,
			ahead:        div.Ahead,
			behind:       div.Behind,
		}
		return traceChildren(v.Children, childCtx, depth)
	default:
		return nil
	}
}

func traceRow(n promptconfig.Node, f fragment, separatorIncluded bool, depth int) TraceRow {
	row := TraceRow{Depth: depth, Value: f.text}
	switch v := n.(type) {
	case promptconfig.SeparatorNode:
		row.Type = "separator"
		row.Pre, row.Post = v.Pre, v.Post
		row.Emitted = separatorIncluded
	case promptconfig.LeafNode:
		row.Type = leafTypeName(v.Kind)
		row.Pre, row.Post = v.Pre, v.Post
		row.Emitted = f.emitted
	case promptconfig.GroupNode:
		row.Type = "group"
		row.Pre, row.Post = v.Pre, v.Post
		row.Emitted = f.emitted
	case promptconfig.RemoteDifferenceNode:
		row.Type = "remote_difference"
		row.Pre, row.Post = v.Pre, v.Post
		row.Emitted = f.emitted
	default:
		row.Type = fmt.Sprintf("%T", n)
	}
	return row
}

func leafTypeName(k promptconfig.LeafKind) string {
	switch k {
	case promptconfig.LeafName:
		return "name"
	case promptconfig.LeafAhead:
		return "ahead"
	case promptconfig.LeafBehind:
		return "behind"
	case promptconfig.LeafNewCommit:
		return "new_commit"
	case promptconfig.LeafChanged:
		return "changed"
	case promptconfig.LeafStaged:
		return "staged"
	case promptconfig.LeafConflicts:
		return "conflicts"
	case promptconfig.LeafDifference:
		return "difference"
	case promptconfig.LeafStashed:
		return "stashed"
	case promptconfig.LeafMerge:
		return "merge"
	default:
		return "unknown"
	}
}
