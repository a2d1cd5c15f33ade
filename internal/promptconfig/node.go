// Package promptconfig parses the declarative format configuration into an
// in-memory tree of Nodes, translating named color tokens embedded in
// pre_format/post_format into terminal escape sequences as it goes. The
// resulting Document is consumed by exactly one evaluation pass in
// internal/render; nothing here mutates it afterwards.
package promptconfig

// SeparatorDisplay is a separator's visibility policy.
type SeparatorDisplay int

const (
	// DisplayAlways means the separator is emitted unconditionally.
	DisplayAlways SeparatorDisplay = iota
	// DisplaySurrounded means the separator is emitted only when it has an
	// emitted non-separator sibling on both sides within its group.
	DisplaySurrounded
)

// LeafKind enumerates the observation-backed leaf types.
type LeafKind int

const (
	LeafName LeafKind = iota
	LeafAhead
	LeafBehind
	LeafNewCommit
	LeafChanged
	LeafStaged
	LeafConflicts
	LeafDifference
	LeafStashed
	// LeafMerge renders its pre_format literal when a merge is in
	// progress and nothing otherwise. Kept distinct from LeafName so a
	// config can place "merge" and the ordinary branch label as two
	// independent, separately-visible leaves (see DESIGN.md).
	LeafMerge
)

// Node is the common interface implemented by every element of a parsed
// format tree.
type Node interface {
	isNode()
}

// SeparatorNode is a literal string wrapper whose emission depends on its
// Display policy and, for DisplaySurrounded, its siblings at evaluation time.
type SeparatorNode struct {
	Display   SeparatorDisplay
	Pre, Post string
}

// LeafNode renders a single observation.
type LeafNode struct {
	Kind      LeafKind
	Pre, Post string
}

// GroupNode is a container rendered as Pre + concat(children) + Post,
// emitted only when the concatenation of its children is non-empty.
type GroupNode struct {
	Pre, Post string
	Children  []Node
}

// RemoteDifferenceNode specializes GroupNode around a specific (or implicit
// upstream) remote-tracking branch.
type RemoteDifferenceNode struct {
	// RemoteBranch is "<remote>/<branch>", or "" to use the current
	// branch's configured upstream.
	RemoteBranch      string
	DisplayIfUpToDate bool
	Pre, Post         string
	Children          []Node
}

func (SeparatorNode) isNode()        {}
func (LeafNode) isNode()             {}
func (GroupNode) isNode()            {}
func (RemoteDifferenceNode) isNode() {}

// Document is a fully parsed, ready-to-evaluate configuration.
type Document struct {
	Version string
	Root    GroupNode
}
