package promptconfig

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// SchemaVersion is the only configuration version this evaluator understands.
const SchemaVersion = "1"

type rawNode struct {
	Type              string    `yaml:"type"`
	Pre               string    `yaml:"pre_format"`
	Post              string    `yaml:"post_format"`
	Display           string    `yaml:"display"`
	DisplayIfUpToDate *bool     `yaml:"display_if_uptodate"`
	RemoteBranch      string    `yaml:"remote_branch"`
	Values            []rawNode `yaml:"values"`
}

type rawDocument struct {
	Version string    `yaml:"version"`
	Values  []rawNode `yaml:"values"`
}

var leafKinds = map[string]LeafKind{
	"name":       LeafName,
	"ahead":      LeafAhead,
	"behind":     LeafBehind,
	"new_commit": LeafNewCommit,
	"changed":    LeafChanged,
	"staged":     LeafStaged,
	"conflicts":  LeafConflicts,
	"difference": LeafDifference,
	"stashed":    LeafStashed,
	"merge":      LeafMerge,
}

// Parse reads a configuration document from r. A missing or mismatched
// version, an unrecognized node type, or malformed YAML are all reported as
// a single error; the caller treats this as fatal (ConfigSyntaxError /
// ConfigSchemaError in the spec's error taxonomy).
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if raw.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported config version %q (expected %q)", raw.Version, SchemaVersion)
	}

	children := make([]Node, 0, len(raw.Values))
	for _, rn := range raw.Values {
		n, err := convertNode(rn)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}

	return &Document{
		Version: raw.Version,
		Root:    GroupNode{Children: children},
	}, nil
}

func convertNode(rn rawNode) (Node, error) {
	switch rn.Type {
	case "separator":
		display := DisplaySurrounded
		if rn.Display == "always" {
			display = DisplayAlways
		} else if rn.Display != "" && rn.Display != "surrounded" {
			return nil, fmt.Errorf("separator: unknown display %q", rn.Display)
		}
		return SeparatorNode{
			Display: display,
			Pre:     translateColors(rn.Pre),
			Post:    translateColors(rn.Post),
		}, nil

	case "group", "repo":
		children, err := convertChildren(rn.Values)
		if err != nil {
			return nil, err
		}
		return GroupNode{
			Pre:      translateColors(rn.Pre),
			Post:     translateColors(rn.Post),
			Children: children,
		}, nil

	case "remote_difference":
		children, err := convertChildren(rn.Values)
		if err != nil {
			return nil, err
		}
		displayIfUpToDate := false
		if rn.DisplayIfUpToDate != nil {
			displayIfUpToDate = *rn.DisplayIfUpToDate
		}
		return RemoteDifferenceNode{
			RemoteBranch:      rn.RemoteBranch,
			DisplayIfUpToDate: displayIfUpToDate,
			Pre:               translateColors(rn.Pre),
			Post:              translateColors(rn.Post),
			Children:          children,
		}, nil

	default:
		kind, ok := leafKinds[rn.Type]
		if !ok {
			return nil, fmt.Errorf("unknown node type %q", rn.Type)
		}
		return LeafNode{
			Kind: kind,
			Pre:  translateColors(rn.Pre),
			Post: translateColors(rn.Post),
		}, nil
	}
}

func convertChildren(raw []rawNode) ([]Node, error) {
	children := make([]Node, 0, len(raw))
	for _, rn := range raw {
		n, err := convertNode(rn)
		if err != nil {
			return nil, err
		}
		children = append(children, n)
	}
	return children, nil
}
