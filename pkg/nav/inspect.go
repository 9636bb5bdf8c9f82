package nav

import "fmt"

// Violation describes a node that breaks the tree invariants. Such nodes
// cannot be produced by the editing operations but may appear in a forest
// assembled by hand.
type Violation struct {
	NodeID string
	Reason string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s", v.NodeID, v.Reason)
}

// Inspect walks the forest and reports invariant breaches: payloads missing
// or disagreeing with the node type, disallowed child types, and ParentID
// values that do not name the owner.
func Inspect(forest Forest) []Violation {
	var out []Violation
	for _, n := range forest {
		out = inspectNode(n, "", out)
	}
	return out
}

func inspectNode(n *Node, ownerID string, out []Violation) []Violation {
	if n.Data == nil {
		out = append(out, Violation{NodeID: n.ID, Reason: "missing data"})
	} else if n.Data.Type() != n.Type {
		out = append(out, Violation{NodeID: n.ID, Reason: fmt.Sprintf("%s node carries %s data", n.Type, n.Data.Type())})
	}
	if ownerID == "" && n.ParentID != "" {
		out = append(out, Violation{NodeID: n.ID, Reason: fmt.Sprintf("top-level node has parentId %q and is dropped on export", n.ParentID)})
	} else if ownerID != "" && n.ParentID != ownerID {
		out = append(out, Violation{NodeID: n.ID, Reason: fmt.Sprintf("parentId %q does not match owner %q", n.ParentID, ownerID)})
	}
	for _, child := range n.Children {
		if err := CanContain(n.Type, child.Type); err != nil {
			out = append(out, Violation{NodeID: child.ID, Reason: err.Error()})
		}
		out = inspectNode(child, n.ID, out)
	}
	return out
}
