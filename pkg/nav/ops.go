package nav

import (
	"errors"
	"fmt"
)

// Op represents an edit that can be applied to a forest.
type Op interface {
	isOp()
}

// AddItemOp appends a top-level node.
type AddItemOp struct {
	Type NodeType
	Data Data
}

func (AddItemOp) isOp() {}

// AddChildOp appends a node under ParentID.
type AddChildOp struct {
	ParentID string
	Type     NodeType
	Data     Data
}

func (AddChildOp) isOp() {}

// UpdateItemOp patches the fields of a node.
type UpdateItemOp struct {
	NodeID string
	Patch  Patch
}

func (UpdateItemOp) isOp() {}

// DeleteItemOp removes a node and its subtree.
type DeleteItemOp struct {
	NodeID string
}

func (DeleteItemOp) isOp() {}

// MoveItemOp swaps a node with a sibling.
type MoveItemOp struct {
	NodeID    string
	Direction Direction
}

func (MoveItemOp) isOp() {}

// DuplicateItemOp copies a node next to itself.
type DuplicateItemOp struct {
	NodeID string
}

func (DuplicateItemOp) isOp() {}

var errUnsupportedOp = errors.New("unsupported op")

// ValidateOps checks a batch against forest without returning the result.
// Later ops see the effect of earlier ones.
func ValidateOps(forest Forest, ops []Op) error {
	_, err := ApplyOps(forest, ops)
	return err
}

// ApplyOps applies ops in order. The batch is all-or-nothing: on error the
// input forest is returned unchanged along with the index of the failing op.
func ApplyOps(forest Forest, ops []Op) (Forest, error) {
	current := forest
	for i, op := range ops {
		next, err := applyOp(current, op)
		if err != nil {
			return forest, fmt.Errorf("op %d: %w", i, err)
		}
		current = next
	}
	return current, nil
}

func applyOp(forest Forest, op Op) (Forest, error) {
	switch v := op.(type) {
	case AddItemOp:
		out, _, err := AddTopLevel(forest, v.Type, v.Data)
		return out, err
	case AddChildOp:
		out, _, err := AddChild(forest, v.ParentID, v.Type, v.Data)
		return out, err
	case UpdateItemOp:
		return Update(forest, v.NodeID, v.Patch)
	case DeleteItemOp:
		return Delete(forest, v.NodeID)
	case MoveItemOp:
		return MoveSibling(forest, v.NodeID, v.Direction)
	case DuplicateItemOp:
		out, _, err := Duplicate(forest, v.NodeID)
		return out, err
	default:
		return forest, fmt.Errorf("%w %T", errUnsupportedOp, op)
	}
}
