package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rexliu/navb/pkg/nav"
)

type opBatch struct {
	Ops []jsonOp `json:"ops"`
}

// jsonOp is the wire form of one edit. Node references are ids or dotted
// index paths resolved against the forest the batch starts from.
type jsonOp struct {
	Type      string  `json:"type"`
	ItemType  string  `json:"itemType"`
	Parent    string  `json:"parent"`
	Node      string  `json:"node"`
	Direction string  `json:"direction"`
	Label     *string `json:"label"`
	Icon      *string `json:"icon"`
	Tag       *string `json:"tag"`
	Href      *string `json:"href"`
}

func decodeOps(payload []byte, forest nav.Forest) ([]nav.Op, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty edit batch")
	}
	var batch opBatch
	if payload[0] == '[' {
		if err := json.Unmarshal(payload, &batch.Ops); err != nil {
			return nil, fmt.Errorf("decode ops: %w", err)
		}
	} else if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, fmt.Errorf("decode ops: %w", err)
	}
	if len(batch.Ops) == 0 {
		return nil, fmt.Errorf("ops required")
	}
	ops := make([]nav.Op, 0, len(batch.Ops))
	for i, raw := range batch.Ops {
		op, err := raw.toNavOp(forest)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (op jsonOp) patch() nav.Patch {
	return nav.Patch{Label: op.Label, Icon: op.Icon, Tag: op.Tag, Href: op.Href}
}

func (op jsonOp) toNavOp(forest nav.Forest) (nav.Op, error) {
	switch op.Type {
	case "add_item":
		t, data, err := op.newData()
		if err != nil {
			return nil, err
		}
		return nav.AddItemOp{Type: t, Data: data}, nil
	case "add_child":
		if op.Parent == "" {
			return nil, fmt.Errorf("parent required for add_child")
		}
		parent, err := nav.Locate(forest, op.Parent)
		if err != nil {
			return nil, err
		}
		t, data, err := op.newData()
		if err != nil {
			return nil, err
		}
		return nav.AddChildOp{ParentID: parent.ID, Type: t, Data: data}, nil
	case "update_item":
		id, err := op.nodeID(forest)
		if err != nil {
			return nil, err
		}
		return nav.UpdateItemOp{NodeID: id, Patch: op.patch()}, nil
	case "delete_item":
		id, err := op.nodeID(forest)
		if err != nil {
			return nil, err
		}
		return nav.DeleteItemOp{NodeID: id}, nil
	case "move_item":
		id, err := op.nodeID(forest)
		if err != nil {
			return nil, err
		}
		dir, err := nav.ParseDirection(op.Direction)
		if err != nil {
			return nil, err
		}
		return nav.MoveItemOp{NodeID: id, Direction: dir}, nil
	case "duplicate_item":
		id, err := op.nodeID(forest)
		if err != nil {
			return nil, err
		}
		return nav.DuplicateItemOp{NodeID: id}, nil
	default:
		return nil, fmt.Errorf("unknown op type %q", op.Type)
	}
}

func (op jsonOp) nodeID(forest nav.Forest) (string, error) {
	if op.Node == "" {
		return "", fmt.Errorf("node required for %s", op.Type)
	}
	n, err := nav.Locate(forest, op.Node)
	if err != nil {
		return "", err
	}
	return n.ID, nil
}

func (op jsonOp) newData() (nav.NodeType, nav.Data, error) {
	if op.ItemType == "" {
		return "", nil, fmt.Errorf("itemType required for %s", op.Type)
	}
	t, err := nav.ParseNodeType(op.ItemType)
	if err != nil {
		return "", nil, err
	}
	data, err := nav.NewData(t, op.patch())
	if err != nil {
		return "", nil, err
	}
	return t, data, nil
}
