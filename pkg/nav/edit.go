package nav

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNodeNotFound indicates an id that is not present in the forest.
	ErrNodeNotFound = errors.New("node not found")
	// ErrInvalidParent indicates a parent that cannot hold children.
	ErrInvalidParent = errors.New("invalid parent")
	// ErrInvalidChild indicates a child type the parent does not accept.
	ErrInvalidChild = errors.New("invalid child type")
	// ErrTypeMismatch indicates a payload whose variant disagrees with the requested type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnknownType indicates an unrecognised node type name.
	ErrUnknownType = errors.New("unknown node type")
	// ErrFieldNotSupported indicates a patch field the node type does not carry.
	ErrFieldNotSupported = errors.New("field not supported")
	// ErrEmptyLabel indicates an attempt to clear a required label.
	ErrEmptyLabel = errors.New("empty label")
	// ErrInvalidDirection indicates a move direction other than up or down.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrNilData indicates a missing payload.
	ErrNilData = errors.New("nil data")
)

// Direction is the way a node moves among its siblings.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection maps "up"/"down" to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(s)) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
}

// Patch lists the fields to change on a node. Nil fields are left alone; an
// empty string clears an optional field.
type Patch struct {
	Label *string `json:"label,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Tag   *string `json:"tag,omitempty"`
	Href  *string `json:"href,omitempty"`
}

// AddTopLevel appends a new top-level node holding data.
func AddTopLevel(forest Forest, t NodeType, data Data) (Forest, *Node, error) {
	if err := checkData(t, data); err != nil {
		return forest, nil, err
	}
	node := newNode(data, "")
	out := make(Forest, 0, len(forest)+1)
	out = append(out, forest...)
	return append(out, node), node, nil
}

// AddChild appends a new node under parentID.
func AddChild(forest Forest, parentID string, t NodeType, data Data) (Forest, *Node, error) {
	if err := checkData(t, data); err != nil {
		return forest, nil, err
	}
	parent, ok := Find(forest, parentID)
	if !ok {
		return forest, nil, fmt.Errorf("%w: %s", ErrNodeNotFound, parentID)
	}
	if err := CanContain(parent.Type, t); err != nil {
		return forest, nil, err
	}
	child := newNode(data, parentID)
	out, err := rewrite(forest, parentID, func(nodes []*Node, i int) ([]*Node, error) {
		cp := *nodes[i]
		cp.Children = make([]*Node, 0, len(nodes[i].Children)+1)
		cp.Children = append(cp.Children, nodes[i].Children...)
		cp.Children = append(cp.Children, child)
		return replaceAt(nodes, i, &cp), nil
	})
	if err != nil {
		return forest, nil, err
	}
	return out, child, nil
}

// Update applies patch to the node with id.
func Update(forest Forest, id string, patch Patch) (Forest, error) {
	return rewrite(forest, id, func(nodes []*Node, i int) ([]*Node, error) {
		if nodes[i].Data == nil {
			return nil, ErrNilData
		}
		data, err := nodes[i].Data.patch(patch)
		if err != nil {
			return nil, err
		}
		cp := *nodes[i]
		cp.Data = data
		return replaceAt(nodes, i, &cp), nil
	})
}

// Delete removes the node with id together with its descendants.
func Delete(forest Forest, id string) (Forest, error) {
	return rewrite(forest, id, func(nodes []*Node, i int) ([]*Node, error) {
		out := make([]*Node, 0, len(nodes)-1)
		out = append(out, nodes[:i]...)
		return append(out, nodes[i+1:]...), nil
	})
}

// MoveSibling swaps the node with its neighbour in direction. Moving the
// first node up or the last node down leaves the forest unchanged.
func MoveSibling(forest Forest, id string, dir Direction) (Forest, error) {
	if dir != Up && dir != Down {
		return forest, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	moved := false
	out, err := rewrite(forest, id, func(nodes []*Node, i int) ([]*Node, error) {
		j := i - 1
		if dir == Down {
			j = i + 1
		}
		if j < 0 || j >= len(nodes) {
			return nodes, nil
		}
		swapped := make([]*Node, len(nodes))
		copy(swapped, nodes)
		swapped[i], swapped[j] = swapped[j], swapped[i]
		moved = true
		return swapped, nil
	})
	if err != nil || !moved {
		return forest, err
	}
	return out, nil
}

// Duplicate inserts a deep copy of the node directly after it. The copy and
// all of its descendants get fresh identifiers.
func Duplicate(forest Forest, id string) (Forest, *Node, error) {
	var dup *Node
	out, err := rewrite(forest, id, func(nodes []*Node, i int) ([]*Node, error) {
		dup = cloneSubtree(nodes[i], nodes[i].ParentID)
		res := make([]*Node, 0, len(nodes)+1)
		res = append(res, nodes[:i+1]...)
		res = append(res, dup)
		return append(res, nodes[i+1:]...), nil
	})
	if err != nil {
		return forest, nil, err
	}
	return out, dup, nil
}

// CanContain reports whether a parent of type parent accepts a child of type
// child. Versions and languages hold only groups; pages hold nothing.
func CanContain(parent, child NodeType) error {
	switch parent {
	case TypePage:
		return fmt.Errorf("%w: %s cannot have children", ErrInvalidParent, parent)
	case TypeVersion, TypeLanguage:
		if child != TypeGroup {
			return fmt.Errorf("%w: %s under %s", ErrInvalidChild, child, parent)
		}
	case TypeGroup, TypeTab, TypeAnchor, TypeDropdown:
		if child != TypePage && child != TypeGroup {
			return fmt.Errorf("%w: %s under %s", ErrInvalidChild, child, parent)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownType, parent)
	}
	return nil
}

func checkData(t NodeType, data Data) error {
	if data == nil {
		return ErrNilData
	}
	if data.Type() != t {
		return fmt.Errorf("%w: %s payload for %s node", ErrTypeMismatch, data.Type(), t)
	}
	if strings.TrimSpace(data.Label()) == "" {
		return ErrEmptyLabel
	}
	return nil
}

// rewrite locates the sibling sequence holding id, replaces it with fn's
// result and copies every ancestor on the way back up. Untouched subtrees
// are shared with the input.
func rewrite(forest Forest, id string, fn func(nodes []*Node, i int) ([]*Node, error)) (Forest, error) {
	out, err := rewriteNodes(forest, id, fn)
	if err != nil {
		if errors.Is(err, ErrNodeNotFound) {
			return forest, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
		return forest, err
	}
	return Forest(out), nil
}

func rewriteNodes(nodes []*Node, id string, fn func([]*Node, int) ([]*Node, error)) ([]*Node, error) {
	for i, n := range nodes {
		if n.ID == id {
			return fn(nodes, i)
		}
		if len(n.Children) == 0 {
			continue
		}
		children, err := rewriteNodes(n.Children, id, fn)
		if errors.Is(err, ErrNodeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cp := *n
		cp.Children = children
		return replaceAt(nodes, i, &cp), nil
	}
	return nil, ErrNodeNotFound
}

func replaceAt(nodes []*Node, i int, n *Node) []*Node {
	out := make([]*Node, len(nodes))
	copy(out, nodes)
	out[i] = n
	return out
}

func cloneSubtree(n *Node, parentID string) *Node {
	cp := &Node{
		ID:       NewNodeID(),
		Type:     n.Type,
		Data:     n.Data,
		ParentID: parentID,
	}
	if n.Children != nil {
		cp.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			cp.Children = append(cp.Children, cloneSubtree(child, cp.ID))
		}
	}
	return cp
}

func (d PageData) patch(p Patch) (Data, error) {
	if err := unsupported(TypePage, p.Icon, "icon", p.Tag, "tag", p.Href, "href"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Path, p.Label); err != nil {
		return nil, err
	}
	return d, nil
}

func (d GroupData) patch(p Patch) (Data, error) {
	if err := unsupported(TypeGroup, p.Href, "href"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Name, p.Label); err != nil {
		return nil, err
	}
	setOptional(&d.Icon, p.Icon)
	setOptional(&d.Tag, p.Tag)
	return d, nil
}

func (d TabData) patch(p Patch) (Data, error) {
	if err := unsupported(TypeTab, p.Tag, "tag"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Name, p.Label); err != nil {
		return nil, err
	}
	setOptional(&d.Icon, p.Icon)
	setOptional(&d.Href, p.Href)
	return d, nil
}

func (d AnchorData) patch(p Patch) (Data, error) {
	if err := unsupported(TypeAnchor, p.Tag, "tag"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Name, p.Label); err != nil {
		return nil, err
	}
	setOptional(&d.Icon, p.Icon)
	setOptional(&d.Href, p.Href)
	return d, nil
}

func (d DropdownData) patch(p Patch) (Data, error) {
	if err := unsupported(TypeDropdown, p.Tag, "tag"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Name, p.Label); err != nil {
		return nil, err
	}
	setOptional(&d.Icon, p.Icon)
	setOptional(&d.Href, p.Href)
	return d, nil
}

func (d VersionData) patch(p Patch) (Data, error) {
	if err := unsupported(TypeVersion, p.Icon, "icon", p.Tag, "tag", p.Href, "href"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Key, p.Label); err != nil {
		return nil, err
	}
	return d, nil
}

func (d LanguageData) patch(p Patch) (Data, error) {
	if err := unsupported(TypeLanguage, p.Icon, "icon", p.Tag, "tag", p.Href, "href"); err != nil {
		return nil, err
	}
	if err := setLabel(&d.Key, p.Label); err != nil {
		return nil, err
	}
	return d, nil
}

// unsupported takes (value, name) pairs and fails on the first non-nil value.
func unsupported(t NodeType, pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if v, _ := pairs[i].(*string); v != nil {
			return fmt.Errorf("%w: %s on %s", ErrFieldNotSupported, pairs[i+1], t)
		}
	}
	return nil
}

func setLabel(dst *string, v *string) error {
	if v == nil {
		return nil
	}
	if strings.TrimSpace(*v) == "" {
		return ErrEmptyLabel
	}
	*dst = *v
	return nil
}

func setOptional(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
