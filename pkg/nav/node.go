package nav

import "fmt"

// NodeType enumerates supported navigation node types.
type NodeType string

const (
	TypePage     NodeType = "page"
	TypeGroup    NodeType = "group"
	TypeTab      NodeType = "tab"
	TypeAnchor   NodeType = "anchor"
	TypeDropdown NodeType = "dropdown"
	TypeVersion  NodeType = "version"
	TypeLanguage NodeType = "language"
)

// NodeTypes lists every node type in top-level category order.
var NodeTypes = []NodeType{TypePage, TypeGroup, TypeTab, TypeAnchor, TypeDropdown, TypeVersion, TypeLanguage}

// ParseNodeType maps a type name to a NodeType.
func ParseNodeType(s string) (NodeType, error) {
	for _, t := range NodeTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Data is the type-specific payload of a node. The concrete type always
// agrees with Type(); nested pages and groups live in Node.Children.
type Data interface {
	Type() NodeType
	// Label is the page path, the entry name, or the version/language key.
	Label() string
	patch(Patch) (Data, error)
}

// PageData is the payload of a page node.
type PageData struct {
	Path string `json:"path"`
}

// GroupData is the payload of a group node.
type GroupData struct {
	Name string `json:"group"`
	Icon string `json:"icon,omitempty"`
	Tag  string `json:"tag,omitempty"`
}

// TabData is the payload of a tab node.
type TabData struct {
	Name string     `json:"tab"`
	Icon string     `json:"icon,omitempty"`
	Href string     `json:"href,omitempty"`
	Menu []MenuItem `json:"menu,omitempty"`
}

// AnchorData is the payload of an anchor node.
type AnchorData struct {
	Name string `json:"anchor"`
	Icon string `json:"icon,omitempty"`
	Href string `json:"href,omitempty"`
}

// DropdownData is the payload of a dropdown node.
type DropdownData struct {
	Name string `json:"dropdown"`
	Icon string `json:"icon,omitempty"`
	Href string `json:"href,omitempty"`
}

// VersionData is the payload of a version node.
type VersionData struct {
	Key string `json:"version"`
}

// LanguageData is the payload of a language node.
type LanguageData struct {
	Key string `json:"language"`
}

func (PageData) Type() NodeType     { return TypePage }
func (GroupData) Type() NodeType    { return TypeGroup }
func (TabData) Type() NodeType      { return TypeTab }
func (AnchorData) Type() NodeType   { return TypeAnchor }
func (DropdownData) Type() NodeType { return TypeDropdown }
func (VersionData) Type() NodeType  { return TypeVersion }
func (LanguageData) Type() NodeType { return TypeLanguage }

func (d PageData) Label() string     { return d.Path }
func (d GroupData) Label() string    { return d.Name }
func (d TabData) Label() string      { return d.Name }
func (d AnchorData) Label() string   { return d.Name }
func (d DropdownData) Label() string { return d.Name }
func (d VersionData) Label() string  { return d.Key }
func (d LanguageData) Label() string { return d.Key }

// DefaultData returns the placeholder payload offered when adding a new item.
func DefaultData(t NodeType) (Data, error) {
	switch t {
	case TypePage:
		return PageData{Path: "new-page"}, nil
	case TypeGroup:
		return GroupData{Name: "New Group"}, nil
	case TypeTab:
		return TabData{Name: "New Tab"}, nil
	case TypeAnchor:
		return AnchorData{Name: "New Anchor"}, nil
	case TypeDropdown:
		return DropdownData{Name: "New Dropdown"}, nil
	case TypeVersion:
		return VersionData{Key: "1.0.0"}, nil
	case TypeLanguage:
		return LanguageData{Key: "en"}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
}

// NewData returns the default payload for t with patch applied.
func NewData(t NodeType, patch Patch) (Data, error) {
	data, err := DefaultData(t)
	if err != nil {
		return nil, err
	}
	return data.patch(patch)
}

// Node is one entry of the editable navigation tree. An empty ParentID marks
// a top-level node.
type Node struct {
	ID       string   `json:"id"`
	Type     NodeType `json:"type"`
	Data     Data     `json:"data"`
	Children []*Node  `json:"children,omitempty"`
	ParentID string   `json:"parentId,omitempty"`
}

// Forest is the ordered list of top-level nodes.
type Forest []*Node

// IsTopLevel reports whether the node has no owner.
func (n *Node) IsTopLevel() bool {
	return n.ParentID == ""
}

// Find locates a node anywhere in the forest.
func Find(forest Forest, id string) (*Node, bool) {
	for _, n := range forest {
		if n.ID == id {
			return n, true
		}
		if found, ok := Find(n.Children, id); ok {
			return found, true
		}
	}
	return nil, false
}

// Walk visits every node depth-first in display order. Returning false from
// fn stops descent into that node's children.
func Walk(forest Forest, fn func(n *Node, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Count returns the number of nodes in the forest.
func Count(forest Forest) int {
	total := 0
	Walk(forest, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

func newNode(data Data, parentID string) *Node {
	return &Node{
		ID:       NewNodeID(),
		Type:     data.Type(),
		Data:     data,
		ParentID: parentID,
	}
}
