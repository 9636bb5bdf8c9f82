package nav

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the canonical navigation configuration exchanged as JSON.
type Config struct {
	Pages     []string   `json:"pages,omitempty" yaml:"pages,omitempty"`
	Groups    []Group    `json:"groups,omitempty" yaml:"groups,omitempty"`
	Tabs      []Tab      `json:"tabs,omitempty" yaml:"tabs,omitempty"`
	Anchors   []Anchor   `json:"anchors,omitempty" yaml:"anchors,omitempty"`
	Dropdowns []Dropdown `json:"dropdowns,omitempty" yaml:"dropdowns,omitempty"`
	Versions  []Version  `json:"versions,omitempty" yaml:"versions,omitempty"`
	Languages []Language `json:"languages,omitempty" yaml:"languages,omitempty"`
}

// IsEmpty reports whether no category carries entries.
func (c Config) IsEmpty() bool {
	return len(c.Pages) == 0 && len(c.Groups) == 0 && len(c.Tabs) == 0 &&
		len(c.Anchors) == 0 && len(c.Dropdowns) == 0 && len(c.Versions) == 0 &&
		len(c.Languages) == 0
}

// Group is a named, possibly nested, collection of pages.
type Group struct {
	Group string      `json:"group" yaml:"group"`
	Icon  string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Tag   string      `json:"tag,omitempty" yaml:"tag,omitempty"`
	Pages []PageEntry `json:"pages" yaml:"pages"`
}

// Tab is a top navigation tab. Href points at an external resource.
type Tab struct {
	Tab   string      `json:"tab" yaml:"tab"`
	Icon  string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Href  string      `json:"href,omitempty" yaml:"href,omitempty"`
	Pages []PageEntry `json:"pages,omitempty" yaml:"pages,omitempty"`
	Menu  []MenuItem  `json:"menu,omitempty" yaml:"menu,omitempty"`
}

// MenuItem is an entry of a tab's menu. Menus are carried through the tree
// unchanged.
type MenuItem struct {
	Item        string      `json:"item" yaml:"item"`
	Icon        string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Pages       []PageEntry `json:"pages,omitempty" yaml:"pages,omitempty"`
	Groups      []Group     `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// Anchor is a top-level link entry.
type Anchor struct {
	Anchor string      `json:"anchor" yaml:"anchor"`
	Icon   string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Href   string      `json:"href,omitempty" yaml:"href,omitempty"`
	Pages  []PageEntry `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// Dropdown is a menu entry in the top navigation.
type Dropdown struct {
	Dropdown string      `json:"dropdown" yaml:"dropdown"`
	Icon     string      `json:"icon,omitempty" yaml:"icon,omitempty"`
	Href     string      `json:"href,omitempty" yaml:"href,omitempty"`
	Pages    []PageEntry `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// Version scopes a set of groups to a documentation version.
type Version struct {
	Version string  `json:"version" yaml:"version"`
	Groups  []Group `json:"groups" yaml:"groups"`
}

// Language scopes a set of groups to a language code.
type Language struct {
	Language string  `json:"language" yaml:"language"`
	Groups   []Group `json:"groups" yaml:"groups"`
}

// PageEntry is either a page path or a nested group.
type PageEntry struct {
	Path  string
	Group *Group
}

// PagePath builds a path entry.
func PagePath(path string) PageEntry {
	return PageEntry{Path: path}
}

// NestedGroup builds a nested group entry.
func NestedGroup(g Group) PageEntry {
	return PageEntry{Group: &g}
}

// IsGroup reports whether the entry holds a nested group.
func (p PageEntry) IsGroup() bool {
	return p.Group != nil
}

var errPageEntryKind = errors.New("page entry must be a string or a group object")

// MarshalJSON renders a path as a JSON string and a group as an object.
func (p PageEntry) MarshalJSON() ([]byte, error) {
	if p.Group != nil {
		return json.Marshal(p.Group)
	}
	return json.Marshal(p.Path)
}

// UnmarshalJSON accepts either a JSON string or a group object.
func (p *PageEntry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errPageEntryKind
	}
	switch trimmed[0] {
	case '"':
		var path string
		if err := json.Unmarshal(trimmed, &path); err != nil {
			return fmt.Errorf("decode page path: %w", err)
		}
		*p = PageEntry{Path: path}
		return nil
	case '{':
		var g Group
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&g); err != nil {
			return fmt.Errorf("decode nested group: %w", err)
		}
		*p = PageEntry{Group: &g}
		return nil
	default:
		return errPageEntryKind
	}
}

// MarshalYAML renders a path as a scalar and a group as a mapping.
func (p PageEntry) MarshalYAML() (interface{}, error) {
	if p.Group != nil {
		return p.Group, nil
	}
	return p.Path, nil
}

// UnmarshalYAML accepts a scalar page path or a group mapping.
func (p *PageEntry) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return errPageEntryKind
	}
	switch value.Kind {
	case yaml.ScalarNode:
		var path string
		if err := value.Decode(&path); err != nil {
			return fmt.Errorf("decode page path: %w", err)
		}
		*p = PageEntry{Path: path}
		return nil
	case yaml.MappingNode:
		if err := checkGroupKeys(value); err != nil {
			return err
		}
		var g Group
		if err := value.Decode(&g); err != nil {
			return fmt.Errorf("decode nested group: %w", err)
		}
		*p = PageEntry{Group: &g}
		return nil
	default:
		return errPageEntryKind
	}
}

var groupKeys = map[string]bool{"group": true, "icon": true, "tag": true, "pages": true}

// checkGroupKeys rejects unknown keys in a nested group mapping. Node.Decode
// does not inherit the outer decoder's KnownFields setting.
func checkGroupKeys(value *yaml.Node) error {
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !groupKeys[key.Value] {
			return fmt.Errorf("line %d: field %s not found in type nav.Group", key.Line, key.Value)
		}
	}
	return nil
}

// MarshalJSON always emits pages, as [] when the group is empty.
func (g Group) MarshalJSON() ([]byte, error) {
	type plain Group
	out := plain(g)
	if out.Pages == nil {
		out.Pages = []PageEntry{}
	}
	return json.Marshal(out)
}

// MarshalJSON always emits groups, as [] when the version is empty.
func (v Version) MarshalJSON() ([]byte, error) {
	type plain Version
	out := plain(v)
	if out.Groups == nil {
		out.Groups = []Group{}
	}
	return json.Marshal(out)
}

// MarshalJSON always emits groups, as [] when the language is empty.
func (l Language) MarshalJSON() ([]byte, error) {
	type plain Language
	out := plain(l)
	if out.Groups == nil {
		out.Groups = []Group{}
	}
	return json.Marshal(out)
}
