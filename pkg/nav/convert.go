package nav

// ConfigToForest expands a configuration into an ordered forest. Categories
// are emitted in the order pages, groups, tabs, anchors, dropdowns, versions,
// languages; every node receives a fresh identifier.
func ConfigToForest(cfg Config) Forest {
	forest := make(Forest, 0, len(cfg.Pages)+len(cfg.Groups)+len(cfg.Tabs)+
		len(cfg.Anchors)+len(cfg.Dropdowns)+len(cfg.Versions)+len(cfg.Languages))

	for _, page := range cfg.Pages {
		forest = append(forest, newNode(PageData{Path: page}, ""))
	}
	for _, g := range cfg.Groups {
		forest = append(forest, groupToNode(g, ""))
	}
	for _, t := range cfg.Tabs {
		forest = append(forest, withPages(TabData{Name: t.Tab, Icon: t.Icon, Href: t.Href, Menu: t.Menu}, t.Pages))
	}
	for _, a := range cfg.Anchors {
		forest = append(forest, withPages(AnchorData{Name: a.Anchor, Icon: a.Icon, Href: a.Href}, a.Pages))
	}
	for _, d := range cfg.Dropdowns {
		forest = append(forest, withPages(DropdownData{Name: d.Dropdown, Icon: d.Icon, Href: d.Href}, d.Pages))
	}
	for _, v := range cfg.Versions {
		forest = append(forest, withGroups(VersionData{Key: v.Version}, v.Groups))
	}
	for _, l := range cfg.Languages {
		forest = append(forest, withGroups(LanguageData{Key: l.Language}, l.Groups))
	}
	return forest
}

func groupToNode(g Group, parentID string) *Node {
	node := newNode(GroupData{Name: g.Group, Icon: g.Icon, Tag: g.Tag}, parentID)
	node.Children = pagesToNodes(g.Pages, node.ID)
	return node
}

func withPages(data Data, pages []PageEntry) *Node {
	node := newNode(data, "")
	node.Children = pagesToNodes(pages, node.ID)
	return node
}

func withGroups(data Data, groups []Group) *Node {
	node := newNode(data, "")
	node.Children = make([]*Node, 0, len(groups))
	for _, g := range groups {
		node.Children = append(node.Children, groupToNode(g, node.ID))
	}
	return node
}

func pagesToNodes(pages []PageEntry, parentID string) []*Node {
	children := make([]*Node, 0, len(pages))
	for _, entry := range pages {
		if entry.Group != nil {
			children = append(children, groupToNode(*entry.Group, parentID))
			continue
		}
		children = append(children, newNode(PageData{Path: entry.Path}, parentID))
	}
	return children
}

// ForestToConfig rebuilds the canonical configuration from a forest. Nodes
// are dispatched on their Type. Nodes with a ParentID are only reached
// through their parent. Empty categories are omitted. Entries that break the
// tree invariants (a page under a version, a payload that disagrees with the
// node's Type) are skipped; Inspect reports them.
func ForestToConfig(forest Forest) Config {
	var cfg Config
	for _, node := range forest {
		if !node.IsTopLevel() || !consistent(node) {
			continue
		}
		switch node.Type {
		case TypePage:
			cfg.Pages = append(cfg.Pages, node.Data.(PageData).Path)
		case TypeGroup:
			cfg.Groups = append(cfg.Groups, nodeToGroup(node.Data.(GroupData), node.Children))
		case TypeTab:
			d := node.Data.(TabData)
			cfg.Tabs = append(cfg.Tabs, Tab{Tab: d.Name, Icon: d.Icon, Href: d.Href, Pages: nodesToPages(node.Children), Menu: d.Menu})
		case TypeAnchor:
			d := node.Data.(AnchorData)
			cfg.Anchors = append(cfg.Anchors, Anchor{Anchor: d.Name, Icon: d.Icon, Href: d.Href, Pages: nodesToPages(node.Children)})
		case TypeDropdown:
			d := node.Data.(DropdownData)
			cfg.Dropdowns = append(cfg.Dropdowns, Dropdown{Dropdown: d.Name, Icon: d.Icon, Href: d.Href, Pages: nodesToPages(node.Children)})
		case TypeVersion:
			cfg.Versions = append(cfg.Versions, Version{Version: node.Data.(VersionData).Key, Groups: nodesToGroups(node.Children)})
		case TypeLanguage:
			cfg.Languages = append(cfg.Languages, Language{Language: node.Data.(LanguageData).Key, Groups: nodesToGroups(node.Children)})
		}
	}
	return cfg
}

// consistent reports whether the node's payload matches its Type.
func consistent(n *Node) bool {
	return n.Data != nil && n.Data.Type() == n.Type
}

func nodeToGroup(d GroupData, children []*Node) Group {
	pages := nodesToPages(children)
	if pages == nil {
		pages = []PageEntry{}
	}
	return Group{Group: d.Name, Icon: d.Icon, Tag: d.Tag, Pages: pages}
}

// nodesToPages returns nil for an empty child list so that optional pages
// fields drop out of the output.
func nodesToPages(children []*Node) []PageEntry {
	var pages []PageEntry
	for _, child := range children {
		if !consistent(child) {
			continue
		}
		switch child.Type {
		case TypePage:
			pages = append(pages, PageEntry{Path: child.Data.(PageData).Path})
		case TypeGroup:
			g := nodeToGroup(child.Data.(GroupData), child.Children)
			pages = append(pages, PageEntry{Group: &g})
		}
	}
	return pages
}

func nodesToGroups(children []*Node) []Group {
	groups := make([]Group, 0, len(children))
	for _, child := range children {
		if child.Type == TypeGroup && consistent(child) {
			groups = append(groups, nodeToGroup(child.Data.(GroupData), child.Children))
		}
	}
	return groups
}
