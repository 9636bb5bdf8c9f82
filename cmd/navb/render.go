package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rexliu/navb/pkg/nav"
)

// renderTree prints one line per node, indented by depth and prefixed with
// the node's index path.
func renderTree(w io.Writer, forest nav.Forest) {
	if len(forest) == 0 {
		fmt.Fprintln(w, "(empty)")
		return
	}
	paths := nav.IndexPaths(forest)
	nav.Walk(forest, func(n *nav.Node, depth int) bool {
		fmt.Fprintf(w, "%s[%s] %s %s%s\n", strings.Repeat("  ", depth), paths[n.ID], n.Type, label(n), attrs(n.Data))
		return true
	})
}

func label(n *nav.Node) string {
	if n.Data == nil {
		return "<missing>"
	}
	return n.Data.Label()
}

func attrs(data nav.Data) string {
	var parts []string
	add := func(key, val string) {
		if val != "" {
			parts = append(parts, key+"="+val)
		}
	}
	switch d := data.(type) {
	case nav.GroupData:
		add("icon", d.Icon)
		add("tag", d.Tag)
	case nav.TabData:
		add("icon", d.Icon)
		add("href", d.Href)
	case nav.AnchorData:
		add("icon", d.Icon)
		add("href", d.Href)
	case nav.DropdownData:
		add("icon", d.Icon)
		add("href", d.Href)
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
