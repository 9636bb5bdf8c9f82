package nav

import (
	"fmt"
	"strconv"
	"strings"
)

// Locate resolves ref to a node. ref is either a node id or a dotted index
// path counted from zero, such as "2" for the third top-level node or "2.0"
// for its first child.
func Locate(forest Forest, ref string) (*Node, error) {
	if n, ok := Find(forest, ref); ok {
		return n, nil
	}
	idx, ok := parseIndexPath(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, ref)
	}
	nodes := []*Node(forest)
	var n *Node
	for _, i := range idx {
		if i >= len(nodes) {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, ref)
		}
		n = nodes[i]
		nodes = n.Children
	}
	return n, nil
}

// IndexPaths maps every node id to its dotted index path.
func IndexPaths(forest Forest) map[string]string {
	out := make(map[string]string, Count(forest))
	var visit func(nodes []*Node, prefix string)
	visit = func(nodes []*Node, prefix string) {
		for i, n := range nodes {
			p := strconv.Itoa(i)
			if prefix != "" {
				p = prefix + "." + p
			}
			out[n.ID] = p
			visit(n.Children, p)
		}
	}
	visit(forest, "")
	return out
}

func parseIndexPath(ref string) ([]int, bool) {
	if ref == "" {
		return nil, false
	}
	parts := strings.Split(ref, ".")
	idx := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return nil, false
		}
		idx[i] = v
	}
	return idx, true
}
