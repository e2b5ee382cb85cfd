package filetree

import (
	"fmt"
	"io"
)

// Connector glyphs, matching the conventional tree(1) output
const (
	connectorMiddle = "├── "
	connectorLast   = "└── "
	prefixContinued = "│   "
	prefixBlank     = "    "
)

// Render writes the tree to w, one line per node, starting with a "."
// root marker. Children print in sorted order; the last sibling at
// each level gets the closing connector and its descendants drop the
// vertical continuation bar from their prefix.
func Render(w io.Writer, root *Node) {
	fmt.Fprintln(w, ".")
	renderChildren(w, root, "")
}

func renderChildren(w io.Writer, n *Node, prefix string) {
	names := n.Names()
	for i, name := range names {
		last := i == len(names)-1

		connector := connectorMiddle
		continuation := prefixContinued
		if last {
			connector = connectorLast
			continuation = prefixBlank
		}

		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, name)

		child := n.children[name]
		if child.Len() > 0 {
			renderChildren(w, child, prefix+continuation)
		}
	}
}
