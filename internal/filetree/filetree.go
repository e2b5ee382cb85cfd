// Package filetree builds a nested directory tree out of a flat list
// of installed-file paths and renders it with branch-drawing glyphs.
package filetree

import (
	"sort"
	"strings"
)

// Node is one level of the file tree. Children are keyed by a single
// path component; a node without children represents a file or an
// empty directory (the flat path list cannot tell the two apart).
type Node struct {
	children map[string]*Node
}

// New returns an empty tree root
func New() *Node {
	return &Node{children: make(map[string]*Node)}
}

// Insert adds one slash-separated path to the tree, creating nodes for
// components that are not present yet. Components already in the tree
// are reused, so paths with a shared prefix collapse into a single
// branch and inserting the same path twice is a no-op. Empty
// components (leading, trailing or doubled slashes) are skipped.
func (n *Node) Insert(path string) {
	current := n
	for _, component := range strings.Split(path, "/") {
		if component == "" {
			continue
		}
		child, ok := current.children[component]
		if !ok {
			child = New()
			current.children[component] = child
		}
		current = child
	}
}

// InsertAll inserts every path in paths
func (n *Node) InsertAll(paths []string) {
	for _, path := range paths {
		n.Insert(path)
	}
}

// Len returns the number of direct children
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the child node for a component name, or nil
func (n *Node) Child(name string) *Node {
	return n.children[name]
}

// Names returns the direct child component names in lexicographic
// order, which is the order the renderer walks them in.
func (n *Node) Names() []string {
	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
