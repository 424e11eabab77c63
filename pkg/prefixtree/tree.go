// Package prefixtree folds an enumeration into the tree of its shared
// prefixes, for inspecting and visualizing the order in which a generator
// visits its items.
//
// Every enumerated item becomes a root-to-leaf path. Items produced in
// lexicographic order share their longest common prefix with the previous
// item, so the tree reads left to right in enumeration order:
//
//	seq := permute.Permutations([]string{"a", "b", "c"})
//	tree := prefixtree.Build(seq, 0)
//	fmt.Print(tree.String())
//	// a
//	//   b
//	//     c
//	//   c
//	//     b
//	// b
//	// ...
//
// Trees can be exported to Graphviz DOT with [Tree.ToDOT] or rendered to SVG
// with [Tree.RenderSVG].
package prefixtree

import (
	"fmt"
	"iter"
	"strings"
)

// Tree is the prefix tree of a sequence of items.
type Tree struct {
	root  *node
	items int
	nodes int
}

type node struct {
	label    string
	children []*node
	terminal int
}

// Build consumes up to limit items of seq (all of them when limit <= 0) and
// returns their prefix tree. Elements are labeled with fmt.Sprint.
func Build[S ~[]E, E any](seq iter.Seq[S], limit int) *Tree {
	t := &Tree{root: &node{}}
	for item := range seq {
		cur := t.root
		for _, e := range item {
			cur = t.child(cur, fmt.Sprint(e))
		}
		cur.terminal++
		t.items++
		if limit > 0 && t.items >= limit {
			break
		}
	}
	return t
}

// child returns the child of n with the given label, creating it if needed.
// Lexicographic enumerations only ever extend the last child, so the search
// runs from the end.
func (t *Tree) child(n *node, label string) *node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if n.children[i].label == label {
			return n.children[i]
		}
	}
	c := &node{label: label}
	n.children = append(n.children, c)
	t.nodes++
	return c
}

// Items returns the number of items folded into the tree.
func (t *Tree) Items() int {
	return t.items
}

// Nodes returns the number of nodes below the root.
func (t *Tree) Nodes() int {
	return t.nodes
}

// Depth returns the length of the longest path.
func (t *Tree) Depth() int {
	return depth(t.root)
}

func depth(n *node) int {
	d := 0
	for _, c := range n.children {
		d = max(d, depth(c)+1)
	}
	return d
}

// String renders the tree as indented text, two spaces per level.
func (t *Tree) String() string {
	var b strings.Builder
	for _, c := range t.root.children {
		writeText(&b, c, 0)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *node, level int) {
	b.WriteString(strings.Repeat("  ", level))
	b.WriteString(n.label)
	b.WriteByte('\n')
	for _, c := range n.children {
		writeText(b, c, level+1)
	}
}
