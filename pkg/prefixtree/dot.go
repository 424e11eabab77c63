package prefixtree

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the tree.
//
// The root is drawn as a small point. Nodes where an item ends are drawn as
// rounded boxes; nodes that only continue a prefix are plain ellipses.
// Children appear left to right in enumeration order.
func (t *Tree) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("digraph PrefixTree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  node [fontname=\"SF Mono, Menlo, monospace\", fontsize=14, style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [arrowhead=none];\n\n")

	if t.root != nil {
		writeDOTNode(&buf, t.root, 0, true)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *node, id int, root bool) int {
	nodeID := fmt.Sprintf("n%d", id)
	next := id + 1

	switch {
	case root:
		fmt.Fprintf(buf, "  %s [label=\"\", shape=point, width=0.15];\n", nodeID)
	case n.terminal > 0:
		fmt.Fprintf(buf, "  %s [label=%q, shape=box, style=\"filled,rounded\"];\n", nodeID, n.label)
	default:
		fmt.Fprintf(buf, "  %s [label=%q, shape=ellipse];\n", nodeID, n.label)
	}

	for _, c := range n.children {
		fmt.Fprintf(buf, "  %s -> n%d;\n", nodeID, next)
		next = writeDOTNode(buf, c, next, false)
	}
	return next
}

// RenderSVG renders the tree as an SVG document via Graphviz.
//
// Errors are returned if Graphviz cannot initialize, the DOT is malformed,
// or rendering fails.
func (t *Tree) RenderSVG(ctx context.Context) ([]byte, error) {
	dot := t.ToDOT()

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
