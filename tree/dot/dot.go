/*
Package dot renders trees as Graphviz DOT digraphs.
*/
package dot

import (
	"context"
	"fmt"
	"io"

	"github.com/awalterschulze/gographviz"
	"github.com/pbanos/tdidt/tree"
	"github.com/pkg/errors"
)

// GraphName is the name of the digraphs rendered by this package.
const GraphName = "G"

/*
Graph takes a context and a tree and returns a directed graph with a
graphviz node per tree node, labeled with the split attribute for internal
nodes and with the predicted value for leaves, and an edge from every node
to each of its subtrees, labeled with the attribute value leading to it.
*/
func Graph(ctx context.Context, t *tree.Tree) (*gographviz.Escape, error) {
	g := gographviz.NewEscape()
	if err := g.SetName(GraphName); err != nil {
		return nil, err
	}
	if err := g.SetDir(true); err != nil {
		return nil, err
	}
	err := t.Traverse(ctx, false, func(_ context.Context, n *tree.Node) error {
		attrs := map[string]string{"label": nodeLabel(n)}
		if n.IsLeaf() {
			attrs["shape"] = "box"
		}
		if err := g.AddNode(GraphName, nodeName(n.ID), attrs); err != nil {
			return errors.Wrapf(err, "adding node %d", n.ID)
		}
		if n.ParentID == tree.NoParent {
			return nil
		}
		err := g.AddEdge(nodeName(n.ParentID), nodeName(n.ID), true, map[string]string{"label": n.Criterion.Value()})
		return errors.Wrapf(err, "adding edge from node %d to node %d", n.ParentID, n.ID)
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Write takes a context, a writer and a tree and writes the DOT
// representation of the tree to the writer.
func Write(ctx context.Context, w io.Writer, t *tree.Tree) error {
	g, err := Graph(ctx, t)
	if err != nil {
		return errors.Wrap(err, "rendering tree as dot")
	}
	_, err = io.WriteString(w, g.String())
	return err
}

func nodeName(id int) string {
	return fmt.Sprintf("n%d", id)
}

func nodeLabel(n *tree.Node) string {
	if !n.IsLeaf() {
		return n.Split.Name()
	}
	p := n.Prediction
	if p == nil || p.Degenerate() {
		return "null"
	}
	v, _ := p.PredictedValue()
	return fmt.Sprintf("%s (%d)", v, p.Weight())
}
