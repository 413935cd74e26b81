package dot

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pbanos/tdidt/tree"
)

func TestWrite(t *testing.T) {
	windy := feature.NewDiscreteFeature("windy", []string{"false", "true"})
	play := feature.NewDiscreteFeature("play", []string{"no", "yes"})
	ns := tree.NewMemoryNodeStore()
	root := &tree.Node{ParentID: tree.NoParent, Split: &dataset.Attribute{Index: 0, Feature: windy}}
	ns.Create(root)
	for i, counts := range [][]int{{0, 3}, {2, 0}} {
		n := &tree.Node{ParentID: root.ID, Depth: 1, Criterion: feature.NewCriterion(windy, i), Prediction: tree.NewPrediction(play, counts)}
		ns.Create(n)
		root.SubtreeIDs = append(root.SubtreeIDs, n.ID)
	}
	var b bytes.Buffer
	err := Write(context.Background(), &b, tree.New(root.ID, ns, play))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := b.String()
	for _, expected := range []string{"digraph G", "n0->n1", "n0->n2", "windy", "yes (3)", "no (2)"} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected output to contain %q, got\n%s", expected, out)
		}
	}
}
