package tdidt

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pbanos/tdidt/tree"
	"github.com/pkg/errors"
)

func grow(t *testing.T, table *dataset.Table, maxDepth int, impurity float64) *tree.Tree {
	cfg := DefaultConfig()
	cfg.MaxDepth = maxDepth
	cfg.ImpurityThreshold = impurity
	dt, err := Grow(context.Background(), table, cfg)
	if err != nil {
		t.Fatalf("unexpected error growing tree: %v", err)
	}
	return dt
}

func root(t *testing.T, dt *tree.Tree) *tree.Node {
	n, err := dt.Get(dt.RootID)
	if err != nil {
		t.Fatalf("retrieving root: %v", err)
	}
	return n
}

func TestGrowPlayTennis(t *testing.T) {
	dt := grow(t, playTennisTable(t), -1, 0)
	if s := dt.String(); s != playTennisTree {
		t.Fatalf("expected tree\n%s\ngot\n%s", playTennisTree, s)
	}
}

func TestGrowSplitsOnMaximumGain(t *testing.T) {
	features := []feature.Feature{
		feature.NewDiscreteFeature("sunny", []string{"no", "yes"}),
		feature.NewDiscreteFeature("hot", []string{"no", "yes"}),
		feature.NewDiscreteFeature("humid", []string{"no", "yes"}),
		feature.NewDiscreteFeature("windy", []string{"no", "yes"}),
		feature.NewDiscreteFeature("play", []string{"no", "yes"}),
	}
	rows := make([][]string, 0, len(playTennisRows))
	for _, r := range playTennisRows {
		rows = append(rows, []string{
			yesNo(r[0] == "sunny"),
			yesNo(r[1] == "hot"),
			yesNo(r[2] == "high"),
			yesNo(r[3] == "true"),
			r[4],
		})
	}
	table := newTable(t, features, rows, "play")
	best, bestGain := "", -1.0
	for _, a := range table.Attributes {
		g := referenceGain(table, a)
		if g > bestGain+Epsilon {
			best, bestGain = a.Name(), g
		}
	}
	n := root(t, grow(t, table, -1, 0))
	if n.IsLeaf() {
		t.Fatalf("expected root to split on %s, got a leaf", best)
	}
	if n.Split.Name() != best {
		t.Fatalf("expected root to split on %s, got %s", best, n.Split.Name())
	}
}

func TestGrowPureRecords(t *testing.T) {
	rows := make([][]string, 0)
	for _, r := range playTennisRows {
		if r[4] == "yes" {
			rows = append(rows, r)
		}
	}
	table := newTable(t, playTennisFeatures, rows, "play")
	for _, maxDepth := range []int{-1, 0, 3} {
		for _, impurity := range []float64{0, 50, 100} {
			n := root(t, grow(t, table, maxDepth, impurity))
			if !n.IsLeaf() {
				t.Fatalf("max depth %d, impurity %v: expected root leaf", maxDepth, impurity)
			}
			if d := n.Prediction.Distribution(); d[0] != 0.0 || d[1] != 1.0 {
				t.Fatalf("max depth %d, impurity %v: expected distribution [0 1], got %v", maxDepth, impurity, d)
			}
		}
	}
}

func TestGrowMaxDepthZero(t *testing.T) {
	n := root(t, grow(t, playTennisTable(t), 0, 0))
	if !n.IsLeaf() {
		t.Fatalf("expected root leaf")
	}
	if v, _ := n.Prediction.PredictedValue(); v != "yes" {
		t.Fatalf("expected root to predict yes, got %s", v)
	}
	if n.Prediction.Weight() != 14 {
		t.Fatalf("expected root weight 14, got %d", n.Prediction.Weight())
	}
}

func TestGrowFullImpurity(t *testing.T) {
	dt := grow(t, playTennisTable(t), -1, 100)
	if !root(t, dt).IsLeaf() {
		t.Fatalf("expected root leaf")
	}
	if s := dt.String(); s != ": yes (14/5)\n" {
		t.Fatalf("unexpected tree %q", s)
	}
}

func TestGrowRespectsMaxDepth(t *testing.T) {
	table := playTennisTable(t)
	for maxDepth := 0; maxDepth < 4; maxDepth++ {
		dt := grow(t, table, maxDepth, 0)
		depth, err := dt.Depth(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if depth > maxDepth {
			t.Fatalf("expected depth at most %d, got %d", maxDepth, depth)
		}
	}
}

func TestGrowLeafDistributions(t *testing.T) {
	dt := grow(t, playTennisTable(t), -1, 0)
	err := dt.Traverse(context.Background(), false, func(_ context.Context, n *tree.Node) error {
		if !n.IsLeaf() {
			if len(n.SubtreeIDs) != n.Split.Len() {
				t.Fatalf("node %d has %d subtrees for %d values", n.ID, len(n.SubtreeIDs), n.Split.Len())
			}
			for _, id := range n.SubtreeIDs {
				sn, err := dt.Get(id)
				if err != nil {
					return err
				}
				if sn.Depth != n.Depth+1 || sn.ParentID != n.ID {
					t.Fatalf("node %d is not a child of node %d", sn.ID, n.ID)
				}
			}
			return nil
		}
		if n.Prediction.Degenerate() {
			return nil
		}
		var sum float64
		for _, p := range n.Prediction.Distribution() {
			sum += p
		}
		if math.Abs(sum-1.0) > Epsilon {
			t.Fatalf("leaf %d distribution sums %f", n.ID, sum)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGrowUnobservedBranch(t *testing.T) {
	features := []feature.Feature{
		feature.NewDiscreteFeature("color", []string{"red", "green", "blue"}),
		feature.NewDiscreteFeature("ripe", []string{"no", "yes"}),
	}
	rows := [][]string{
		{"red", "yes"},
		{"red", "yes"},
		{"green", "no"},
		{"green", "no"},
	}
	table := newTable(t, features, rows, "ripe")
	dt := grow(t, table, -1, 0)
	class, err := dt.Classify(dataset.Record{Values: []int{2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class != dataset.Missing {
		t.Fatalf("expected no class for unobserved branch, got %d", class)
	}
	dist, err := dt.ClassDistribution(dataset.Record{Values: []int{2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dist["no"] != 0 || dist["yes"] != 0 {
		t.Fatalf("expected all-zero distribution, got %v", dist)
	}
	expected := "color = red: yes (2)\ncolor = green: no (2)\ncolor = blue: null\n"
	if s := dt.String(); s != expected {
		t.Fatalf("expected tree\n%s\ngot\n%s", expected, s)
	}
}

func TestGrowInsufficientFeatures(t *testing.T) {
	features := []feature.Feature{feature.NewDiscreteFeature("play", []string{"no", "yes"})}
	table := newTable(t, features, [][]string{{"no"}, {"yes"}}, "play")
	_, err := Grow(context.Background(), table, nil)
	if errors.Cause(err) != ErrInsufficientFeatures {
		t.Fatalf("expected error caused by %v, got %v", ErrInsufficientFeatures, err)
	}
}

func TestGrowInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ImpurityThreshold = 120
	_, err := Grow(context.Background(), playTennisTable(t), cfg)
	if errors.Cause(err) != ErrInvalidConfig {
		t.Fatalf("expected error caused by %v, got %v", ErrInvalidConfig, err)
	}
}

func TestGrowWithWorkers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 4
	cfg.EmptyQueueSleep = time.Millisecond
	dt, err := Grow(context.Background(), playTennisTable(t), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s := dt.String(); s != playTennisTree {
		t.Fatalf("expected tree\n%s\ngot\n%s", playTennisTree, s)
	}
	size, err := dt.Size(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 8 {
		t.Fatalf("expected 8 nodes, got %d", size)
	}
}

func TestGrowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dt, err := Grow(ctx, playTennisTable(t), nil)
	if errors.Cause(err) != context.Canceled {
		t.Fatalf("expected error caused by %v, got %v", context.Canceled, err)
	}
	if dt != nil {
		t.Fatalf("expected no tree on cancellation")
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	table := playTennisTable(t)
	dt := grow(t, table, -1, 0)
	for _, r := range table.Records {
		first, err := dt.Classify(r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 3; i++ {
			c, err := dt.Classify(r)
			if err != nil || c != first {
				t.Fatalf("expected class %d, got %d (%v)", first, c, err)
			}
		}
		if first != r.Class {
			t.Fatalf("expected training record %v to be classified as %d, got %d", r, r.Class, first)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func referenceGain(table *dataset.Table, a dataset.Attribute) float64 {
	h := func(counts map[int]int, n int) float64 {
		var e float64
		for _, c := range counts {
			if c > 0 {
				p := float64(c) / float64(n)
				e -= p * math.Log2(p)
			}
		}
		return e
	}
	all := make(map[int]int)
	byValue := make(map[int]map[int]int)
	sizes := make(map[int]int)
	for _, r := range table.Records {
		all[r.Class]++
		v := r.Values[a.Index]
		if byValue[v] == nil {
			byValue[v] = make(map[int]int)
		}
		byValue[v][r.Class]++
		sizes[v]++
	}
	n := len(table.Records)
	gain := h(all, n)
	for v, counts := range byValue {
		gain -= float64(sizes[v]) / float64(n) * h(counts, sizes[v])
	}
	return gain
}
