package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pkg/errors"
)

// Tree represents a decision tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree and the label it is able to
// predict.
type Tree struct {
	NodeStore
	RootID int
	Label  *feature.DiscreteFeature
}

// New takes the ID for the root Node, a NodeStore and a label feature and
// returns a tree composed of the nodes in the NodeStore connected to the
// node with the given root ID that to predict the given feature.
func New(rootID int, nodeStore NodeStore, label *feature.DiscreteFeature) *Tree {
	return &Tree{nodeStore, rootID, label}
}

/*
Evaluation holds the results of testing a tree against a dataset.
*/
type Evaluation struct {
	// Samples whose class was predicted correctly
	Correct int
	// Samples whose class was predicted wrongly
	Incorrect int
	// Samples that reached a leaf no training record reached
	Unpredicted int
	// Samples that could not be classified, such as those with
	// values out of the domain of a split attribute
	Failed int
	// Samples without a value for the label, not evaluated
	Skipped int
}

// Total returns the number of evaluated samples.
func (e *Evaluation) Total() int {
	return e.Correct + e.Incorrect + e.Unpredicted + e.Failed
}

// Accuracy returns the rate of correctly classified samples among the evaluated.
func (e *Evaluation) Accuracy() float64 {
	if e.Total() == 0 {
		return 0.0
	}
	return float64(e.Correct) / float64(e.Total())
}

/*
Leaf takes a record and walks the tree from the root, following at each
internal node the subtree for the record's value of the split attribute,
and returns the leaf it reaches. It returns an error wrapping
ErrOutOfDomainValue if a value is not in the domain of its attribute,
or ErrMissingValue if the record has no value for it.
*/
func (t *Tree) Leaf(r dataset.Record) (*Node, error) {
	if t == nil {
		return nil, errors.New("nil tree cannot classify records")
	}
	n, err := t.Get(t.RootID)
	if err != nil {
		return nil, errors.Wrap(err, "retrieving root node")
	}
	for !n.IsLeaf() {
		if n.Split.Index >= len(r.Values) || r.Values[n.Split.Index] == dataset.Missing {
			return nil, errors.Wrapf(ErrMissingValue, "attribute %s", n.Split.Name())
		}
		v := r.Values[n.Split.Index]
		if v < 0 || v >= len(n.SubtreeIDs) {
			return nil, errors.Wrapf(ErrOutOfDomainValue, "attribute %s, value index %d", n.Split.Name(), v)
		}
		parentID := n.ID
		n, err = t.Get(n.SubtreeIDs[v])
		if err != nil {
			return nil, errors.Wrapf(err, "retrieving subtree of node %d", parentID)
		}
	}
	return n, nil
}

/*
Classify takes a record and returns the value index of the class the tree
predicts for it. If the record reaches a leaf no training record reached,
dataset.Missing is returned with a nil error.
*/
func (t *Tree) Classify(r dataset.Record) (int, error) {
	n, err := t.Leaf(r)
	if err != nil {
		return dataset.Missing, err
	}
	return n.Prediction.Class(), nil
}

/*
ClassDistribution takes a record and returns the probability of each label
value according to the leaf the record reaches. The probabilities are all
zero if no training record reached it.
*/
func (t *Tree) ClassDistribution(r dataset.Record) (map[string]float64, error) {
	n, err := t.Leaf(r)
	if err != nil {
		return nil, err
	}
	return n.Prediction.Probabilities(), nil
}

// Predict takes a sample and returns a prediction according to the tree and an
// error if the prediction could not be made. Sample values are compared with
// the domain of each split attribute by their string representation.
func (t *Tree) Predict(s dataset.Sample) (*Prediction, error) {
	if t == nil {
		return nil, errors.New("nil tree cannot predict samples")
	}
	n, err := t.Get(t.RootID)
	if err != nil {
		return nil, errors.Wrap(err, "predicting sample: retrieving root node")
	}
	for !n.IsLeaf() {
		v, err := s.ValueFor(n.Split.Feature)
		if err != nil {
			return nil, errors.Wrapf(err, "predicting sample: retrieving value for %s", n.Split.Name())
		}
		if v == nil {
			return nil, errors.Wrapf(ErrMissingValue, "attribute %s", n.Split.Name())
		}
		vs, ok := v.(string)
		if !ok {
			vs = fmt.Sprintf("%v", v)
		}
		i, ok := n.Split.Feature.ValueIndex(vs)
		if !ok {
			return nil, errors.Wrapf(ErrOutOfDomainValue, "attribute %s, value %q", n.Split.Name(), vs)
		}
		n, err = t.Get(n.SubtreeIDs[i])
		if err != nil {
			return nil, errors.Wrap(err, "predicting sample")
		}
	}
	return n.Prediction, nil
}

/*
Test takes a context.Context and a dataset and returns an Evaluation of the
tree's predictions for the label on its samples, or an error if the samples
cannot be retrieved or the context is done. Samples that cannot be classified
are counted as failed and do not stop the evaluation.
*/
func (t *Tree) Test(ctx context.Context, s dataset.Dataset) (*Evaluation, error) {
	samples, err := s.Samples(ctx)
	if err != nil {
		return nil, err
	}
	e := &Evaluation{}
	for _, sample := range samples {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		v, err := sample.ValueFor(t.Label)
		if err != nil {
			return nil, err
		}
		if v == nil {
			e.Skipped++
			continue
		}
		p, err := t.Predict(sample)
		if err != nil {
			e.Failed++
			continue
		}
		if p.Degenerate() {
			e.Unpredicted++
			continue
		}
		pV, _ := p.PredictedValue()
		if pV == fmt.Sprintf("%v", v) {
			e.Correct++
		} else {
			e.Incorrect++
		}
	}
	return e, nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.NodeStore.Get(t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	for _, snID := range n.SubtreeIDs {
		sn, err := t.NodeStore.Get(snID)
		if err != nil {
			return err
		}
		err = t.traverse(ctx, sn, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

// Depth returns the depth of the deepest node of the tree.
func (t *Tree) Depth(ctx context.Context) (int, error) {
	var depth int
	err := t.Traverse(ctx, false, func(_ context.Context, n *Node) error {
		if n.Depth > depth {
			depth = n.Depth
		}
		return nil
	})
	return depth, err
}

// Size returns the number of nodes in the tree.
func (t *Tree) Size(ctx context.Context) (int, error) {
	var size int
	err := t.Traverse(ctx, false, func(context.Context, *Node) error {
		size++
		return nil
	})
	return size, err
}

/*
String returns the tree with one line per edge, reading
"attribute = value", indented with "|  " for each level. Leaves are
annotated after a colon with the predicted value and the number of
training records that reached them (followed by those not belonging to
the predicted class, if any), or "null" when no record did.
*/
func (t *Tree) String() string {
	n, err := t.Get(t.RootID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	var b strings.Builder
	if n.IsLeaf() {
		b.WriteString(leafString(n))
		b.WriteString("\n")
		return b.String()
	}
	t.subtreeString(&b, n, 0)
	return b.String()
}

func (t *Tree) subtreeString(b *strings.Builder, n *Node, level int) {
	for _, snID := range n.SubtreeIDs {
		sn, err := t.Get(snID)
		if err != nil {
			fmt.Fprintf(b, "ERROR: %s\n", err.Error())
			continue
		}
		b.WriteString(strings.Repeat("|  ", level))
		b.WriteString(sn.Criterion.String())
		if sn.IsLeaf() {
			b.WriteString(leafString(sn))
			b.WriteString("\n")
			continue
		}
		b.WriteString("\n")
		t.subtreeString(b, sn, level+1)
	}
}

func leafString(n *Node) string {
	p := n.Prediction
	if p == nil || p.Degenerate() {
		return ": null"
	}
	v, _ := p.PredictedValue()
	misses := p.Weight() - p.Counts()[p.Class()]
	if misses == 0 {
		return fmt.Sprintf(": %s (%d)", v, p.Weight())
	}
	return fmt.Sprintf(": %s (%d/%d)", v, p.Weight(), misses)
}
