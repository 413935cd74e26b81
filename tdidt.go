/*
Package tdidt grows decision trees from nominal training data with the
top-down induction algorithm: each node is split on the attribute that
provides the most information gain on the class until a stopping policy
makes it a leaf.
*/
package tdidt

import (
	"context"
	"time"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
	"github.com/pbanos/tdidt/queue"
	"github.com/pbanos/tdidt/tree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// BuildError represents an error that prevents growing a tree
type BuildError string

/*
ErrInsufficientFeatures is the error returned when trying to grow a tree from
a table with no attributes other than the class.
*/
const ErrInsufficientFeatures = BuildError("no attribute available to split on")

// ErrInvalidConfig is the error returned when a Config cannot be used to grow a tree.
const ErrInvalidConfig = BuildError("invalid configuration")

func (be BuildError) Error() string {
	return string(be)
}

/*
Grow takes a context, a table and a configuration and returns the tree
grown from the table's records to predict its label, or an error. It fails
with ErrInsufficientFeatures if the table has no attributes and with
ErrInvalidConfig if the configuration is not valid.

The configured number of workers develop nodes concurrently; the tree is
returned once they have all been developed. If any worker fails the rest
are cancelled and the error is returned without a tree.
*/
func Grow(ctx context.Context, t *dataset.Table, cfg *Config) (*tree.Tree, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(t.Attributes) == 0 {
		return nil, errors.Wrapf(ErrInsufficientFeatures, "predicting %s", t.Label.Name())
	}
	logger := cfg.logger()
	q := queue.New()
	dt, err := Seed(ctx, t, q, tree.NewMemoryNodeStore())
	if err != nil {
		return nil, err
	}
	sp := cfg.StoppingPolicy()
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	logger.Debug("growing tree",
		zap.String("label", t.Label.Name()),
		zap.Int("records", len(t.Records)),
		zap.Int("attributes", len(t.Attributes)),
		zap.Int("workers", workers))
	if workers == 1 {
		err = Work(ctx, dt, q, sp, cfg.EmptyQueueSleep, logger)
		if err != nil {
			return nil, err
		}
		return dt, nil
	}
	wctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wlogger := logger.With(zap.Int("worker", i))
		go func() {
			errs <- Work(wctx, dt, q, sp, cfg.EmptyQueueSleep, wlogger)
		}()
	}
	for i := 0; i < workers; i++ {
		werr := <-errs
		if werr != nil && err == nil {
			err = werr
			cancel()
		}
	}
	if err != nil {
		return nil, err
	}
	return dt, nil
}

// Seed takes a context, a table, a queue and a node store and
// sets everything up so that workers that consume from the queue
// afterwards grow a tree that predicts the table's label using
// its attributes and according to its records.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the task cannot be pushed to the queue.
func Seed(ctx context.Context, t *dataset.Table, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	n := &tree.Node{ParentID: tree.NoParent}
	ns.Create(n)
	task := &queue.Task{Node: n, Records: t.Records, AvailableAttributes: t.Attributes}
	dt := tree.New(n.ID, ns, t.Label)
	err := q.Push(ctx, task)
	if err != nil {
		return nil, err
	}
	return dt, nil
}

/*
BranchOut takes a context, a task, a tree and a stopping policy and develops
the node in the task using the task's records and available attributes to
predict the tree's label. The node either becomes a leaf with a prediction
or is split on the attribute with the most information gain, the first in
the available attributes winning ties. In the latter case a child node is
created for every value of the attribute's domain and BranchOut returns
the tasks to develop them, which do not include the attribute among their
available attributes.
*/
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, sp StoppingPolicy) ([]*queue.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := task.Node
	counts := ClassCounts(task.Records, t.Label.Len())
	if len(task.Records) == 0 {
		n.Prediction = tree.NewPrediction(t.Label, counts)
		return nil, t.NodeStore.Store(n)
	}
	var best *Partition
	for _, a := range task.AvailableAttributes {
		p, err := NewPartition(task.Records, a, t.Label.Len())
		if err != nil {
			return nil, errors.Wrapf(err, "partitioning node %d", n.ID)
		}
		if best == nil || (p.InformationGain > best.InformationGain && !GainsEqual(p.InformationGain, best.InformationGain)) {
			best = p
		}
	}
	if best == nil || sp.Leaf(n.Depth, counts, best) {
		n.Prediction = tree.NewPrediction(t.Label, counts)
		return nil, t.NodeStore.Store(n)
	}
	stAvailableAttributes := make([]dataset.Attribute, 0, len(task.AvailableAttributes)-1)
	for _, a := range task.AvailableAttributes {
		if a.Index != best.Attribute.Index {
			stAvailableAttributes = append(stAvailableAttributes, a)
		}
	}
	split := best.Attribute
	n.Split = &split
	n.SubtreeIDs = make([]int, 0, len(best.Subsets))
	tasks := make([]*queue.Task, 0, len(best.Subsets))
	for i, subset := range best.Subsets {
		sn := &tree.Node{
			ParentID:  n.ID,
			Depth:     n.Depth + 1,
			Criterion: feature.NewCriterion(split.Feature, i),
		}
		t.NodeStore.Create(sn)
		n.SubtreeIDs = append(n.SubtreeIDs, sn.ID)
		tasks = append(tasks, &queue.Task{Node: sn, Records: subset, AvailableAttributes: stAvailableAttributes})
	}
	return tasks, t.NodeStore.Store(n)
}

// Work takes a context, a tree, a queue, a stopping policy,
// an emptyQueueSleep duration and a logger and enters a loop
// in which it:
//   * pulls a task for the queue,
//   * branches its node out into new subnodes using BranchOut
//   * pushes the tasks for the new subnodes into the queue
//   * marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue and
// the sum of tasks running and pending on the queue is 0, the
// worker ends returning nil. If no task can be pulled but the
// sum is not 0, then the worker will sleep for the given
// emptyQueueSleep duration and then retry.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, sp StoppingPolicy, emptyQueueSleep time.Duration, logger *zap.Logger) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if p+r == 0 {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		err = workTask(ctx, task, t, q, sp, logger)
		if err != nil {
			return err
		}
	}
}

func workTask(ctx context.Context, task *queue.Task, t *tree.Tree, q queue.Queue, sp StoppingPolicy, logger *zap.Logger) error {
	defer func() {
		q.Drop(ctx, task.ID())
	}()
	tasks, err := BranchOut(ctx, task, t, sp)
	if err != nil {
		return err
	}
	n := task.Node
	if n.IsLeaf() {
		v, _ := n.Prediction.PredictedValue()
		logger.Debug("node is a leaf",
			zap.Int("node", n.ID),
			zap.Int("depth", n.Depth),
			zap.Int("records", len(task.Records)),
			zap.String("class", v))
	} else {
		logger.Debug("node split",
			zap.Int("node", n.ID),
			zap.Int("depth", n.Depth),
			zap.Int("records", len(task.Records)),
			zap.String("attribute", n.Split.Name()))
	}
	for _, st := range tasks {
		err = q.Push(ctx, st)
		if err != nil {
			return err
		}
	}
	return q.Complete(ctx, task.ID())
}
