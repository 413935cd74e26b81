package queue

import (
	"fmt"

	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree.
type Task struct {
	// The node to be developed
	Node *tree.Node
	// The training records satisfying the
	// criteria on the node and its ancestors.
	Records []dataset.Record
	// The list of attributes that can be used
	// to split the node into branches.
	// It excludes the attributes used in
	// ancestor nodes.
	AvailableAttributes []dataset.Attribute
}

// ID returns an int that identifies the
// task, the ID of its Node.
func (t *Task) ID() int {
	return t.Node.ID
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %d}", t.Node.ID)
}
