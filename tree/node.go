package tree

import (
	"github.com/pbanos/tdidt/dataset"
	"github.com/pbanos/tdidt/feature"
)

// NoParent is the ParentID of a tree's root node.
const NoParent = -1

/*
Node is a node of the tree. It is either a leaf, holding a Prediction,
or an internal node, splitting on an attribute with a subtree for each
value of its domain.
*/
type Node struct {
	// An ID to identify the node in its NodeStore
	ID int
	// The ID for the parent of the node in the tree, NoParent for the root
	ParentID int
	// The number of edges between the root and the node
	Depth int
	// The constraint on the parent's split attribute that leads to this
	// node, nil for the root.
	Criterion *feature.Criterion
	// The attribute the node splits on, nil for leaves.
	Split *dataset.Attribute
	// The IDs of the nodes directly under this node, indexed by the value
	// index of Split. Its length is the size of Split's domain.
	SubtreeIDs []int
	// The prediction for records reaching the node, set on leaves only.
	Prediction *Prediction
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Split == nil
}
