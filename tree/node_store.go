package tree

import (
	"sync"

	"github.com/pkg/errors"
)

/*
NodeStore is an arena where the nodes of a tree are kept and addressed
by integer IDs.

Nodes are created once and stored once more when developed. Implementations
must allow concurrent use, as workers develop sibling nodes in parallel.
*/
type NodeStore interface {
	// Create takes a node and stores it for the first time in the store,
	// assigning it the next free ID.
	Create(n *Node)
	// Get takes an id and returns the node in the store with that id or
	// an error if it cannot be found.
	Get(id int) (*Node, error)
	// Store takes a node already existing in the store and replaces the
	// stored node with the same ID with it.
	Store(n *Node) error
	// Len returns the number of nodes in the store.
	Len() int
}

type memoryNodeStore struct {
	nodes []*Node
	lock  *sync.RWMutex
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{lock: &sync.RWMutex{}}
}

func (mns *memoryNodeStore) Create(n *Node) {
	mns.lock.Lock()
	defer mns.lock.Unlock()
	n.ID = len(mns.nodes)
	mns.nodes = append(mns.nodes, n)
}

func (mns *memoryNodeStore) Store(n *Node) error {
	mns.lock.Lock()
	defer mns.lock.Unlock()
	if n.ID < 0 || n.ID >= len(mns.nodes) {
		return errors.Errorf("storing node %d: node not created", n.ID)
	}
	mns.nodes[n.ID] = n
	return nil
}

func (mns *memoryNodeStore) Get(id int) (*Node, error) {
	mns.lock.RLock()
	defer mns.lock.RUnlock()
	if id < 0 || id >= len(mns.nodes) {
		return nil, errors.Errorf("node %d not found", id)
	}
	return mns.nodes[id], nil
}

func (mns *memoryNodeStore) Len() int {
	mns.lock.RLock()
	defer mns.lock.RUnlock()
	return len(mns.nodes)
}
