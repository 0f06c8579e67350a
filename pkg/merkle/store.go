package merkle

// nodeCoord addresses a node by (level, index). Level 0 is the root, level
// height is the leaf layer; index runs over [0, 2^level).
type nodeCoord struct {
	level int
	index int64
}

// NodeStore is the sparse node map backing ZeroMerkleTree. Nodes that were
// never written resolve to the zero hash of the corresponding subtree height,
// so an empty store already describes a complete (empty) tree.
//
// Coordinates outside the tree are a caller contract violation; the store
// does no bounds checking of its own because the tree never produces them.
type NodeStore struct {
	height int
	zero   []Node
	nodes  map[nodeCoord]Node
}

// NewNodeStore creates an empty store for a tree of the given height. The
// zero slice must be the ComputeZeroHashes output for that height.
func NewNodeStore(height int, zero []Node) *NodeStore {
	return &NodeStore{
		height: height,
		zero:   zero,
		nodes:  make(map[nodeCoord]Node),
	}
}

// Contains reports whether the node was explicitly written.
func (s *NodeStore) Contains(level int, index int64) bool {
	_, ok := s.nodes[nodeCoord{level: level, index: index}]
	return ok
}

// Set writes a node value, overwriting any previous value.
func (s *NodeStore) Set(level int, index int64, value Node) {
	s.nodes[nodeCoord{level: level, index: index}] = value
}

// Get returns the stored node value, or the zero hash for that level if the
// node was never written. A node at level L is the root of a subtree of
// height height-L.
func (s *NodeStore) Get(level int, index int64) Node {
	if v, ok := s.nodes[nodeCoord{level: level, index: index}]; ok {
		return v
	}
	return s.zero[s.height-level]
}

// Len returns the number of explicitly written nodes.
func (s *NodeStore) Len() int { return len(s.nodes) }
