package merkle

import (
	"fmt"

	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
)

// ZeroMerkleTree is a fixed-height binary merkle tree with randomly
// addressable leaves. Unset leaves are implicitly the zero hash, so the tree
// only stores the nodes that have actually been touched.
//
// The tree is a single-writer structure: SetLeaf mutates it in place and
// callers needing concurrent writes must serialize externally. Returned
// proofs are immutable snapshots and may be verified concurrently.
type ZeroMerkleTree struct {
	hasher hasher.PairHasher
	height int
	store  *NodeStore
}

// NewZeroMerkleTree creates an empty sparse tree of the given height. The
// height is immutable; the tree has 2^height leaf slots.
func NewZeroMerkleTree(h hasher.PairHasher, height int) (*ZeroMerkleTree, error) {
	zero, err := ComputeZeroHashes(h, height)
	if err != nil {
		return nil, err
	}
	return &ZeroMerkleTree{
		hasher: h,
		height: height,
		store:  NewNodeStore(height, zero),
	}, nil
}

// Height returns the immutable tree height.
func (t *ZeroMerkleTree) Height() int { return t.height }

// Root returns the current root. For a freshly created tree this is the zero
// hash of the full height.
func (t *ZeroMerkleTree) Root() Node { return t.store.Get(0, 0) }

// SetLeaf writes the leaf at the given index and recomputes the path up to
// the root. The returned delta proof certifies the transition from the old
// root to the new root against one shared sibling set.
//
// A leaf may be set any number of times, in any order; setting it to the
// value it already holds yields a proof with oldRoot == newRoot.
func (t *ZeroMerkleTree) SetLeaf(index int64, value Node) (*DeltaMerkleProof, error) {
	if index < 0 || index >= leafCount(t.height) {
		return nil, fmt.Errorf("leaf index %d out of range [0, %d)", index, leafCount(t.height))
	}

	oldRoot := t.store.Get(0, 0)
	oldValue := t.store.Get(t.height, index)

	siblings := make([]Node, 0, t.height)
	current := value
	idx := index

	// Walk from the leaf layer up, writing the updated node at each level and
	// folding in the sibling. An even node is the left argument of the pair
	// hash, an odd node the right; the parent index is idx/2.
	for level := t.height; level > 0; level-- {
		t.store.Set(level, idx, current)

		var sibling Node
		if idx%2 == 0 {
			sibling = t.store.Get(level, idx+1)
			current = Node(t.hasher.HashPair([32]byte(current), [32]byte(sibling)))
		} else {
			sibling = t.store.Get(level, idx-1)
			current = Node(t.hasher.HashPair([32]byte(sibling), [32]byte(current)))
		}
		siblings = append(siblings, sibling)
		idx /= 2
	}
	t.store.Set(0, 0, current)

	return &DeltaMerkleProof{
		Index:    index,
		Siblings: siblings,
		OldRoot:  oldRoot,
		OldValue: oldValue,
		NewRoot:  current,
		NewValue: value,
	}, nil
}

// GetLeaf returns the current value of the leaf at the given index, which is
// the zero leaf if it was never set.
func (t *ZeroMerkleTree) GetLeaf(index int64) (Node, error) {
	if index < 0 || index >= leafCount(t.height) {
		return Node{}, fmt.Errorf("leaf index %d out of range [0, %d)", index, leafCount(t.height))
	}
	return t.store.Get(t.height, index), nil
}

// GetLeafProof returns a membership proof for the leaf at the given index
// against the current root, without modifying the tree.
func (t *ZeroMerkleTree) GetLeafProof(index int64) (*MerkleProof, error) {
	if index < 0 || index >= leafCount(t.height) {
		return nil, fmt.Errorf("leaf index %d out of range [0, %d)", index, leafCount(t.height))
	}

	siblings := make([]Node, 0, t.height)
	idx := index
	for level := t.height; level > 0; level-- {
		if idx%2 == 0 {
			siblings = append(siblings, t.store.Get(level, idx+1))
		} else {
			siblings = append(siblings, t.store.Get(level, idx-1))
		}
		idx /= 2
	}

	return &MerkleProof{
		Root:     t.store.Get(0, 0),
		Siblings: siblings,
		Index:    index,
		Value:    t.store.Get(t.height, index),
	}, nil
}
