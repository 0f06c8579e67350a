package merkle

import (
	"fmt"

	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
)

// AppendOnlyMerkleTree is a fixed-height merkle tree whose leaves are written
// strictly left to right. Its entire state besides the height and the zero
// hash table is the authentication path of the most recently appended leaf,
// so memory stays O(height) no matter how many leaves have been appended.
//
// Like ZeroMerkleTree it is a single-writer structure; returned proofs are
// immutable snapshots.
type AppendOnlyMerkleTree struct {
	hasher hasher.PairHasher
	height int
	zero   []Node
	last   MerkleProof
}

// NewAppendOnlyMerkleTree creates an empty append-only tree of the given
// height. Before the first append, the cached proof carries the sentinel
// index -1 and the all-empty root.
func NewAppendOnlyMerkleTree(h hasher.PairHasher, height int) (*AppendOnlyMerkleTree, error) {
	zero, err := ComputeZeroHashes(h, height)
	if err != nil {
		return nil, err
	}

	siblings := make([]Node, height)
	copy(siblings, zero[:height])

	return &AppendOnlyMerkleTree{
		hasher: h,
		height: height,
		zero:   zero,
		last: MerkleProof{
			Root:     zero[height],
			Siblings: siblings,
			Index:    -1,
			Value:    zero[height],
		},
	}, nil
}

// Height returns the immutable tree height.
func (t *AppendOnlyMerkleTree) Height() int { return t.height }

// Root returns the current root.
func (t *AppendOnlyMerkleTree) Root() Node { return t.last.Root }

// NextIndex returns the index the next AppendLeaf call will occupy.
func (t *AppendOnlyMerkleTree) NextIndex() int64 { return t.last.Index + 1 }

// LastProof returns a copy of the authentication path of the most recently
// appended leaf. Before the first append, its index is -1.
func (t *AppendOnlyMerkleTree) LastProof() *MerkleProof {
	siblings := make([]Node, len(t.last.Siblings))
	copy(siblings, t.last.Siblings)
	return &MerkleProof{
		Root:     t.last.Root,
		Siblings: siblings,
		Index:    t.last.Index,
		Value:    t.last.Value,
	}
}

// AppendLeaf writes the next leaf and returns the delta proof for the
// transition. Appends are strictly sequential; once all 2^height slots are
// filled, further appends fail.
//
// The sibling set for the new leaf is derived without any full-tree storage.
// For each level, with ancestor indices taken at that level:
//
//   - If the new leaf shares its ancestor with the previous leaf, the cached
//     sibling from the previous proof is still the correct witness.
//   - If the ancestor index changed and the new ancestor is a left child, its
//     sibling subtree lies entirely to the right of every appended leaf and
//     is therefore still empty: the zero hash of that height.
//   - If the ancestor index changed and the new ancestor is a right child,
//     its sibling is exactly the previous leaf's ancestor at that level. In a
//     sequential append no other previously written subtree can sit there.
//
// The previous leaf's ancestor values are recomputed from the cached proof on
// every call; keeping that a pure recompute is what keeps the persisted state
// O(height).
func (t *AppendOnlyMerkleTree) AppendLeaf(value Node) (*DeltaMerkleProof, error) {
	prevIndex := t.last.Index
	newIndex := prevIndex + 1
	if newIndex >= leafCount(t.height) {
		return nil, fmt.Errorf("tree is full: all %d leaves appended", leafCount(t.height))
	}

	// Rebuild the node values along the previous leaf's path, leaf to root.
	// Skipped before the first append; the derivation below never consults
	// the path while no leaf exists.
	oldPath := make([]Node, t.height+1)
	if prevIndex >= 0 {
		current := t.last.Value
		oldPath[0] = current
		idx := prevIndex
		for i, sibling := range t.last.Siblings {
			if idx%2 == 0 {
				current = Node(t.hasher.HashPair([32]byte(current), [32]byte(sibling)))
			} else {
				current = Node(t.hasher.HashPair([32]byte(sibling), [32]byte(current)))
			}
			idx /= 2
			oldPath[i+1] = current
		}
	}

	siblings := make([]Node, t.height)
	for level := 0; level < t.height; level++ {
		prevLevelIndex := floorDiv(prevIndex, int64(1)<<uint(level))
		newLevelIndex := newIndex >> uint(level)

		switch {
		case prevLevelIndex == newLevelIndex:
			siblings[level] = t.last.Siblings[level]
		case newLevelIndex%2 == 0:
			siblings[level] = t.zero[level]
		default:
			siblings[level] = oldPath[level]
		}
	}

	newRoot := ComputeRootFromProof(t.hasher, siblings, newIndex, value)
	oldRoot := t.last.Root

	// The tree keeps its own copy of the sibling set so a caller mutating the
	// returned proof cannot corrupt later appends.
	cached := make([]Node, len(siblings))
	copy(cached, siblings)
	t.last = MerkleProof{
		Root:     newRoot,
		Siblings: cached,
		Index:    newIndex,
		Value:    value,
	}

	return &DeltaMerkleProof{
		Index:    newIndex,
		Siblings: siblings,
		OldRoot:  oldRoot,
		OldValue: t.zero[0],
		NewRoot:  newRoot,
		NewValue: value,
	}, nil
}

// floorDiv divides rounding toward negative infinity, so that the sentinel
// pre-append index -1 stays -1 at every level instead of truncating to 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
