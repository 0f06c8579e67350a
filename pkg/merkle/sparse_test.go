package merkle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestZeroMerkleTreeSetLeaf tests delta proofs across tree heights and
// leaf orders
func TestZeroMerkleTreeSetLeaf(t *testing.T) {
	h := testHasher()

	testCases := []struct {
		name    string
		height  int
		indices []int64
	}{
		{"Single leaf", 1, []int64{0}},
		{"Both leaves", 1, []int64{0, 1}},
		{"In order", 3, []int64{0, 1, 2, 3, 4, 5, 6, 7}},
		{"Reverse order", 3, []int64{7, 6, 5, 4, 3, 2, 1, 0}},
		{"Scattered", 8, []int64{200, 3, 77, 0, 255, 128}},
		{"Repeated index", 4, []int64{5, 5, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tree, err := NewZeroMerkleTree(h, tc.height)
			require.NoError(t, err)

			var prev *DeltaMerkleProof
			for i, index := range tc.indices {
				delta, err := tree.SetLeaf(index, NodeFromUint64(uint64(i+100)))
				require.NoError(t, err)
				require.True(t, VerifyDeltaProof(h, delta), "delta proof for set %d should verify", i)
				require.Len(t, delta.Siblings, tc.height)
				require.Equal(t, index, delta.Index)

				// Roots chain across consecutive operations
				if prev != nil {
					require.Equal(t, prev.NewRoot, delta.OldRoot)
				}
				require.Equal(t, delta.NewRoot, tree.Root())
				prev = delta
			}
		})
	}
}

// TestZeroMerkleTreeScenario tests the 8-leaf reference scenario: leaves
// 1,3,3,7,4,2,0,6 set at indices 0..7 of a height-3 tree
func TestZeroMerkleTreeScenario(t *testing.T) {
	h := testHasher()
	leaves := []uint64{1, 3, 3, 7, 4, 2, 0, 6}

	tree, err := NewZeroMerkleTree(h, 3)
	require.NoError(t, err)

	deltas := make([]*DeltaMerkleProof, 0, len(leaves))
	for i, leaf := range leaves {
		delta, err := tree.SetLeaf(int64(i), NodeFromUint64(leaf))
		require.NoError(t, err)
		deltas = append(deltas, delta)
	}

	for i, delta := range deltas {
		require.True(t, VerifyDeltaProof(h, delta), "delta proof %d should verify", i)
		if i > 0 {
			require.Equal(t, deltas[i-1].NewRoot, delta.OldRoot, "roots should chain at step %d", i)
		}
	}
}

// TestZeroMerkleTreeFirstDelta tests the old state captured by the first proof
func TestZeroMerkleTreeFirstDelta(t *testing.T) {
	h := testHasher()
	height := 5

	zero, err := ComputeZeroHashes(h, height)
	require.NoError(t, err)

	tree, err := NewZeroMerkleTree(h, height)
	require.NoError(t, err)

	delta, err := tree.SetLeaf(11, NodeFromUint64(42))
	require.NoError(t, err)
	require.Equal(t, zero[height], delta.OldRoot)
	require.Equal(t, ZeroNode, delta.OldValue)
	require.Equal(t, NodeFromUint64(42), delta.NewValue)
}

// TestZeroMerkleTreeSetSameValueTwice tests that a no-op update keeps the root
func TestZeroMerkleTreeSetSameValueTwice(t *testing.T) {
	h := testHasher()
	value := NodeFromUint64(1337)

	tree, err := NewZeroMerkleTree(h, 4)
	require.NoError(t, err)

	_, err = tree.SetLeaf(9, value)
	require.NoError(t, err)

	delta, err := tree.SetLeaf(9, value)
	require.NoError(t, err)
	require.Equal(t, delta.OldRoot, delta.NewRoot)
	require.Equal(t, value, delta.OldValue)
	require.Equal(t, value, delta.NewValue)
	require.True(t, VerifyDeltaProof(h, delta))
}

// TestZeroMerkleTreeOutOfRange tests contract violations on leaf indices
func TestZeroMerkleTreeOutOfRange(t *testing.T) {
	h := testHasher()

	tree, err := NewZeroMerkleTree(h, 3)
	require.NoError(t, err)

	for _, index := range []int64{-1, 8, 1 << 40} {
		t.Run(fmt.Sprintf("Index_%d", index), func(t *testing.T) {
			delta, err := tree.SetLeaf(index, NodeFromUint64(1))
			require.Error(t, err)
			require.Nil(t, delta)

			_, err = tree.GetLeaf(index)
			require.Error(t, err)

			proof, err := tree.GetLeafProof(index)
			require.Error(t, err)
			require.Nil(t, proof)
		})
	}
}

// TestZeroMerkleTreeInvalidHeight tests construction bounds
func TestZeroMerkleTreeInvalidHeight(t *testing.T) {
	h := testHasher()

	_, err := NewZeroMerkleTree(h, -1)
	require.Error(t, err)

	_, err = NewZeroMerkleTree(h, MaxHeight+1)
	require.Error(t, err)
}

// TestZeroMerkleTreeHeightZero tests the degenerate single-slot tree
func TestZeroMerkleTreeHeightZero(t *testing.T) {
	h := testHasher()
	value := NodeFromUint64(5)

	tree, err := NewZeroMerkleTree(h, 0)
	require.NoError(t, err)
	require.Equal(t, ZeroNode, tree.Root())

	delta, err := tree.SetLeaf(0, value)
	require.NoError(t, err)
	require.Empty(t, delta.Siblings)
	require.Equal(t, value, delta.NewRoot)
	require.Equal(t, value, tree.Root())
	require.True(t, VerifyDeltaProof(h, delta))
}

// TestZeroMerkleTreeGetLeaf tests leaf reads against set and unset slots
func TestZeroMerkleTreeGetLeaf(t *testing.T) {
	h := testHasher()
	value := NodeFromUint64(77)

	tree, err := NewZeroMerkleTree(h, 4)
	require.NoError(t, err)

	leaf, err := tree.GetLeaf(6)
	require.NoError(t, err)
	require.Equal(t, ZeroNode, leaf)

	_, err = tree.SetLeaf(6, value)
	require.NoError(t, err)

	leaf, err = tree.GetLeaf(6)
	require.NoError(t, err)
	require.Equal(t, value, leaf)
}

// TestZeroMerkleTreeGetLeafProof tests non-mutating membership proofs
func TestZeroMerkleTreeGetLeafProof(t *testing.T) {
	h := testHasher()

	tree, err := NewZeroMerkleTree(h, 4)
	require.NoError(t, err)
	for i := int64(0); i < 5; i++ {
		_, err = tree.SetLeaf(i*3, NodeFromUint64(uint64(i+1)))
		require.NoError(t, err)
	}
	rootBefore := tree.Root()

	// Proofs for set and unset leaves both verify against the current root
	for _, index := range []int64{0, 3, 12, 5, 15} {
		proof, err := tree.GetLeafProof(index)
		require.NoError(t, err)
		require.Equal(t, rootBefore, proof.Root)
		require.True(t, VerifyProof(h, proof), "proof for leaf %d should verify", index)
	}

	// Reading proofs must not change the tree
	require.Equal(t, rootBefore, tree.Root())
}
