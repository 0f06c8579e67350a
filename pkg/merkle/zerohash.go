package merkle

import (
	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
)

// ComputeZeroHashes precomputes the default value of a fully-empty subtree at
// every height up to and including the tree height. The returned slice has
// height+1 entries: index 0 is the empty leaf, index i is the root of an
// empty subtree of height i, so index height is the root of an empty tree.
//
// The recurrence is Z[i] = H(Z[i-1], Z[i-1]): an empty subtree has two empty
// children.
func ComputeZeroHashes(h hasher.PairHasher, height int) ([]Node, error) {
	if err := checkHeight(height); err != nil {
		return nil, err
	}

	zero := make([]Node, height+1)
	zero[0] = ZeroNode
	for i := 1; i <= height; i++ {
		zero[i] = Node(h.HashPair([32]byte(zero[i-1]), [32]byte(zero[i-1])))
	}
	return zero, nil
}
