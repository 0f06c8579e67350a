package merkle

import (
	"github.com/Layr-Labs/zero-merkle-go/pkg/hasher"
)

// ComputeRootFromProof folds a leaf value up through a sibling path and
// returns the resulting root. Siblings are ordered bottom-up. At each step an
// even index makes the running value the left argument of the pair hash and
// an odd index the right; the index then advances to the parent.
//
// The fold is total: any sibling slice and any non-negative index produce a
// deterministic result.
func ComputeRootFromProof(h hasher.PairHasher, siblings []Node, index int64, value Node) Node {
	current := value
	idx := index
	for _, sibling := range siblings {
		if idx%2 == 0 {
			current = Node(h.HashPair([32]byte(current), [32]byte(sibling)))
		} else {
			current = Node(h.HashPair([32]byte(sibling), [32]byte(current)))
		}
		idx /= 2
	}
	return current
}

// VerifyProof reports whether the proof's siblings and value fold to its
// claimed root. A false result is a normal outcome, not an error.
func VerifyProof(h hasher.PairHasher, proof *MerkleProof) bool {
	if proof == nil {
		return false
	}
	return proof.Root == ComputeRootFromProof(h, proof.Siblings, proof.Index, proof.Value)
}

// VerifyDeltaProof reports whether both membership proofs implied by the
// delta verify: old value against old root and new value against new root,
// over the one shared sibling set. Any change outside the claimed leaf would
// need a different sibling set and fail at least one of the two checks.
func VerifyDeltaProof(h hasher.PairHasher, delta *DeltaMerkleProof) bool {
	if delta == nil {
		return false
	}
	return VerifyProof(h, delta.Old()) && VerifyProof(h, delta.New())
}
