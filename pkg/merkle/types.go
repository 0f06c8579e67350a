package merkle

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// MaxHeight bounds tree height so that leaf indices fit in an int64. Heights
// beyond this would need big-integer index arithmetic, which nothing in the
// protocol requires.
const MaxHeight = 62

// Node is a fixed-width digest: the output of the pair hasher, or a leaf
// value of the same width. The canonical text form is 64 lowercase hex
// characters. Equality is byte-exact.
type Node [32]byte

// ZeroNode is the canonical empty-leaf value.
var ZeroNode = Node{}

// NodeFromBytes builds a Node from an exactly 32-byte slice.
func NodeFromBytes(b []byte) (Node, error) {
	if len(b) != 32 {
		return Node{}, fmt.Errorf("node must be 32 bytes, got %d", len(b))
	}
	var n Node
	copy(n[:], b)
	return n, nil
}

// NodeFromHex parses the canonical hex form. A 0x prefix is accepted.
func NodeFromHex(s string) (Node, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 64 {
		return Node{}, fmt.Errorf("node hex must be 64 characters, got %d", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Node{}, fmt.Errorf("invalid node hex: %w", err)
	}
	var n Node
	copy(n[:], b)
	return n, nil
}

// NodeFromUint64 encodes a small integer as a big-endian digest. Convenience
// for demos and tests; real callers hash their payloads down to digest width.
func NodeFromUint64(v uint64) Node {
	var n Node
	binary.BigEndian.PutUint64(n[24:], v)
	return n
}

// Hex returns the canonical lowercase hex form.
func (n Node) Hex() string { return hex.EncodeToString(n[:]) }

// Bytes returns a copy of the digest bytes.
func (n Node) Bytes() []byte {
	b := make([]byte, 32)
	copy(b, n[:])
	return b
}

func (n Node) String() string { return n.Hex() }

// MerkleProof proves that the leaf at Index has the given Value in the tree
// with the given Root. Siblings are ordered bottom-up: Siblings[0] is the
// sibling of the leaf itself, Siblings[len-1] sits just below the root.
type MerkleProof struct {
	Root     Node   `json:"root"`
	Siblings []Node `json:"siblings"`
	Index    int64  `json:"index"`
	Value    Node   `json:"value"`
}

// DeltaMerkleProof proves that the leaf at Index changed from OldValue to
// NewValue, moving the root from OldRoot to NewRoot. One sibling set is
// shared by the old and new proofs; that sharing is what certifies that no
// other leaf changed.
type DeltaMerkleProof struct {
	Index    int64  `json:"index"`
	Siblings []Node `json:"siblings"`
	OldRoot  Node   `json:"oldRoot"`
	OldValue Node   `json:"oldValue"`
	NewRoot  Node   `json:"newRoot"`
	NewValue Node   `json:"newValue"`
}

// Old returns the pre-update membership proof implied by the delta.
func (d *DeltaMerkleProof) Old() *MerkleProof {
	return &MerkleProof{Root: d.OldRoot, Siblings: d.Siblings, Index: d.Index, Value: d.OldValue}
}

// New returns the post-update membership proof implied by the delta.
func (d *DeltaMerkleProof) New() *MerkleProof {
	return &MerkleProof{Root: d.NewRoot, Siblings: d.Siblings, Index: d.Index, Value: d.NewValue}
}

// leafCount returns the number of leaf slots of a tree of the given height.
func leafCount(height int) int64 {
	return int64(1) << uint(height)
}

// checkHeight validates a construction-time height.
func checkHeight(height int) error {
	if height < 0 || height > MaxHeight {
		return fmt.Errorf("tree height must be in [0, %d], got %d", MaxHeight, height)
	}
	return nil
}
