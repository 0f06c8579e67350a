package merkle

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// MarshalJSON encodes the digest in its canonical hex form.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Hex())
}

// UnmarshalJSON decodes a canonical hex digest, with or without a 0x prefix.
func (n *Node) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := NodeFromHex(s)
	if err != nil {
		return err
	}
	*n = v
	return nil
}

// EncodeProof serializes a membership proof as JSON. Sibling order (bottom-up)
// is preserved; verification is order-sensitive.
func EncodeProof(proof *MerkleProof) ([]byte, error) {
	if proof == nil {
		return nil, errors.New("cannot encode nil merkle proof")
	}
	return json.Marshal(proof)
}

// DecodeProof parses a JSON membership proof and checks its structural
// well-formedness. Structural problems are decode errors, distinct from the
// proof merely failing to verify.
func DecodeProof(data []byte) (*MerkleProof, error) {
	proof := &MerkleProof{}
	if err := json.Unmarshal(data, proof); err != nil {
		return nil, errors.Wrap(err, "failed to decode merkle proof")
	}
	if err := checkProofShape(len(proof.Siblings), proof.Index); err != nil {
		return nil, errors.Wrap(err, "malformed merkle proof")
	}
	return proof, nil
}

// EncodeDeltaProof serializes a delta proof as JSON.
func EncodeDeltaProof(delta *DeltaMerkleProof) ([]byte, error) {
	if delta == nil {
		return nil, errors.New("cannot encode nil delta merkle proof")
	}
	return json.Marshal(delta)
}

// DecodeDeltaProof parses a JSON delta proof and checks its structural
// well-formedness.
func DecodeDeltaProof(data []byte) (*DeltaMerkleProof, error) {
	delta := &DeltaMerkleProof{}
	if err := json.Unmarshal(data, delta); err != nil {
		return nil, errors.Wrap(err, "failed to decode delta merkle proof")
	}
	if err := checkProofShape(len(delta.Siblings), delta.Index); err != nil {
		return nil, errors.Wrap(err, "malformed delta merkle proof")
	}
	return delta, nil
}

// checkProofShape validates that a decoded proof could have come from a tree
// of some supported height.
func checkProofShape(numSiblings int, index int64) error {
	if numSiblings > MaxHeight {
		return errors.Errorf("%d siblings exceeds the maximum tree height %d", numSiblings, MaxHeight)
	}
	if index < 0 || index >= int64(1)<<uint(numSiblings) {
		return errors.Errorf("leaf index %d out of range for a %d-level path", index, numSiblings)
	}
	return nil
}
