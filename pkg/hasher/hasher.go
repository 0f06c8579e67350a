package hasher

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Hasher names accepted by New. Keccak256 is the default used by the demo
// tooling for Solidity compatibility.
const (
	Keccak256HasherName = "keccak256"
	SHA3256HasherName   = "sha3-256"
	MiMCHasherName      = "mimc-bn254"
)

// PairHasher combines two 32-byte digests into one. Implementations must be
// deterministic; the merkle trees built on top assume collision resistance.
type PairHasher interface {
	// HashPair computes the parent digest of (left || right).
	HashPair(left, right [32]byte) [32]byte

	// Name returns the canonical hasher name, as accepted by New.
	Name() string
}

// New returns the PairHasher registered under the given name.
func New(name string) (PairHasher, error) {
	switch name {
	case Keccak256HasherName:
		return Keccak256Hasher{}, nil
	case SHA3256HasherName:
		return SHA3256Hasher{}, nil
	case MiMCHasherName:
		return MiMCHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q (supported: %s, %s, %s)",
			name, Keccak256HasherName, SHA3256HasherName, MiMCHasherName)
	}
}

// Keccak256Hasher hashes node pairs with keccak256(left || right), matching
// what a Solidity verifier computes with abi.encodePacked.
type Keccak256Hasher struct{}

// HashPair computes keccak256(left || right).
func (Keccak256Hasher) HashPair(left, right [32]byte) [32]byte {
	data := make([]byte, 64)
	copy(data[0:32], left[:])
	copy(data[32:64], right[:])

	return [32]byte(crypto.Keccak256Hash(data))
}

func (Keccak256Hasher) Name() string { return Keccak256HasherName }

// SHA3256Hasher hashes node pairs with standard (FIPS 202) SHA3-256.
type SHA3256Hasher struct{}

// HashPair computes sha3-256(left || right).
func (SHA3256Hasher) HashPair(left, right [32]byte) [32]byte {
	data := make([]byte, 64)
	copy(data[0:32], left[:])
	copy(data[32:64], right[:])

	return sha3.Sum256(data)
}

func (SHA3256Hasher) Name() string { return SHA3256HasherName }

// MiMCHasher hashes node pairs with MiMC over the BN254 scalar field, the
// construction used when tree openings are verified inside a zk circuit.
//
// Arbitrary 32-byte digests are not necessarily canonical field elements, so
// each input is reduced into the field before being absorbed. The output is
// the big-endian encoding of a field element and is itself a valid input.
type MiMCHasher struct{}

// HashPair computes MiMC(left mod r, right mod r).
func (MiMCHasher) HashPair(left, right [32]byte) [32]byte {
	var l, r fr.Element
	l.SetBytes(left[:])
	r.SetBytes(right[:])

	lb, rb := l.Bytes(), r.Bytes()

	h := mimc.NewMiMC()
	_, _ = h.Write(lb[:]) // cannot fail: inputs are canonical field elements
	_, _ = h.Write(rb[:])

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (MiMCHasher) Name() string { return MiMCHasherName }
