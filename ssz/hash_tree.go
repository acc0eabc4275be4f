// hash_tree.go supplies the single Merkle primitive the proof verifiers
// build on: combining two 32-byte tree nodes into their parent. Beacon
// chain and OP-Stack witnesses arrive as generalized-index sibling lists
// (see package merkle and light.ProofVerifier.VerifyBranch); none of the verifiers
// ever Merkleize a full SSZ container from scratch, so this file carries
// no general-purpose hash-tree-root machinery, only the hash step itself.
package ssz

import "crypto/sha256"

// hash computes the parent of two Merkle tree nodes: sha256(a || b).
func hash(a, b [32]byte) [32]byte {
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	return sha256.Sum256(buf[:])
}

// ConcatHash computes SHA-256(a || b) for two 32-byte tree nodes. Exported
// so merkle-proof verifiers outside this package can climb a branch
// without reimplementing the hashing rule.
func ConcatHash(a, b [32]byte) [32]byte {
	return hash(a, b)
}

// SHA256 computes SHA-256 over an arbitrary byte slice, returning a
// [32]byte. Used by test fixtures to derive leaves for synthetic proofs.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}
