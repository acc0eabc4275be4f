package verify

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/trie"
)

// verifyProofValue is a thin wrapper around trie.VerifyProof shared by the
// receipt, tx, and logs verifiers, which all check one MPT key/value pair
// against a root without needing the richer account-proof bookkeeping
// trie.VerifyAccountProof does.
func verifyProofValue(root types.Hash, key []byte, proof [][]byte) ([]byte, error) {
	return trie.VerifyProof(root, key, proof)
}
