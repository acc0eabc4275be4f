package verify

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/trie"
)

// StorageRequest is a claimed storage-slot value, proven against an
// account's already-verified StorageHash.
type StorageRequest struct {
	StorageHash types.Hash
	Slot        trie.StorageProofData
}

// VerifyStorage checks that Slot.Value is the value stored at Slot.Key
// within the trie rooted at StorageHash. A nil value with a non-empty
// proof is a valid absence proof: VerifyStorage returns Exists=false,
// nil error.
func VerifyStorage(req *StorageRequest) (bool, error) {
	if req == nil {
		return false, wrap(KindInvalidProof, ErrNilRequest)
	}

	slotHash := crypto.Keccak256(req.Slot.Key[:])
	val, err := trie.VerifyProof(req.StorageHash, slotHash, req.Slot.Proof)
	if err != nil {
		return false, wrap(KindInvalidProof, err)
	}

	if val == nil {
		if req.Slot.Value != (types.Hash{}) {
			return false, wrap(KindInvalidProof, ErrAbsenceMismatch)
		}
		return false, nil
	}

	if types.BytesToHash(val) != req.Slot.Value {
		return false, wrap(KindRootMismatch, ErrValueMismatch)
	}
	return true, nil
}
