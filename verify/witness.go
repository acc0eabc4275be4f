package verify

import "github.com/c4verify/lightclient/core/types"

// WitnessResult is the fully-verified eth_getProof bundle: one account
// proof plus every requested storage slot proof, all checked against the
// same authenticated state root.
type WitnessResult struct {
	Account *AccountResult
	Storage map[types.Hash]types.Hash
}

// VerifyWitness verifies an account proof and a set of storage-slot
// proofs together as a single eth_getProof witness. Every storage proof
// must be rooted at the account's own verified StorageHash; a caller that
// mixes proofs from different accounts gets a root mismatch, not a silent
// pass.
func VerifyWitness(acctReq *AccountRequest, slots []StorageRequest) (*WitnessResult, error) {
	acctReq.Method = MethodGetProof
	acct, err := VerifyAccount(acctReq)
	if err != nil {
		return nil, err
	}

	return verifyWitnessSlots(acct, slots)
}

// verifyWitnessSlots checks each storage proof is rooted at acct's own
// verified StorageHash, shared by both the L1 and OP-Stack witness
// verifiers once the account proof itself has been authenticated.
func verifyWitnessSlots(acct *AccountResult, slots []StorageRequest) (*WitnessResult, error) {
	result := &WitnessResult{Account: acct, Storage: make(map[types.Hash]types.Hash, len(slots))}
	if !acct.Exists {
		return result, nil
	}

	for _, slot := range slots {
		if slot.StorageHash != acct.StorageHash {
			return nil, wrap(KindRootMismatch, ErrStorageRootMismatch)
		}
		exists, err := VerifyStorage(&slot)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Storage[slot.Slot.Key] = slot.Slot.Value
		}
	}
	return result, nil
}
