package verify

import (
	"math/big"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/trie"
)

// Method names this package's account verifier accepts, matching the
// eth_* JSON-RPC calls a stateless light client can answer from an account
// proof alone.
const (
	MethodGetBalance          = "eth_getBalance"
	MethodGetTransactionCount = "eth_getTransactionCount"
	MethodGetStorageAt        = "eth_getStorageAt"
	MethodGetCode             = "eth_getCode"
	MethodGetProof            = "eth_getProof"
)

// AccountRequest is a claimed account-state fact: an address, the method
// asking about it, the account's MPT proof against state_root, and the
// Merkle witness binding state_root up to the authenticated beacon body
// root.
type AccountRequest struct {
	Method    string
	Address   types.Address
	BodyRoot  [32]byte
	StateRoot [32]byte
	Witness   ExecutionWitness
	Account   *trie.AccountProofData
}

// AccountResult is the verified field(s) the request asked for. Only the
// field(s) relevant to Method are populated.
type AccountResult struct {
	Balance     *big.Int
	Nonce       uint64
	StorageHash types.Hash
	CodeHash    types.Hash
	Exists      bool
}

// VerifyAccount checks an AccountRequest end to end: binds StateRoot to
// BodyRoot, verifies the account MPT proof against StateRoot, confirms the
// proof is for the requested address, and returns the field(s) Method asks
// for.
func VerifyAccount(req *AccountRequest) (*AccountResult, error) {
	if req == nil {
		return nil, wrap(KindInvalidProof, ErrNilRequest)
	}
	if err := BindStateRoot(req.BodyRoot, req.StateRoot, req.Witness); err != nil {
		return nil, err
	}
	return verifyAccountAgainstRoot(req)
}

// verifyAccountAgainstRoot verifies the account MPT proof against
// req.StateRoot without binding that root to anything further. L1 callers
// bind StateRoot to a beacon body root first (VerifyAccount); OP-Stack
// callers instead trust StateRoot because it was read directly off an
// authenticated, sequencer-signed execution payload (VerifyOPAccount).
func verifyAccountAgainstRoot(req *AccountRequest) (*AccountResult, error) {
	if req.Account == nil {
		return nil, wrap(KindInvalidProof, ErrNilProof)
	}
	if req.Account.Address != req.Address {
		return nil, wrap(KindAddressMismatch, ErrAddressMismatch)
	}

	ok, err := trie.VerifyAccountProof(req.StateRoot, req.Account)
	if err != nil {
		return nil, wrap(KindInvalidProof, err)
	}

	result := &AccountResult{Exists: ok}
	if !ok {
		return result, nil
	}

	switch req.Method {
	case MethodGetBalance:
		result.Balance = req.Account.Balance
	case MethodGetTransactionCount:
		result.Nonce = req.Account.Nonce
	case MethodGetStorageAt:
		result.StorageHash = req.Account.StorageHash
	case MethodGetCode:
		result.CodeHash = req.Account.CodeHash
	case MethodGetProof:
		result.Balance = req.Account.Balance
		result.Nonce = req.Account.Nonce
		result.StorageHash = req.Account.StorageHash
		result.CodeHash = req.Account.CodeHash
	default:
		return nil, wrap(KindUnsupportedMethod, ErrUnsupportedMethod)
	}
	return result, nil
}
