package verify

import (
	"math/big"

	"github.com/c4verify/lightclient/core/types"
)

// CallAccountState is the post-override view of one account that eth_call
// state resolution for a single address should see: proven on-chain
// values, with any caller-supplied overrides already applied.
type CallAccountState struct {
	Balance     *big.Int
	Code        []byte
	StorageHash types.Hash
	// Storage holds explicit per-slot overrides (from "state" or
	// "stateDiff"); a slot absent here falls back to the proven value
	// under StorageHash.
	Storage map[types.Hash]types.Hash
	// FullReplacement is true when overridden via "state": every slot not
	// present in Storage reads as zero, rather than falling back to
	// StorageHash.
	FullReplacement bool
}

// ApplyOverride verifies the account's proof against StateRoot (the same
// binding VerifyAccount performs) and then layers any override for that
// address on top of the proven balance, code, and storage.
func ApplyOverride(req *AccountRequest, override *StateOverride) (*CallAccountState, error) {
	acctReq := *req
	acctReq.Method = MethodGetProof
	acct, err := VerifyAccount(&acctReq)
	if err != nil {
		return nil, err
	}

	state := &CallAccountState{
		Balance:     acct.Balance,
		StorageHash: acct.StorageHash,
	}
	if state.Balance == nil {
		state.Balance = new(big.Int)
	}

	if override == nil {
		return state, nil
	}
	if override.Balance != nil {
		state.Balance = override.Balance
	}
	if override.Code != nil {
		state.Code = override.Code
	}
	if override.State != nil {
		state.Storage = override.State
		state.FullReplacement = true
	} else if override.StateDiff != nil {
		state.Storage = override.StateDiff
	}
	return state, nil
}

// StorageAt resolves a single slot's value under an applied override,
// falling back to the verified on-chain proof when the slot is not
// overridden.
func (s *CallAccountState) StorageAt(key types.Hash, proven *StorageRequest) (types.Hash, error) {
	if v, ok := s.Storage[key]; ok {
		return v, nil
	}
	if s.FullReplacement {
		return types.Hash{}, nil
	}
	if proven == nil {
		return types.Hash{}, nil
	}
	exists, err := VerifyStorage(proven)
	if err != nil {
		return types.Hash{}, err
	}
	if !exists {
		return types.Hash{}, nil
	}
	return proven.Slot.Value, nil
}
