package verify

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/opstack"
	"github.com/c4verify/lightclient/trie"
)

// OPAccountRequest is the OP-Stack analogue of AccountRequest: the account
// proof is checked against the state root embedded in an authenticated,
// sequencer-signed execution payload instead of a beacon body root.
type OPAccountRequest struct {
	Method  string
	Address types.Address
	Payload *opstack.ExecutionPayload
	Account *trie.AccountProofData
}

// VerifyOPAccount verifies an account proof against an OP-Stack execution
// payload's state root and returns the field(s) Method asks for.
func VerifyOPAccount(req *OPAccountRequest) (*AccountResult, error) {
	if req == nil || req.Payload == nil {
		return nil, wrap(KindInvalidProof, ErrNilRequest)
	}
	if req.Account == nil {
		return nil, wrap(KindInvalidProof, ErrNilProof)
	}
	acctReq := &AccountRequest{
		Method:    req.Method,
		Address:   req.Address,
		StateRoot: [32]byte(req.Payload.StateRoot()),
		Account:   req.Account,
	}
	return verifyAccountAgainstRoot(acctReq)
}

// OPWitnessRequest is the OP-Stack analogue of a combined eth_getProof
// request: one account proof plus its storage slots, all rooted at the
// payload's state root.
type OPWitnessRequest struct {
	Payload *opstack.ExecutionPayload
	Address types.Address
	Account *trie.AccountProofData
	Slots   []StorageRequest
}

// VerifyOPWitness verifies an OP-Stack account proof and its storage slots
// together, mirroring VerifyWitness's cross-account mixing guard.
func VerifyOPWitness(req *OPWitnessRequest) (*WitnessResult, error) {
	if req == nil || req.Payload == nil {
		return nil, wrap(KindInvalidProof, ErrNilRequest)
	}
	acct, err := VerifyOPAccount(&OPAccountRequest{Method: MethodGetProof, Address: req.Address, Payload: req.Payload, Account: req.Account})
	if err != nil {
		return nil, err
	}
	return verifyWitnessSlots(acct, req.Slots)
}
