package verify

import (
	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/merkle"
)

// ExecutionWitness carries the sibling hashes needed to bind one or more
// claimed execution-payload fields to a beacon block body root, keyed by
// generalized index as merkle.VerifyMultiProof expects.
type ExecutionWitness map[uint64][32]byte

// bindFields verifies that the given (gindex, value) claims all descend
// from bodyRoot using witness as the shared sibling set. This is the fix
// for the body_root binding bug: the expected root is always the
// caller-supplied, already-authenticated bodyRoot, and VerifyMultiProof is
// always invoked — callers must never skip straight to comparing a
// zero-value root against a derived one.
func bindFields(bodyRoot [32]byte, claims map[uint64][32]byte, witness ExecutionWitness) error {
	pairs := make([]merkle.ProofPair, 0, len(claims))
	for g, v := range claims {
		pairs = append(pairs, merkle.ProofPair{GIndex: g, Leaf: v})
	}
	if err := merkle.VerifyMultiProof(bodyRoot, pairs, witness); err != nil {
		return wrap(KindInvalidProof, ErrBodyRootBind)
	}
	return nil
}

// BindStateRoot verifies that stateRoot is the execution-layer state root
// committed at light.StateRootGIndex within bodyRoot.
func BindStateRoot(bodyRoot, stateRoot [32]byte, witness ExecutionWitness) error {
	return bindFields(bodyRoot, map[uint64][32]byte{light.StateRootGIndex: stateRoot}, witness)
}

// BindBlockFields verifies block_number, block_hash, and receipts_root
// together against one shared witness, as used by receipt/log/block
// verifiers that need more than one execution-payload field at once.
func BindBlockFields(bodyRoot [32]byte, blockNumber, blockHash, receiptsRoot [32]byte, witness ExecutionWitness) error {
	claims := map[uint64][32]byte{
		light.BlockNumberGIndex:  blockNumber,
		light.BlockHashGIndex:    blockHash,
		light.ReceiptsRootGIndex: receiptsRoot,
	}
	return bindFields(bodyRoot, claims, witness)
}
