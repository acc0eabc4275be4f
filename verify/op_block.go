package verify

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/opstack"
)

// OPBlockResult is the verified OP-Stack block summary, read directly off
// an execution payload whose sequencer signature the caller has already
// checked with opstack.VerifySequencerSignature.
type OPBlockResult struct {
	BlockNumber  uint64
	BlockHash    types.Hash
	StateRoot    types.Hash
	ReceiptsRoot types.Hash
}

// VerifyOPBlock reads the block summary fields off payload. There is no
// further Merkle binding to perform: the payload's own bytes are what the
// sequencer signed, so once that signature checks out every fixed-offset
// field in it is trusted.
func VerifyOPBlock(payload *opstack.ExecutionPayload) (*OPBlockResult, error) {
	if payload == nil {
		return nil, wrap(KindInvalidProof, ErrNilRequest)
	}
	return &OPBlockResult{
		BlockNumber:  payload.BlockNumber(),
		BlockHash:    payload.BlockHash(),
		StateRoot:    payload.StateRoot(),
		ReceiptsRoot: payload.ReceiptsRoot(),
	}, nil
}

// VerifyOPBlockNumber returns the block number committed in payload.
func VerifyOPBlockNumber(payload *opstack.ExecutionPayload) (uint64, error) {
	if payload == nil {
		return 0, wrap(KindInvalidProof, ErrNilRequest)
	}
	return payload.BlockNumber(), nil
}
