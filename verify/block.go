package verify

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/light"
)

// BlockRequest binds an execution-layer block's identifying fields
// (number, hash, state root, receipts root) together against one
// authenticated beacon body root, for eth_getBlockByNumber /
// eth_getBlockByHash style queries that need the whole header rather than
// one proven field.
type BlockRequest struct {
	BodyRoot     [32]byte
	BlockNumber  uint64
	BlockHash    types.Hash
	StateRoot    types.Hash
	ReceiptsRoot types.Hash
	Witness      ExecutionWitness
}

// BlockResult is the verified block summary.
type BlockResult struct {
	BlockNumber  uint64
	BlockHash    types.Hash
	StateRoot    types.Hash
	ReceiptsRoot types.Hash
}

// VerifyBlock checks that every claimed field is bound to BodyRoot by a
// single combined Merkle proof, and returns them once authenticated.
func VerifyBlock(req *BlockRequest) (*BlockResult, error) {
	if req == nil {
		return nil, wrap(KindInvalidProof, ErrNilRequest)
	}

	var numLeaf [32]byte
	putUint64BE(numLeaf[:], req.BlockNumber)

	claims := map[uint64][32]byte{
		light.BlockNumberGIndex:  numLeaf,
		light.BlockHashGIndex:    [32]byte(req.BlockHash),
		light.StateRootGIndex:    [32]byte(req.StateRoot),
		light.ReceiptsRootGIndex: [32]byte(req.ReceiptsRoot),
	}
	if err := bindFields(req.BodyRoot, claims, req.Witness); err != nil {
		return nil, err
	}

	return &BlockResult{
		BlockNumber:  req.BlockNumber,
		BlockHash:    req.BlockHash,
		StateRoot:    req.StateRoot,
		ReceiptsRoot: req.ReceiptsRoot,
	}, nil
}

func putUint64BE(dst []byte, v uint64) {
	for i := 0; i < 8; i++ {
		dst[len(dst)-1-i] = byte(v >> (8 * i))
	}
}
