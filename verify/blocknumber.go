package verify

import "github.com/c4verify/lightclient/light"

// BlockNumberRequest binds only a block number claim to an authenticated
// beacon body root, for eth_blockNumber-style queries that need nothing
// else from the block.
type BlockNumberRequest struct {
	BodyRoot    [32]byte
	BlockNumber uint64
	Witness     ExecutionWitness
}

// VerifyBlockNumber authenticates BlockNumber against BodyRoot and returns
// it once the binding holds.
func VerifyBlockNumber(req *BlockNumberRequest) (uint64, error) {
	if req == nil {
		return 0, wrap(KindInvalidProof, ErrNilRequest)
	}
	var numLeaf [32]byte
	putUint64BE(numLeaf[:], req.BlockNumber)

	claims := map[uint64][32]byte{light.BlockNumberGIndex: numLeaf}
	if err := bindFields(req.BodyRoot, claims, req.Witness); err != nil {
		return 0, err
	}
	return req.BlockNumber, nil
}
