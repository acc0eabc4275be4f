package verify

import (
	"testing"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/light"
)

func TestVerifyBlockSuccess(t *testing.T) {
	blockHash := types.HexToHash("0x01")
	stateRoot := types.HexToHash("0x02")
	receiptsRoot := types.HexToHash("0x03")

	var numLeaf [32]byte
	putUint64BE(numLeaf[:], 100)

	claims := map[uint64][32]byte{
		light.BlockNumberGIndex:  numLeaf,
		light.BlockHashGIndex:    [32]byte(blockHash),
		light.StateRootGIndex:    [32]byte(stateRoot),
		light.ReceiptsRootGIndex: [32]byte(receiptsRoot),
	}
	bodyRoot, witness := buildWitness(claims)

	req := &BlockRequest{
		BodyRoot:     bodyRoot,
		BlockNumber:  100,
		BlockHash:    blockHash,
		StateRoot:    stateRoot,
		ReceiptsRoot: receiptsRoot,
		Witness:      witness,
	}
	result, err := VerifyBlock(req)
	if err != nil {
		t.Fatalf("VerifyBlock: %v", err)
	}
	if result.BlockNumber != 100 || result.BlockHash != blockHash {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestVerifyBlockNumberSuccess(t *testing.T) {
	var numLeaf [32]byte
	putUint64BE(numLeaf[:], 42)
	bodyRoot, witness := buildSingleWitness(light.BlockNumberGIndex, numLeaf)

	got, err := VerifyBlockNumber(&BlockNumberRequest{BodyRoot: bodyRoot, BlockNumber: 42, Witness: witness})
	if err != nil {
		t.Fatalf("VerifyBlockNumber: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestVerifyBlockNumberRejectsWrongNumber(t *testing.T) {
	var numLeaf [32]byte
	putUint64BE(numLeaf[:], 42)
	bodyRoot, witness := buildSingleWitness(light.BlockNumberGIndex, numLeaf)

	_, err := VerifyBlockNumber(&BlockNumberRequest{BodyRoot: bodyRoot, BlockNumber: 43, Witness: witness})
	if err == nil {
		t.Fatal("expected failure for mismatched block number")
	}
}
