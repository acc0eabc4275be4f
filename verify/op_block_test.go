package verify

import (
	"encoding/binary"
	"testing"

	"github.com/c4verify/lightclient/opstack"
)

func buildOPPayloadRaw(t *testing.T, blockNumber uint64) *opstack.ExecutionPayload {
	t.Helper()
	raw := make([]byte, 536)
	raw[84] = 0xaa   // state_root
	raw[116] = 0xbb  // receipts_root
	binary.LittleEndian.PutUint64(raw[436:444], blockNumber)
	raw[504] = 0xcc // block_hash
	p, err := opstack.NewExecutionPayload(raw)
	if err != nil {
		t.Fatalf("NewExecutionPayload: %v", err)
	}
	return p
}

func TestVerifyOPBlock(t *testing.T) {
	payload := buildOPPayloadRaw(t, 12345)
	res, err := VerifyOPBlock(payload)
	if err != nil {
		t.Fatalf("VerifyOPBlock: %v", err)
	}
	if res.BlockNumber != 12345 {
		t.Fatalf("BlockNumber = %d, want 12345", res.BlockNumber)
	}
	if res.StateRoot[0] != 0xaa || res.ReceiptsRoot[0] != 0xbb || res.BlockHash[0] != 0xcc {
		t.Fatal("unexpected field values in OPBlockResult")
	}
}

func TestVerifyOPBlockNumber(t *testing.T) {
	payload := buildOPPayloadRaw(t, 99)
	n, err := VerifyOPBlockNumber(payload)
	if err != nil {
		t.Fatalf("VerifyOPBlockNumber: %v", err)
	}
	if n != 99 {
		t.Fatalf("block number = %d, want 99", n)
	}
}

func TestVerifyOPBlockNilPayload(t *testing.T) {
	if _, err := VerifyOPBlock(nil); err == nil {
		t.Fatal("expected error for nil payload")
	}
	if _, err := VerifyOPBlockNumber(nil); err == nil {
		t.Fatal("expected error for nil payload")
	}
}
