package opstack

import (
	"encoding/binary"
	"errors"

	"github.com/c4verify/lightclient/core/types"
)

// ExecutionPayload offers read-only access to fixed-offset fields of a
// Deneb-profile SSZ ExecutionPayload, without decoding its variable-length
// sections (extra_data, transactions, withdrawals). The buffer starts with a
// 32-byte domain prefix, followed by the SSZ container, so offsets are fixed
// by this layout:
//
//	domain_prefix(32) parent_hash(32) fee_recipient(20) state_root(32) receipts_root(32)
//	logs_bloom(256) prev_randao(32) block_number(8) gas_limit(8)
//	gas_used(8) timestamp(8) extra_data_offset(4) base_fee_per_gas(32)
//	block_hash(32) transactions_offset(4) withdrawals_offset(4)
//	blob_gas_used(8) excess_blob_gas(8)
type ExecutionPayload struct {
	raw []byte
}

var ErrPayloadTooShort = errors.New("opstack: execution payload shorter than fixed header")

// The byte offsets of the fields this package reads, counted from the start
// of the buffer (domain prefix included), as laid out above.
const (
	blockNumberOffset  = 13*32 + 20 // 436
	blockNumberSize    = 8
	blockHashOffset    = 504
	blockHashSize      = 32
	stateRootOffset    = 32 + 32 + 20 // 84
	stateRootSize      = 32
	receiptsRootOffset = stateRootOffset + stateRootSize // 116
	receiptsRootSize   = 32
)

// NewExecutionPayload wraps a decompressed block payload: the 32-byte domain
// prefix followed by the SSZ-encoded execution payload.
// It validates only that the buffer is long enough to contain the fixed
// header fields this package reads.
func NewExecutionPayload(raw []byte) (*ExecutionPayload, error) {
	if len(raw) < blockHashOffset+blockHashSize {
		return nil, ErrPayloadTooShort
	}
	return &ExecutionPayload{raw: raw}, nil
}

// BlockNumber returns the execution-layer block number.
func (p *ExecutionPayload) BlockNumber() uint64 {
	return binary.LittleEndian.Uint64(p.raw[blockNumberOffset : blockNumberOffset+blockNumberSize])
}

// BlockHash returns the execution-layer block hash committed in the payload.
func (p *ExecutionPayload) BlockHash() types.Hash {
	var h types.Hash
	copy(h[:], p.raw[blockHashOffset:blockHashOffset+blockHashSize])
	return h
}

// StateRoot returns the execution-layer state root committed in the
// payload, the root an OP-Stack account/storage proof is verified against.
func (p *ExecutionPayload) StateRoot() types.Hash {
	var h types.Hash
	copy(h[:], p.raw[stateRootOffset:stateRootOffset+stateRootSize])
	return h
}

// ReceiptsRoot returns the MPT root of the block's transaction receipts.
func (p *ExecutionPayload) ReceiptsRoot() types.Hash {
	var h types.Hash
	copy(h[:], p.raw[receiptsRootOffset:receiptsRootOffset+receiptsRootSize])
	return h
}

// Bytes returns the raw SSZ-encoded payload, e.g. for hashing or signature
// verification against the sequencer's signing preimage.
func (p *ExecutionPayload) Bytes() []byte {
	return p.raw
}
