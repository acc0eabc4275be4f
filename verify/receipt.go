package verify

import (
	"bytes"
	"errors"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/opstack"
	"github.com/c4verify/lightclient/rlp"
)

var (
	ErrReceiptMismatch      = errors.New("verify: receipt leaf does not match claimed receipt")
	ErrTxHashMismatch       = errors.New("verify: keccak(raw tx) does not match claimed tx hash")
	ErrReceiptsRootMismatch = errors.New("verify: receipts root does not match op-stack execution payload")
)

// ReceiptProof is the execution-layer half of a receipt verification: the
// raw transaction, its claimed receipt RLP, its index within the block,
// and the MPT proof of that receipt under receipts_root.
type ReceiptProof struct {
	RawTx        []byte
	ReceiptRLP   []byte
	TxIndex      uint64
	ReceiptsRoot types.Hash
	Proof        [][]byte
}

// receiptKey is the canonical MPT key for the txIndex'th receipt: the
// RLP encoding of the index as an unsigned integer.
func receiptKey(txIndex uint64) []byte {
	key, _ := rlp.EncodeToBytes(txIndex)
	return key
}

// verifyReceiptMPT checks that rp.ReceiptRLP is the MPT value at rp.TxIndex
// under rp.ReceiptsRoot. rp.RawTx is not examined here; VerifyTxHash checks
// it against a claimed transaction hash.
func verifyReceiptMPT(rp *ReceiptProof) error {
	val, err := verifyProofValue(rp.ReceiptsRoot, receiptKey(rp.TxIndex), rp.Proof)
	if err != nil {
		return wrap(KindInvalidProof, err)
	}
	if !bytes.Equal(val, rp.ReceiptRLP) {
		return wrap(KindInvalidProof, ErrReceiptMismatch)
	}
	return nil
}

// L1ReceiptRequest binds a receipt proof to an authenticated beacon body
// root via the block's (block_number, block_hash, receipts_root) fields.
type L1ReceiptRequest struct {
	BodyRoot    [32]byte
	BlockNumber [32]byte
	BlockHash   [32]byte
	Witness     ExecutionWitness
	Receipt     ReceiptProof
}

// VerifyL1Receipt verifies a receipt proof against an L1 beacon block:
// it always recomputes the expected receipts_root binding via
// merkle.VerifyMultiProof against BodyRoot before trusting ReceiptsRoot for
// the MPT check — ReceiptsRoot is never compared directly without first
// being authenticated this way.
func VerifyL1Receipt(req *L1ReceiptRequest) error {
	if req == nil {
		return wrap(KindInvalidProof, ErrNilRequest)
	}
	receiptsRoot32 := [32]byte(req.Receipt.ReceiptsRoot)
	if err := BindBlockFields(req.BodyRoot, req.BlockNumber, req.BlockHash, receiptsRoot32, req.Witness); err != nil {
		return err
	}
	return verifyReceiptMPT(&req.Receipt)
}

// OPReceiptRequest binds a receipt proof to an authenticated, sequencer-
// signed OP-Stack execution payload instead of a beacon body root.
type OPReceiptRequest struct {
	Payload *opstack.ExecutionPayload
	Receipt ReceiptProof
}

// VerifyOPReceipt checks that the receipt proof's ReceiptsRoot matches the
// one embedded in the authenticated execution payload, then verifies the
// MPT proof.
func VerifyOPReceipt(req *OPReceiptRequest) error {
	if req == nil || req.Payload == nil {
		return wrap(KindInvalidProof, ErrNilRequest)
	}
	if req.Payload.ReceiptsRoot() != req.Receipt.ReceiptsRoot {
		return wrap(KindRootMismatch, ErrReceiptsRootMismatch)
	}
	return verifyReceiptMPT(&req.Receipt)
}

// VerifyTxHash checks that keccak(rawTx) equals the claimed transaction
// hash, the binding step between a caller's tx_hash request field and the
// raw transaction bytes inside ReceiptProof.
func VerifyTxHash(rawTx []byte, claimed types.Hash) error {
	got := types.BytesToHash(crypto.Keccak256(rawTx))
	if got != claimed {
		return wrap(KindInvalidProof, ErrTxHashMismatch)
	}
	return nil
}
