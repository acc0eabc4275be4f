package verify

import (
	"bytes"
	"errors"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/opstack"
)

var ErrTxMismatch = errors.New("verify: transaction leaf does not match claimed raw transaction")

// TxProof is the execution-layer half of a transaction-inclusion
// verification: the raw transaction bytes, its index, and the MPT proof
// of that transaction under a transactions-trie root.
type TxProof struct {
	RawTx   []byte
	TxIndex uint64
	TxRoot  types.Hash
	Proof   [][]byte
}

func verifyTxMPT(tp *TxProof) error {
	val, err := verifyProofValue(tp.TxRoot, receiptKey(tp.TxIndex), tp.Proof)
	if err != nil {
		return wrap(KindInvalidProof, err)
	}
	if !bytes.Equal(val, tp.RawTx) {
		return wrap(KindInvalidProof, ErrTxMismatch)
	}
	return nil
}

// L1TxRequest binds a transaction-inclusion proof to an authenticated
// beacon body root via the block's (block_number, block_hash) fields and
// the transaction trie root committed at TransactionsGIndex.
type L1TxRequest struct {
	BodyRoot    [32]byte
	BlockNumber [32]byte
	BlockHash   [32]byte
	Witness     ExecutionWitness
	Tx          TxProof
}

// VerifyL1Tx authenticates the block binding and verifies tx inclusion.
func VerifyL1Tx(req *L1TxRequest) error {
	if req == nil {
		return wrap(KindInvalidProof, ErrNilRequest)
	}
	txRoot32 := [32]byte(req.Tx.TxRoot)
	claims := map[uint64][32]byte{
		light.BlockNumberGIndex: req.BlockNumber,
		light.BlockHashGIndex:   req.BlockHash,
		light.TransactionGIndex(req.Tx.TxIndex): txRoot32,
	}
	if err := bindFields(req.BodyRoot, claims, req.Witness); err != nil {
		return err
	}
	return verifyTxMPT(&req.Tx)
}

// OPTxRequest binds a transaction-inclusion proof to an authenticated,
// sequencer-signed OP-Stack execution payload instead of a beacon body
// root.
type OPTxRequest struct {
	Payload *opstack.ExecutionPayload
	Tx      TxProof
}

// VerifyOPTx verifies tx inclusion against an OP-Stack payload's proven
// transaction trie root.
func VerifyOPTx(req *OPTxRequest) error {
	if req == nil || req.Payload == nil {
		return wrap(KindInvalidProof, ErrNilRequest)
	}
	return verifyTxMPT(&req.Tx)
}
