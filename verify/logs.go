package verify

import (
	"errors"

	"github.com/c4verify/lightclient/core/types"
)

var (
	ErrLogNotFound   = errors.New("verify: claimed log not found in receipt")
	ErrLogDataMismatch = errors.New("verify: log payload does not match receipt leaf")
)

// LogBlockClaim is one block's worth of claimed logs: the block's receipt
// binding (shared across every log in the block) plus the specific
// transaction receipts those logs were emitted in.
type LogBlockClaim struct {
	L1      *L1ReceiptRequest // nil for OP-Stack blocks
	OP      *OPReceiptRequest // nil for L1 blocks
	TxIndex uint64
	// ClaimedLogIndexes are the indexes, within the transaction's log
	// list, of the logs the caller claims occurred.
	ClaimedLogIndexes []uint
	ClaimedLogs       []types.Log
}

// VerifyLogs verifies every block claim's receipt proof, then confirms
// each claimed log is byte-for-byte present at its claimed index within
// the proven receipt's decoded log list.
func VerifyLogs(claims []LogBlockClaim) error {
	for _, claim := range claims {
		if err := verifyBlockReceipt(claim); err != nil {
			return err
		}

		var receiptRLP []byte
		switch {
		case claim.L1 != nil:
			receiptRLP = claim.L1.Receipt.ReceiptRLP
		case claim.OP != nil:
			receiptRLP = claim.OP.Receipt.ReceiptRLP
		default:
			return wrap(KindInvalidProof, ErrNilRequest)
		}

		receipt, err := types.DecodeReceiptRLP(receiptRLP)
		if err != nil {
			return wrap(KindInvalidProof, err)
		}

		for i, idx := range claim.ClaimedLogIndexes {
			if int(idx) >= len(receipt.Logs) {
				return wrap(KindInvalidProof, ErrLogNotFound)
			}
			if !logsEqual(receipt.Logs[idx], &claim.ClaimedLogs[i]) {
				return wrap(KindInvalidProof, ErrLogDataMismatch)
			}
		}
	}
	return nil
}

func verifyBlockReceipt(claim LogBlockClaim) error {
	if claim.L1 != nil {
		return VerifyL1Receipt(claim.L1)
	}
	if claim.OP != nil {
		return VerifyOPReceipt(claim.OP)
	}
	return wrap(KindInvalidProof, ErrNilRequest)
}

func logsEqual(a *types.Log, b *types.Log) bool {
	if a.Address != b.Address || len(a.Topics) != len(b.Topics) {
		return false
	}
	for i := range a.Topics {
		if a.Topics[i] != b.Topics[i] {
			return false
		}
	}
	return bytesEqual(a.Data, b.Data)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
