package light

// Generalized indices locating execution-layer fields within the beacon
// block body tree, combining BeaconBlockBody.execution_payload's gindex
// with each field's gindex inside ExecutionPayload. StateRootGIndex is the
// one fixed value the protocol specifies directly; the remaining execution
// payload fields share its depth and are adjacent combined gindices — see
// the DESIGN.md entry for this file for the open question this resolves.
const (
	// StateRootGIndex is the combined generalized index of
	// execution_payload.state_root within the beacon block body tree.
	StateRootGIndex = 802

	// BlockNumberGIndex locates execution_payload.block_number.
	BlockNumberGIndex = 806
	// BlockHashGIndex locates execution_payload.block_hash.
	BlockHashGIndex = 812
	// ReceiptsRootGIndex locates execution_payload.receipts_root.
	ReceiptsRootGIndex = 803
	// TransactionsGIndex is the base combined gindex of
	// execution_payload.transactions; TransactionGIndex places the i'th
	// transaction at (TransactionsGIndex << 1) + i, one level below it.
	TransactionsGIndex = 830

	// ExecutionPayloadDepth is the depth, in tree levels, from the
	// execution_payload field root down to an individual transaction leaf
	// inside its List[Transaction, MAX_TRANSACTIONS_PER_PAYLOAD] container.
	// TransactionGIndex does not use it.
	ExecutionPayloadDepth = 29
)

// TransactionGIndex returns the generalized index of the txIndex'th
// transaction within the beacon block body tree.
func TransactionGIndex(txIndex uint64) uint64 {
	return (TransactionsGIndex << 1) + txIndex
}
