package request

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/ssz"
	"github.com/c4verify/lightclient/verify"
)

func decodeWitnessField(data []byte) (verify.ExecutionWitness, error) {
	w, err := decodeWitness(data)
	if err != nil {
		return nil, err
	}
	return verify.ExecutionWitness(w), nil
}

// --- AccountProof ---

var l1AccountFieldSizes = []int{32, 0, 0}

func verifyL1Account(bodyRoot [32]byte, method string, address types.Address, data []byte) (*verify.AccountResult, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1AccountFieldSizes), l1AccountFieldSizes)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	var stateRoot [32]byte
	copy(stateRoot[:], fields[0])
	witness, err := decodeWitnessField(fields[1])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	account, err := decodeAccountProofData(fields[2])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	return verify.VerifyAccount(&verify.AccountRequest{
		Method:    method,
		Address:   address,
		BodyRoot:  bodyRoot,
		StateRoot: stateRoot,
		Witness:   witness,
		Account:   account,
	})
}

// --- WitnessProof (eth_getProof / eth_getStorageAt) ---

var l1WitnessFieldSizes = []int{32, 0, 0, 0}

func verifyL1Witness(bodyRoot [32]byte, address types.Address, data []byte) (*verify.WitnessResult, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1WitnessFieldSizes), l1WitnessFieldSizes)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	var stateRoot [32]byte
	copy(stateRoot[:], fields[0])
	witness, err := decodeWitnessField(fields[1])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	account, err := decodeAccountProofData(fields[2])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	slots, err := decodeStorageProofList(fields[3])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}

	acctReq := &verify.AccountRequest{
		Method:    verify.MethodGetProof,
		Address:   address,
		BodyRoot:  bodyRoot,
		StateRoot: stateRoot,
		Witness:   witness,
		Account:   account,
	}
	storageReqs := make([]verify.StorageRequest, len(slots))
	for i, s := range slots {
		storageReqs[i] = verify.StorageRequest{StorageHash: account.StorageHash, Slot: *s}
	}
	return verify.VerifyWitness(acctReq, storageReqs)
}

// --- ReceiptProof ---

var l1ReceiptFieldSizes = []int{32, 32, 0, 0, 0, 8, 32, 0}

func decodeL1ReceiptRequest(bodyRoot [32]byte, data []byte) (*verify.L1ReceiptRequest, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1ReceiptFieldSizes), l1ReceiptFieldSizes)
	if err != nil {
		return nil, err
	}
	witness, err := decodeWitnessField(fields[2])
	if err != nil {
		return nil, err
	}
	proof, err := decodeByteList(fields[7])
	if err != nil {
		return nil, err
	}
	var blockNumber, blockHash, receiptsRoot [32]byte
	copy(blockNumber[:], fields[0])
	copy(blockHash[:], fields[1])
	copy(receiptsRoot[:], fields[6])

	return &verify.L1ReceiptRequest{
		BodyRoot:    bodyRoot,
		BlockNumber: blockNumber,
		BlockHash:   blockHash,
		Witness:     witness,
		Receipt: verify.ReceiptProof{
			RawTx:        fields[3],
			ReceiptRLP:   fields[4],
			TxIndex:      beUint64(fields[5]),
			ReceiptsRoot: types.Hash(receiptsRoot),
			Proof:        proof,
		},
	}, nil
}

func verifyL1Receipt(bodyRoot [32]byte, data []byte) (*verify.L1ReceiptRequest, error) {
	req, err := decodeL1ReceiptRequest(bodyRoot, data)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	if err := verify.VerifyL1Receipt(req); err != nil {
		return nil, err
	}
	return req, nil
}

// --- TransactionProof ---

var l1TxFieldSizes = []int{32, 32, 0, 0, 8, 32, 0}

func verifyL1Tx(bodyRoot [32]byte, data []byte) (*verify.TxProof, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1TxFieldSizes), l1TxFieldSizes)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	witness, err := decodeWitnessField(fields[2])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	proof, err := decodeByteList(fields[6])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	var blockNumber, blockHash, txRoot [32]byte
	copy(blockNumber[:], fields[0])
	copy(blockHash[:], fields[1])
	copy(txRoot[:], fields[5])

	tx := verify.TxProof{
		RawTx:   fields[3],
		TxIndex: beUint64(fields[4]),
		TxRoot:  types.Hash(txRoot),
		Proof:   proof,
	}
	req := &verify.L1TxRequest{BodyRoot: bodyRoot, BlockNumber: blockNumber, BlockHash: blockHash, Witness: witness, Tx: tx}
	if err := verify.VerifyL1Tx(req); err != nil {
		return nil, err
	}
	return &tx, nil
}

// --- LogsProof ---

var l1LogClaimFieldSizes = []int{32, 32, 0, 0, 0, 8, 32, 0, 0, 0}
var logEntryFieldSizes = []int{20, 0, 0}

func decodeLogEntry(data []byte) (*types.Log, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(logEntryFieldSizes), logEntryFieldSizes)
	if err != nil {
		return nil, err
	}
	topicBytes, err := ssz.UnmarshalList(fields[1], 32)
	if err != nil {
		return nil, err
	}
	topics := make([]types.Hash, len(topicBytes))
	for i, t := range topicBytes {
		copy(topics[i][:], t)
	}
	var addr types.Address
	copy(addr[:], fields[0])
	return &types.Log{Address: addr, Topics: topics, Data: fields[2]}, nil
}

func decodeLogBlockClaim(bodyRoot [32]byte, data []byte) (*verify.LogBlockClaim, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1LogClaimFieldSizes), l1LogClaimFieldSizes)
	if err != nil {
		return nil, err
	}
	witness, err := decodeWitnessField(fields[2])
	if err != nil {
		return nil, err
	}
	proof, err := decodeByteList(fields[7])
	if err != nil {
		return nil, err
	}
	idxBytes, err := ssz.UnmarshalList(fields[8], 4)
	if err != nil {
		return nil, err
	}
	logBlobs, err := decodeByteList(fields[9])
	if err != nil {
		return nil, err
	}

	indexes := make([]uint, len(idxBytes))
	for i, b := range idxBytes {
		v, err := ssz.UnmarshalUint32(b)
		if err != nil {
			return nil, err
		}
		indexes[i] = uint(v)
	}
	logs := make([]types.Log, len(logBlobs))
	for i, lb := range logBlobs {
		l, err := decodeLogEntry(lb)
		if err != nil {
			return nil, err
		}
		logs[i] = *l
	}

	var blockNumber, blockHash, receiptsRoot [32]byte
	copy(blockNumber[:], fields[0])
	copy(blockHash[:], fields[1])
	copy(receiptsRoot[:], fields[6])

	l1req := &verify.L1ReceiptRequest{
		BodyRoot:    bodyRoot,
		BlockNumber: blockNumber,
		BlockHash:   blockHash,
		Witness:     witness,
		Receipt: verify.ReceiptProof{
			RawTx:        fields[3],
			ReceiptRLP:   fields[4],
			TxIndex:      beUint64(fields[5]),
			ReceiptsRoot: types.Hash(receiptsRoot),
			Proof:        proof,
		},
	}
	return &verify.LogBlockClaim{
		L1:                l1req,
		TxIndex:           l1req.Receipt.TxIndex,
		ClaimedLogIndexes: indexes,
		ClaimedLogs:       logs,
	}, nil
}

func verifyL1Logs(bodyRoot [32]byte, data []byte) ([]verify.LogBlockClaim, error) {
	blobs, err := decodeByteList(data)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	claims := make([]verify.LogBlockClaim, len(blobs))
	for i, b := range blobs {
		c, err := decodeLogBlockClaim(bodyRoot, b)
		if err != nil {
			return nil, verify.NewError(verify.KindInvalidProof, err)
		}
		claims[i] = *c
	}
	if err := verify.VerifyLogs(claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// --- BlockProof / BlockNumberProof ---

var l1BlockFieldSizes = []int{8, 32, 32, 32, 0}

func verifyL1Block(bodyRoot [32]byte, data []byte) (*verify.BlockResult, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1BlockFieldSizes), l1BlockFieldSizes)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	witness, err := decodeWitnessField(fields[4])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	var blockHash, stateRoot, receiptsRoot types.Hash
	copy(blockHash[:], fields[1])
	copy(stateRoot[:], fields[2])
	copy(receiptsRoot[:], fields[3])

	return verify.VerifyBlock(&verify.BlockRequest{
		BodyRoot:     bodyRoot,
		BlockNumber:  beUint64(fields[0]),
		BlockHash:    blockHash,
		StateRoot:    stateRoot,
		ReceiptsRoot: receiptsRoot,
		Witness:      witness,
	})
}

var l1BlockNumberFieldSizes = []int{8, 0}

func verifyL1BlockNumber(bodyRoot [32]byte, data []byte) (uint64, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1BlockNumberFieldSizes), l1BlockNumberFieldSizes)
	if err != nil {
		return 0, verify.NewError(verify.KindInvalidProof, err)
	}
	witness, err := decodeWitnessField(fields[1])
	if err != nil {
		return 0, verify.NewError(verify.KindInvalidProof, err)
	}
	return verify.VerifyBlockNumber(&verify.BlockNumberRequest{
		BodyRoot:    bodyRoot,
		BlockNumber: beUint64(fields[0]),
		Witness:     witness,
	})
}

// --- CallProof (eth_call with state overrides) ---

var l1CallFieldSizes = []int{32, 0, 0, 0}

func verifyL1Call(bodyRoot [32]byte, address types.Address, data []byte) (*verify.CallAccountState, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(l1CallFieldSizes), l1CallFieldSizes)
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	var stateRoot [32]byte
	copy(stateRoot[:], fields[0])
	account, err := decodeAccountProofData(fields[1])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}
	witness, err := decodeWitnessField(fields[2])
	if err != nil {
		return nil, verify.NewError(verify.KindInvalidProof, err)
	}

	overrides, err := verify.DecodeCallOverrides(fields[3])
	if err != nil {
		return nil, err
	}
	override := overrides[address]

	acctReq := &verify.AccountRequest{
		Method:    verify.MethodGetProof,
		Address:   address,
		BodyRoot:  bodyRoot,
		StateRoot: stateRoot,
		Witness:   witness,
		Account:   account,
	}
	return verify.ApplyOverride(acctReq, &override)
}
