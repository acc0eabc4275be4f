package request

import (
	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/ssz"
	"github.com/c4verify/lightclient/verify"
)

var opReceiptFieldSizes = []int{0, 0, 8, 32, 0}

func decodeOPReceiptProof(data []byte) (*verify.ReceiptProof, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(opReceiptFieldSizes), opReceiptFieldSizes)
	if err != nil {
		return nil, err
	}
	proof, err := decodeByteList(fields[4])
	if err != nil {
		return nil, err
	}
	var receiptsRoot types.Hash
	copy(receiptsRoot[:], fields[3])
	return &verify.ReceiptProof{
		RawTx:        fields[0],
		ReceiptRLP:   fields[1],
		TxIndex:      beUint64(fields[2]),
		ReceiptsRoot: receiptsRoot,
		Proof:        proof,
	}, nil
}

var opTxFieldSizes = []int{0, 8, 32, 0}

func decodeOPTxProof(data []byte) (*verify.TxProof, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(opTxFieldSizes), opTxFieldSizes)
	if err != nil {
		return nil, err
	}
	proof, err := decodeByteList(fields[3])
	if err != nil {
		return nil, err
	}
	var txRoot types.Hash
	copy(txRoot[:], fields[2])
	return &verify.TxProof{
		RawTx:   fields[0],
		TxIndex: beUint64(fields[1]),
		TxRoot:  txRoot,
		Proof:   proof,
	}, nil
}
