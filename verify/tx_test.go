package verify

import (
	"testing"

	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/trie"
)

func TestVerifyL1TxSuccess(t *testing.T) {
	rawTx := []byte("raw-tx-bytes-for-index-2")
	txTrie := trie.New()
	key := receiptKey(2)
	if err := txTrie.Put(key, rawTx); err != nil {
		t.Fatalf("Put: %v", err)
	}
	txRoot := txTrie.Hash()
	proof, err := txTrie.Prove(key)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	claims := map[uint64][32]byte{
		light.BlockNumberGIndex:    {9},
		light.BlockHashGIndex:      {10},
		light.TransactionGIndex(2): [32]byte(txRoot),
	}
	bodyRoot, witness := buildWitness(claims)

	req := &L1TxRequest{
		BodyRoot:    bodyRoot,
		BlockNumber: [32]byte{9},
		BlockHash:   [32]byte{10},
		Witness:     witness,
		Tx: TxProof{
			RawTx:   rawTx,
			TxIndex: 2,
			TxRoot:  txRoot,
			Proof:   proof,
		},
	}
	if err := VerifyL1Tx(req); err != nil {
		t.Fatalf("VerifyL1Tx: %v", err)
	}
}

func TestVerifyL1TxRejectsTamperedRawTx(t *testing.T) {
	rawTx := []byte("raw-tx-bytes-for-index-0")
	txTrie := trie.New()
	key := receiptKey(0)
	if err := txTrie.Put(key, rawTx); err != nil {
		t.Fatalf("Put: %v", err)
	}
	txRoot := txTrie.Hash()
	proof, err := txTrie.Prove(key)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	claims := map[uint64][32]byte{
		light.BlockNumberGIndex:    {1},
		light.BlockHashGIndex:      {2},
		light.TransactionGIndex(0): [32]byte(txRoot),
	}
	bodyRoot, witness := buildWitness(claims)

	req := &L1TxRequest{
		BodyRoot:    bodyRoot,
		BlockNumber: [32]byte{1},
		BlockHash:   [32]byte{2},
		Witness:     witness,
		Tx: TxProof{
			RawTx:   []byte("a different, tampered transaction"),
			TxIndex: 0,
			TxRoot:  txRoot,
			Proof:   proof,
		},
	}
	verr := VerifyL1Tx(req)
	e, ok := verr.(*Error)
	if !ok || e.Kind != KindInvalidProof {
		t.Fatalf("expected KindInvalidProof, got %v", verr)
	}
}
