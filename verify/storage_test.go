package verify

import (
	"math/big"
	"testing"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/trie"
)

func TestVerifyStorageSuccess(t *testing.T) {
	storageTrie := trie.New()
	slot := types.HexToHash("0x01")
	value := big.NewInt(42).Bytes()
	slotHash := crypto.Keccak256(slot[:])
	if err := storageTrie.Put(slotHash, value); err != nil {
		t.Fatalf("Put: %v", err)
	}
	storageRoot := storageTrie.Hash()

	sp, err := trie.GenerateStorageProof(storageRoot, slot, storageTrie)
	if err != nil {
		t.Fatalf("GenerateStorageProof: %v", err)
	}

	exists, err := VerifyStorage(&StorageRequest{StorageHash: storageRoot, Slot: *sp})
	if err != nil {
		t.Fatalf("VerifyStorage: %v", err)
	}
	if !exists {
		t.Fatal("expected slot to exist")
	}
}

func TestVerifyStorageRejectsTamperedValue(t *testing.T) {
	storageTrie := trie.New()
	slot := types.HexToHash("0x02")
	value := big.NewInt(7).Bytes()
	slotHash := crypto.Keccak256(slot[:])
	if err := storageTrie.Put(slotHash, value); err != nil {
		t.Fatalf("Put: %v", err)
	}
	storageRoot := storageTrie.Hash()

	sp, err := trie.GenerateStorageProof(storageRoot, slot, storageTrie)
	if err != nil {
		t.Fatalf("GenerateStorageProof: %v", err)
	}
	sp.Value = types.HexToHash("0xdeadbeef")

	_, err = VerifyStorage(&StorageRequest{StorageHash: storageRoot, Slot: *sp})
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindRootMismatch {
		t.Fatalf("expected KindRootMismatch, got %v", err)
	}
}
