package verify

import (
	"math/big"
	"testing"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/trie"
)

func TestVerifyWitnessSuccess(t *testing.T) {
	addr := types.Address{0x09}
	storageTrie := trie.New()
	slot := types.HexToHash("0x05")
	slotHash := crypto.Keccak256(slot[:])
	if err := storageTrie.Put(slotHash, big.NewInt(123).Bytes()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	storageRoot := storageTrie.Hash()

	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(2, big.NewInt(500), storageRoot, types.EmptyCodeHash)
	if err := stateTrie.Put(crypto.Keccak256(addr[:]), accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	stateRoot := stateTrie.Hash()

	acctProof, err := trie.GenerateAccountProof(stateRoot, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}
	storageProof, err := trie.GenerateStorageProof(storageRoot, slot, storageTrie)
	if err != nil {
		t.Fatalf("GenerateStorageProof: %v", err)
	}

	var stateRootLeaf [32]byte
	copy(stateRootLeaf[:], stateRoot[:])
	bodyRoot, witness := buildSingleWitness(light.StateRootGIndex, stateRootLeaf)

	acctReq := &AccountRequest{
		Address:   addr,
		BodyRoot:  bodyRoot,
		StateRoot: stateRootLeaf,
		Witness:   witness,
		Account:   acctProof,
	}
	result, err := VerifyWitness(acctReq, []StorageRequest{{StorageHash: storageRoot, Slot: *storageProof}})
	if err != nil {
		t.Fatalf("VerifyWitness: %v", err)
	}
	if result.Account.Balance.Cmp(big.NewInt(500)) != 0 {
		t.Fatalf("balance = %s, want 500", result.Account.Balance)
	}
	if v, ok := result.Storage[slot]; !ok || v != storageProof.Value {
		t.Fatalf("storage slot not verified: %+v", result.Storage)
	}
}

func TestVerifyWitnessRejectsMismatchedStorageRoot(t *testing.T) {
	addr := types.Address{0x0a}
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(0, big.NewInt(0), types.EmptyRootHash, types.EmptyCodeHash)
	if err := stateTrie.Put(crypto.Keccak256(addr[:]), accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	stateRoot := stateTrie.Hash()
	acctProof, err := trie.GenerateAccountProof(stateRoot, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}

	var stateRootLeaf [32]byte
	copy(stateRootLeaf[:], stateRoot[:])
	bodyRoot, witness := buildSingleWitness(light.StateRootGIndex, stateRootLeaf)

	acctReq := &AccountRequest{
		Address:   addr,
		BodyRoot:  bodyRoot,
		StateRoot: stateRootLeaf,
		Witness:   witness,
		Account:   acctProof,
	}
	badSlot := trie.StorageProofData{Key: types.HexToHash("0x01")}
	_, err = VerifyWitness(acctReq, []StorageRequest{{StorageHash: types.HexToHash("0xbad"), Slot: badSlot}})
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindRootMismatch {
		t.Fatalf("expected KindRootMismatch, got %v", err)
	}
}
