package verify

import (
	"math/big"
	"testing"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/opstack"
	"github.com/c4verify/lightclient/trie"
)

func buildOPPayloadWithStateRoot(t *testing.T, stateRoot types.Hash) *opstack.ExecutionPayload {
	t.Helper()
	raw := make([]byte, 536)
	copy(raw[84:116], stateRoot[:])
	p, err := opstack.NewExecutionPayload(raw)
	if err != nil {
		t.Fatalf("NewExecutionPayload: %v", err)
	}
	return p
}

func TestVerifyOPAccountSuccess(t *testing.T) {
	addr := types.Address{0x11}
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(3, big.NewInt(42), types.EmptyRootHash, types.EmptyCodeHash)
	addrHash := crypto.Keccak256(addr[:])
	if err := stateTrie.Put(addrHash, accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	root := stateTrie.Hash()
	proof, err := trie.GenerateAccountProof(root, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}

	payload := buildOPPayloadWithStateRoot(t, root)
	res, err := VerifyOPAccount(&OPAccountRequest{Method: MethodGetBalance, Address: addr, Payload: payload, Account: proof})
	if err != nil {
		t.Fatalf("VerifyOPAccount: %v", err)
	}
	if !res.Exists {
		t.Fatal("expected account to exist")
	}
	if res.Balance.Cmp(big.NewInt(42)) != 0 {
		t.Fatalf("balance = %s, want 42", res.Balance)
	}
}

func TestVerifyOPAccountRejectsAddressMismatch(t *testing.T) {
	addr := types.Address{0x12}
	other := types.Address{0x13}
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(1, big.NewInt(1), types.EmptyRootHash, types.EmptyCodeHash)
	addrHash := crypto.Keccak256(addr[:])
	if err := stateTrie.Put(addrHash, accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	root := stateTrie.Hash()
	proof, err := trie.GenerateAccountProof(root, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}

	payload := buildOPPayloadWithStateRoot(t, root)
	_, err = VerifyOPAccount(&OPAccountRequest{Method: MethodGetBalance, Address: other, Payload: payload, Account: proof})
	verr, ok := err.(*Error)
	if !ok || verr.Kind != KindAddressMismatch {
		t.Fatalf("expected KindAddressMismatch, got %v", err)
	}
}

func TestVerifyOPAccountRejectsWrongStateRoot(t *testing.T) {
	addr := types.Address{0x14}
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(1, big.NewInt(1), types.EmptyRootHash, types.EmptyCodeHash)
	addrHash := crypto.Keccak256(addr[:])
	if err := stateTrie.Put(addrHash, accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	root := stateTrie.Hash()
	proof, err := trie.GenerateAccountProof(root, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}

	var wrongRoot types.Hash
	wrongRoot[0] = 0xff
	payload := buildOPPayloadWithStateRoot(t, wrongRoot)
	if _, err := VerifyOPAccount(&OPAccountRequest{Method: MethodGetBalance, Address: addr, Payload: payload, Account: proof}); err == nil {
		t.Fatal("expected failure against wrong state root")
	}
}

func TestVerifyOPWitnessMixedAccountRejected(t *testing.T) {
	addr := types.Address{0x15}
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(1, big.NewInt(1), types.EmptyRootHash, types.EmptyCodeHash)
	addrHash := crypto.Keccak256(addr[:])
	if err := stateTrie.Put(addrHash, accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	root := stateTrie.Hash()
	proof, err := trie.GenerateAccountProof(root, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}
	payload := buildOPPayloadWithStateRoot(t, root)

	var wrongHash types.Hash
	wrongHash[0] = 0x01
	slots := []StorageRequest{{StorageHash: wrongHash, Slot: trie.StorageProofData{}}}
	if _, err := VerifyOPWitness(&OPWitnessRequest{Payload: payload, Address: addr, Account: proof, Slots: slots}); err == nil {
		t.Fatal("expected storage root mismatch")
	}
}
