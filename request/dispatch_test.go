package request

import (
	"encoding/binary"
	"math/big"
	"testing"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/crypto"
	"github.com/c4verify/lightclient/light"
	"github.com/c4verify/lightclient/merkle"
	"github.com/c4verify/lightclient/ssz"
	"github.com/c4verify/lightclient/trie"
	"github.com/c4verify/lightclient/verify"
)

// buildBodyRootWitness bubbles a set of generalized-index claims up to a
// synthetic beacon-body root, the same technique verify's own test fixtures
// use, so request-layer dispatch tests don't need a real beacon tree — only
// internal consistency with merkle.VerifyMultiProof.
func buildBodyRootWitness(claims map[uint64][32]byte) ([32]byte, map[uint64][32]byte) {
	known := make(map[uint64][32]byte, len(claims)*4)
	for g, v := range claims {
		known[g] = v
	}
	witness := make(map[uint64][32]byte)

	frontier := make(map[uint64]struct{}, len(claims))
	for g := range claims {
		frontier[g] = struct{}{}
	}

	var counter uint64
	fill := func(g uint64) [32]byte {
		if v, ok := known[g]; ok {
			return v
		}
		var buf [9]byte
		binary.LittleEndian.PutUint64(buf[:8], counter)
		counter++
		v := ssz.SHA256(buf[:])
		known[g] = v
		witness[g] = v
		return v
	}

	for {
		if _, ok := frontier[1]; ok && len(frontier) == 1 {
			break
		}
		next := make(map[uint64]struct{}, len(frontier))
		for g := range frontier {
			if g == 1 {
				next[1] = struct{}{}
				continue
			}
			parent := merkle.Parent(g)
			left := fill(merkle.LeftChild(parent))
			right := fill(merkle.RightChild(parent))
			known[parent] = ssz.ConcatHash(left, right)
			next[parent] = struct{}{}
		}
		frontier = next
	}
	return known[1], witness
}

// signedHeader builds a LightHeader with the given body root and a
// SyncAggregate carrying every committee member's real BLS signature over
// the header's domain-separated signing root.
func signedHeader(bodyRoot [32]byte, forkVersion [4]byte, genesisValidatorsRoot [32]byte) (*light.LightHeader, *light.SyncAggregate, *light.VerifierSyncCommittee) {
	header := &light.LightHeader{Slot: 1, ProposerIndex: 0, BodyRoot: bodyRoot}

	pubkeys, secrets := light.MakeBLSTestCommittee(4)
	committee := &light.VerifierSyncCommittee{Pubkeys: pubkeys, AggregatePubkey: crypto.AggregatePublicKeys(pubkeys)}

	domain := light.DomainSeparation(light.DomainSyncCommittee, forkVersion, genesisValidatorsRoot)
	signingRoot := light.ComputeSigningRoot(header.HashTreeRoot(), domain)
	bits := []byte{0x0f} // all 4 members participate
	sig := light.SignSyncCommitteeBLS(secrets, bits, signingRoot[:])

	aggregate := &light.SyncAggregate{SyncCommitteeBits: bits, Signature: sig}
	return header, aggregate, committee
}

func encodeSyncData(header *light.LightHeader, aggregate *light.SyncAggregate) []byte {
	fields := make([][]byte, len(syncDataFieldSizes))
	fields[0] = make([]byte, 8)
	binary.LittleEndian.PutUint64(fields[0], header.Slot)
	fields[1] = make([]byte, 8)
	binary.LittleEndian.PutUint64(fields[1], header.ProposerIndex)
	fields[2] = header.ParentRoot[:]
	fields[3] = header.StateRoot[:]
	fields[4] = header.BodyRoot[:]
	fields[5] = packedBitlist(aggregate.SyncCommitteeBits, 4)
	fields[6] = aggregate.Signature[:]
	fields[7] = nil // no bootstrap committee: cache is pre-seeded in these tests
	fields[8] = nil
	return encodeVariableContainer(fields, syncDataFieldSizes)
}

// packedBitlist turns a packed bitfield back into ssz's bitlist wire form
// (bits plus a trailing delimiter bit), the inverse of ssz.UnmarshalBitlist.
func packedBitlist(bits []byte, n int) []byte {
	out := make([]byte, len(bits))
	copy(out, bits)
	delimIdx := n
	byteIdx := delimIdx / 8
	bitIdx := uint(delimIdx % 8)
	for byteIdx >= len(out) {
		out = append(out, 0)
	}
	out[byteIdx] |= 1 << bitIdx
	return out
}

// encodeVariableContainer is a small test-only encoder matching
// ssz.UnmarshalVariableContainer's layout: fixed fields copied directly,
// variable fields as a 4-byte LE offset into the trailing data segment.
func encodeVariableContainer(fields [][]byte, fixedSizes []int) []byte {
	var head, tail []byte
	tailBase := 0
	for _, sz := range fixedSizes {
		if sz > 0 {
			tailBase += sz
		} else {
			tailBase += 4
		}
	}
	for i, sz := range fixedSizes {
		if sz > 0 {
			padded := make([]byte, sz)
			copy(padded, fields[i])
			head = append(head, padded...)
		} else {
			var off [4]byte
			binary.LittleEndian.PutUint32(off[:], uint32(tailBase+len(tail)))
			head = append(head, off[:]...)
			tail = append(tail, fields[i]...)
		}
	}
	return append(head, tail...)
}

func buildAccountWireProof(t *testing.T, addr types.Address, stateRoot [32]byte, witness map[uint64][32]byte) []byte {
	t.Helper()
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(5, big.NewInt(7), types.EmptyRootHash, types.EmptyCodeHash)
	addrHash := crypto.Keccak256(addr[:])
	if err := stateTrie.Put(addrHash, accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	mptRoot := stateTrie.Hash()
	proof, err := trie.GenerateAccountProof(mptRoot, addr, stateTrie)
	if err != nil {
		t.Fatalf("GenerateAccountProof: %v", err)
	}
	accountBytes := encodeAccountProofDataForTest(proof)

	fields := [][]byte{
		stateRoot[:],
		encodeWitness(witness),
		accountBytes,
	}
	return encodeVariableContainer(fields, l1AccountFieldSizes)
}

func encodeAccountProofDataForTest(proof *trie.AccountProofData) []byte {
	balance := proof.Balance.Bytes()
	fields := [][]byte{
		proof.Address[:],
		proof.AccountRLP,
		encodeByteList(proof.Proof),
		padTo32(balance),
		beBytes(proof.Nonce),
		proof.StorageHash[:],
		proof.CodeHash[:],
	}
	return encodeVariableContainer(fields, accountProofFieldSizes)
}

func beBytes(v uint64) []byte {
	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, v)
	return out
}

func padTo32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

func TestDispatchL1AccountProofSuccess(t *testing.T) {
	addr := types.Address{0x42}
	stateTrie := trie.New()
	accountRLP := trie.EncodeAccountFields(5, big.NewInt(7), types.EmptyRootHash, types.EmptyCodeHash)
	addrHash := crypto.Keccak256(addr[:])
	if err := stateTrie.Put(addrHash, accountRLP); err != nil {
		t.Fatalf("Put: %v", err)
	}
	mptRoot := stateTrie.Hash()

	var stateRootLeaf [32]byte
	copy(stateRootLeaf[:], mptRoot[:])
	bodyRoot, witness := buildBodyRootWitness(map[uint64][32]byte{light.StateRootGIndex: stateRootLeaf})

	// dispatchL1 always signs/verifies against mainnet's registered fork
	// version and genesis validators root; sign over the same values so
	// AuthenticateHeader succeeds inside Dispatch.
	spec, ok := light.LookupChainSpec(1)
	if !ok {
		t.Fatal("expected mainnet chain spec to be registered")
	}
	header, aggregate, committee := signedHeader(bodyRoot, spec.DenebForkVersion, spec.GenesisValidatorsRoot)

	cache := light.NewMemoryCommitteeCache()
	cache.Put(light.SyncCommitteePeriod(header.Slot), committee)

	accountProofBytes := buildAccountWireProof(t, addr, stateRootLeaf, witness)
	proofWire := append([]byte{byte(ProofAccount)}, accountProofBytes...)
	syncData := encodeSyncData(header, aggregate)

	env := &Envelope{
		Version:  Version{Domain: DomainL1, Major: 1},
		Data:     addr[:],
		Proof:    proofWire,
		SyncData: syncData,
	}
	raw := EncodeEnvelope(env)

	result := Dispatch(verify.MethodGetBalance, raw, cache)
	if !result.Success {
		t.Fatalf("Dispatch failed: %v", result.Err)
	}
	acctRes, ok := result.Data.(*verify.AccountResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result.Data)
	}
	if acctRes.Balance.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("balance = %s, want 7", acctRes.Balance)
	}
}

// TestDispatchOPStackUnknownChainRejected exercises dispatchOPStack's
// signature-checking step end to end: VerifySequencerSignature must reject
// a chain id with no registered sequencer before any proof bytes are
// touched. Producing a *valid* OP-Stack dispatch fixture would require the
// private key behind a real, registered sequencer address, which this
// test suite does not have; opstack.RecoverSequencer's recovery math is
// exercised directly in opstack's own package tests instead.
var opTestAddr = types.Address{0x01}

func TestDispatchOPStackUnknownChainRejected(t *testing.T) {
	payloadRaw := make([]byte, 536)
	var sig [65]byte
	proofBody := append([]byte{byte(ProofAccount)}, 0x00)
	opFields := [][]byte{beBytes(999999), sig[:], payloadRaw, proofBody}
	opProofWire := encodeVariableContainer(opFields, opProofFieldSizes)

	env := &Envelope{
		Version: Version{Domain: DomainOPStack, Major: 1},
		Data:    opTestAddr[:],
		Proof:   opProofWire,
	}
	raw := EncodeEnvelope(env)

	result := Dispatch(verify.MethodGetBalance, raw, light.NewMemoryCommitteeCache())
	if result.Success {
		t.Fatal("expected failure for an unregistered OP-Stack chain id")
	}
	verr, ok := result.Err.(*verify.Error)
	if !ok || verr.Kind != verify.KindBadSignature {
		t.Fatalf("expected KindBadSignature, got %v", result.Err)
	}
}

func TestDispatchOPStackGarbageSignatureRejected(t *testing.T) {
	var sig [65]byte // an all-zero signature recovers no valid public key
	proofBody := []byte{byte(ProofAccount)}
	opFields := [][]byte{beBytes(10), sig[:], make([]byte, 536), proofBody}
	opProofWire := encodeVariableContainer(opFields, opProofFieldSizes)

	env := &Envelope{
		Version: Version{Domain: DomainOPStack, Major: 1},
		Data:    opTestAddr[:],
		Proof:   opProofWire,
	}
	raw := EncodeEnvelope(env)

	result := Dispatch(verify.MethodGetBalance, raw, light.NewMemoryCommitteeCache())
	if result.Success {
		t.Fatal("expected failure for an unrecoverable sequencer signature")
	}
}
