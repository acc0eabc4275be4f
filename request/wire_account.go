package request

import (
	"math/big"

	"github.com/c4verify/lightclient/core/types"
	"github.com/c4verify/lightclient/ssz"
	"github.com/c4verify/lightclient/trie"
)

// accountProofFieldSizes lays out trie.AccountProofData as its own
// sub-container: Address, AccountRLP, Proof (node list), Balance (u256
// big-endian bytes), Nonce, StorageHash, CodeHash.
var accountProofFieldSizes = []int{20, 0, 0, 0, 8, 32, 32}

func decodeAccountProofData(data []byte) (*trie.AccountProofData, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(accountProofFieldSizes), accountProofFieldSizes)
	if err != nil {
		return nil, err
	}
	proof, err := decodeByteList(fields[2])
	if err != nil {
		return nil, err
	}
	var addr types.Address
	copy(addr[:], fields[0])
	var storageHash, codeHash types.Hash
	copy(storageHash[:], fields[5])
	copy(codeHash[:], fields[6])
	return &trie.AccountProofData{
		Address:     addr,
		AccountRLP:  fields[1],
		Proof:       proof,
		Balance:     new(big.Int).SetBytes(fields[3]),
		Nonce:       beUint64(fields[4]),
		StorageHash: storageHash,
		CodeHash:    codeHash,
	}, nil
}

// storageProofFieldSizes lays out trie.StorageProofData: Key, Value, Proof.
var storageProofFieldSizes = []int{32, 32, 0}

func decodeStorageProofData(data []byte) (*trie.StorageProofData, error) {
	fields, err := ssz.UnmarshalVariableContainer(data, len(storageProofFieldSizes), storageProofFieldSizes)
	if err != nil {
		return nil, err
	}
	proof, err := decodeByteList(fields[2])
	if err != nil {
		return nil, err
	}
	var key, val types.Hash
	copy(key[:], fields[0])
	copy(val[:], fields[1])
	return &trie.StorageProofData{Key: key, Value: val, Proof: proof}, nil
}

func decodeStorageProofList(data []byte) ([]*trie.StorageProofData, error) {
	blobs, err := decodeByteList(data)
	if err != nil {
		return nil, err
	}
	out := make([]*trie.StorageProofData, len(blobs))
	for i, b := range blobs {
		sp, err := decodeStorageProofData(b)
		if err != nil {
			return nil, err
		}
		out[i] = sp
	}
	return out, nil
}

// beUint64 decodes an 8-byte big-endian field, the convention this package
// uses for plain integer fields inside variable containers (as opposed to
// SSZ's own little-endian basic-type encoding, since these fields are
// request-layer framing, not consensus-object fields with their own
// canonical hash tree root).
func beUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func putBEUint64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}
