// Package request implements the outermost wire layer: decoding a
// C4Request envelope and dispatching it to the matching verify package
// function by (domain, proof kind). It owns no cryptographic logic of its
// own — everything here is framing around verify, light and opstack.
package request

import (
	"encoding/binary"

	"github.com/c4verify/lightclient/ssz"
)

// decodeByteList decodes a list of variable-length byte strings using the
// same offset scheme ssz.UnmarshalVariableContainer uses for variable-size
// container fields: n 4-byte little-endian offsets into the trailing data
// segment, one per item, followed by the concatenated item bytes. This is
// how C4Request encodes MPT proof node lists and other variable-length
// lists whose element count is itself data-dependent.
func decodeByteList(data []byte) ([][]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < ssz.BytesPerLengthOffset {
		return nil, ssz.ErrBufferTooSmall
	}
	first := binary.LittleEndian.Uint32(data[:ssz.BytesPerLengthOffset])
	if int(first)%ssz.BytesPerLengthOffset != 0 || int(first) > len(data) {
		return nil, ssz.ErrOffset
	}
	n := int(first) / ssz.BytesPerLengthOffset
	offsets := make([]uint32, n)
	for i := 0; i < n; i++ {
		pos := i * ssz.BytesPerLengthOffset
		offsets[i] = binary.LittleEndian.Uint32(data[pos : pos+ssz.BytesPerLengthOffset])
	}
	items := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := int(offsets[i])
		end := len(data)
		if i+1 < n {
			end = int(offsets[i+1])
		}
		if start > end || end > len(data) {
			return nil, ssz.ErrOffset
		}
		item := make([]byte, end-start)
		copy(item, data[start:end])
		items[i] = item
	}
	return items, nil
}

// encodeByteList is decodeByteList's inverse, used by tests to construct
// fixtures without hand-computing offsets.
func encodeByteList(items [][]byte) []byte {
	headerLen := len(items) * ssz.BytesPerLengthOffset
	var body []byte
	offsets := make([]uint32, len(items))
	pos := headerLen
	for i, item := range items {
		offsets[i] = uint32(pos)
		body = append(body, item...)
		pos += len(item)
	}
	out := make([]byte, headerLen+len(body))
	for i, off := range offsets {
		binary.LittleEndian.PutUint32(out[i*ssz.BytesPerLengthOffset:], off)
	}
	copy(out[headerLen:], body)
	return out
}

// decodeWitness decodes an ExecutionWitness as a flat list of fixed-size
// 40-byte entries: an 8-byte little-endian generalized index followed by
// its 32-byte sibling hash. Entry order is not significant.
func decodeWitness(data []byte) (map[uint64][32]byte, error) {
	const entrySize = 8 + 32
	if len(data)%entrySize != 0 {
		return nil, ssz.ErrSize
	}
	n := len(data) / entrySize
	out := make(map[uint64][32]byte, n)
	for i := 0; i < n; i++ {
		entry := data[i*entrySize : (i+1)*entrySize]
		g := binary.LittleEndian.Uint64(entry[:8])
		var h [32]byte
		copy(h[:], entry[8:])
		out[g] = h
	}
	return out, nil
}

// encodeWitness is decodeWitness's inverse, used by tests.
func encodeWitness(w map[uint64][32]byte) []byte {
	const entrySize = 8 + 32
	out := make([]byte, 0, len(w)*entrySize)
	for g, h := range w {
		var entry [entrySize]byte
		binary.LittleEndian.PutUint64(entry[:8], g)
		copy(entry[8:], h[:])
		out = append(out, entry[:]...)
	}
	return out
}
