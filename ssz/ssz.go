// Package ssz implements the slice of Simple Serialize (SSZ) the stateless
// proof verifier actually needs: decoding wire-format fixed fields,
// variable-offset containers, lists, and bitlists out of the proof bodies
// package request receives, plus the single ConcatHash primitive package
// merkle and package light use to climb a Merkle witness. It does not
// implement general hash-tree-root computation for arbitrary containers --
// every proven root here arrives over the wire already committed to, and
// the verifier's job is to check a witness against it, not to recompute it
// from a full SSZ-encoded object.
//
// Spec: https://github.com/ethereum/consensus-specs/blob/dev/ssz/simple-serialize.md
package ssz

import "errors"

// Common errors.
var (
	ErrSize           = errors.New("ssz: invalid size")
	ErrOffset         = errors.New("ssz: invalid offset")
	ErrBufferTooSmall = errors.New("ssz: buffer too small")
	ErrInvalidBool    = errors.New("ssz: invalid boolean value")
)

// BytesPerLengthOffset is the number of bytes used for each offset in
// variable-length SSZ containers (4 bytes, little-endian uint32). Package
// request's envelope and wire_*.go decoders key off this constant when
// walking a C4Request proof body's variable-offset table.
const BytesPerLengthOffset = 4
