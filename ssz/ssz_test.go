package ssz

import (
	"bytes"
	"crypto/sha256"
	"testing"
)

// --- Encoding tests ---

func TestMarshalBool(t *testing.T) {
	if got := MarshalBool(false); !bytes.Equal(got, []byte{0}) {
		t.Fatalf("MarshalBool(false) = %v, want [0]", got)
	}
	if got := MarshalBool(true); !bytes.Equal(got, []byte{1}) {
		t.Fatalf("MarshalBool(true) = %v, want [1]", got)
	}
}

func TestMarshalUint8(t *testing.T) {
	if got := MarshalUint8(0); !bytes.Equal(got, []byte{0}) {
		t.Fatalf("MarshalUint8(0) = %v, want [0]", got)
	}
	if got := MarshalUint8(255); !bytes.Equal(got, []byte{255}) {
		t.Fatalf("MarshalUint8(255) = %v, want [255]", got)
	}
}

func TestMarshalUint16(t *testing.T) {
	if got := MarshalUint16(0x0102); !bytes.Equal(got, []byte{0x02, 0x01}) {
		t.Fatalf("MarshalUint16(0x0102) = %x, want [02 01]", got)
	}
}

func TestMarshalUint32(t *testing.T) {
	if got := MarshalUint32(1); !bytes.Equal(got, []byte{1, 0, 0, 0}) {
		t.Fatalf("MarshalUint32(1) = %v, want [1 0 0 0]", got)
	}
}

func TestMarshalUint64(t *testing.T) {
	// uint64(0) should encode as 8 zero bytes.
	if got := MarshalUint64(0); !bytes.Equal(got, make([]byte, 8)) {
		t.Fatalf("MarshalUint64(0) = %v, want 8 zero bytes", got)
	}
	// uint64(1) should encode as [1, 0, 0, 0, 0, 0, 0, 0].
	expected := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	if got := MarshalUint64(1); !bytes.Equal(got, expected) {
		t.Fatalf("MarshalUint64(1) = %v, want %v", got, expected)
	}
}

func TestMarshalUint128(t *testing.T) {
	got := MarshalUint128(1, 0)
	expected := make([]byte, 16)
	expected[0] = 1
	if !bytes.Equal(got, expected) {
		t.Fatalf("MarshalUint128(1, 0) = %v, want %v", got, expected)
	}
}

func TestMarshalUint256(t *testing.T) {
	got := MarshalUint256([4]uint64{1, 0, 0, 0})
	expected := make([]byte, 32)
	expected[0] = 1
	if !bytes.Equal(got, expected) {
		t.Fatalf("MarshalUint256 mismatch")
	}
}

// --- Decoding tests ---

func TestUnmarshalBool(t *testing.T) {
	v, err := UnmarshalBool([]byte{0})
	if err != nil || v {
		t.Fatalf("UnmarshalBool(0) = %v, %v", v, err)
	}
	v, err = UnmarshalBool([]byte{1})
	if err != nil || !v {
		t.Fatalf("UnmarshalBool(1) = %v, %v", v, err)
	}
	_, err = UnmarshalBool([]byte{2})
	if err != ErrInvalidBool {
		t.Fatalf("UnmarshalBool(2) err = %v, want ErrInvalidBool", err)
	}
	_, err = UnmarshalBool([]byte{})
	if err != ErrSize {
		t.Fatalf("UnmarshalBool(empty) err = %v, want ErrSize", err)
	}
}

func TestUnmarshalUint64(t *testing.T) {
	v, err := UnmarshalUint64([]byte{1, 0, 0, 0, 0, 0, 0, 0})
	if err != nil || v != 1 {
		t.Fatalf("UnmarshalUint64 = %d, %v", v, err)
	}
	v, err = UnmarshalUint64(MarshalUint64(0xdeadbeef))
	if err != nil || v != 0xdeadbeef {
		t.Fatalf("roundtrip failed: got %x", v)
	}
}

func TestUnmarshalUint16(t *testing.T) {
	v, err := UnmarshalUint16(MarshalUint16(0x1234))
	if err != nil || v != 0x1234 {
		t.Fatalf("roundtrip uint16 failed: got %x", v)
	}
}

func TestUnmarshalUint32(t *testing.T) {
	v, err := UnmarshalUint32(MarshalUint32(0xaabbccdd))
	if err != nil || v != 0xaabbccdd {
		t.Fatalf("roundtrip uint32 failed: got %x", v)
	}
}

func TestUnmarshalUint128(t *testing.T) {
	lo, hi, err := UnmarshalUint128(MarshalUint128(42, 99))
	if err != nil || lo != 42 || hi != 99 {
		t.Fatalf("roundtrip uint128 failed: lo=%d hi=%d err=%v", lo, hi, err)
	}
}

func TestUnmarshalUint256(t *testing.T) {
	limbs := [4]uint64{1, 2, 3, 4}
	got, err := UnmarshalUint256(MarshalUint256(limbs))
	if err != nil || got != limbs {
		t.Fatalf("roundtrip uint256 failed: got %v err=%v", got, err)
	}
}

// --- Roundtrip tests for vectors/lists ---

func TestVectorRoundtrip(t *testing.T) {
	elems := [][]byte{
		MarshalUint64(100),
		MarshalUint64(200),
		MarshalUint64(300),
	}
	encoded := MarshalVector(elems)
	decoded, err := UnmarshalVector(encoded, 3, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i, d := range decoded {
		v, _ := UnmarshalUint64(d)
		expected := uint64((i + 1) * 100)
		if v != expected {
			t.Fatalf("element %d: got %d, want %d", i, v, expected)
		}
	}
}

func TestListRoundtrip(t *testing.T) {
	elems := [][]byte{
		MarshalUint32(10),
		MarshalUint32(20),
	}
	encoded := MarshalList(elems)
	decoded, err := UnmarshalList(encoded, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("list length = %d, want 2", len(decoded))
	}
}

// --- Variable container tests ---

func TestVariableContainerRoundtrip(t *testing.T) {
	// Container with: uint32 (fixed), bytes (variable), uint32 (fixed).
	fixedField0 := MarshalUint32(42)
	variableField := []byte("hello ssz")
	fixedField2 := MarshalUint32(99)

	fixedParts := [][]byte{fixedField0, nil, fixedField2}
	variableParts := [][]byte{variableField}
	variableIndices := []int{1}

	encoded := MarshalVariableContainer(fixedParts, variableParts, variableIndices)

	// Decode.
	fixedSizes := []int{4, 0, 4} // 0 = variable
	fields, err := UnmarshalVariableContainer(encoded, 3, fixedSizes)
	if err != nil {
		t.Fatal(err)
	}

	v0, _ := UnmarshalUint32(fields[0])
	if v0 != 42 {
		t.Fatalf("field 0 = %d, want 42", v0)
	}
	if !bytes.Equal(fields[1], variableField) {
		t.Fatalf("field 1 = %q, want %q", fields[1], variableField)
	}
	v2, _ := UnmarshalUint32(fields[2])
	if v2 != 99 {
		t.Fatalf("field 2 = %d, want 99", v2)
	}
}

// --- Bitfield tests ---

func TestBitvectorRoundtrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true}
	encoded := MarshalBitvector(bits)
	decoded, err := UnmarshalBitvector(encoded, 9)
	if err != nil {
		t.Fatal(err)
	}
	for i := range bits {
		if bits[i] != decoded[i] {
			t.Fatalf("bit %d: got %v, want %v", i, decoded[i], bits[i])
		}
	}
}

func TestBitlistRoundtrip(t *testing.T) {
	bits := []bool{true, false, true, false, true}
	encoded := MarshalBitlist(bits)
	decoded, err := UnmarshalBitlist(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != len(bits) {
		t.Fatalf("bitlist length = %d, want %d", len(decoded), len(bits))
	}
	for i := range bits {
		if bits[i] != decoded[i] {
			t.Fatalf("bit %d: got %v, want %v", i, decoded[i], bits[i])
		}
	}
}

func TestBitlistEmpty(t *testing.T) {
	// Empty bitlist: just the sentinel bit.
	encoded := MarshalBitlist([]bool{})
	decoded, err := UnmarshalBitlist(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 0 {
		t.Fatalf("empty bitlist decoded length = %d, want 0", len(decoded))
	}
}

// --- Merkle branch tests ---

func TestConcatHashOrderMatters(t *testing.T) {
	var a, b [32]byte
	a[0] = 1
	b[0] = 2
	ab := ConcatHash(a, b)
	ba := ConcatHash(b, a)
	if ab == ba {
		t.Fatal("ConcatHash(a, b) should differ from ConcatHash(b, a)")
	}
	if ab != sha256Sum(append(a[:], b[:]...)) {
		t.Fatal("ConcatHash mismatch against sha256(a||b)")
	}
}

func TestConcatHashFourLeafBranch(t *testing.T) {
	// Recompute a 4-leaf root the way light.LightHeader.HashTreeRoot does,
	// via nested ConcatHash calls rather than a generic Merkleize call.
	var l0, l1, l2, l3 [32]byte
	l0[0], l1[0], l2[0], l3[0] = 1, 2, 3, 4

	got := ConcatHash(ConcatHash(l0, l1), ConcatHash(l2, l3))
	h01 := sha256Sum(append(l0[:], l1[:]...))
	h23 := sha256Sum(append(l2[:], l3[:]...))
	want := sha256Sum(append(h01[:], h23[:]...))
	if got != want {
		t.Fatalf("four-leaf branch mismatch: got %x want %x", got, want)
	}
}

func TestSHA256MatchesStdlib(t *testing.T) {
	data := []byte("c4 proof leaf")
	if got, want := SHA256(data), sha256Sum(data); got != want {
		t.Fatalf("SHA256 mismatch: got %x want %x", got, want)
	}
}

// --- Edge case tests ---

func TestUnmarshalSizeErrors(t *testing.T) {
	_, err := UnmarshalUint64([]byte{1, 2, 3})
	if err != ErrSize {
		t.Fatalf("expected ErrSize, got %v", err)
	}
	_, err = UnmarshalUint32([]byte{1})
	if err != ErrSize {
		t.Fatalf("expected ErrSize, got %v", err)
	}
	_, err = UnmarshalUint16([]byte{})
	if err != ErrSize {
		t.Fatalf("expected ErrSize, got %v", err)
	}
	_, err = UnmarshalUint8([]byte{})
	if err != ErrSize {
		t.Fatalf("expected ErrSize, got %v", err)
	}
	_, _, err = UnmarshalUint128([]byte{1, 2, 3})
	if err != ErrSize {
		t.Fatalf("expected ErrSize, got %v", err)
	}
	_, err = UnmarshalUint256([]byte{1, 2, 3})
	if err != ErrSize {
		t.Fatalf("expected ErrSize, got %v", err)
	}
}

func TestVariableContainerMultipleVariable(t *testing.T) {
	// Container: uint32 (fixed), bytes (variable), bytes (variable).
	f0 := MarshalUint32(1)
	v0 := []byte("foo")
	v1 := []byte("barbaz")

	fixedParts := [][]byte{f0, nil, nil}
	variableParts := [][]byte{v0, v1}
	variableIndices := []int{1, 2}

	encoded := MarshalVariableContainer(fixedParts, variableParts, variableIndices)

	fixedSizes := []int{4, 0, 0}
	fields, err := UnmarshalVariableContainer(encoded, 3, fixedSizes)
	if err != nil {
		t.Fatal(err)
	}

	val, _ := UnmarshalUint32(fields[0])
	if val != 1 {
		t.Fatalf("field 0 = %d, want 1", val)
	}
	if !bytes.Equal(fields[1], v0) {
		t.Fatalf("field 1 = %q, want %q", fields[1], v0)
	}
	if !bytes.Equal(fields[2], v1) {
		t.Fatalf("field 2 = %q, want %q", fields[2], v1)
	}
}

// helper
func sha256Sum(data []byte) [32]byte {
	return sha256.Sum256(data)
}
