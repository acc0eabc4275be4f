package verify

import (
	"encoding/binary"

	"github.com/c4verify/lightclient/merkle"
	"github.com/c4verify/lightclient/ssz"
)

// buildWitness constructs a synthetic root and the sibling witness needed
// to prove one or more claimed (gindex, value) pairs against it, by
// bubbling the claims up to a common root and filling in any sibling node
// not itself a claim with a deterministic synthetic hash. It does not
// model a real beacon tree; it only needs to be internally consistent for
// merkle.VerifyMultiProof, which is all these tests check.
func buildWitness(claims map[uint64][32]byte) ([32]byte, ExecutionWitness) {
	known := make(map[uint64][32]byte, len(claims)*4)
	for g, v := range claims {
		known[g] = v
	}
	witness := make(ExecutionWitness)

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

func buildSingleWitness(gindex uint64, leaf [32]byte) ([32]byte, ExecutionWitness) {
	return buildWitness(map[uint64][32]byte{gindex: leaf})
}
