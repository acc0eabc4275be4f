// Package merkle verifies SSZ Merkle proofs against a generalized index
// (gindex), generalizing the fixed-branch verification taught by
// light/proof_verifier.go's VerifyBranch to any position in any depth tree.
//
// Generalized indices follow the standard convention: the root is gindex 1,
// and a node's children are 2*g (left) and 2*g+1 (right).
package merkle

import (
	"errors"
	"sort"

	"github.com/c4verify/lightclient/ssz"
)

var (
	// ErrEmptyBranch is returned when a proof branch has no sibling hashes.
	ErrEmptyBranch = errors.New("merkle: empty proof branch")
	// ErrBranchDepthMismatch is returned when the branch length does not
	// match the depth implied by the generalized index, and by
	// VerifyMultiProof when the witness lacks a sibling it needs.
	ErrBranchDepthMismatch = errors.New("merkle: branch length does not match gindex depth")
	// ErrRootMismatch is returned when the proof fails to reproduce the root.
	ErrRootMismatch = errors.New("merkle: recomputed root does not match")
	// ErrNoLeaves is returned when VerifyMultiProof is called with no leaves.
	ErrNoLeaves = errors.New("merkle: no leaves to verify")
)

// Depth returns the number of levels between the generalized index g and
// the tree root (gindex 1). Depth(1) == 0.
func Depth(g uint64) int {
	d := 0
	for g > 1 {
		g >>= 1
		d++
	}
	return d
}

// Parent returns the generalized index of g's parent.
func Parent(g uint64) uint64 { return g >> 1 }

// LeftChild returns the generalized index of g's left child.
func LeftChild(g uint64) uint64 { return g << 1 }

// RightChild returns the generalized index of g's right child.
func RightChild(g uint64) uint64 { return (g << 1) | 1 }

// IsLeft reports whether g is a left child of its parent.
func IsLeft(g uint64) bool { return g%2 == 0 }

// VerifySingleProof checks that leaf is the value at generalized index
// gindex within a Merkle tree with the given root, using the supplied
// branch of sibling hashes ordered from the leaf's depth up to the root.
func VerifySingleProof(root, leaf [32]byte, branch [][32]byte, gindex uint64) error {
	if len(branch) == 0 {
		return ErrEmptyBranch
	}
	if len(branch) != Depth(gindex) {
		return ErrBranchDepthMismatch
	}
	computed := leaf
	g := gindex
	for _, sibling := range branch {
		if IsLeft(g) {
			computed = ssz.ConcatHash(computed, sibling)
		} else {
			computed = ssz.ConcatHash(sibling, computed)
		}
		g = Parent(g)
	}
	if computed != root {
		return ErrRootMismatch
	}
	return nil
}

// ProofPair is one (generalized index, leaf value) claim verified together
// against a single multi-proof.
type ProofPair struct {
	GIndex uint64
	Leaf   [32]byte
}

// VerifyMultiProof checks several leaf claims against one root using a
// single combined Merkle proof, following the same bubble-up rule as
// VerifySingleProof but sharing computed internal nodes between claims that
// land on the same ancestor gindex. witness supplies every node hash in the
// proof keyed by its generalized index (the sibling nodes needed to
// reconstruct the root, excluding the claimed leaves themselves).
func VerifyMultiProof(root [32]byte, leaves []ProofPair, witness map[uint64][32]byte) error {
	if len(leaves) == 0 {
		return ErrNoLeaves
	}

	known := make(map[uint64][32]byte, len(leaves)+len(witness))
	for g, h := range witness {
		known[g] = h
	}
	frontier := make(map[uint64]struct{}, len(leaves))
	for _, lp := range leaves {
		known[lp.GIndex] = lp.Leaf
		frontier[lp.GIndex] = struct{}{}
	}

	// Process gindices from deepest to shallowest so a parent is only
	// computed once both of its children are known.
	for len(frontier) > 0 {
		gs := make([]uint64, 0, len(frontier))
		for g := range frontier {
			gs = append(gs, g)
		}
		sort.Slice(gs, func(i, j int) bool { return gs[i] > gs[j] })

		next := make(map[uint64]struct{})
		progressed := false
		for _, g := range gs {
			if g == 1 {
				continue
			}
			parent := Parent(g)
			if _, done := known[parent]; done {
				progressed = true
				continue
			}
			var left, right [32]byte
			var ok bool
			if IsLeft(g) {
				left = known[g]
				right, ok = known[RightChild(parent)]
			} else {
				right = known[g]
				left, ok = known[LeftChild(parent)]
			}
			if !ok {
				// Sibling not yet available; try again once it's filled in
				// by another branch of the frontier.
				next[g] = struct{}{}
				continue
			}
			known[parent] = ssz.ConcatHash(left, right)
			next[parent] = struct{}{}
			progressed = true
		}
		if len(next) > 0 && !progressed {
			// No progress: the witness is missing a required sibling.
			return ErrBranchDepthMismatch
		}
		frontier = next
	}

	computed, ok := known[1]
	if !ok {
		return ErrBranchDepthMismatch
	}
	if computed != root {
		return ErrRootMismatch
	}
	return nil
}
