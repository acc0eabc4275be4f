package crypto

// BLS12-381 map-to-curve operations.
//
// Implements mapping from field elements to curve points. bls_aggregate.go's
// hash-to-curve step (hashing a signing root before pairing verification)
// is the only production caller. Uses a hash-and-check approach (try-and-increment)
// for correctness, mapping u to a point on the curve then clearing the
// cofactor to get a point in the prime-order subgroup.
//
// For G1: Maps Fp -> E(Fp) where E: y^2 = x^3 + 4
// For G2: Maps Fp2 -> E'(Fp2) where E': y^2 = x^3 + 4(1+u)

import "math/big"

// blsMapFpToG1 maps a field element u to a G1 point.
// Given u in Fp, it finds (x, y) on E: y^2 = x^3 + 4 by trying x = u, u+1,
// u+2, ... (at most 256 candidates). No SWU map or isogeny is used.
func blsMapFpToG1(u *big.Int) *BlsG1Point {
	// Use the "try-and-increment" method to find a curve point.
	// Start with x = u, then x = u+1, u+2, ... until we find a valid point.
	// This is not constant-time but is correct.
	x := new(big.Int).Mod(u, blsP)

	for i := 0; i < 256; i++ {
		// Compute y^2 = x^3 + 4
		x3 := blsFpMul(blsFpSqr(x), x)
		rhs := blsFpAdd(x3, blsB)

		y := blsFpSqrt(rhs)
		if y != nil {
			// Choose the y with the same "sign" as u.
			if blsFpSgn0(u) != blsFpSgn0(y) {
				y = blsFpNeg(y)
			}
			return blsG1FromAffine(x, y)
		}

		// Try next x.
		x = blsFpAdd(x, big.NewInt(1))
	}

	// Extremely unlikely to reach here. Return infinity as fallback.
	return BlsG1Infinity()
}

// blsMapFp2ToG2 maps an Fp2 element u to a G2 point.
// Uses a try-and-increment method on E': y^2 = x^3 + 4(1+u).
func blsMapFp2ToG2(u *blsFp2) *BlsG2Point {
	x := newBlsFp2(u.c0, u.c1)

	for i := 0; i < 256; i++ {
		// Compute y^2 = x^3 + 4(1+u)
		x3 := blsFp2Mul(blsFp2Sqr(x), x)
		rhs := blsFp2Add(x3, blsTwistB)

		y := blsFp2Sqrt(rhs)
		if y != nil {
			// Verify: y^2 == rhs
			if blsFp2Sqr(y).equal(rhs) {
				// Choose sign based on input.
				if blsFp2Sgn0(u) != blsFp2Sgn0(y) {
					y = blsFp2Neg(y)
				}
				return blsG2FromAffine(x, y)
			}
		}

		// Try next x by incrementing the real part.
		x = blsFp2Add(x, blsFp2One())
	}

	return BlsG2Infinity()
}
