package ring

import (
	"github.com/tuneinsight/tfhe/utils"
)

// Add evaluates p3 = p1 + p2 coefficient-wise in the ring.
func (r Ring) Add(p1, p2, p3 Poly) {
	addvec(p1.Coeffs, p2.Coeffs, p3.Coeffs)
}

// Sub evaluates p3 = p1 - p2 coefficient-wise in the ring.
func (r Ring) Sub(p1, p2, p3 Poly) {
	subvec(p1.Coeffs, p2.Coeffs, p3.Coeffs)
}

// Neg evaluates p2 = -p1 coefficient-wise in the ring.
func (r Ring) Neg(p1, p2 Poly) {
	negvec(p1.Coeffs, p2.Coeffs)
}

// AddScalar evaluates p2 = p1 + scalar coefficient-wise in the ring.
func (r Ring) AddScalar(p1 Poly, scalar uint64, p2 Poly) {
	addscalarvec(p1.Coeffs, scalar, p2.Coeffs)
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise in the ring.
func (r Ring) MulScalar(p1 Poly, scalar uint64, p2 Poly) {
	mulscalarvec(p1.Coeffs, scalar, p2.Coeffs)
}

// MonomialMul evaluates p2 = p1 * X^k in the ring, with k taken modulo 2N
// (X^N = -1). The method panics if p1 and p2 share the same backing array.
func (r Ring) MonomialMul(p1 Poly, k int, p2 Poly) {
	if utils.Alias1D(p1.Coeffs, p2.Coeffs) {
		panic("cannot MonomialMul: p1 and p2 share the same backing array")
	}

	N := r.N

	k = ((k % (N << 1)) + (N << 1)) % (N << 1)

	neg := k >= N
	if neg {
		k -= N
	}

	in, out := p1.Coeffs, p2.Coeffs

	if neg {
		for i, c := range in[:N-k] {
			out[i+k] = -c
		}
		for i, c := range in[N-k:] {
			out[i] = c
		}
	} else {
		for i, c := range in[:N-k] {
			out[i+k] = c
		}
		for i, c := range in[N-k:] {
			out[i] = -c
		}
	}
}

// MonomialMulThenSub evaluates p2 = p1 * (X^k - 1) in the ring, with k taken
// modulo 2N (X^N = -1). The method panics if p1 and p2 share the same backing
// array.
func (r Ring) MonomialMulThenSub(p1 Poly, k int, p2 Poly) {
	r.MonomialMul(p1, k, p2)
	subvec(p2.Coeffs, p1.Coeffs, p2.Coeffs)
}
