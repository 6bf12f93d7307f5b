package ring

// karatsubaThreshold is the degree below which the full polynomial product
// falls back to the schoolbook algorithm.
const karatsubaThreshold = 64

// MulCoeffsThenAdd evaluates p3 = p3 + p1 * p2 in the ring, with an exact
// integer product (no floating point approximation). This is the method of
// choice for key material, where approximation noise cannot be tolerated.
func (r Ring) MulCoeffsThenAdd(p1, p2, p3 Poly) {
	N := r.N
	prod := mulFull(p1.Coeffs, p2.Coeffs)
	for i := 0; i < N-1; i++ {
		p3.Coeffs[i] += prod[i] - prod[i+N]
	}
	p3.Coeffs[N-1] += prod[N-1]
}

// MulCoeffsThenSub evaluates p3 = p3 - p1 * p2 in the ring, with an exact
// integer product (no floating point approximation).
func (r Ring) MulCoeffsThenSub(p1, p2, p3 Poly) {
	N := r.N
	prod := mulFull(p1.Coeffs, p2.Coeffs)
	for i := 0; i < N-1; i++ {
		p3.Coeffs[i] -= prod[i] - prod[i+N]
	}
	p3.Coeffs[N-1] -= prod[N-1]
}

// mulFull returns the full product of degree 2n-2 of two degree n-1
// polynomials over Z mod 2^64, using Karatsuba recursion above
// karatsubaThreshold coefficients.
func mulFull(a, b []uint64) []uint64 {

	n := len(a)
	out := make([]uint64, 2*n-1)

	if n <= karatsubaThreshold {
		mulFullSchoolbook(a, b, out)
		return out
	}

	half := n >> 1

	a0, a1 := a[:half], a[half:]
	b0, b1 := b[:half], b[half:]

	z0 := mulFull(a0, b0)
	z2 := mulFull(a1, b1)

	asum := make([]uint64, half)
	bsum := make([]uint64, half)
	for i := 0; i < half; i++ {
		asum[i] = a0[i] + a1[i]
		bsum[i] = b0[i] + b1[i]
	}

	z1 := mulFull(asum, bsum)
	for i := range z1 {
		z1[i] -= z0[i] + z2[i]
	}

	copy(out, z0)
	copy(out[2*half:], z2)
	for i, c := range z1 {
		out[half+i] += c
	}

	return out
}

func mulFullSchoolbook(a, b, out []uint64) {
	for i, ai := range a {
		for j, bj := range b {
			out[i+j] += ai * bj
		}
	}
}
