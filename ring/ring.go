// Package ring implements arithmetic for polynomials of power-of-two degree
// over the 64-bit discretized torus, with coefficients stored as uint64 and
// all operations carried out modulo 2^64. The package also provides samplers
// for uniform, binary and rounded gaussian polynomials, as well as a gadget
// decomposer for signed base-2^w digit decomposition.
package ring

import (
	"fmt"
)

// MinimumRingDegreeForLoopUnrolledOperations is the minimum ring degree
// required to safely perform loop-unrolled operations.
const MinimumRingDegreeForLoopUnrolledOperations = 8

// Ring is a structure that keeps all the variables required to operate on
// polynomials of degree N over the torus Z[X]/(X^N + 1) mod 2^64.
type Ring struct {
	// N is the ring degree.
	N int
}

// NewRing creates a new Ring with degree N, which must be a power of two
// of at least 8.
func NewRing(N int) (r *Ring, err error) {
	if N < MinimumRingDegreeForLoopUnrolledOperations {
		return nil, fmt.Errorf("invalid ring degree: must be at least %d but is %d", MinimumRingDegreeForLoopUnrolledOperations, N)
	}

	if N&(N-1) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of two but is %d", N)
	}

	return &Ring{N: N}, nil
}

// LogN returns log2(N).
func (r Ring) LogN() (logN int) {
	for n := r.N; n > 1; n >>= 1 {
		logN++
	}
	return
}

// NewPoly creates a new polynomial with all coefficients set to 0.
func (r Ring) NewPoly() Poly {
	return NewPoly(r.N)
}

// Equal returns whether the two rings operate on polynomials of the same
// degree.
func (r Ring) Equal(other *Ring) bool {
	return r.N == other.N
}
