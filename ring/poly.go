package ring

import (
	"github.com/tuneinsight/tfhe/utils/containers"
)

// Poly is the structure that contains the coefficients of a torus polynomial,
// in natural order and modulo 2^64.
type Poly struct {
	Coeffs containers.Vector[uint64]
}

// NewPoly creates a new polynomial of degree N with all coefficients set
// to 0.
func NewPoly(N int) Poly {
	return Poly{Coeffs: containers.NewVector[uint64](N)}
}

// N returns the number of coefficients of the polynomial.
func (pol Poly) N() int {
	return pol.Coeffs.Len()
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol Poly) Zero() {
	for i := range pol.Coeffs {
		pol.Coeffs[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (pol Poly) CopyNew() Poly {
	return Poly{Coeffs: pol.Coeffs.CopyNew()}
}

// Copy copies the coefficients of p1 on the target polynomial. The method
// panics if the degrees do not match.
func (pol Poly) Copy(p1 Poly) {
	if pol.N() != p1.N() {
		panic("cannot Copy: the degrees of the receiver and of p1 do not match")
	}
	copy(pol.Coeffs, p1.Coeffs)
}

// Equal returns whether the two polynomials are equal.
func (pol Poly) Equal(other Poly) bool {
	return pol.Coeffs.Equal(other.Coeffs)
}
