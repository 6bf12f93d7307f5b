package fourier

import (
	"github.com/tuneinsight/tfhe/utils/containers"
)

// Poly is the structure that contains a torus polynomial in the Fourier
// domain. A degree N polynomial is stored as N/2 complex evaluations, in
// bit-reversed order.
type Poly struct {
	Values *containers.AlignedVector[complex128]
}

// NewPoly creates a new Fourier polynomial holding the transform of a degree
// N polynomial.
func NewPoly(N int) Poly {
	return Poly{Values: containers.NewAlignedVector[complex128](N >> 1)}
}

// N returns the degree of the polynomial in the coefficient domain.
func (fp Poly) N() int {
	return fp.Values.Len() << 1
}

// Zero sets all values of the target polynomial to 0.
func (fp Poly) Zero() {
	values := fp.Values.MutView()
	for i := range values {
		values[i] = 0
	}
}

// CopyNew creates an exact copy of the target polynomial.
func (fp Poly) CopyNew() Poly {
	return Poly{Values: fp.Values.CopyNew()}
}

// Copy copies the values of fp1 on the target polynomial. The method panics
// if the degrees do not match.
func (fp Poly) Copy(fp1 Poly) {
	if fp.Values.Len() != fp1.Values.Len() {
		panic("cannot Copy: the degrees of the receiver and of fp1 do not match")
	}
	copy(fp.Values.MutView(), fp1.Values.View())
}
