package lwe

import (
	"fmt"

	"github.com/tuneinsight/tfhe/ring"
)

// GlweCiphertext is a GLWE ciphertext: k uniform mask polynomials followed
// by the body polynomial.
type GlweCiphertext struct {
	Value []ring.Poly
}

// NewGlweCiphertext allocates a zero GLWE ciphertext of rank k and degree N.
func NewGlweCiphertext(k, N int) GlweCiphertext {
	value := make([]ring.Poly, k+1)
	for i := range value {
		value[i] = ring.NewPoly(N)
	}
	return GlweCiphertext{Value: value}
}

// NewTrivialGlweCiphertext returns a trivial encryption of pt, with a zero
// mask and pt as the body. A trivial ciphertext decrypts to pt under any
// key of rank k.
func NewTrivialGlweCiphertext(k int, pt ring.Poly) GlweCiphertext {
	ct := NewGlweCiphertext(k, pt.N())
	ct.Body().Copy(pt)
	return ct
}

// Rank returns the number k of mask polynomials of the ciphertext.
func (ct GlweCiphertext) Rank() int {
	return len(ct.Value) - 1
}

// PolyDegree returns the degree of the polynomials of the ciphertext.
func (ct GlweCiphertext) PolyDegree() int {
	return ct.Value[0].N()
}

// Mask returns a view on the mask polynomials of the ciphertext.
func (ct GlweCiphertext) Mask() []ring.Poly {
	return ct.Value[:ct.Rank()]
}

// Body returns the body polynomial of the ciphertext.
func (ct GlweCiphertext) Body() ring.Poly {
	return ct.Value[ct.Rank()]
}

// Zero sets all polynomials of the target ciphertext to 0.
func (ct GlweCiphertext) Zero() {
	for i := range ct.Value {
		ct.Value[i].Zero()
	}
}

// CopyNew creates a deep copy of the target ciphertext.
func (ct GlweCiphertext) CopyNew() GlweCiphertext {
	value := make([]ring.Poly, len(ct.Value))
	for i := range value {
		value[i] = ct.Value[i].CopyNew()
	}
	return GlweCiphertext{Value: value}
}

// Copy copies ct1 on the target ciphertext. The method panics if the ranks
// or degrees do not match.
func (ct GlweCiphertext) Copy(ct1 GlweCiphertext) {
	if ct.Rank() != ct1.Rank() {
		panic(fmt.Sprintf("cannot Copy: ciphertext rank should be %d but is %d", ct.Rank(), ct1.Rank()))
	}
	for i := range ct.Value {
		ct.Value[i].Copy(ct1.Value[i])
	}
}

// SampleExtract extracts from ct the LWE encryption of the coefficient of
// degree h of the encrypted message, writing it on out. The extracted
// ciphertext decrypts under the LWE reinterpretation of the GLWE key and
// must have dimension k*N.
func SampleExtract(ct GlweCiphertext, h int, out Ciphertext) {
	k, N := ct.Rank(), ct.PolyDegree()

	if out.Dimension() != k*N {
		panic(fmt.Sprintf("cannot SampleExtract: output dimension should be %d but is %d", k*N, out.Dimension()))
	}

	if h < 0 || h >= N {
		panic(fmt.Sprintf("cannot SampleExtract: coefficient index should lie in [0, %d) but is %d", N, h))
	}

	mask := out.Mask()

	// The convolution mask (*) key turns into the dot product of the key
	// coefficients with a_{h} a_{h-1} ... a_{0} -a_{N-1} ... -a_{h+1}.
	for r, pol := range ct.Mask() {
		sub := mask[r*N : (r+1)*N]
		for j := 0; j <= h; j++ {
			sub[j] = pol.Coeffs[h-j]
		}
		for j := h + 1; j < N; j++ {
			sub[j] = -pol.Coeffs[N+h-j]
		}
	}

	*out.Body() = ct.Body().Coeffs[h]
}

// SampleExtractNew extracts and returns the LWE encryption of the
// coefficient of degree h of the message encrypted by ct.
func SampleExtractNew(ct GlweCiphertext, h int) Ciphertext {
	out := NewCiphertext(ct.Rank() * ct.PolyDegree())
	SampleExtract(ct, h, out)
	return out
}
