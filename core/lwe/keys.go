package lwe

import (
	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/utils/containers"
)

// SecretKey is a binary LWE secret key.
type SecretKey struct {
	Value containers.Vector[uint64]
}

// NewSecretKey allocates a zero LWE secret key of dimension n.
func NewSecretKey(n int) *SecretKey {
	return &SecretKey{Value: containers.NewVector[uint64](n)}
}

// Dimension returns the dimension of the key.
func (sk *SecretKey) Dimension() int {
	return sk.Value.Len()
}

// CopyNew creates a deep copy of the receiver.
func (sk *SecretKey) CopyNew() *SecretKey {
	return &SecretKey{Value: sk.Value.CopyNew()}
}

// GlweSecretKey is a binary GLWE secret key of rank k over polynomials of
// degree N.
type GlweSecretKey struct {
	Value []ring.Poly
}

// NewGlweSecretKey allocates a zero GLWE secret key of rank k and degree N.
func NewGlweSecretKey(k, N int) *GlweSecretKey {
	value := make([]ring.Poly, k)
	for r := range value {
		value[r] = ring.NewPoly(N)
	}
	return &GlweSecretKey{Value: value}
}

// Rank returns the number of polynomials of the key.
func (sk *GlweSecretKey) Rank() int {
	return len(sk.Value)
}

// PolyDegree returns the degree of the polynomials of the key.
func (sk *GlweSecretKey) PolyDegree() int {
	return sk.Value[0].N()
}

// CopyNew creates a deep copy of the receiver.
func (sk *GlweSecretKey) CopyNew() *GlweSecretKey {
	value := make([]ring.Poly, len(sk.Value))
	for r := range value {
		value[r] = sk.Value[r].CopyNew()
	}
	return &GlweSecretKey{Value: value}
}

// AsLweSecretKey reinterprets the receiver as an LWE secret key of dimension
// k*N by concatenating the coefficients of its polynomials, which is the key
// under which extracted samples decrypt. The returned key does not share
// storage with the receiver.
func (sk *GlweSecretKey) AsLweSecretKey() *SecretKey {
	N := sk.PolyDegree()
	out := NewSecretKey(len(sk.Value) * N)
	for r := range sk.Value {
		copy(out.Value[r*N:], sk.Value[r].Coeffs)
	}
	return out
}
