package lwe

import (
	"fmt"

	"github.com/tuneinsight/tfhe/ring"
)

// Decryptor decrypts LWE ciphertexts under a binary LWE secret key.
type Decryptor struct {
	sk *SecretKey
}

// NewDecryptor creates a new Decryptor. The key may be of any dimension,
// including the k*N reinterpretation of a GLWE key for extracted samples.
func NewDecryptor(sk *SecretKey) *Decryptor {
	return &Decryptor{sk: sk}
}

// Phase returns the noisy plaintext b - <a, s> of ct. The method panics if
// the dimensions of ct and of the key do not match.
func (dec *Decryptor) Phase(ct Ciphertext) uint64 {
	if ct.Dimension() != dec.sk.Dimension() {
		panic(fmt.Sprintf("cannot Phase: ciphertext dimension should be %d but is %d", dec.sk.Dimension(), ct.Dimension()))
	}

	var dot uint64
	for i, a := range ct.Mask() {
		dot += a * dec.sk.Value[i]
	}

	return *ct.Body() - dot
}

// GlweDecryptor decrypts GLWE ciphertexts under a binary GLWE secret key.
type GlweDecryptor struct {
	params Parameters
	sk     *GlweSecretKey
}

// NewGlweDecryptor creates a new GlweDecryptor.
func NewGlweDecryptor(params Parameters, sk *GlweSecretKey) *GlweDecryptor {
	return &GlweDecryptor{params: params, sk: sk}
}

// Phase evaluates pt = B - sum_r A_r (*) S_r, the noisy plaintext of ct,
// with an exact product. The method panics if the ranks do not match.
func (dec *GlweDecryptor) Phase(ct GlweCiphertext, pt ring.Poly) {
	if ct.Rank() != dec.sk.Rank() {
		panic(fmt.Sprintf("cannot Phase: ciphertext rank should be %d but is %d", dec.sk.Rank(), ct.Rank()))
	}

	ringQ := dec.params.RingQ()

	pt.Copy(ct.Body())
	for r, mask := range ct.Mask() {
		ringQ.MulCoeffsThenSub(mask, dec.sk.Value[r], pt)
	}
}

// PhaseNew returns the noisy plaintext of ct.
func (dec *GlweDecryptor) PhaseNew(ct GlweCiphertext) ring.Poly {
	pt := dec.params.RingQ().NewPoly()
	dec.Phase(ct, pt)
	return pt
}
