package ggsw

import (
	"fmt"

	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring"
)

// Encryptor encrypts scalar messages as GGSW ciphertexts under a GLWE secret
// key. The encryption randomness is supplied per call, so that callers
// deriving seeded key material control the mask and noise streams.
type Encryptor struct {
	params lwe.Parameters
	sk     *lwe.GlweSecretKey

	bufPt   ring.Poly
	bufMask ring.Poly
}

// NewEncryptor creates a new Encryptor from a GLWE secret key.
func NewEncryptor(params lwe.Parameters, sk *lwe.GlweSecretKey) *Encryptor {
	return &Encryptor{
		params:  params,
		sk:      sk,
		bufPt:   params.RingQ().NewPoly(),
		bufMask: params.RingQ().NewPoly(),
	}
}

// Encrypt encrypts m on ct, reading the encryption randomness from gen. The
// mask polynomials are taken verbatim from the mask stream of gen, row after
// row, so a ciphertext encrypted with a seeded generator can be reproduced
// from the seed and the row bodies alone.
func (enc *Encryptor) Encrypt(m uint64, gen *lwe.EncryptionRandomGenerator, ct Ciphertext) {
	k := enc.params.GlweRank()

	if ct.Rank() != k {
		panic(fmt.Sprintf("cannot Encrypt: ciphertext rank should be %d but is %d", k, ct.Rank()))
	}

	ringQ := enc.params.RingQ()

	for j := 0; j < enc.params.DecompositionLevels(); j++ {
		factor := m * enc.params.Decomposer().Gadget(j)
		for r := 0; r <= k; r++ {
			row := ct.Row(j, r)

			body := row.Body()
			gen.ReadNoise(body.Coeffs)
			ringQ.Add(body, enc.rowPlaintext(factor, r), body)

			for u, mask := range row.Mask() {
				gen.ReadMask(mask.Coeffs)
				ringQ.MulCoeffsThenAdd(mask, enc.sk.Value[u], body)
			}
		}
	}
}

// EncryptSeeded encrypts m, writing only the row bodies on bodies and
// leaving the masks implied by the mask stream of gen. bodies must hold
// levels*(k+1) polynomials, in row order.
func (enc *Encryptor) EncryptSeeded(m uint64, gen *lwe.EncryptionRandomGenerator, bodies []ring.Poly) {
	k := enc.params.GlweRank()

	if len(bodies) != enc.params.DecompositionLevels()*(k+1) {
		panic(fmt.Sprintf("cannot EncryptSeeded: %d row bodies expected but %d given", enc.params.DecompositionLevels()*(k+1), len(bodies)))
	}

	ringQ := enc.params.RingQ()

	for j := 0; j < enc.params.DecompositionLevels(); j++ {
		factor := m * enc.params.Decomposer().Gadget(j)
		for r := 0; r <= k; r++ {
			body := bodies[j*(k+1)+r]

			gen.ReadNoise(body.Coeffs)
			ringQ.Add(body, enc.rowPlaintext(factor, r), body)

			for u := 0; u < k; u++ {
				gen.ReadMask(enc.bufMask.Coeffs)
				ringQ.MulCoeffsThenAdd(enc.bufMask, enc.sk.Value[u], body)
			}
		}
	}
}

// rowPlaintext returns -factor*S_r for r < k and the constant factor for
// r = k, on the shared plaintext buffer.
func (enc *Encryptor) rowPlaintext(factor uint64, r int) ring.Poly {
	if r < enc.params.GlweRank() {
		enc.params.RingQ().MulScalar(enc.sk.Value[r], -factor, enc.bufPt)
	} else {
		enc.bufPt.Zero()
		enc.bufPt.Coeffs[0] = factor
	}
	return enc.bufPt
}
