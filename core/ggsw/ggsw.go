// Package ggsw implements GGSW encryption of scalar messages over the 64-bit
// torus and the external product between GGSW and GLWE ciphertexts, which is
// the elementary operation of the programmable bootstrap.
package ggsw

import (
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring/fourier"
)

// Ciphertext is a GGSW ciphertext: levels*(k+1) GLWE rows. For a message m,
// the row (j, r) encrypts -m*Gadget(j)*S_r when r < k and m*Gadget(j) when
// r = k, so that recombining the rows with the gadget digits of a GLWE
// ciphertext yields an encryption of m times its phase.
type Ciphertext struct {
	Value []lwe.GlweCiphertext
}

// NewCiphertext allocates a zero GGSW ciphertext for the gadget
// decomposition, rank and degree of params.
func NewCiphertext(params lwe.Parameters) Ciphertext {
	value := make([]lwe.GlweCiphertext, params.DecompositionLevels()*(params.GlweRank()+1))
	for i := range value {
		value[i] = lwe.NewGlweCiphertext(params.GlweRank(), params.PolyDegree())
	}
	return Ciphertext{Value: value}
}

// Rank returns the number k of mask polynomials of the rows.
func (ct Ciphertext) Rank() int {
	return ct.Value[0].Rank()
}

// Levels returns the number of gadget levels of the ciphertext.
func (ct Ciphertext) Levels() int {
	return len(ct.Value) / (ct.Rank() + 1)
}

// Row returns the GLWE row of gadget level j paired with the ciphertext
// component r.
func (ct Ciphertext) Row(j, r int) lwe.GlweCiphertext {
	return ct.Value[j*(ct.Rank()+1)+r]
}

// FourierCiphertext is a GGSW ciphertext with all row polynomials in the
// Fourier domain, the form consumed by external products. Value[i][u] is the
// u-th component of the i-th row.
type FourierCiphertext struct {
	Value [][]fourier.Poly
}

// NewFourierCiphertext allocates a zero Fourier GGSW ciphertext for the
// gadget decomposition, rank and degree of params.
func NewFourierCiphertext(params lwe.Parameters) FourierCiphertext {
	value := make([][]fourier.Poly, params.DecompositionLevels()*(params.GlweRank()+1))
	for i := range value {
		row := make([]fourier.Poly, params.GlweRank()+1)
		for u := range row {
			row[u] = fourier.NewPoly(params.PolyDegree())
		}
		value[i] = row
	}
	return FourierCiphertext{Value: value}
}

// Rank returns the number k of mask polynomials of the rows.
func (ct FourierCiphertext) Rank() int {
	return len(ct.Value[0]) - 1
}

// Levels returns the number of gadget levels of the ciphertext.
func (ct FourierCiphertext) Levels() int {
	return len(ct.Value) / (ct.Rank() + 1)
}

// Row returns the components of the Fourier row of gadget level j paired
// with the ciphertext component r.
func (ct FourierCiphertext) Row(j, r int) []fourier.Poly {
	return ct.Value[j*(ct.Rank()+1)+r]
}

// ToFourier transforms ct into the Fourier domain, writing it on out.
func ToFourier(f *fourier.Processor, ct Ciphertext, out FourierCiphertext) {
	for i, row := range ct.Value {
		for u, pol := range row.Value {
			f.Forward(pol.Coeffs, out.Value[i][u])
		}
	}
}

// ToFourierNew transforms ct into the Fourier domain.
func ToFourierNew(params lwe.Parameters, ct Ciphertext) FourierCiphertext {
	out := NewFourierCiphertext(params)
	ToFourier(params.FourierQ(), ct, out)
	return out
}
