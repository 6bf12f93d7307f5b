// Package lwe implements LWE and GLWE encryption over the 64-bit discretized
// torus: parameters, key material, message encoding, encryption, decryption
// and the sample extraction that bridges GLWE and LWE ciphertexts. The other
// core packages extend this package with their specific operations and
// structures.
package lwe

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/ring/fourier"
)

// MinMessageModulus is the smallest supported message space size.
const MinMessageModulus = 2

// ParametersLiteral is a literal representation of TFHE parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The NewParametersFromLiteral function is used
// to generate the actual checked parameters from the literal representation.
//
// The noise standard deviations are expressed as a fraction of the torus,
// i.e. of 2^64.
type ParametersLiteral struct {
	// LweDimension is the dimension n of LWE ciphertexts.
	LweDimension int
	// GlweRank is the number k of mask polynomials of GLWE ciphertexts.
	GlweRank int
	// PolyDegree is the degree N of the GLWE polynomials.
	PolyDegree int
	// LweStdDev is the standard deviation of the LWE encryption noise.
	LweStdDev float64
	// GlweStdDev is the standard deviation of the GLWE encryption noise.
	GlweStdDev float64
	// DecompBaseLog is the log2 of the gadget decomposition basis of the
	// bootstrapping key.
	DecompBaseLog int
	// DecompLevels is the number of levels of the gadget decomposition of
	// the bootstrapping key.
	DecompLevels int
	// MessageModulus is the size of the message space.
	MessageModulus uint64
}

// Parameters represents a set of checked TFHE parameters. Its fields are
// private and immutable. See ParametersLiteral for user-specified parameters.
type Parameters struct {
	lweDimension   int
	glweRank       int
	lweStdDev      float64
	glweStdDev     float64
	messageModulus uint64
	ringQ          *ring.Ring
	fourierQ       *fourier.Processor
	decomposer     *ring.Decomposer
}

// NewParametersFromLiteral instantiates a set of TFHE parameters from a
// ParametersLiteral specification. It returns the empty parameters
// Parameters{} and a non-nil error if the specified parameters are invalid.
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {

	if paramDef.LweDimension < 1 {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: LweDimension must be at least 1 but is %d", paramDef.LweDimension)
	}

	if paramDef.GlweRank < 1 {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: GlweRank must be at least 1 but is %d", paramDef.GlweRank)
	}

	if paramDef.LweStdDev < 0 || paramDef.LweStdDev >= 1 {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: LweStdDev must lie in [0, 1) but is %f", paramDef.LweStdDev)
	}

	if paramDef.GlweStdDev < 0 || paramDef.GlweStdDev >= 1 {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: GlweStdDev must lie in [0, 1) but is %f", paramDef.GlweStdDev)
	}

	var ringQ *ring.Ring
	if ringQ, err = ring.NewRing(paramDef.PolyDegree); err != nil {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: %w", err)
	}

	var fourierQ *fourier.Processor
	if fourierQ, err = fourier.NewProcessor(paramDef.PolyDegree); err != nil {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: %w", err)
	}

	var decomposer *ring.Decomposer
	if decomposer, err = ring.NewDecomposer(paramDef.DecompBaseLog, paramDef.DecompLevels); err != nil {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: %w", err)
	}

	t := paramDef.MessageModulus
	if t < MinMessageModulus || t&(t-1) != 0 {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: MessageModulus must be a power of two at least %d but is %d", MinMessageModulus, t)
	}

	if t > uint64(paramDef.PolyDegree) {
		return Parameters{}, fmt.Errorf("lwe.NewParametersFromLiteral: MessageModulus cannot exceed PolyDegree %d but is %d", paramDef.PolyDegree, t)
	}

	return Parameters{
		lweDimension:   paramDef.LweDimension,
		glweRank:       paramDef.GlweRank,
		lweStdDev:      paramDef.LweStdDev,
		glweStdDev:     paramDef.GlweStdDev,
		messageModulus: t,
		ringQ:          ringQ,
		fourierQ:       fourierQ,
		decomposer:     decomposer,
	}, nil
}

// LweDimension returns the dimension n of LWE ciphertexts.
func (p Parameters) LweDimension() int {
	return p.lweDimension
}

// GlweRank returns the number k of mask polynomials of GLWE ciphertexts.
func (p Parameters) GlweRank() int {
	return p.glweRank
}

// PolyDegree returns the degree N of the GLWE polynomials.
func (p Parameters) PolyDegree() int {
	return p.ringQ.N
}

// ExtractedLweDimension returns the dimension k*N of LWE ciphertexts
// extracted from GLWE ciphertexts.
func (p Parameters) ExtractedLweDimension() int {
	return p.glweRank * p.ringQ.N
}

// LweStdDev returns the standard deviation of the LWE encryption noise, as a
// fraction of the torus.
func (p Parameters) LweStdDev() float64 {
	return p.lweStdDev
}

// GlweStdDev returns the standard deviation of the GLWE encryption noise, as
// a fraction of the torus.
func (p Parameters) GlweStdDev() float64 {
	return p.glweStdDev
}

// DecompositionBaseLog returns the log2 of the gadget decomposition basis of
// the bootstrapping key.
func (p Parameters) DecompositionBaseLog() int {
	return p.decomposer.BaseLog()
}

// DecompositionLevels returns the number of levels of the gadget
// decomposition of the bootstrapping key.
func (p Parameters) DecompositionLevels() int {
	return p.decomposer.Levels()
}

// MessageModulus returns the size of the message space.
func (p Parameters) MessageModulus() uint64 {
	return p.messageModulus
}

// Delta returns the scaling factor 2^63/MessageModulus that maps messages to
// the most significant bits of torus values, keeping one bit of padding.
func (p Parameters) Delta() uint64 {
	return (uint64(1) << 63) / p.messageModulus
}

// RingQ returns a pointer to the ring of the GLWE polynomials.
func (p Parameters) RingQ() *ring.Ring {
	return p.ringQ
}

// FourierQ returns a pointer to the Fourier processor of the GLWE
// polynomials.
func (p Parameters) FourierQ() *fourier.Processor {
	return p.fourierQ
}

// Decomposer returns a pointer to the gadget decomposer of the bootstrapping
// key.
func (p Parameters) Decomposer() *ring.Decomposer {
	return p.decomposer
}

func (p Parameters) literal() ParametersLiteral {
	return ParametersLiteral{
		LweDimension:   p.lweDimension,
		GlweRank:       p.glweRank,
		PolyDegree:     p.ringQ.N,
		LweStdDev:      p.lweStdDev,
		GlweStdDev:     p.glweStdDev,
		DecompBaseLog:  p.decomposer.BaseLog(),
		DecompLevels:   p.decomposer.Levels(),
		MessageModulus: p.messageModulus,
	}
}

// Equal returns whether the two sets of parameters are identical.
func (p Parameters) Equal(other Parameters) bool {
	return cmp.Equal(p.literal(), other.literal())
}
