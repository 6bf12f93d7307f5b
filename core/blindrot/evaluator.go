package blindrot

import (
	"fmt"

	"github.com/tuneinsight/tfhe/core/ggsw"
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring"
)

// Evaluator evaluates programmable bootstraps. It is not safe for concurrent
// use; see ShallowCopy.
type Evaluator struct {
	params lwe.Parameters

	ggsw *ggsw.Evaluator
	acc  lwe.GlweCiphertext
	diff lwe.GlweCiphertext
}

// NewEvaluator creates a new Evaluator with its own scratch buffers.
func NewEvaluator(params lwe.Parameters) *Evaluator {
	return &Evaluator{
		params: params,
		ggsw:   ggsw.NewEvaluator(params),
		acc:    lwe.NewGlweCiphertext(params.GlweRank(), params.PolyDegree()),
		diff:   lwe.NewGlweCiphertext(params.GlweRank(), params.PolyDegree()),
	}
}

// ShallowCopy creates a copy of the Evaluator that shares the read-only data
// structures with the receiver and owns fresh buffers. The receiver and the
// returned Evaluator can be used concurrently.
func (eval *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(eval.params)
}

// ModSwitch rescales a torus coefficient to Z_2N, the exponent group of the
// ring monomials, rounding to the nearest multiple of 2^64/2N.
func (eval *Evaluator) ModSwitch(x uint64) uint64 {
	shift := 63 - eval.params.RingQ().LogN()
	return (x + 1<<(shift-1)) >> shift
}

// BlindRotate homomorphically evaluates acc = X^(-phase) * lut, with the
// phase of ct rescaled to Z_2N. The constant coefficient of the result is
// the table entry selected by the phase, encrypted under the GLWE key of the
// bootstrapping key with noise independent of the noise of ct.
func (eval *Evaluator) BlindRotate(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey, acc lwe.GlweCiphertext) {
	eval.blindRotate(ct, lut, bsk, acc, eval.ggsw.ExternalProductThenAdd)
}

// BlindRotateParallel evaluates the same blind rotation as BlindRotate, with
// the rows of each external product split across up to NumCPU goroutines.
// The result decrypts to the same table entry as the sequential path, the
// coefficients differing only by the reordering of the transform roundings.
func (eval *Evaluator) BlindRotateParallel(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey, acc lwe.GlweCiphertext) {
	eval.blindRotate(ct, lut, bsk, acc, eval.ggsw.ExternalProductThenAddParallel)
}

func (eval *Evaluator) blindRotate(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey, acc lwe.GlweCiphertext, extProd func(ggsw.FourierCiphertext, lwe.GlweCiphertext, lwe.GlweCiphertext)) {
	eval.checkOperands(ct, lut, bsk, acc)

	k := eval.params.GlweRank()
	ringQ := eval.params.RingQ()

	acc.Zero()
	ringQ.MonomialMul(lut, -int(eval.ModSwitch(*ct.Body())), acc.Value[k])

	for i, a := range ct.Mask() {
		aTilde := eval.ModSwitch(a)
		if aTilde == 0 {
			continue
		}

		for r := 0; r <= k; r++ {
			ringQ.MonomialMulThenSub(acc.Value[r], int(aTilde), eval.diff.Value[r])
		}
		extProd(bsk.Value[i], eval.diff, acc)
	}
}

// Bootstrap evaluates the function tabulated by lut on the message of ct,
// returning on out a fresh encryption of the selected table entry under the
// extracted GLWE key of the bootstrapping key. out must have the extracted
// dimension k*N.
func (eval *Evaluator) Bootstrap(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey, out lwe.Ciphertext) {
	eval.BlindRotate(ct, lut, bsk, eval.acc)
	lwe.SampleExtract(eval.acc, 0, out)
}

// BootstrapNew evaluates the function tabulated by lut on the message of ct.
func (eval *Evaluator) BootstrapNew(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey) lwe.Ciphertext {
	out := lwe.NewCiphertext(eval.params.ExtractedLweDimension())
	eval.Bootstrap(ct, lut, bsk, out)
	return out
}

// BootstrapParallel evaluates the same bootstrap as Bootstrap on the data
// parallel path.
func (eval *Evaluator) BootstrapParallel(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey, out lwe.Ciphertext) {
	eval.BlindRotateParallel(ct, lut, bsk, eval.acc)
	lwe.SampleExtract(eval.acc, 0, out)
}

// BootstrapParallelNew evaluates the same bootstrap as BootstrapNew on the
// data parallel path.
func (eval *Evaluator) BootstrapParallelNew(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey) lwe.Ciphertext {
	out := lwe.NewCiphertext(eval.params.ExtractedLweDimension())
	eval.BootstrapParallel(ct, lut, bsk, out)
	return out
}

func (eval *Evaluator) checkOperands(ct lwe.Ciphertext, lut ring.Poly, bsk *FourierBootstrapKey, acc lwe.GlweCiphertext) {
	if ct.Dimension() != eval.params.LweDimension() {
		panic(fmt.Sprintf("cannot evaluate: ciphertext dimension should be %d but is %d", eval.params.LweDimension(), ct.Dimension()))
	}
	if bsk.InputLweDimension() != eval.params.LweDimension() {
		panic(fmt.Sprintf("cannot evaluate: bootstrapping key holds %d blocks but the parameters require %d", bsk.InputLweDimension(), eval.params.LweDimension()))
	}
	if lut.N() != eval.params.PolyDegree() {
		panic(fmt.Sprintf("cannot evaluate: table degree should be %d but is %d", eval.params.PolyDegree(), lut.N()))
	}
	if acc.Rank() != eval.params.GlweRank() {
		panic(fmt.Sprintf("cannot evaluate: accumulator rank should be %d but is %d", eval.params.GlweRank(), acc.Rank()))
	}
}
