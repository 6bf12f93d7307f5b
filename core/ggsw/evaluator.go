package ggsw

import (
	"fmt"
	"runtime"

	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/ring/fourier"
	"github.com/tuneinsight/tfhe/utils/containers"
)

// Evaluator evaluates external products between GGSW and GLWE ciphertexts.
// It is not safe for concurrent use; see ShallowCopy.
type Evaluator struct {
	params lwe.Parameters

	digits  [][]ring.Poly
	fdigit  fourier.Poly
	facc    []fourier.Poly
	bufPoly ring.Poly
}

// NewEvaluator creates a new Evaluator with its own scratch buffers.
func NewEvaluator(params lwe.Parameters) *Evaluator {
	k, levels := params.GlweRank(), params.DecompositionLevels()

	digits := make([][]ring.Poly, k+1)
	for u := range digits {
		digits[u] = make([]ring.Poly, levels)
		for j := range digits[u] {
			digits[u][j] = params.RingQ().NewPoly()
		}
	}

	facc := make([]fourier.Poly, k+1)
	for r := range facc {
		facc[r] = fourier.NewPoly(params.PolyDegree())
	}

	return &Evaluator{
		params:  params,
		digits:  digits,
		fdigit:  fourier.NewPoly(params.PolyDegree()),
		facc:    facc,
		bufPoly: params.RingQ().NewPoly(),
	}
}

// ShallowCopy creates a copy of the Evaluator that shares the read-only data
// structures with the receiver and owns fresh buffers. The receiver and the
// returned Evaluator can be used concurrently.
func (eval *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator(eval.params)
}

// ExternalProduct evaluates out = gct (x) ct, which encrypts m times the
// phase of ct, with m the message of gct. out is overwritten and must not
// overlap ct.
func (eval *Evaluator) ExternalProduct(gct FourierCiphertext, ct, out lwe.GlweCiphertext) {
	eval.accumulate(gct, ct)

	f := eval.params.FourierQ()
	for r := range eval.facc {
		f.Backward(eval.facc[r], out.Value[r].Coeffs)
	}
}

// ExternalProductThenAdd evaluates out = out + gct (x) ct. ct and out must
// not overlap.
func (eval *Evaluator) ExternalProductThenAdd(gct FourierCiphertext, ct, out lwe.GlweCiphertext) {
	eval.accumulate(gct, ct)

	f, ringQ := eval.params.FourierQ(), eval.params.RingQ()
	for r := range eval.facc {
		f.Backward(eval.facc[r], eval.bufPoly.Coeffs)
		ringQ.Add(out.Value[r], eval.bufPoly, out.Value[r])
	}
}

// accumulate decomposes ct in the gadget basis and recombines the digits
// with the rows of gct on the Fourier accumulators.
func (eval *Evaluator) accumulate(gct FourierCiphertext, ct lwe.GlweCiphertext) {
	k := eval.params.GlweRank()
	eval.checkRanks(gct, ct)

	d := eval.params.Decomposer()
	f := eval.params.FourierQ()

	for r := range eval.facc {
		eval.facc[r].Zero()
	}

	for u := 0; u <= k; u++ {
		d.DecomposePoly(ct.Value[u], eval.digits[u])
		for j := 0; j < d.Levels(); j++ {
			f.Forward(eval.digits[u][j].Coeffs, eval.fdigit)
			row := gct.Row(j, u)
			for r := 0; r <= k; r++ {
				f.MulThenAdd(eval.fdigit, row[r], eval.facc[r])
			}
		}
	}
}

// ExternalProductThenAddParallel evaluates out = out + gct (x) ct with the
// Fourier rows split across up to NumCPU goroutines, each recombining its
// rows on private accumulators that are then reduced in chunk order.
func (eval *Evaluator) ExternalProductThenAddParallel(gct FourierCiphertext, ct, out lwe.GlweCiphertext) {
	k := eval.params.GlweRank()
	eval.checkRanks(gct, ct)

	d := eval.params.Decomposer()
	f := eval.params.FourierQ()
	N := eval.params.PolyDegree()

	for u := 0; u <= k; u++ {
		d.DecomposePoly(ct.Value[u], eval.digits[u])
	}

	rows := d.Levels() * (k + 1)
	numChunks := containers.ChunkCount(rows, runtime.NumCPU())

	rowIdx := containers.FromFunc(rows, func(i int) int { return i })
	partial := make([][]fourier.Poly, numChunks)

	containers.ParSplitInto([]int(rowIdx), numChunks, func(c int, chunk []int) {
		facc := make([]fourier.Poly, k+1)
		for r := range facc {
			facc[r] = fourier.NewPoly(N)
		}
		fdigit := fourier.NewPoly(N)

		for _, i := range chunk {
			j, u := i/(k+1), i%(k+1)
			f.Forward(eval.digits[u][j].Coeffs, fdigit)
			row := gct.Row(j, u)
			for r := 0; r <= k; r++ {
				f.MulThenAdd(fdigit, row[r], facc[r])
			}
		}

		partial[c] = facc
	})

	ringQ := eval.params.RingQ()
	for r := 0; r <= k; r++ {
		facc := partial[0][r]
		for c := 1; c < numChunks; c++ {
			f.Add(facc, partial[c][r], facc)
		}
		f.Backward(facc, eval.bufPoly.Coeffs)
		ringQ.Add(out.Value[r], eval.bufPoly, out.Value[r])
	}
}

func (eval *Evaluator) checkRanks(gct FourierCiphertext, ct lwe.GlweCiphertext) {
	if gct.Rank() != eval.params.GlweRank() || ct.Rank() != eval.params.GlweRank() {
		panic(fmt.Sprintf("cannot evaluate: operand ranks should be %d but are %d and %d", eval.params.GlweRank(), gct.Rank(), ct.Rank()))
	}
}
