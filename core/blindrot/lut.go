// Package blindrot implements the programmable bootstrap: the blind rotation
// of a look-up table by the phase of an LWE ciphertext, which simultaneously
// resets the noise of the ciphertext and evaluates an arbitrary function on
// its message.
package blindrot

import (
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring"
)

// GenLookupTable returns the test polynomial of f. Each of the t messages
// owns a window of N/t coefficients holding the encoding of its image, and
// the polynomial is rotated back by half a window so that the windows are
// centered on the images of the rescaled phases m*N/t. The coefficients the
// rotation wraps around the degree pick up the negacyclic sign, which makes
// the table consistent for phases that noise pushes slightly below zero.
func GenLookupTable(params lwe.Parameters, f func(x uint64) uint64) ring.Poly {
	ringQ := params.RingQ()
	ecd := lwe.NewEncoder(params)

	boxSize := params.PolyDegree() / int(params.MessageModulus())

	boxes := ringQ.NewPoly()
	for m := uint64(0); m < params.MessageModulus(); m++ {
		v := ecd.Encode(f(m))
		for j := 0; j < boxSize; j++ {
			boxes.Coeffs[int(m)*boxSize+j] = v
		}
	}

	lut := ringQ.NewPoly()
	ringQ.MonomialMul(boxes, -(boxSize >> 1), lut)
	return lut
}
