// Package fourier implements the Discrete Fourier Transform over the ring
// Z[X]/(X^N + 1) mod 2^64 in double precision, which enables negacyclic
// convolutions in O(N log N) floating point operations.
//
// A degree N real polynomial is folded into N/2 complex values twisted by
// the primitive 2N-th root of unity, so that the negacyclic convolution of
// two polynomials becomes the pointwise product of their size N/2 cyclic
// transforms. Transforms are kept in bit-reversed order, which all pointwise
// operations are oblivious to.
package fourier

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Processor holds the precomputed twiddle factors required to transform
// polynomials of degree N back and forth between the coefficient and the
// Fourier domain.
type Processor struct {
	deg  int // ring degree N
	half int // transform size N/2

	// twist[j] = e^(i*pi*j/N), multiplied on the folded input.
	twist []complex128
	// twistInv[j] = conj(twist[j])/(N/2), multiplied on the unfolded output.
	twistInv []complex128
	// rootsFwd[k] = e^(-2*pi*i*k/(N/2)).
	rootsFwd []complex128
	// rootsInv[k] = e^(+2*pi*i*k/(N/2)).
	rootsInv []complex128

	buf []complex128
}

// NewProcessor creates a new Processor for polynomials of degree N, which
// must be a power of two of at least 8.
func NewProcessor(N int) (f *Processor, err error) {
	if N < 8 {
		return nil, fmt.Errorf("invalid ring degree: must be at least 8 but is %d", N)
	}

	if N&(N-1) != 0 {
		return nil, fmt.Errorf("invalid ring degree: must be a power of two but is %d", N)
	}

	half := N >> 1

	f = &Processor{
		deg:      N,
		half:     half,
		twist:    make([]complex128, half),
		twistInv: make([]complex128, half),
		rootsFwd: make([]complex128, half>>1),
		rootsInv: make([]complex128, half>>1),
		buf:      make([]complex128, half),
	}

	for j := 0; j < half; j++ {
		f.twist[j] = cmplx.Exp(complex(0, math.Pi*float64(j)/float64(N)))
		f.twistInv[j] = complex(real(f.twist[j])/float64(half), -imag(f.twist[j])/float64(half))
	}

	for k := 0; k < half>>1; k++ {
		angle := 2 * math.Pi * float64(k) / float64(half)
		f.rootsFwd[k] = complex(math.Cos(angle), -math.Sin(angle))
		f.rootsInv[k] = complex(math.Cos(angle), math.Sin(angle))
	}

	return f, nil
}

// N returns the degree of the polynomials the Processor transforms.
func (f *Processor) N() int {
	return f.deg
}

// NewPoly creates a new Fourier polynomial matching the Processor degree.
func (f *Processor) NewPoly() Poly {
	return NewPoly(f.deg)
}

// ShallowCopy creates a shallow copy of the Processor in which all read-only
// data structures are shared with the receiver and the temporary buffers are
// reallocated. The receiver and the returned Processor can be used
// concurrently.
func (f *Processor) ShallowCopy() *Processor {
	return &Processor{
		deg:      f.deg,
		half:     f.half,
		twist:    f.twist,
		twistInv: f.twistInv,
		rootsFwd: f.rootsFwd,
		rootsInv: f.rootsInv,
		buf:      make([]complex128, f.half),
	}
}

// Forward evaluates fp = DFT(coeffs), with coeffs read as signed torus
// values. The method panics if the sizes do not match.
func (f *Processor) Forward(coeffs []uint64, fp Poly) {
	if len(coeffs) != f.deg || fp.N() != f.deg {
		panic(fmt.Sprintf("cannot Forward: input degree should be %d", f.deg))
	}

	values := fp.Values.MutView()

	for j := 0; j < f.half; j++ {
		values[j] = complex(float64(int64(coeffs[j])), float64(int64(coeffs[j+f.half]))) * f.twist[j]
	}

	fftInPlace(values, f.rootsFwd)
}

// ForwardNew evaluates and returns DFT(coeffs).
func (f *Processor) ForwardNew(coeffs []uint64) (fp Poly) {
	fp = f.NewPoly()
	f.Forward(coeffs, fp)
	return
}

// Backward evaluates coeffs = DFT^-1(fp), rounding each coefficient to the
// nearest torus value. fp is left unchanged. The method panics if the sizes
// do not match.
func (f *Processor) Backward(fp Poly, coeffs []uint64) {
	if len(coeffs) != f.deg || fp.N() != f.deg {
		panic(fmt.Sprintf("cannot Backward: input degree should be %d", f.deg))
	}

	copy(f.buf, fp.Values.View())

	ifftInPlace(f.buf, f.rootsInv)

	for j := 0; j < f.half; j++ {
		z := f.buf[j] * f.twistInv[j]
		coeffs[j] = fromFloat64(real(z))
		coeffs[j+f.half] = fromFloat64(imag(z))
	}
}

// Mul evaluates fp3 = fp1 * fp2 pointwise.
func (f *Processor) Mul(fp1, fp2, fp3 Poly) {
	v1, v2, v3 := fp1.Values.View(), fp2.Values.View(), fp3.Values.MutView()
	for i := range v3 {
		v3[i] = v1[i] * v2[i]
	}
}

// MulThenAdd evaluates fp3 = fp3 + fp1 * fp2 pointwise.
func (f *Processor) MulThenAdd(fp1, fp2, fp3 Poly) {
	v1, v2, v3 := fp1.Values.View(), fp2.Values.View(), fp3.Values.MutView()
	for i := range v3 {
		v3[i] += v1[i] * v2[i]
	}
}

// Add evaluates fp3 = fp1 + fp2 pointwise.
func (f *Processor) Add(fp1, fp2, fp3 Poly) {
	v1, v2, v3 := fp1.Values.View(), fp2.Values.View(), fp3.Values.MutView()
	for i := range v3 {
		v3[i] = v1[i] + v2[i]
	}
}

// fftInPlace computes the size len(values) cyclic DFT, reading natural order
// and writing bit-reversed order.
func fftInPlace(values []complex128, rootsFwd []complex128) {

	n := len(values)

	for size := n; size >= 2; size >>= 1 {
		half := size >> 1
		step := n / size
		for start := 0; start < n; start += size {
			k := 0
			for j := start; j < start+half; j++ {
				u, v := values[j], values[j+half]
				values[j] = u + v
				values[j+half] = (u - v) * rootsFwd[k]
				k += step
			}
		}
	}
}

// ifftInPlace computes the unscaled size len(values) inverse cyclic DFT,
// reading bit-reversed order and writing natural order.
func ifftInPlace(values []complex128, rootsInv []complex128) {

	n := len(values)

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		step := n / size
		for start := 0; start < n; start += size {
			k := 0
			for j := start; j < start+half; j++ {
				u, v := values[j], values[j+half]*rootsInv[k]
				values[j] = u + v
				values[j+half] = u - v
				k += step
			}
		}
	}
}

// fromFloat64 maps x to the nearest torus value mod 2^64.
func fromFloat64(x float64) uint64 {
	x -= 18446744073709551616.0 * math.Floor(x/18446744073709551616.0+0.5)
	return uint64(int64(math.Round(x)))
}
