package ring

import (
	"encoding/binary"
	"math"

	"github.com/tuneinsight/tfhe/utils/sampling"
)

const randomBufferSize = 1024

// Sampler is the interface for samplers of vectors of torus coefficients.
type Sampler interface {
	// Read fills dst with fresh coefficients.
	Read(dst []uint64)
	// ReadAndAdd adds fresh coefficients on dst.
	ReadAndAdd(dst []uint64)
}

// baseSampler wraps a PRNG with a small buffer from which coefficients are
// read, so that the PRNG is invoked once per buffer instead of once per
// coefficient.
type baseSampler struct {
	prng         sampling.PRNG
	randomBuffer []byte
	ptr          int
}

func newBaseSampler(prng sampling.PRNG) baseSampler {
	return baseSampler{
		prng:         prng,
		randomBuffer: make([]byte, randomBufferSize),
		ptr:          randomBufferSize,
	}
}

func (b *baseSampler) readUint64() uint64 {
	if b.ptr == len(b.randomBuffer) {
		if _, err := b.prng.Read(b.randomBuffer); err != nil {
			panic(err)
		}
		b.ptr = 0
	}
	v := binary.BigEndian.Uint64(b.randomBuffer[b.ptr : b.ptr+8])
	b.ptr += 8
	return v
}

// UniformSampler is the state of a sampler of uniform torus coefficients.
type UniformSampler struct {
	baseSampler
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG.
func NewUniformSampler(prng sampling.PRNG) (u *UniformSampler) {
	return &UniformSampler{baseSampler: newBaseSampler(prng)}
}

// Read fills dst with uniform coefficients.
func (u *UniformSampler) Read(dst []uint64) {
	for i := range dst {
		dst[i] = u.readUint64()
	}
}

// ReadAndAdd adds uniform coefficients on dst.
func (u *UniformSampler) ReadAndAdd(dst []uint64) {
	for i := range dst {
		dst[i] += u.readUint64()
	}
}

// BinarySampler is the state of a sampler of uniform binary coefficients.
type BinarySampler struct {
	baseSampler
	bits  uint64
	nbits int
}

// NewBinarySampler creates a new instance of BinarySampler from a PRNG.
func NewBinarySampler(prng sampling.PRNG) (b *BinarySampler) {
	return &BinarySampler{baseSampler: newBaseSampler(prng)}
}

// Read fills dst with uniform coefficients in {0, 1}.
func (b *BinarySampler) Read(dst []uint64) {
	for i := range dst {
		if b.nbits == 0 {
			b.bits = b.readUint64()
			b.nbits = 64
		}
		dst[i] = b.bits & 1
		b.bits >>= 1
		b.nbits--
	}
}

// ReadAndAdd adds uniform coefficients in {0, 1} on dst.
func (b *BinarySampler) ReadAndAdd(dst []uint64) {
	for i := range dst {
		if b.nbits == 0 {
			b.bits = b.readUint64()
			b.nbits = 64
		}
		dst[i] += b.bits & 1
		b.bits >>= 1
		b.nbits--
	}
}

// GaussianSampler is the state of a sampler of discretized gaussian torus
// coefficients, obtained by rounding Box-Muller normal deviates scaled by
// sigma * 2^64.
type GaussianSampler struct {
	baseSampler
	sigma    float64
	spare    float64
	hasSpare bool
}

// NewGaussianSampler creates a new instance of GaussianSampler from a PRNG
// and a standard deviation sigma expressed as a fraction of the torus.
func NewGaussianSampler(prng sampling.PRNG, sigma float64) (g *GaussianSampler) {
	return &GaussianSampler{baseSampler: newBaseSampler(prng), sigma: sigma}
}

// Read fills dst with gaussian coefficients.
func (g *GaussianSampler) Read(dst []uint64) {
	scale := g.sigma * 18446744073709551616.0
	for i := range dst {
		dst[i] = uint64(int64(math.Round(g.normFloat64() * scale)))
	}
}

// ReadAndAdd adds gaussian coefficients on dst.
func (g *GaussianSampler) ReadAndAdd(dst []uint64) {
	scale := g.sigma * 18446744073709551616.0
	for i := range dst {
		dst[i] += uint64(int64(math.Round(g.normFloat64() * scale)))
	}
}

func (g *GaussianSampler) normFloat64() float64 {
	if g.hasSpare {
		g.hasSpare = false
		return g.spare
	}

	var u1 float64
	for u1 == 0 {
		u1 = float64(g.readUint64()>>11) / (1 << 53)
	}
	u2 := float64(g.readUint64()>>11) / (1 << 53)

	r := math.Sqrt(-2 * math.Log(u1))
	g.spare = r * math.Sin(2*math.Pi*u2)
	g.hasSpare = true

	return r * math.Cos(2*math.Pi*u2)
}
