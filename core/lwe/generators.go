package lwe

import (
	"fmt"

	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// SecretRandomGenerator derives uniform binary secret coefficients from a
// seed.
type SecretRandomGenerator struct {
	binary *ring.BinarySampler
}

// NewSecretRandomGenerator creates a SecretRandomGenerator reading from a
// PRNG keyed with the given seed.
func NewSecretRandomGenerator(seed sampling.Seed) (*SecretRandomGenerator, error) {
	prng, err := sampling.NewKeyedPRNG(seed[:])
	if err != nil {
		return nil, fmt.Errorf("cannot NewSecretRandomGenerator: %w", err)
	}
	return &SecretRandomGenerator{binary: ring.NewBinarySampler(prng)}, nil
}

// Read fills dst with uniform binary coefficients.
func (g *SecretRandomGenerator) Read(dst []uint64) {
	g.binary.Read(dst)
}

// EncryptionRandomGenerator generates the randomness of encryptions. The
// mask and noise streams are keyed with separate seeds, so that the mask
// stream can be reproduced from its seed alone when expanding seeded
// ciphertexts.
type EncryptionRandomGenerator struct {
	mask  *ring.UniformSampler
	noise *ring.GaussianSampler
}

// NewEncryptionRandomGenerator creates an EncryptionRandomGenerator with
// mask and noise streams derived from the two seeds. sigma is the noise
// standard deviation, as a fraction of the torus.
func NewEncryptionRandomGenerator(maskSeed, noiseSeed sampling.Seed, sigma float64) (*EncryptionRandomGenerator, error) {
	maskPRNG, err := sampling.NewKeyedPRNG(maskSeed[:])
	if err != nil {
		return nil, fmt.Errorf("cannot NewEncryptionRandomGenerator: %w", err)
	}
	noisePRNG, err := sampling.NewKeyedPRNG(noiseSeed[:])
	if err != nil {
		return nil, fmt.Errorf("cannot NewEncryptionRandomGenerator: %w", err)
	}
	return &EncryptionRandomGenerator{
		mask:  ring.NewUniformSampler(maskPRNG),
		noise: ring.NewGaussianSampler(noisePRNG, sigma),
	}, nil
}

// ReadMask fills dst with uniform mask coefficients.
func (g *EncryptionRandomGenerator) ReadMask(dst []uint64) {
	g.mask.Read(dst)
}

// ReadNoise fills dst with gaussian noise coefficients.
func (g *EncryptionRandomGenerator) ReadNoise(dst []uint64) {
	g.noise.Read(dst)
}

// ReadNoiseAndAdd adds gaussian noise coefficients on dst.
func (g *EncryptionRandomGenerator) ReadNoiseAndAdd(dst []uint64) {
	g.noise.ReadAndAdd(dst)
}
