package lwe

import (
	"fmt"

	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// Encryptor encrypts torus plaintexts under a binary LWE secret key.
type Encryptor struct {
	sk  *SecretKey
	gen *EncryptionRandomGenerator
}

// NewEncryptor creates a new Encryptor from an LWE secret key, drawing its
// mask and noise seeds from seeder. If seeder is nil, a fresh crypto/rand
// seeder is used.
func NewEncryptor(params Parameters, sk *SecretKey, seeder sampling.Seeder) (*Encryptor, error) {
	gen, err := newEncryptionRandomGeneratorFromSeeder(seeder, params.LweStdDev())
	if err != nil {
		return nil, fmt.Errorf("cannot NewEncryptor: %w", err)
	}
	return &Encryptor{sk: sk, gen: gen}, nil
}

// Encrypt encrypts pt on ct. The method panics if the dimensions of ct and
// of the key do not match.
func (enc *Encryptor) Encrypt(pt uint64, ct Ciphertext) {
	if ct.Dimension() != enc.sk.Dimension() {
		panic(fmt.Sprintf("cannot Encrypt: ciphertext dimension should be %d but is %d", enc.sk.Dimension(), ct.Dimension()))
	}

	mask := ct.Mask()
	enc.gen.ReadMask(mask)

	var dot uint64
	for i, a := range mask {
		dot += a * enc.sk.Value[i]
	}

	var e [1]uint64
	enc.gen.ReadNoise(e[:])

	*ct.Body() = dot + pt + e[0]
}

// EncryptNew encrypts pt and returns the resulting ciphertext.
func (enc *Encryptor) EncryptNew(pt uint64) Ciphertext {
	ct := NewCiphertext(enc.sk.Dimension())
	enc.Encrypt(pt, ct)
	return ct
}

// GlweEncryptor encrypts torus polynomials under a binary GLWE secret key.
type GlweEncryptor struct {
	params Parameters
	sk     *GlweSecretKey
	gen    *EncryptionRandomGenerator
}

// NewGlweEncryptor creates a new GlweEncryptor from a GLWE secret key,
// drawing its mask and noise seeds from seeder. If seeder is nil, a fresh
// crypto/rand seeder is used.
func NewGlweEncryptor(params Parameters, sk *GlweSecretKey, seeder sampling.Seeder) (*GlweEncryptor, error) {
	gen, err := newEncryptionRandomGeneratorFromSeeder(seeder, params.GlweStdDev())
	if err != nil {
		return nil, fmt.Errorf("cannot NewGlweEncryptor: %w", err)
	}
	return &GlweEncryptor{params: params, sk: sk, gen: gen}, nil
}

// Encrypt encrypts pt on ct. The mask polynomials are accumulated on the
// body with an exact product. The method panics if the ranks do not match.
func (enc *GlweEncryptor) Encrypt(pt ring.Poly, ct GlweCiphertext) {
	if ct.Rank() != enc.sk.Rank() {
		panic(fmt.Sprintf("cannot Encrypt: ciphertext rank should be %d but is %d", enc.sk.Rank(), ct.Rank()))
	}

	ringQ := enc.params.RingQ()

	body := ct.Body()
	enc.gen.ReadNoise(body.Coeffs)
	ringQ.Add(body, pt, body)

	for r, mask := range ct.Mask() {
		enc.gen.ReadMask(mask.Coeffs)
		ringQ.MulCoeffsThenAdd(mask, enc.sk.Value[r], body)
	}
}

// EncryptNew encrypts pt and returns the resulting ciphertext.
func (enc *GlweEncryptor) EncryptNew(pt ring.Poly) GlweCiphertext {
	ct := NewGlweCiphertext(enc.sk.Rank(), enc.params.PolyDegree())
	enc.Encrypt(pt, ct)
	return ct
}

func newEncryptionRandomGeneratorFromSeeder(seeder sampling.Seeder, sigma float64) (*EncryptionRandomGenerator, error) {
	if seeder == nil {
		seeder = sampling.NewSeeder()
	}
	maskSeed, err := seeder.Seed()
	if err != nil {
		return nil, err
	}
	noiseSeed, err := seeder.Seed()
	if err != nil {
		return nil, err
	}
	return NewEncryptionRandomGenerator(maskSeed, noiseSeed, sigma)
}
