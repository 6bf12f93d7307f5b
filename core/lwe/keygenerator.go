package lwe

import (
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create
// new keys. All key randomness is derived from the seeder it is created
// with.
type KeyGenerator struct {
	params Parameters
	seeder sampling.Seeder
}

// NewKeyGenerator creates a new KeyGenerator. If seeder is nil, a fresh
// crypto/rand seeder is used.
func NewKeyGenerator(params Parameters, seeder sampling.Seeder) *KeyGenerator {
	if seeder == nil {
		seeder = sampling.NewSeeder()
	}
	return &KeyGenerator{params: params, seeder: seeder}
}

// GenSecretKeyNew generates a fresh binary LWE secret key of dimension n.
func (kgen *KeyGenerator) GenSecretKeyNew() (sk *SecretKey) {
	sk = NewSecretKey(kgen.params.LweDimension())
	kgen.readBinary(sk.Value)
	return
}

// GenGlweSecretKeyNew generates a fresh binary GLWE secret key of rank k and
// degree N.
func (kgen *KeyGenerator) GenGlweSecretKeyNew() (sk *GlweSecretKey) {
	sk = NewGlweSecretKey(kgen.params.GlweRank(), kgen.params.PolyDegree())
	for r := range sk.Value {
		kgen.readBinary(sk.Value[r].Coeffs)
	}
	return
}

func (kgen *KeyGenerator) readBinary(dst []uint64) {
	seed, err := kgen.seeder.Seed()
	if err != nil {
		panic(err)
	}
	gen, err := NewSecretRandomGenerator(seed)
	if err != nil {
		panic(err)
	}
	gen.Read(dst)
}
