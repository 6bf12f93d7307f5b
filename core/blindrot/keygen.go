package blindrot

import (
	"fmt"
	"runtime"

	"github.com/tuneinsight/tfhe/core/ggsw"
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/utils/containers"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// KeyGenerator generates bootstrapping keys from an LWE secret key and the
// GLWE secret key under which the blocks are encrypted. Each key draws a
// root seed from the seeder and forks one child seed per block, so the
// sequential and parallel generation paths produce identical keys and the
// seeded form can be re-expanded from the root seed.
type KeyGenerator struct {
	params lwe.Parameters
	sk     *lwe.SecretKey
	skGlwe *lwe.GlweSecretKey
	enc    *ggsw.Encryptor
	seeder sampling.Seeder
}

// NewKeyGenerator creates a new KeyGenerator. If seeder is nil, seeds are
// drawn from the system entropy source. The method panics if the dimension
// of sk does not match params.
func NewKeyGenerator(params lwe.Parameters, sk *lwe.SecretKey, skGlwe *lwe.GlweSecretKey, seeder sampling.Seeder) *KeyGenerator {
	if sk.Dimension() != params.LweDimension() {
		panic(fmt.Sprintf("cannot NewKeyGenerator: secret key dimension should be %d but is %d", params.LweDimension(), sk.Dimension()))
	}
	if seeder == nil {
		seeder = sampling.NewSeeder()
	}
	return &KeyGenerator{
		params: params,
		sk:     sk,
		skGlwe: skGlwe,
		enc:    ggsw.NewEncryptor(params, skGlwe),
		seeder: seeder,
	}
}

// GenBootstrapKeyNew generates a bootstrapping key in standard form.
func (kgen *KeyGenerator) GenBootstrapKeyNew() *BootstrapKey {
	root := kgen.seed()
	bsk := NewBootstrapKey(kgen.params)

	for i := range bsk.Value {
		kgen.enc.Encrypt(kgen.sk.Value[i], kgen.blockGenerator(root, i), bsk.Value[i])
	}

	return bsk
}

// GenBootstrapKeyParallelNew generates a bootstrapping key in standard form
// with the blocks split across up to NumCPU goroutines. The generated key is
// identical to the one GenBootstrapKeyNew produces from the same seed.
func (kgen *KeyGenerator) GenBootstrapKeyParallelNew() *BootstrapKey {
	root := kgen.seed()
	bsk := NewBootstrapKey(kgen.params)

	blocks := containers.FromFunc(len(bsk.Value), func(i int) int { return i })
	numChunks := containers.ChunkCount(len(blocks), runtime.NumCPU())

	containers.ParSplitInto([]int(blocks), numChunks, func(_ int, chunk []int) {
		enc := ggsw.NewEncryptor(kgen.params, kgen.skGlwe)
		for _, i := range chunk {
			enc.Encrypt(kgen.sk.Value[i], kgen.blockGenerator(root, i), bsk.Value[i])
		}
	})

	return bsk
}

// GenSeededBootstrapKeyNew generates a bootstrapping key in seeded form,
// storing the root seed and the row bodies only.
func (kgen *KeyGenerator) GenSeededBootstrapKeyNew() *SeededBootstrapKey {
	root := kgen.seed()
	sbsk := NewSeededBootstrapKey(kgen.params, root)

	for i := range sbsk.Value {
		kgen.enc.EncryptSeeded(kgen.sk.Value[i], kgen.blockGenerator(root, i), sbsk.Value[i])
	}

	return sbsk
}

// blockGenerator returns the encryption randomness generator of block i,
// keyed with the mask and noise seeds forked off the block child seed.
func (kgen *KeyGenerator) blockGenerator(root sampling.Seed, i int) *lwe.EncryptionRandomGenerator {
	block := root.Fork(i)
	gen, err := lwe.NewEncryptionRandomGenerator(block.Fork(0), block.Fork(1), kgen.params.GlweStdDev())
	if err != nil {
		panic(fmt.Sprintf("cannot generate bootstrapping key: %v", err))
	}
	return gen
}

func (kgen *KeyGenerator) seed() sampling.Seed {
	seed, err := kgen.seeder.Seed()
	if err != nil {
		panic(fmt.Sprintf("cannot generate bootstrapping key: %v", err))
	}
	return seed
}
