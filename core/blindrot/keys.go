package blindrot

import (
	"fmt"

	"github.com/tuneinsight/tfhe/core/ggsw"
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// BootstrapKey is a bootstrapping key in standard form: the i-th block is a
// GGSW encryption, under the GLWE secret key, of the i-th coefficient of the
// LWE secret key.
type BootstrapKey struct {
	Value []ggsw.Ciphertext
}

// NewBootstrapKey allocates a zero bootstrapping key for params.
func NewBootstrapKey(params lwe.Parameters) *BootstrapKey {
	value := make([]ggsw.Ciphertext, params.LweDimension())
	for i := range value {
		value[i] = ggsw.NewCiphertext(params)
	}
	return &BootstrapKey{Value: value}
}

// InputLweDimension returns the dimension of the LWE ciphertexts the key can
// bootstrap.
func (bsk *BootstrapKey) InputLweDimension() int {
	return len(bsk.Value)
}

// Equal returns whether the two keys hold identical blocks.
func (bsk *BootstrapKey) Equal(other *BootstrapKey) bool {
	if len(bsk.Value) != len(other.Value) {
		return false
	}
	for i := range bsk.Value {
		if len(bsk.Value[i].Value) != len(other.Value[i].Value) {
			return false
		}
		for j := range bsk.Value[i].Value {
			row, otherRow := bsk.Value[i].Value[j], other.Value[i].Value[j]
			if len(row.Value) != len(otherRow.Value) {
				return false
			}
			for u := range row.Value {
				if !row.Value[u].Equal(otherRow.Value[u]) {
					return false
				}
			}
		}
	}
	return true
}

// ToFourier transforms the key into the Fourier domain form consumed by
// blind rotations.
func (bsk *BootstrapKey) ToFourier(params lwe.Parameters) *FourierBootstrapKey {
	value := make([]ggsw.FourierCiphertext, len(bsk.Value))
	for i := range value {
		value[i] = ggsw.ToFourierNew(params, bsk.Value[i])
	}
	return &FourierBootstrapKey{Value: value}
}

// FourierBootstrapKey is a bootstrapping key with all row polynomials in the
// Fourier domain.
type FourierBootstrapKey struct {
	Value []ggsw.FourierCiphertext
}

// InputLweDimension returns the dimension of the LWE ciphertexts the key can
// bootstrap.
func (bsk *FourierBootstrapKey) InputLweDimension() int {
	return len(bsk.Value)
}

// SeededBootstrapKey is a bootstrapping key in seeded form: only the row
// bodies are stored, the masks being implied by the seed. Each block i draws
// its mask and noise streams from child seeds forked off Seed at index i, so
// blocks can be generated and expanded independently.
type SeededBootstrapKey struct {
	Seed  sampling.Seed
	Value [][]ring.Poly
}

// NewSeededBootstrapKey allocates a zero seeded bootstrapping key for params.
func NewSeededBootstrapKey(params lwe.Parameters, seed sampling.Seed) *SeededBootstrapKey {
	rows := params.DecompositionLevels() * (params.GlweRank() + 1)

	value := make([][]ring.Poly, params.LweDimension())
	for i := range value {
		value[i] = make([]ring.Poly, rows)
		for j := range value[i] {
			value[i][j] = params.RingQ().NewPoly()
		}
	}
	return &SeededBootstrapKey{Seed: seed, Value: value}
}

// InputLweDimension returns the dimension of the LWE ciphertexts the
// expanded key can bootstrap.
func (sbsk *SeededBootstrapKey) InputLweDimension() int {
	return len(sbsk.Value)
}

// Expand reconstructs the standard form of the key by regenerating the mask
// polynomials from the seed and grafting the stored bodies. The expansion of
// a seeded key is identical to the standard key generated from the same
// seed.
func (sbsk *SeededBootstrapKey) Expand(params lwe.Parameters) (*BootstrapKey, error) {
	if len(sbsk.Value) != params.LweDimension() {
		return nil, fmt.Errorf("blindrot.Expand: key holds %d blocks but the parameters require %d", len(sbsk.Value), params.LweDimension())
	}

	k := params.GlweRank()
	bsk := NewBootstrapKey(params)

	for i, bodies := range sbsk.Value {

		maskSeed := sbsk.Seed.Fork(i).Fork(0)
		prng, err := sampling.NewKeyedPRNG(maskSeed[:])
		if err != nil {
			return nil, fmt.Errorf("blindrot.Expand: %w", err)
		}
		masks := ring.NewUniformSampler(prng)

		block := bsk.Value[i]
		for j := 0; j < block.Levels(); j++ {
			for r := 0; r <= k; r++ {
				row := block.Row(j, r)
				for u := 0; u < k; u++ {
					masks.Read(row.Value[u].Coeffs)
				}
				row.Body().Copy(bodies[j*(k+1)+r])
			}
		}
	}

	return bsk, nil
}
