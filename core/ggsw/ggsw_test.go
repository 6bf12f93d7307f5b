package ggsw

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/ring"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// Noiseless parameters so encryption and external product identities can be
// checked exactly, up to gadget rounding and transform precision.
var testParametersLiteral = lwe.ParametersLiteral{
	LweDimension:   16,
	GlweRank:       2,
	PolyDegree:     512,
	LweStdDev:      0,
	GlweStdDev:     0,
	DecompBaseLog:  16,
	DecompLevels:   3,
	MessageModulus: 16,
}

func testString(opname string, p lwe.Parameters) string {
	return fmt.Sprintf("%s/k=%d/N=%d/baseLog=%d/levels=%d", opname, p.GlweRank(), p.PolyDegree(), p.DecompositionBaseLog(), p.DecompositionLevels())
}

func newTestContext(t *testing.T) (lwe.Parameters, *lwe.GlweSecretKey) {
	params, err := lwe.NewParametersFromLiteral(testParametersLiteral)
	require.NoError(t, err)

	kgen := lwe.NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x21}))
	return params, kgen.GenGlweSecretKeyNew()
}

func newTestGenerator(t *testing.T, sigma float64, tag byte) *lwe.EncryptionRandomGenerator {
	gen, err := lwe.NewEncryptionRandomGenerator(sampling.Seed{0x22, tag}, sampling.Seed{0x23, tag}, sigma)
	require.NoError(t, err)
	return gen
}

func TestEncrypt(t *testing.T) {

	params, sk := newTestContext(t)
	ringQ := params.RingQ()
	dec := lwe.NewGlweDecryptor(params, sk)

	enc := NewEncryptor(params, sk)

	ct := NewCiphertext(params)
	enc.Encrypt(1, newTestGenerator(t, params.GlweStdDev(), 0), ct)

	require.Equal(t, params.GlweRank(), ct.Rank())
	require.Equal(t, params.DecompositionLevels(), ct.Levels())

	t.Run(testString("RowPhases", params), func(t *testing.T) {

		want := ringQ.NewPoly()

		for j := 0; j < ct.Levels(); j++ {
			factor := params.Decomposer().Gadget(j)

			for r := 0; r < ct.Rank(); r++ {
				ringQ.MulScalar(sk.Value[r], -factor, want)
				require.True(t, dec.PhaseNew(ct.Row(j, r)).Equal(want), "row (%d,%d)", j, r)
			}

			want.Zero()
			want.Coeffs[0] = factor
			require.True(t, dec.PhaseNew(ct.Row(j, ct.Rank())).Equal(want), "row (%d,%d)", j, ct.Rank())
		}
	})

	t.Run(testString("SeededBodies", params), func(t *testing.T) {

		gen1 := newTestGenerator(t, params.GlweStdDev(), 1)
		gen2 := newTestGenerator(t, params.GlweStdDev(), 1)

		full := NewCiphertext(params)
		enc.Encrypt(1, gen1, full)

		bodies := make([]ring.Poly, len(full.Value))
		for i := range bodies {
			bodies[i] = ringQ.NewPoly()
		}
		enc.EncryptSeeded(1, gen2, bodies)

		for i := range bodies {
			require.True(t, bodies[i].Equal(full.Value[i].Body()), "row %d", i)
		}
	})
}

func TestExternalProduct(t *testing.T) {

	params, sk := newTestContext(t)
	ringQ := params.RingQ()
	ecd := lwe.NewEncoder(params)
	dec := lwe.NewGlweDecryptor(params, sk)

	glweEnc, err := lwe.NewGlweEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x24}))
	require.NoError(t, err)

	pt := ringQ.NewPoly()
	for i := range pt.Coeffs {
		pt.Coeffs[i] = ecd.Encode(uint64(i) % params.MessageModulus())
	}
	ct := glweEnc.EncryptNew(pt)

	enc := NewEncryptor(params, sk)
	eval := NewEvaluator(params)

	for _, m := range []uint64{0, 1} {

		gct := NewCiphertext(params)
		enc.Encrypt(m, newTestGenerator(t, params.GlweStdDev(), byte(2+m)), gct)
		fct := ToFourierNew(params, gct)

		t.Run(testString(fmt.Sprintf("ExternalProduct/m=%d", m), params), func(t *testing.T) {
			out := lwe.NewGlweCiphertext(params.GlweRank(), params.PolyDegree())
			eval.ExternalProduct(fct, ct, out)

			phase := dec.PhaseNew(out)
			for i := range phase.Coeffs {
				require.Equal(t, m*ecd.Decode(pt.Coeffs[i]), ecd.Decode(phase.Coeffs[i]), "coefficient %d", i)
			}
		})

		t.Run(testString(fmt.Sprintf("ExternalProductThenAdd/m=%d", m), params), func(t *testing.T) {
			base := ringQ.NewPoly()
			for i := range base.Coeffs {
				base.Coeffs[i] = ecd.Encode(1)
			}
			out := lwe.NewTrivialGlweCiphertext(params.GlweRank(), base)
			eval.ExternalProductThenAdd(fct, ct, out)

			phase := dec.PhaseNew(out)
			for i := range phase.Coeffs {
				require.Equal(t, 1+m*ecd.Decode(pt.Coeffs[i]), ecd.Decode(phase.Coeffs[i]), "coefficient %d", i)
			}
		})
	}
}

func TestExternalProductParallel(t *testing.T) {

	params, sk := newTestContext(t)
	ecd := lwe.NewEncoder(params)
	dec := lwe.NewGlweDecryptor(params, sk)

	glweEnc, err := lwe.NewGlweEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x25}))
	require.NoError(t, err)

	pt := params.RingQ().NewPoly()
	for i := range pt.Coeffs {
		pt.Coeffs[i] = ecd.Encode(uint64(i) % params.MessageModulus())
	}
	ct := glweEnc.EncryptNew(pt)

	enc := NewEncryptor(params, sk)
	gct := NewCiphertext(params)
	enc.Encrypt(1, newTestGenerator(t, params.GlweStdDev(), 4), gct)
	fct := ToFourierNew(params, gct)

	eval := NewEvaluator(params)

	seq := lwe.NewGlweCiphertext(params.GlweRank(), params.PolyDegree())
	eval.ExternalProductThenAdd(fct, ct, seq)

	par := lwe.NewGlweCiphertext(params.GlweRank(), params.PolyDegree())
	eval.ExternalProductThenAddParallel(fct, ct, par)

	phaseSeq := dec.PhaseNew(seq)
	phasePar := dec.PhaseNew(par)

	for i := range phaseSeq.Coeffs {
		require.Equal(t, ecd.Decode(phaseSeq.Coeffs[i]), ecd.Decode(phasePar.Coeffs[i]), "coefficient %d", i)

		diff := int64(phaseSeq.Coeffs[i] - phasePar.Coeffs[i])
		if diff < 0 {
			diff = -diff
		}
		require.Less(t, diff, int64(1)<<40)
	}
}
