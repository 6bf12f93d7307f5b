package blindrot

import (
	"fmt"
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

// Noiseless parameters: the bootstrap outcome is determined by the gadget
// roundings alone, so decoded results can be required exactly.
var testParametersLiteral = lwe.ParametersLiteral{
	LweDimension:   16,
	GlweRank:       1,
	PolyDegree:     512,
	LweStdDev:      0,
	GlweStdDev:     0,
	DecompBaseLog:  8,
	DecompLevels:   3,
	MessageModulus: 4,
}

// Noisy parameters, dimensioned so that six standard deviations of every
// noise source stay well within the decoding windows.
var testParametersLiteralNoisy = lwe.ParametersLiteral{
	LweDimension:   64,
	GlweRank:       1,
	PolyDegree:     1024,
	LweStdDev:      0x1p-25,
	GlweStdDev:     0x1p-50,
	DecompBaseLog:  23,
	DecompLevels:   1,
	MessageModulus: 4,
}

func testString(opname string, p lwe.Parameters) string {
	return fmt.Sprintf("%s/n=%d/k=%d/N=%d/t=%d", opname, p.LweDimension(), p.GlweRank(), p.PolyDegree(), p.MessageModulus())
}

// testContext bundles the keys and helpers shared by the bootstrap tests.
// Inputs are encrypted under sk, outputs decrypt under the extracted key.
type testContext struct {
	params lwe.Parameters
	sk     *lwe.SecretKey
	skGlwe *lwe.GlweSecretKey
	ecd    *lwe.Encoder
	enc    *lwe.Encryptor
	dec    *lwe.Decryptor
	bsk    *FourierBootstrapKey
}

func newTestContext(t *testing.T, literal lwe.ParametersLiteral) testContext {
	params, err := lwe.NewParametersFromLiteral(literal)
	require.NoError(t, err)

	kgen := lwe.NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x31}))
	sk := kgen.GenSecretKeyNew()
	skGlwe := kgen.GenGlweSecretKeyNew()

	bkgen := NewKeyGenerator(params, sk, skGlwe, sampling.NewDeterministicSeeder(sampling.Seed{0x32}))
	bsk := bkgen.GenBootstrapKeyParallelNew().ToFourier(params)

	enc, err := lwe.NewEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x33}))
	require.NoError(t, err)

	return testContext{
		params: params,
		sk:     sk,
		skGlwe: skGlwe,
		ecd:    lwe.NewEncoder(params),
		enc:    enc,
		dec:    lwe.NewDecryptor(skGlwe.AsLweSecretKey()),
		bsk:    bsk,
	}
}

func TestGenLookupTable(t *testing.T) {

	params, err := lwe.NewParametersFromLiteral(lwe.ParametersLiteral{
		LweDimension:   2,
		GlweRank:       1,
		PolyDegree:     8,
		DecompBaseLog:  4,
		DecompLevels:   2,
		MessageModulus: 4,
	})
	require.NoError(t, err)

	delta := params.Delta()

	t.Run(testString("Identity", params), func(t *testing.T) {
		lut := GenLookupTable(params, func(x uint64) uint64 { return x })
		want := []uint64{0, delta, delta, 2 * delta, 2 * delta, 3 * delta, 3 * delta, 0}
		require.Equal(t, want, []uint64(lut.Coeffs))
	})

	t.Run(testString("Affine", params), func(t *testing.T) {
		lut := GenLookupTable(params, func(x uint64) uint64 { return x + 1 })
		want := []uint64{delta, 2 * delta, 2 * delta, 3 * delta, 3 * delta, 4 * delta, 4 * delta, -delta}
		require.Equal(t, want, []uint64(lut.Coeffs))
	})
}

func TestModSwitch(t *testing.T) {

	params, err := lwe.NewParametersFromLiteral(testParametersLiteral)
	require.NoError(t, err)

	eval := NewEvaluator(params)
	ecd := lwe.NewEncoder(params)

	N := uint64(params.PolyDegree())
	boxSize := N / params.MessageModulus()

	t.Run(testString("Multiples", params), func(t *testing.T) {
		for m := uint64(0); m < 2*params.MessageModulus(); m++ {
			require.Equal(t, m*boxSize, eval.ModSwitch(ecd.Encode(m)))
		}
	})

	t.Run(testString("Rounding", params), func(t *testing.T) {
		step := uint64(1) << (63 - params.RingQ().LogN())
		require.Equal(t, uint64(0), eval.ModSwitch(step/2-1))
		require.Equal(t, uint64(1), eval.ModSwitch(step/2))
		require.Equal(t, uint64(1), eval.ModSwitch(step))
		require.Equal(t, uint64(0), eval.ModSwitch(-(step / 2)))
	})
}

func TestBootstrap(t *testing.T) {

	tc := newTestContext(t, testParametersLiteral)
	params, ecd := tc.params, tc.ecd

	eval := NewEvaluator(params)

	identity := GenLookupTable(params, func(x uint64) uint64 { return x })
	affine := func(x uint64) uint64 { return (2*x + 1) % params.MessageModulus() }
	affineLUT := GenLookupTable(params, affine)

	t.Run(testString("Identity", params), func(t *testing.T) {
		for m := uint64(0); m < params.MessageModulus(); m++ {
			ct := tc.enc.EncryptNew(ecd.Encode(m))
			out := eval.BootstrapNew(ct, identity, tc.bsk)
			require.Equal(t, params.ExtractedLweDimension(), out.Dimension())
			require.Equal(t, m, ecd.Decode(tc.dec.Phase(out)))
		}
	})

	t.Run(testString("Affine", params), func(t *testing.T) {
		for m := uint64(0); m < params.MessageModulus(); m++ {
			ct := tc.enc.EncryptNew(ecd.Encode(m))
			out := eval.BootstrapNew(ct, affineLUT, tc.bsk)
			require.Equal(t, affine(m), ecd.Decode(tc.dec.Phase(out)))
		}
	})
}

func TestBootstrapModulus16(t *testing.T) {

	literal := testParametersLiteral
	literal.MessageModulus = 16

	tc := newTestContext(t, literal)
	params, ecd := tc.params, tc.ecd

	eval := NewEvaluator(params)
	double := GenLookupTable(params, func(x uint64) uint64 { return 2 * x % params.MessageModulus() })

	t.Run(testString("Double", params), func(t *testing.T) {
		for m := uint64(0); m < params.MessageModulus(); m++ {
			ct := tc.enc.EncryptNew(ecd.Encode(m))
			out := eval.BootstrapNew(ct, double, tc.bsk)
			require.Equal(t, 2*m%params.MessageModulus(), ecd.Decode(tc.dec.Phase(out)))
		}
	})
}

func TestBootstrapNoisy(t *testing.T) {

	tc := newTestContext(t, testParametersLiteralNoisy)
	params, ecd := tc.params, tc.ecd

	eval := NewEvaluator(params)
	identity := GenLookupTable(params, func(x uint64) uint64 { return x })

	bound, _ := NoiseBound(params).Float64()

	t.Run(testString("DecodeAndNoise", params), func(t *testing.T) {
		for m := uint64(0); m < params.MessageModulus(); m++ {
			ct := tc.enc.EncryptNew(ecd.Encode(m))
			out := eval.BootstrapNew(ct, identity, tc.bsk)

			phase := tc.dec.Phase(out)
			require.Equal(t, m, ecd.Decode(phase))

			noise := math.Abs(float64(int64(phase-ecd.Encode(m))) / 0x1p64)
			require.LessOrEqual(t, noise, bound)
		}
	})

	t.Run(testString("NoiseStd", params), func(t *testing.T) {
		var noise []float64
		for trial := 0; trial < 4; trial++ {
			for m := uint64(0); m < params.MessageModulus(); m++ {
				ct := tc.enc.EncryptNew(ecd.Encode(m))
				out := eval.BootstrapNew(ct, identity, tc.bsk)
				noise = append(noise, float64(int64(tc.dec.Phase(out)-ecd.Encode(m)))/0x1p64)
			}
		}

		std, err := stats.StandardDeviation(noise)
		require.NoError(t, err)
		require.LessOrEqual(t, std, bound)
	})

	t.Run(testString("NoiseModel", params), func(t *testing.T) {
		log2 := NoiseBoundLog2(params)
		require.Less(t, log2, -12.0)
		require.Greater(t, log2, -20.0)
	})
}

// TestBootstrapResetsNoise raises the input noise far above the output noise
// model with homomorphic additions of fresh zero encryptions and checks that
// the bootstrapped samples land back below it.
func TestBootstrapResetsNoise(t *testing.T) {

	literal := testParametersLiteralNoisy
	literal.LweStdDev = 0x1p-8
	literal.MessageModulus = 2

	tc := newTestContext(t, literal)
	params, ecd := tc.params, tc.ecd

	eval := NewEvaluator(params)
	lweEval := lwe.NewEvaluator(params)
	decIn := lwe.NewDecryptor(tc.sk)
	identity := GenLookupTable(params, func(x uint64) uint64 { return x })

	bound, _ := NoiseBound(params).Float64()
	require.Less(t, bound, 0x1p-8)

	var noiseIn, noiseOut []float64
	for trial := 0; trial < 4; trial++ {
		for m := uint64(0); m < params.MessageModulus(); m++ {
			ct := tc.enc.EncryptNew(ecd.Encode(m))
			for i := 0; i < 3; i++ {
				lweEval.Add(ct, tc.enc.EncryptNew(0), ct)
			}
			noiseIn = append(noiseIn, float64(int64(decIn.Phase(ct)-ecd.Encode(m)))/0x1p64)

			out := eval.BootstrapNew(ct, identity, tc.bsk)

			phase := tc.dec.Phase(out)
			require.Equal(t, m, ecd.Decode(phase))

			noise := float64(int64(phase-ecd.Encode(m))) / 0x1p64
			require.LessOrEqual(t, math.Abs(noise), bound)
			noiseOut = append(noiseOut, noise)
		}
	}

	stdIn, err := stats.StandardDeviation(noiseIn)
	require.NoError(t, err)
	stdOut, err := stats.StandardDeviation(noiseOut)
	require.NoError(t, err)

	require.Greater(t, stdIn, bound)
	require.LessOrEqual(t, stdOut, bound)
}

func TestBootstrapParallel(t *testing.T) {

	tc := newTestContext(t, testParametersLiteralNoisy)
	params, ecd := tc.params, tc.ecd

	eval := NewEvaluator(params)
	identity := GenLookupTable(params, func(x uint64) uint64 { return x })

	for m := uint64(0); m < params.MessageModulus(); m++ {
		ct := tc.enc.EncryptNew(ecd.Encode(m))

		seq := eval.BootstrapNew(ct, identity, tc.bsk)
		par := eval.BootstrapParallelNew(ct, identity, tc.bsk)

		phaseSeq, phasePar := tc.dec.Phase(seq), tc.dec.Phase(par)
		require.Equal(t, ecd.Decode(phaseSeq), ecd.Decode(phasePar))

		diff := int64(phaseSeq - phasePar)
		if diff < 0 {
			diff = -diff
		}
		require.Less(t, diff, int64(1)<<40)
	}
}

func TestKeyGeneration(t *testing.T) {

	params, err := lwe.NewParametersFromLiteral(testParametersLiteral)
	require.NoError(t, err)

	kgen := lwe.NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x41}))
	sk := kgen.GenSecretKeyNew()
	skGlwe := kgen.GenGlweSecretKeyNew()

	root := sampling.Seed{0x42}
	newKgen := func() *KeyGenerator {
		return NewKeyGenerator(params, sk, skGlwe, sampling.NewDeterministicSeeder(root))
	}

	bsk := newKgen().GenBootstrapKeyNew()

	t.Run(testString("SequentialEqualsParallel", params), func(t *testing.T) {
		require.True(t, bsk.Equal(newKgen().GenBootstrapKeyParallelNew()))
	})

	t.Run(testString("SeededExpandsToStandard", params), func(t *testing.T) {
		sbsk := newKgen().GenSeededBootstrapKeyNew()
		require.Equal(t, params.LweDimension(), sbsk.InputLweDimension())

		expanded, err := sbsk.Expand(params)
		require.NoError(t, err)
		require.True(t, bsk.Equal(expanded))
	})

	t.Run(testString("FreshKeysDiffer", params), func(t *testing.T) {
		other := NewKeyGenerator(params, sk, skGlwe, sampling.NewDeterministicSeeder(sampling.Seed{0x43})).GenBootstrapKeyNew()
		require.False(t, bsk.Equal(other))
	})
}

func BenchmarkBootstrap(b *testing.B) {

	params, err := lwe.NewParametersFromLiteral(testParametersLiteralNoisy)
	if err != nil {
		b.Fatal(err)
	}

	kgen := lwe.NewKeyGenerator(params, nil)
	sk := kgen.GenSecretKeyNew()
	skGlwe := kgen.GenGlweSecretKeyNew()

	bsk := NewKeyGenerator(params, sk, skGlwe, nil).GenBootstrapKeyParallelNew().ToFourier(params)

	enc, err := lwe.NewEncryptor(params, sk, nil)
	if err != nil {
		b.Fatal(err)
	}

	ecd := lwe.NewEncoder(params)
	eval := NewEvaluator(params)
	identity := GenLookupTable(params, func(x uint64) uint64 { return x })

	ct := enc.EncryptNew(ecd.Encode(1))
	out := lwe.NewCiphertext(params.ExtractedLweDimension())

	b.Run(testString("Sequential", params), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			eval.Bootstrap(ct, identity, bsk, out)
		}
	})

	b.Run(testString("Parallel", params), func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			eval.BootstrapParallel(ct, identity, bsk, out)
		}
	})
}
