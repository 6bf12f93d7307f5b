package lwe

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/tfhe/utils/sampling"
)

var testParametersLiteral = ParametersLiteral{
	LweDimension:   16,
	GlweRank:       2,
	PolyDegree:     512,
	LweStdDev:      0x1p-25,
	GlweStdDev:     0x1p-25,
	DecompBaseLog:  8,
	DecompLevels:   2,
	MessageModulus: 16,
}

func testString(opname string, p Parameters) string {
	return fmt.Sprintf("%s/n=%d/k=%d/N=%d/t=%d", opname, p.LweDimension(), p.GlweRank(), p.PolyDegree(), p.MessageModulus())
}

func newTestParameters(t *testing.T) Parameters {
	params, err := NewParametersFromLiteral(testParametersLiteral)
	require.NoError(t, err)
	return params
}

func TestParameters(t *testing.T) {

	params := newTestParameters(t)

	require.Equal(t, 16, params.LweDimension())
	require.Equal(t, 1024, params.ExtractedLweDimension())
	require.Equal(t, uint64(1)<<59, params.Delta())
	require.Equal(t, 8, params.DecompositionBaseLog())
	require.Equal(t, 2, params.DecompositionLevels())

	other, err := NewParametersFromLiteral(testParametersLiteral)
	require.NoError(t, err)
	require.True(t, params.Equal(other))

	distinct := testParametersLiteral
	distinct.MessageModulus = 8
	other, err = NewParametersFromLiteral(distinct)
	require.NoError(t, err)
	require.False(t, params.Equal(other))

	for _, invalid := range []ParametersLiteral{
		{LweDimension: 0, GlweRank: 1, PolyDegree: 512, DecompBaseLog: 8, DecompLevels: 2, MessageModulus: 16},
		{LweDimension: 16, GlweRank: 0, PolyDegree: 512, DecompBaseLog: 8, DecompLevels: 2, MessageModulus: 16},
		{LweDimension: 16, GlweRank: 1, PolyDegree: 100, DecompBaseLog: 8, DecompLevels: 2, MessageModulus: 16},
		{LweDimension: 16, GlweRank: 1, PolyDegree: 512, DecompBaseLog: 0, DecompLevels: 2, MessageModulus: 16},
		{LweDimension: 16, GlweRank: 1, PolyDegree: 512, DecompBaseLog: 8, DecompLevels: 2, MessageModulus: 15},
		{LweDimension: 16, GlweRank: 1, PolyDegree: 512, DecompBaseLog: 8, DecompLevels: 2, MessageModulus: 1024},
		{LweDimension: 16, GlweRank: 1, PolyDegree: 512, DecompBaseLog: 8, DecompLevels: 2, MessageModulus: 16, LweStdDev: -1},
	} {
		_, err := NewParametersFromLiteral(invalid)
		require.Error(t, err)
	}
}

func TestEncoder(t *testing.T) {

	params := newTestParameters(t)
	ecd := NewEncoder(params)

	t.Run(testString("Encoder", params), func(t *testing.T) {

		for m := uint64(0); m < 2*params.MessageModulus(); m++ {
			require.Equal(t, m, ecd.Decode(ecd.Encode(m)))
		}

		// Decoding tolerates noise up to Delta/2.
		delta := ecd.Delta()
		require.Equal(t, uint64(3), ecd.Decode(3*delta+delta/2-1))
		require.Equal(t, uint64(3), ecd.Decode(3*delta-delta/2))
		require.Equal(t, uint64(0), ecd.Decode(-(delta / 2)))
	})
}

func TestEncryptor(t *testing.T) {

	params := newTestParameters(t)
	ecd := NewEncoder(params)

	kgen := NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x01}))
	sk := kgen.GenSecretKeyNew()
	require.Equal(t, params.LweDimension(), sk.Dimension())

	enc, err := NewEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x02}))
	require.NoError(t, err)
	dec := NewDecryptor(sk)

	t.Run(testString("EncryptDecrypt", params), func(t *testing.T) {
		for m := uint64(0); m < params.MessageModulus(); m++ {
			ct := enc.EncryptNew(ecd.Encode(m))
			require.Equal(t, m, ecd.Decode(dec.Phase(ct)))
		}
	})

	t.Run(testString("Deterministic", params), func(t *testing.T) {
		enc1, err := NewEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x03}))
		require.NoError(t, err)
		enc2, err := NewEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x03}))
		require.NoError(t, err)

		ct1 := enc1.EncryptNew(ecd.Encode(5))
		ct2 := enc2.EncryptNew(ecd.Encode(5))
		require.True(t, ct1.Equal(ct2))

		ct3 := enc2.EncryptNew(ecd.Encode(5))
		require.False(t, ct1.Equal(ct3))
	})
}

func TestGlweEncryptor(t *testing.T) {

	params := newTestParameters(t)
	ecd := NewEncoder(params)
	ringQ := params.RingQ()

	kgen := NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x04}))
	sk := kgen.GenGlweSecretKeyNew()
	require.Equal(t, params.GlweRank(), sk.Rank())

	enc, err := NewGlweEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x05}))
	require.NoError(t, err)
	dec := NewGlweDecryptor(params, sk)

	pt := ringQ.NewPoly()
	for i := range pt.Coeffs {
		pt.Coeffs[i] = ecd.Encode(uint64(i))
	}

	t.Run(testString("EncryptDecrypt", params), func(t *testing.T) {
		ct := enc.EncryptNew(pt)
		phase := dec.PhaseNew(ct)
		for i := range phase.Coeffs {
			require.Equal(t, ecd.Decode(pt.Coeffs[i]), ecd.Decode(phase.Coeffs[i]))
		}
	})

	t.Run(testString("Trivial", params), func(t *testing.T) {
		ct := NewTrivialGlweCiphertext(params.GlweRank(), pt)
		phase := dec.PhaseNew(ct)
		require.True(t, phase.Equal(pt))
	})
}

func TestSampleExtract(t *testing.T) {

	params := newTestParameters(t)
	ecd := NewEncoder(params)
	ringQ := params.RingQ()

	kgen := NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x06}))
	sk := kgen.GenGlweSecretKeyNew()

	enc, err := NewGlweEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x07}))
	require.NoError(t, err)

	pt := ringQ.NewPoly()
	for i := range pt.Coeffs {
		pt.Coeffs[i] = ecd.Encode(uint64(i))
	}
	ct := enc.EncryptNew(pt)

	// The extracted sample decrypts under the LWE reinterpretation of the
	// GLWE key.
	skLWE := sk.AsLweSecretKey()
	require.Equal(t, params.ExtractedLweDimension(), skLWE.Dimension())
	dec := NewDecryptor(skLWE)

	t.Run(testString("SampleExtract", params), func(t *testing.T) {
		for _, h := range []int{0, 1, 255, 511} {
			extracted := SampleExtractNew(ct, h)
			require.Equal(t, params.ExtractedLweDimension(), extracted.Dimension())
			require.Equal(t, ecd.Decode(pt.Coeffs[h]), ecd.Decode(dec.Phase(extracted)))
		}

		require.Panics(t, func() { SampleExtract(ct, params.PolyDegree(), SampleExtractNew(ct, 0)) })
		require.Panics(t, func() { SampleExtract(ct, 0, NewCiphertext(3)) })
	})
}

func TestEvaluator(t *testing.T) {

	params := newTestParameters(t)
	ecd := NewEncoder(params)
	eval := NewEvaluator(params)

	kgen := NewKeyGenerator(params, sampling.NewDeterministicSeeder(sampling.Seed{0x08}))
	sk := kgen.GenSecretKeyNew()

	enc, err := NewEncryptor(params, sk, sampling.NewDeterministicSeeder(sampling.Seed{0x09}))
	require.NoError(t, err)
	dec := NewDecryptor(sk)

	ct1 := enc.EncryptNew(ecd.Encode(3))
	ct2 := enc.EncryptNew(ecd.Encode(5))
	ct3 := NewCiphertext(params.LweDimension())

	t.Run(testString("Add", params), func(t *testing.T) {
		eval.Add(ct1, ct2, ct3)
		require.Equal(t, uint64(8), ecd.Decode(dec.Phase(ct3)))
	})

	t.Run(testString("Sub", params), func(t *testing.T) {
		eval.Sub(ct2, ct1, ct3)
		require.Equal(t, uint64(2), ecd.Decode(dec.Phase(ct3)))
	})

	t.Run(testString("Neg", params), func(t *testing.T) {
		eval.Neg(ct1, ct3)
		require.Equal(t, 2*params.MessageModulus()-3, ecd.Decode(dec.Phase(ct3)))
	})

	t.Run(testString("AddPlaintext", params), func(t *testing.T) {
		eval.AddPlaintext(ct1, ecd.Encode(4), ct3)
		require.Equal(t, uint64(7), ecd.Decode(dec.Phase(ct3)))
	})

	t.Run(testString("DimensionCheck", params), func(t *testing.T) {
		require.Panics(t, func() { eval.Add(ct1, ct2, NewCiphertext(3)) })
	})
}
