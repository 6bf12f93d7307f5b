package blindrot

import (
	"math/big"

	"github.com/tuneinsight/tfhe/core/lwe"
	"github.com/tuneinsight/tfhe/utils/bignum"
)

// noisePrecision is the big.Float precision of the noise estimates, enough
// to resolve variances down to the squared torus quantum 2^-128.
const noisePrecision = uint(128)

// NoiseVariance returns the expected variance, as a fraction of the torus,
// of the noise of a bootstrap output sample under binary keys. The first
// term is the noise of the key blocks amplified by the digit recombination,
// the second is the rounding error of the approximate gadget decomposition;
// both accumulate once per mask coefficient of the input.
func NoiseVariance(params lwe.Parameters) *big.Float {
	prec := noisePrecision

	n := bignum.NewFloat(params.LweDimension(), prec)
	N := bignum.NewFloat(params.PolyDegree(), prec)
	kPlusOne := bignum.NewFloat(params.GlweRank()+1, prec)
	levels := bignum.NewFloat(params.DecompositionLevels(), prec)
	B := bignum.Pow(bignum.NewFloat(2, prec), bignum.NewFloat(params.DecompositionBaseLog(), prec))
	sigma := bignum.NewFloat(params.GlweStdDev(), prec)
	twelve := bignum.NewFloat(12, prec)

	t1 := new(big.Float).Mul(B, B)
	t1.Add(t1, bignum.NewFloat(2, prec))
	t1.Mul(t1, levels)
	t1.Mul(t1, kPlusOne)
	t1.Mul(t1, N)
	t1.Quo(t1, twelve)
	t1.Mul(t1, sigma)
	t1.Mul(t1, sigma)

	decompErr := bignum.Pow(B, bignum.NewFloat(-2*params.DecompositionLevels(), prec))
	decompErr.Sub(decompErr, bignum.Pow(bignum.NewFloat(2, prec), bignum.NewFloat(-128, prec)))
	decompErr.Quo(decompErr, twelve)

	t2 := new(big.Float).Mul(bignum.NewFloat(params.GlweRank(), prec), N)
	t2.Quo(t2, bignum.NewFloat(2, prec))
	t2.Add(t2, bignum.NewFloat(1, prec))
	t2.Mul(t2, decompErr)

	v := new(big.Float).Add(t1, t2)
	v.Mul(v, n)
	return v
}

// NoiseBound returns a high probability bound on the absolute noise of a
// bootstrap output sample, as a fraction of the torus: six standard
// deviations of the expected noise.
func NoiseBound(params lwe.Parameters) *big.Float {
	bound := new(big.Float).Sqrt(NoiseVariance(params))
	return bound.Mul(bound, bignum.NewFloat(6, noisePrecision))
}

// NoiseBoundLog2 returns the base two logarithm of NoiseBound.
func NoiseBoundLog2(params lwe.Parameters) float64 {
	log := bignum.Log(NoiseBound(params))
	log.Quo(log, bignum.Log2(noisePrecision))
	f, _ := log.Float64()
	return f
}
