package ring

import (
	"fmt"
)

// Decomposer computes balanced signed digit decompositions of torus values in
// a gadget basis 2^baseLog with a given number of levels. Only the levels
// most significant base-2^baseLog digits of a value are decomposed; the
// remaining low-order bits are rounded away.
type Decomposer struct {
	baseLog int
	levels  int
}

// NewDecomposer creates a new Decomposer for the basis 2^baseLog with the
// given number of levels. It returns an error if baseLog*levels exceeds 64
// bits or if either parameter is not positive.
func NewDecomposer(baseLog, levels int) (d *Decomposer, err error) {
	if baseLog < 1 {
		return nil, fmt.Errorf("invalid baseLog: must be at least 1 but is %d", baseLog)
	}
	if levels < 1 {
		return nil, fmt.Errorf("invalid levels: must be at least 1 but is %d", levels)
	}
	if baseLog*levels > 64 {
		return nil, fmt.Errorf("invalid decomposition: baseLog*levels cannot exceed 64 but is %d", baseLog*levels)
	}
	return &Decomposer{baseLog: baseLog, levels: levels}, nil
}

// BaseLog returns the log2 of the decomposition basis.
func (d Decomposer) BaseLog() int {
	return d.baseLog
}

// Levels returns the number of levels of the decomposition.
func (d Decomposer) Levels() int {
	return d.levels
}

// Gadget returns the j-th gadget basis element 2^(64-(j+1)*baseLog), with
// j = 0 the most significant level.
func (d Decomposer) Gadget(j int) uint64 {
	return 1 << (64 - (j+1)*d.baseLog)
}

// ClosestRepresentable returns the multiple of 2^(64-baseLog*levels) closest
// to v, which is the part of v that the decomposition retains.
func (d Decomposer) ClosestRepresentable(v uint64) uint64 {
	nonRep := 64 - d.baseLog*d.levels
	if nonRep == 0 {
		return v
	}
	return ((v >> nonRep) + ((v >> (nonRep - 1)) & 1)) << nonRep
}

// Decompose writes the signed digits of v on digits, most significant level
// first, so that sum_j digits[j] * Gadget(j) = ClosestRepresentable(v)
// mod 2^64. Digits lie in [-2^(baseLog-1), 2^(baseLog-1)] and are stored in
// two's complement. The method panics if len(digits) != Levels().
func (d Decomposer) Decompose(v uint64, digits []uint64) {
	if len(digits) != d.levels {
		panic(fmt.Sprintf("cannot Decompose: len(digits) should be %d but is %d", d.levels, len(digits)))
	}

	b := d.baseLog
	mask := (uint64(1) << b) - 1

	state := d.ClosestRepresentable(v) >> (64 - b*d.levels)

	for t := 0; t < d.levels; t++ {
		res := state & mask
		state >>= b
		carry := ((res - 1) | state) & res
		carry >>= b - 1
		state += carry
		digits[d.levels-1-t] = res - (carry << b)
	}
}

// DecomposePoly decomposes each coefficient of pol, writing the j-th signed
// digit of the i-th coefficient on digits[j].Coeffs[i]. The method panics if
// len(digits) != Levels() or if the degrees do not match.
func (d Decomposer) DecomposePoly(pol Poly, digits []Poly) {
	if len(digits) != d.levels {
		panic(fmt.Sprintf("cannot DecomposePoly: len(digits) should be %d but is %d", d.levels, len(digits)))
	}
	for j := range digits {
		if digits[j].N() != pol.N() {
			panic(fmt.Sprintf("cannot DecomposePoly: digits[%d] degree should be %d but is %d", j, pol.N(), digits[j].N()))
		}
	}

	b := d.baseLog
	levels := d.levels
	mask := (uint64(1) << b) - 1
	shift := 64 - b*levels

	for i, v := range pol.Coeffs {

		state := d.ClosestRepresentable(v) >> shift

		for t := 0; t < levels; t++ {
			res := state & mask
			state >>= b
			carry := ((res - 1) | state) & res
			carry >>= b - 1
			state += carry
			digits[levels-1-t].Coeffs[i] = res - (carry << b)
		}
	}
}
