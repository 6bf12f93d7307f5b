package lwe

import (
	"fmt"
)

// Evaluator performs linear homomorphic operations on LWE ciphertexts.
type Evaluator struct {
	params Parameters
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator(params Parameters) *Evaluator {
	return &Evaluator{params: params}
}

func checkDimensions(opname string, cts ...Ciphertext) {
	for _, ct := range cts[1:] {
		if ct.Dimension() != cts[0].Dimension() {
			panic(fmt.Sprintf("cannot %s: ciphertext dimensions do not match", opname))
		}
	}
}

// Add evaluates ct3 = ct1 + ct2.
func (eval *Evaluator) Add(ct1, ct2, ct3 Ciphertext) {
	checkDimensions("Add", ct1, ct2, ct3)
	for i := range ct3.Value {
		ct3.Value[i] = ct1.Value[i] + ct2.Value[i]
	}
}

// Sub evaluates ct3 = ct1 - ct2.
func (eval *Evaluator) Sub(ct1, ct2, ct3 Ciphertext) {
	checkDimensions("Sub", ct1, ct2, ct3)
	for i := range ct3.Value {
		ct3.Value[i] = ct1.Value[i] - ct2.Value[i]
	}
}

// Neg evaluates ct2 = -ct1.
func (eval *Evaluator) Neg(ct1, ct2 Ciphertext) {
	checkDimensions("Neg", ct1, ct2)
	for i := range ct2.Value {
		ct2.Value[i] = -ct1.Value[i]
	}
}

// AddPlaintext evaluates ct2 = ct1 + pt, with pt a torus plaintext.
func (eval *Evaluator) AddPlaintext(ct1 Ciphertext, pt uint64, ct2 Ciphertext) {
	checkDimensions("AddPlaintext", ct1, ct2)
	copy(ct2.Value, ct1.Value)
	*ct2.Body() += pt
}
