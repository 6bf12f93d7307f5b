package lwe

import (
	"fmt"

	"github.com/tuneinsight/tfhe/utils/containers"
)

// Ciphertext is an LWE ciphertext: a mask of n uniform coefficients followed
// by the body coefficient.
type Ciphertext struct {
	Value containers.Vector[uint64]
}

// NewCiphertext allocates a zero LWE ciphertext of dimension n.
func NewCiphertext(n int) Ciphertext {
	return Ciphertext{Value: containers.NewVector[uint64](n + 1)}
}

// Dimension returns the dimension n of the ciphertext.
func (ct Ciphertext) Dimension() int {
	return ct.Value.Len() - 1
}

// Mask returns a view on the mask coefficients of the ciphertext.
func (ct Ciphertext) Mask() []uint64 {
	mask, _ := containers.SplitAt([]uint64(ct.Value), ct.Dimension())
	return mask
}

// Body returns a pointer to the body coefficient of the ciphertext.
func (ct Ciphertext) Body() *uint64 {
	_, body := containers.SplitAt([]uint64(ct.Value), ct.Dimension())
	return &body[0]
}

// CopyNew creates a deep copy of the target ciphertext.
func (ct Ciphertext) CopyNew() Ciphertext {
	return Ciphertext{Value: ct.Value.CopyNew()}
}

// Copy copies ct1 on the target ciphertext. The method panics if the
// dimensions do not match.
func (ct Ciphertext) Copy(ct1 Ciphertext) {
	if ct.Dimension() != ct1.Dimension() {
		panic(fmt.Sprintf("cannot Copy: ciphertext dimension should be %d but is %d", ct.Dimension(), ct1.Dimension()))
	}
	copy(ct.Value, ct1.Value)
}

// Equal returns whether the two ciphertexts are equal.
func (ct Ciphertext) Equal(other Ciphertext) bool {
	return ct.Value.Equal(other.Value)
}
