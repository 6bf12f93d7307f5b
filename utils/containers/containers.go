// Package containers implements capability-style views over contiguous numeric
// buffers: read and write access, construction by draining a producer, and
// sequential or parallel splitting into disjoint chunks. Every key, ciphertext
// and polynomial buffer of the library is carried by one of its storage kinds,
// so the same generic routines run over owned, borrowed or worker-sliced
// memory.
package containers

import (
	"fmt"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Alignment is the byte boundary targeted by aligned allocations.
const Alignment = 64

// Element is the set of coefficient types a container can hold.
type Element interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// Container is the read capability over a contiguous buffer of elements.
type Container[E Element] interface {
	Len() int
	View() []E
}

// MutContainer is the write capability: a Container whose buffer can also be
// mutated through MutView.
type MutContainer[E Element] interface {
	Container[E]
	MutView() []E
}

// Vector is an owned growable buffer of elements. Plain slices convert to and
// from Vector at no cost, so the free splitting functions of this package
// apply to both.
type Vector[E Element] []E

// NewVector allocates a zeroed Vector of n elements.
func NewVector[E Element](n int) Vector[E] {
	return make(Vector[E], n)
}

// Len returns the number of elements of the vector.
func (v Vector[E]) Len() int {
	return len(v)
}

// View returns the buffer of the vector. The returned slice must be treated
// as read-only.
func (v Vector[E]) View() []E {
	return v
}

// MutView returns the mutable buffer of the vector.
func (v Vector[E]) MutView() []E {
	return v
}

// CopyNew returns a deep copy of the vector.
func (v Vector[E]) CopyNew() (vcpy Vector[E]) {
	vcpy = make(Vector[E], len(v))
	copy(vcpy, v)
	return
}

// Equal returns true if both vectors have the same length and content.
func (v Vector[E]) Equal(other Vector[E]) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// AlignedVector is an owned buffer whose first element is placed on an
// Alignment-byte boundary whenever the backing allocation permits it. It is
// used for the Fourier-domain buffers of the transform hot path.
type AlignedVector[E Element] struct {
	backing []E
	data    []E
}

// NewAlignedVector allocates a zeroed AlignedVector of n elements.
func NewAlignedVector[E Element](n int) *AlignedVector[E] {
	var e E
	size := int(unsafe.Sizeof(e))
	pad := Alignment / size
	if pad == 0 {
		pad = 1
	}
	backing := make([]E, n+pad)
	var off int
	addr := uintptr(unsafe.Pointer(&backing[0]))
	for off < pad && (addr+uintptr(off*size))&(Alignment-1) != 0 {
		off++
	}
	if (addr+uintptr(off*size))&(Alignment-1) != 0 {
		off = 0
	}
	return &AlignedVector[E]{backing: backing, data: backing[off : off+n : off+n]}
}

// Len returns the number of elements of the vector.
func (v *AlignedVector[E]) Len() int {
	return len(v.data)
}

// View returns the aligned buffer of the vector. The returned slice must be
// treated as read-only.
func (v *AlignedVector[E]) View() []E {
	return v.data
}

// MutView returns the mutable aligned buffer of the vector.
func (v *AlignedVector[E]) MutView() []E {
	return v.data
}

// CopyNew returns a deep copy of the vector in a fresh aligned allocation.
func (v *AlignedVector[E]) CopyNew() *AlignedVector[E] {
	vcpy := NewAlignedVector[E](len(v.data))
	copy(vcpy.data, v.data)
	return vcpy
}

var (
	_ MutContainer[uint64]     = (Vector[uint64])(nil)
	_ MutContainer[complex128] = (*AlignedVector[complex128])(nil)
)

// Collect drains the producer next into a freshly allocated Vector, stopping
// when next reports exhaustion.
func Collect[E Element](next func() (E, bool)) (v Vector[E]) {
	for e, ok := next(); ok; e, ok = next() {
		v = append(v, e)
	}
	return
}

// CollectAligned drains the producer next into a freshly allocated
// AlignedVector.
func CollectAligned[E Element](next func() (E, bool)) *AlignedVector[E] {
	tmp := Collect(next)
	v := NewAlignedVector[E](len(tmp))
	copy(v.data, tmp)
	return v
}

// FromFunc builds a Vector of n elements with v[i] = f(i).
func FromFunc[E Element](n int, f func(i int) E) Vector[E] {
	if n < 0 {
		panic(fmt.Errorf("cannot FromFunc: negative length %d", n))
	}
	v := make(Vector[E], n)
	for i := range v {
		v[i] = f(i)
	}
	return v
}
