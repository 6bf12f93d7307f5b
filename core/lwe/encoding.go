package lwe

// Encoder encodes messages modulo MessageModulus on the most significant
// bits of torus values, keeping one bit of padding below the sign bit so
// that encodings of valid messages stay on the positive half of the torus.
type Encoder struct {
	delta uint64
	mask  uint64
}

// NewEncoder creates a new Encoder from the message modulus of params.
func NewEncoder(params Parameters) *Encoder {
	return &Encoder{
		delta: params.Delta(),
		mask:  2*params.MessageModulus() - 1,
	}
}

// Encode returns the torus value m * Delta, with m reduced modulo twice the
// message modulus.
func (e *Encoder) Encode(m uint64) uint64 {
	return (m & e.mask) * e.delta
}

// Decode rounds pt to the nearest multiple of Delta and returns the
// corresponding message, modulo twice the message modulus.
func (e *Encoder) Decode(pt uint64) uint64 {
	return ((pt + e.delta/2) / e.delta) & e.mask
}

// Delta returns the scaling factor between messages and torus values.
func (e *Encoder) Delta() uint64 {
	return e.delta
}
