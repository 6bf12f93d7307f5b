package sampling

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// SeedSize is the byte size of a Seed.
const SeedSize = 32

// Seed is the 256-bit seed of a deterministic random stream.
type Seed [SeedSize]byte

// Fork derives the i-th child seed of s with blake3. Distinct indices yield
// independent streams and the derivation is reproducible, which allows seeded
// key material generated block-by-block (sequentially or in parallel) to be
// re-expanded from the root seed alone.
func (s Seed) Fork(i int) (child Seed) {
	hasher := blake3.New()
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, int64(i))
	buf.Write(s[:])
	hasher.Write(buf.Bytes())
	copy(child[:], hasher.Sum(nil)[:SeedSize])
	return
}

// Seeder produces fresh seeds on demand. Implementations are the only entropy
// boundary of the library: key generation aborts if Seed returns an error.
type Seeder interface {
	Seed() (Seed, error)
}

// CryptoSeeder draws seeds from crypto/rand.
type CryptoSeeder struct{}

// NewSeeder returns a Seeder backed by the system entropy source.
func NewSeeder() *CryptoSeeder {
	return &CryptoSeeder{}
}

// Seed returns a fresh seed read from crypto/rand.
func (CryptoSeeder) Seed() (seed Seed, err error) {
	if _, err = rand.Read(seed[:]); err != nil {
		return Seed{}, fmt.Errorf("cannot Seed: %w", err)
	}
	return
}

// DeterministicSeeder derives a reproducible sequence of seeds from a single
// root seed using the blake3 XOF. It is meant for tests and for regenerating
// seeded key material; it provides no fresh entropy.
type DeterministicSeeder struct {
	xof *blake3.Digest
}

// NewDeterministicSeeder returns a Seeder that replays the seed sequence
// determined by root.
func NewDeterministicSeeder(root Seed) *DeterministicSeeder {
	hasher := blake3.New()
	hasher.Write(root[:])
	return &DeterministicSeeder{xof: hasher.Digest()}
}

// Seed returns the next seed of the deterministic sequence.
func (s *DeterministicSeeder) Seed() (seed Seed, err error) {
	if _, err = io.ReadFull(s.xof, seed[:]); err != nil {
		return Seed{}, fmt.Errorf("cannot Seed: %w", err)
	}
	return
}
