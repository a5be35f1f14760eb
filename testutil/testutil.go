package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/voxgo/geom"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int32Range returns a pseudo-random number in [lo, hi).
func (r *RNG) Int32Range(lo, hi int32) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + int32(r.rand.Int63n(int64(hi)-int64(lo)))
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float32 in a loop).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float32()
	}
}

// FillBytes fills dst with random values in range [0, n).
func (r *RNG) FillBytes(dst []uint8, n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = uint8(r.rand.Intn(n))
	}
}

// RandomPoint returns a point with every component in [-radius, radius).
func RandomPoint[P geom.IntegerPoint[P]](r *RNG, radius int32) P {
	var p P
	for i := 0; i < p.Dim(); i++ {
		p = p.With(i, r.Int32Range(-radius, radius))
	}
	return p
}

// RandomKey returns a chunk key aligned to chunkShape whose chunk index lies
// in [-radius, radius) on every axis.
func RandomKey[P geom.IntegerPoint[P]](r *RNG, chunkShape P, radius int32) P {
	return geom.Mul(RandomPoint[P](r, radius), chunkShape)
}
