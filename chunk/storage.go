package chunk

import (
	"github.com/hupe1980/voxgo/geom"
)

// Storage owns the chunks of one level.
//
// Implementations may do real work on every call (decompression,
// allocation) but always complete synchronously. They are not safe for
// concurrent use unless documented otherwise.
type Storage[P geom.IntegerPoint[P], T any, M any] interface {
	// Get returns the chunk at key if present.
	Get(key P) (*Chunk[P, T, M], bool)
	// GetOrInsertWith returns the chunk at key, inserting create() first if
	// the key is absent.
	GetOrInsertWith(key P, create func() *Chunk[P, T, M]) *Chunk[P, T, M]
	// Insert stores c at key, replacing any existing chunk.
	Insert(key P, c *Chunk[P, T, M])
	// Remove deletes and returns the chunk at key.
	Remove(key P) (*Chunk[P, T, M], bool)
	// Len returns the number of stored chunks.
	Len() int
	// Keys returns the stored chunk keys in no particular order.
	Keys() []P
}

// HashMapStorage keeps every chunk in a Go map.
type HashMapStorage[P geom.IntegerPoint[P], T any, M any] struct {
	chunks map[P]*Chunk[P, T, M]
}

var _ Storage[geom.Point3i, uint8, struct{}] = (*HashMapStorage[geom.Point3i, uint8, struct{}])(nil)

// NewHashMapStorage returns an empty map-backed storage.
func NewHashMapStorage[P geom.IntegerPoint[P], T any, M any]() *HashMapStorage[P, T, M] {
	return &HashMapStorage[P, T, M]{chunks: make(map[P]*Chunk[P, T, M])}
}

func (s *HashMapStorage[P, T, M]) Get(key P) (*Chunk[P, T, M], bool) {
	c, ok := s.chunks[key]
	return c, ok
}

func (s *HashMapStorage[P, T, M]) GetOrInsertWith(key P, create func() *Chunk[P, T, M]) *Chunk[P, T, M] {
	if c, ok := s.chunks[key]; ok {
		return c
	}
	c := create()
	s.chunks[key] = c
	return c
}

func (s *HashMapStorage[P, T, M]) Insert(key P, c *Chunk[P, T, M]) {
	s.chunks[key] = c
}

func (s *HashMapStorage[P, T, M]) Remove(key P) (*Chunk[P, T, M], bool) {
	c, ok := s.chunks[key]
	if ok {
		delete(s.chunks, key)
	}
	return c, ok
}

func (s *HashMapStorage[P, T, M]) Len() int { return len(s.chunks) }

func (s *HashMapStorage[P, T, M]) Keys() []P {
	keys := make([]P, 0, len(s.chunks))
	for k := range s.chunks {
		keys = append(keys, k)
	}
	return keys
}
