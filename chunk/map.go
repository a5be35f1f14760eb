package chunk

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hupe1980/voxgo/geom"
)

// Builder holds the settings shared by every level of a pyramid.
type Builder[P geom.IntegerPoint[P], T any, M any] struct {
	// ChunkShape must be a power of two on every axis.
	ChunkShape P
	// AmbientValue is read wherever no chunk exists.
	AmbientValue T
	// DefaultMetadata is attached to chunks created on demand.
	DefaultMetadata M
}

// Build returns an empty Map backed by storage.
func (b Builder[P, T, M]) Build(storage Storage[P, T, M]) (*Map[P, T, M], error) {
	if storage == nil {
		return nil, errors.New("chunk: nil storage")
	}
	indexer, err := NewIndexer(b.ChunkShape)
	if err != nil {
		return nil, err
	}
	return &Map[P, T, M]{
		indexer:     indexer,
		ambient:     b.AmbientValue,
		defaultMeta: b.DefaultMetadata,
		storage:     storage,
	}, nil
}

// BuildWithHashMap returns an empty Map backed by a HashMapStorage.
func (b Builder[P, T, M]) BuildWithHashMap() (*Map[P, T, M], error) {
	return b.Build(NewHashMapStorage[P, T, M]())
}

// BuildWithCompressible returns an empty Map backed by a CompressibleStorage.
func (b Builder[P, T, M]) BuildWithCompressible(cfg CompressibleConfig) (*Map[P, T, M], error) {
	storage, err := NewCompressibleStorage[P, T, M](cfg)
	if err != nil {
		return nil, err
	}
	return b.Build(storage)
}

// Map is a sparse voxel grid of one level of detail.
type Map[P geom.IntegerPoint[P], T any, M any] struct {
	indexer     Indexer[P]
	ambient     T
	defaultMeta M
	storage     Storage[P, T, M]
}

func (m *Map[P, T, M]) Indexer() Indexer[P]       { return m.indexer }
func (m *Map[P, T, M]) ChunkShape() P             { return m.indexer.ChunkShape() }
func (m *Map[P, T, M]) AmbientValue() T           { return m.ambient }
func (m *Map[P, T, M]) DefaultMetadata() M        { return m.defaultMeta }
func (m *Map[P, T, M]) Storage() Storage[P, T, M] { return m.storage }
func (m *Map[P, T, M]) Len() int                  { return m.storage.Len() }

// NewAmbientChunk returns a detached chunk at key filled with the ambient
// value.
func (m *Map[P, T, M]) NewAmbientChunk(key P) *Chunk[P, T, M] {
	return New(m.indexer.ExtentForKey(key), m.ambient, m.defaultMeta)
}

// GetChunk returns the chunk at key if present.
func (m *Map[P, T, M]) GetChunk(key P) (*Chunk[P, T, M], bool) {
	return m.storage.Get(key)
}

// GetChunkOrInsertAmbient returns the chunk at key, creating it filled with
// the ambient value if absent. key must be aligned.
func (m *Map[P, T, M]) GetChunkOrInsertAmbient(key P) *Chunk[P, T, M] {
	return m.storage.GetOrInsertWith(key, func() *Chunk[P, T, M] {
		return m.NewAmbientChunk(key)
	})
}

// InsertChunk stores c at key after checking alignment and shape. The
// chunk's array is moved to key if its minimum differs.
func (m *Map[P, T, M]) InsertChunk(key P, c *Chunk[P, T, M]) error {
	if !m.indexer.IsAligned(key) {
		return fmt.Errorf("%w: %v", ErrMisalignedKey, key)
	}
	if shape := c.Array.Extent().Shape; shape != m.indexer.ChunkShape() {
		return fmt.Errorf("%w: got %v, want %v", ErrChunkShapeMismatch, shape, m.indexer.ChunkShape())
	}
	c.Array.SetMinimum(key)
	m.storage.Insert(key, c)
	return nil
}

// RemoveChunk deletes and returns the chunk at key.
func (m *Map[P, T, M]) RemoveChunk(key P) (*Chunk[P, T, M], bool) {
	return m.storage.Remove(key)
}

// ChunkKeys returns all stored keys in layout order (first axis fastest).
func (m *Map[P, T, M]) ChunkKeys() []P {
	keys := m.storage.Keys()
	slices.SortFunc(keys, func(a, b P) int {
		switch {
		case geom.Less(a, b):
			return -1
		case geom.Less(b, a):
			return 1
		default:
			return 0
		}
	})
	return keys
}

// Get returns the voxel at p, or the ambient value if its chunk is absent.
func (m *Map[P, T, M]) Get(p P) T {
	c, ok := m.storage.Get(m.indexer.KeyForPoint(p))
	if !ok {
		return m.ambient
	}
	return c.Array.Get(p)
}

// Set writes the voxel at p, creating its chunk if needed.
func (m *Map[P, T, M]) Set(p P, v T) {
	m.GetChunkOrInsertAmbient(m.indexer.KeyForPoint(p)).Array.Set(p, v)
}

// FillExtent writes v to every voxel of ext, creating chunks as needed.
func (m *Map[P, T, M]) FillExtent(ext geom.Extent[P], v T) {
	for _, key := range m.indexer.KeysForExtent(ext) {
		m.GetChunkOrInsertAmbient(key).Array.FillExtent(ext, v)
	}
}
