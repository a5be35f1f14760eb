package chunk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/voxgo/compression"
	"github.com/hupe1980/voxgo/geom"
	"github.com/hupe1980/voxgo/resource"
)

const testChunkBytes = 8 * 8 * 2 // 8x8 uint16

func newCompressible(t *testing.T, cfg CompressibleConfig) (*CompressibleStorage[geom.Point2i, uint16, string], Indexer[geom.Point2i]) {
	t.Helper()
	s, err := NewCompressibleStorage[geom.Point2i, uint16, string](cfg)
	require.NoError(t, err)
	ix, err := NewIndexer(geom.Point2i{8, 8})
	require.NoError(t, err)
	return s, ix
}

func filledChunk(ix Indexer[geom.Point2i], key geom.Point2i, v uint16) *Chunk[geom.Point2i, uint16, string] {
	c := New(ix.ExtentForKey(key), v, key.String())
	// Make the contents position dependent so round trips are meaningful.
	c.Array.Set(key, v+1)
	return c
}

func TestCompressibleStorage_EvictsAndRestores(t *testing.T) {
	for _, codec := range []compression.Compression{compression.None, compression.LZ4, compression.Snappy, compression.Zstd} {
		t.Run(codec.String(), func(t *testing.T) {
			s, ix := newCompressible(t, CompressibleConfig{Compression: codec, CacheCapacityBytes: 2 * testChunkBytes})

			keys := []geom.Point2i{{0, 0}, {8, 0}, {-8, 0}, {0, -8}}
			for i, k := range keys {
				s.Insert(k, filledChunk(ix, k, uint16(i*10)))
			}

			st := s.Stats()
			assert.Equal(t, 2, st.HotChunks)
			assert.Equal(t, 2, st.ColdChunks)
			assert.Equal(t, int64(2), st.Compressions)
			assert.Equal(t, 4, s.Len())
			assert.ElementsMatch(t, keys, s.Keys())
			assert.True(t, s.IsCompressed(keys[0]))
			assert.True(t, s.IsCompressed(keys[1]))

			for i, k := range keys {
				c, ok := s.Get(k)
				require.True(t, ok)
				assert.Equal(t, k.String(), c.Metadata)
				assert.Equal(t, ix.ExtentForKey(k), c.Array.Extent())
				assert.Equal(t, uint16(i*10+1), c.Array.Get(k))
				assert.Equal(t, uint16(i*10), c.Array.Get(geom.Add(k, geom.Point2i{7, 7})))
			}
			assert.Equal(t, 4, s.Len())
			assert.GreaterOrEqual(t, s.Stats().Decompressions, int64(2))
		})
	}
}

func TestCompressibleStorage_MutationsSurviveCompression(t *testing.T) {
	s, ix := newCompressible(t, CompressibleConfig{Compression: compression.Snappy})

	c := s.GetOrInsertWith(geom.Point2i{}, func() *Chunk[geom.Point2i, uint16, string] {
		return New(ix.ExtentForKey(geom.Point2i{}), uint16(0), "x")
	})
	c.Array.Set(geom.Point2i{3, 4}, 77)

	require.True(t, s.CompressLRU())
	assert.False(t, s.CompressLRU())
	assert.True(t, s.IsCompressed(geom.Point2i{}))

	again := s.GetOrInsertWith(geom.Point2i{}, func() *Chunk[geom.Point2i, uint16, string] {
		t.Fatal("chunk should be restored, not recreated")
		return nil
	})
	assert.Equal(t, uint16(77), again.Array.Get(geom.Point2i{3, 4}))
	assert.False(t, s.IsCompressed(geom.Point2i{}))
}

func TestCompressibleStorage_CompressAll(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxBackgroundWorkers: 3})
	s, ix := newCompressible(t, CompressibleConfig{Compression: compression.Zstd, Controller: rc})

	for x := int32(-4); x < 4; x++ {
		k := geom.Point2i{x * 8, 0}
		s.Insert(k, filledChunk(ix, k, uint16(x+100)))
	}
	assert.Equal(t, int64(8*testChunkBytes), rc.MemoryUsage())

	require.NoError(t, s.CompressAll(context.Background()))

	st := s.Stats()
	assert.Zero(t, st.HotChunks)
	assert.Equal(t, 8, st.ColdChunks)
	assert.Less(t, st.ColdBytes, int64(8*testChunkBytes))
	assert.Zero(t, rc.MemoryUsage())

	c, ok := s.Remove(geom.Point2i{-32, 0})
	require.True(t, ok)
	assert.Equal(t, uint16(96), c.Array.Get(geom.Point2i{-31, 1}))
	assert.Equal(t, 7, s.Len())
}

func TestCompressibleStorage_CompressAllCanceledKeepsChunks(t *testing.T) {
	rc := resource.NewController(resource.Config{CompressionBytesPerSec: 1})
	s, ix := newCompressible(t, CompressibleConfig{Compression: compression.LZ4, Controller: rc})

	for x := int32(0); x < 3; x++ {
		k := geom.Point2i{x * 8, 8}
		s.Insert(k, filledChunk(ix, k, 1))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, s.CompressAll(ctx))

	st := s.Stats()
	assert.Equal(t, 3, st.HotChunks)
	assert.Zero(t, st.ColdChunks)
}

func TestCompressibleStorage_SharedBudget(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 3 * testChunkBytes})
	a, ix := newCompressible(t, CompressibleConfig{Compression: compression.LZ4, Controller: rc})
	b, _ := newCompressible(t, CompressibleConfig{Compression: compression.LZ4, Controller: rc})

	a.Insert(geom.Point2i{0, 0}, filledChunk(ix, geom.Point2i{0, 0}, 1))
	a.Insert(geom.Point2i{8, 0}, filledChunk(ix, geom.Point2i{8, 0}, 2))
	b.Insert(geom.Point2i{0, 0}, filledChunk(ix, geom.Point2i{0, 0}, 3))
	assert.Equal(t, int64(3*testChunkBytes), rc.MemoryUsage())

	// b has to make room inside its own hot tier; a is untouched.
	b.Insert(geom.Point2i{8, 0}, filledChunk(ix, geom.Point2i{8, 0}, 4))
	assert.Equal(t, 2, a.Stats().HotChunks)
	assert.Equal(t, 1, b.Stats().HotChunks)
	assert.Equal(t, 1, b.Stats().ColdChunks)
	assert.Equal(t, int64(3*testChunkBytes), rc.MemoryUsage())
}

type packedVoxel struct {
	material, light uint8
}

type materialVoxel struct {
	Material uint8
	Light    uint8
}

func TestNewCompressibleStorage_Validation(t *testing.T) {
	_, err := NewCompressibleStorage[geom.Point2i, int, struct{}](CompressibleConfig{})
	assert.ErrorIs(t, err, ErrUnsupportedElementType)

	// Fixed-size, but unexported fields cannot be decoded.
	_, err = NewCompressibleStorage[geom.Point2i, packedVoxel, struct{}](CompressibleConfig{})
	assert.ErrorIs(t, err, ErrUnsupportedElementType)

	_, err = Builder[geom.Point2i, packedVoxel, struct{}]{ChunkShape: geom.Point2i{4, 4}}.
		BuildWithCompressible(CompressibleConfig{Compression: compression.LZ4})
	assert.ErrorIs(t, err, ErrUnsupportedElementType)

	_, err = NewCompressibleStorage[geom.Point2i, uint8, struct{}](CompressibleConfig{Compression: compression.Compression(99)})
	assert.ErrorIs(t, err, compression.ErrUnknownCompression)
}

func TestCompressibleStorage_StructElements(t *testing.T) {
	m, err := Builder[geom.Point2i, materialVoxel, struct{}]{ChunkShape: geom.Point2i{4, 4}}.
		BuildWithCompressible(CompressibleConfig{Compression: compression.LZ4, CacheCapacityBytes: 32})
	require.NoError(t, err)

	m.Set(geom.Point2i{0, 0}, materialVoxel{Material: 3, Light: 15})
	// Evicts the first chunk into the cold tier.
	m.Set(geom.Point2i{4, 0}, materialVoxel{Material: 1})

	s := m.Storage().(*CompressibleStorage[geom.Point2i, materialVoxel, struct{}])
	require.True(t, s.IsCompressed(geom.Point2i{0, 0}))

	assert.Equal(t, materialVoxel{Material: 3, Light: 15}, m.Get(geom.Point2i{0, 0}))
	assert.Equal(t, materialVoxel{}, m.Get(geom.Point2i{1, 0}))
	assert.Equal(t, materialVoxel{Material: 1}, m.Get(geom.Point2i{4, 0}))
}
