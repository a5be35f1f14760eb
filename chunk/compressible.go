package chunk

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/voxgo/array"
	"github.com/hupe1980/voxgo/compression"
	"github.com/hupe1980/voxgo/geom"
	"github.com/hupe1980/voxgo/internal/cache"
	"github.com/hupe1980/voxgo/resource"
)

// DefaultCacheCapacityBytes bounds the hot tier when no capacity is given.
const DefaultCacheCapacityBytes = 64 << 20

// CompressibleConfig configures a CompressibleStorage.
type CompressibleConfig struct {
	// Compression is the codec for cold chunks.
	Compression compression.Compression
	// CacheCapacityBytes bounds the decompressed hot tier. If 0,
	// DefaultCacheCapacityBytes is used; if negative, the hot tier is only
	// bounded by Controller.
	CacheCapacityBytes int64
	// Controller is an optional memory budget shared with other storages.
	Controller *resource.Controller
}

// StorageStats is a point-in-time view of a CompressibleStorage.
type StorageStats struct {
	HotChunks      int
	ColdChunks     int
	HotBytes       int64
	ColdBytes      int64
	Hits           int64
	Misses         int64
	Compressions   int64
	Decompressions int64
}

type compressedChunk[P geom.IntegerPoint[P], M any] struct {
	extent   geom.Extent[P]
	block    []byte
	metadata M
}

// CompressibleStorage keeps recently used chunks decompressed and
// compresses the rest.
//
// Evicted chunks are encoded with encoding/binary (little endian), so T must
// be a fixed-size type: a sized number, bool, or an array or struct of those.
type CompressibleStorage[P geom.IntegerPoint[P], T any, M any] struct {
	codec    compression.Compression
	rc       *resource.Controller
	elemSize int

	hot *cache.LRU[P, *Chunk[P, T, M]]

	mu        sync.Mutex // guards cold and coldBytes
	cold      map[P]compressedChunk[P, M]
	coldBytes int64

	compressions   atomic.Int64
	decompressions atomic.Int64
}

var _ Storage[geom.Point3i, uint8, struct{}] = (*CompressibleStorage[geom.Point3i, uint8, struct{}])(nil)

// NewCompressibleStorage returns an empty compressing storage.
func NewCompressibleStorage[P geom.IntegerPoint[P], T any, M any](cfg CompressibleConfig) (*CompressibleStorage[P, T, M], error) {
	if !cfg.Compression.Valid() {
		return nil, fmt.Errorf("%w: %d", compression.ErrUnknownCompression, uint8(cfg.Compression))
	}

	elemSize, err := checkElementType[T]()
	if err != nil {
		return nil, err
	}

	capacity := cfg.CacheCapacityBytes
	if capacity == 0 {
		capacity = DefaultCacheCapacityBytes
	}

	s := &CompressibleStorage[P, T, M]{
		codec:    cfg.Compression,
		rc:       cfg.Controller,
		elemSize: elemSize,
		cold:     make(map[P]compressedChunk[P, M]),
	}
	s.hot = cache.NewLRU(capacity, cfg.Controller, s.compressEvicted)

	return s, nil
}

// checkElementType returns the encoded size of T after round-tripping a zero
// value. binary.Decode panics on unexported struct fields, which binary.Size
// accepts.
func checkElementType[T any]() (size int, err error) {
	var zero T
	size = binary.Size(zero)
	if size <= 0 {
		return 0, fmt.Errorf("%w: %T is not fixed-size", ErrUnsupportedElementType, zero)
	}

	defer func() {
		if r := recover(); r != nil {
			size, err = 0, fmt.Errorf("%w: %T cannot be decoded: %v", ErrUnsupportedElementType, zero, r)
		}
	}()

	raw, err := binary.Append(nil, binary.LittleEndian, []T{zero})
	if err != nil {
		return 0, fmt.Errorf("%w: %T: %w", ErrUnsupportedElementType, zero, err)
	}
	if _, err := binary.Decode(raw, binary.LittleEndian, make([]T, 1)); err != nil {
		return 0, fmt.Errorf("%w: %T: %w", ErrUnsupportedElementType, zero, err)
	}
	return size, nil
}

// Compression returns the codec used for cold chunks.
func (s *CompressibleStorage[P, T, M]) Compression() compression.Compression { return s.codec }

func (s *CompressibleStorage[P, T, M]) sizeOf(c *Chunk[P, T, M]) int64 {
	return int64(c.Array.Len()) * int64(s.elemSize)
}

func (s *CompressibleStorage[P, T, M]) encode(c *Chunk[P, T, M]) (compressedChunk[P, M], error) {
	raw, err := binary.Append(nil, binary.LittleEndian, c.Array.Values())
	if err != nil {
		return compressedChunk[P, M]{}, err
	}
	block, err := s.codec.Compress(raw)
	if err != nil {
		return compressedChunk[P, M]{}, err
	}
	return compressedChunk[P, M]{
		extent:   c.Array.Extent(),
		block:    block,
		metadata: c.Metadata,
	}, nil
}

func (s *CompressibleStorage[P, T, M]) decode(cc compressedChunk[P, M]) (*Chunk[P, T, M], error) {
	raw, err := s.codec.Decompress(cc.block)
	if err != nil {
		return nil, err
	}
	values := make([]T, cc.extent.NumPoints())
	if _, err := binary.Decode(raw, binary.LittleEndian, values); err != nil {
		return nil, err
	}
	arr, err := array.FromValues(cc.extent, values)
	if err != nil {
		return nil, err
	}
	return &Chunk[P, T, M]{Array: arr, Metadata: cc.metadata}, nil
}

// compressEvicted runs under the LRU lock.
func (s *CompressibleStorage[P, T, M]) compressEvicted(key P, c *Chunk[P, T, M]) {
	cc, err := s.encode(c)
	if err != nil {
		// Fixed-size element types and validated codecs cannot fail here.
		panic(fmt.Sprintf("chunk: compress %v: %v", key, err))
	}
	s.putCold(key, cc)
}

func (s *CompressibleStorage[P, T, M]) putCold(key P, cc compressedChunk[P, M]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.cold[key]; ok {
		s.coldBytes -= int64(len(old.block))
	}
	s.cold[key] = cc
	s.coldBytes += int64(len(cc.block))
	s.compressions.Add(1)
}

func (s *CompressibleStorage[P, T, M]) takeCold(key P) (compressedChunk[P, M], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cc, ok := s.cold[key]
	if ok {
		delete(s.cold, key)
		s.coldBytes -= int64(len(cc.block))
	}
	return cc, ok
}

func (s *CompressibleStorage[P, T, M]) mustDecode(key P, cc compressedChunk[P, M]) *Chunk[P, T, M] {
	c, err := s.decode(cc)
	if err != nil {
		// Blocks are only ever produced by encode.
		panic(fmt.Sprintf("chunk: decompress %v: %v", key, err))
	}
	s.decompressions.Add(1)
	return c
}

// Get returns the chunk at key, decompressing it into the hot tier if it
// is cold.
func (s *CompressibleStorage[P, T, M]) Get(key P) (*Chunk[P, T, M], bool) {
	if c, ok := s.hot.Get(key); ok {
		return c, true
	}
	cc, ok := s.takeCold(key)
	if !ok {
		return nil, false
	}
	c := s.mustDecode(key, cc)
	s.hot.Add(key, c, s.sizeOf(c))
	return c, true
}

func (s *CompressibleStorage[P, T, M]) GetOrInsertWith(key P, create func() *Chunk[P, T, M]) *Chunk[P, T, M] {
	if c, ok := s.Get(key); ok {
		return c
	}
	c := create()
	s.hot.Add(key, c, s.sizeOf(c))
	return c
}

func (s *CompressibleStorage[P, T, M]) Insert(key P, c *Chunk[P, T, M]) {
	s.takeCold(key)
	s.hot.Add(key, c, s.sizeOf(c))
}

func (s *CompressibleStorage[P, T, M]) Remove(key P) (*Chunk[P, T, M], bool) {
	if c, ok := s.hot.Remove(key); ok {
		return c, true
	}
	cc, ok := s.takeCold(key)
	if !ok {
		return nil, false
	}
	return s.mustDecode(key, cc), true
}

func (s *CompressibleStorage[P, T, M]) Len() int {
	s.mu.Lock()
	cold := len(s.cold)
	s.mu.Unlock()
	return s.hot.Len() + cold
}

func (s *CompressibleStorage[P, T, M]) Keys() []P {
	keys := s.hot.Keys()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.cold {
		keys = append(keys, k)
	}
	return keys
}

// IsCompressed reports whether the chunk at key is currently in the cold tier.
func (s *CompressibleStorage[P, T, M]) IsCompressed(key P) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.cold[key]
	return ok
}

// CompressLRU compresses the least recently used hot chunk. It returns false
// if the hot tier is empty.
func (s *CompressibleStorage[P, T, M]) CompressLRU() bool {
	return s.hot.EvictOldest()
}

// CompressAll moves every hot chunk to the cold tier. Chunks are compressed
// in parallel, bounded by the controller's background workers and
// compression throughput. On error no chunk is lost: everything drained is
// put back into the hot tier.
func (s *CompressibleStorage[P, T, M]) CompressAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keys, chunks := s.hot.Drain()
	if len(keys) == 0 {
		return nil
	}

	encoded := make([]compressedChunk[P, M], len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rc.MaxBackgroundWorkers())

	for i, c := range chunks {
		g.Go(func() error {
			if err := s.rc.AcquireBackground(gctx); err != nil {
				return err
			}
			defer s.rc.ReleaseBackground()

			if err := s.rc.AcquireThroughput(gctx, int(s.sizeOf(c))); err != nil {
				return err
			}
			cc, err := s.encode(c)
			if err != nil {
				return fmt.Errorf("compress %v: %w", keys[i], err)
			}
			encoded[i] = cc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for i, c := range chunks {
			s.hot.Add(keys[i], c, s.sizeOf(c))
		}
		return err
	}

	for i, cc := range encoded {
		s.putCold(keys[i], cc)
	}
	return nil
}

// Stats returns current tier sizes and counters.
func (s *CompressibleStorage[P, T, M]) Stats() StorageStats {
	hits, misses := s.hot.Stats()

	s.mu.Lock()
	coldChunks, coldBytes := len(s.cold), s.coldBytes
	s.mu.Unlock()

	return StorageStats{
		HotChunks:      s.hot.Len(),
		ColdChunks:     coldChunks,
		HotBytes:       s.hot.Size(),
		ColdBytes:      coldBytes,
		Hits:           hits,
		Misses:         misses,
		Compressions:   s.compressions.Load(),
		Decompressions: s.decompressions.Load(),
	}
}
