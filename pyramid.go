package voxgo

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/voxgo/chunk"
	"github.com/hupe1980/voxgo/geom"
	"github.com/hupe1980/voxgo/sampler"
)

// maxSpanLog2 keeps chunkShape << (levels-1) inside int32.
const maxSpanLog2 = 30

// Pyramid is a stack of chunk maps with halving sample density per level.
//
// All levels share one chunk shape. Level 0 is the finest.
type Pyramid[P geom.IntegerPoint[P], T any, M any] struct {
	levels  []*chunk.Map[P, T, M]
	backend Backend
	logger  *Logger
	metrics MetricsCollector
}

// New creates a pyramid with numLevels empty levels, each built from b on
// the backend selected by opts.
func New[P geom.IntegerPoint[P], T any, M any](b chunk.Builder[P, T, M], numLevels uint8, opts ...Option) (*Pyramid[P, T, M], error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if numLevels == 0 {
		return nil, fmt.Errorf("%w: pyramid needs at least one level", ErrInvalidArgument)
	}

	indexer, err := chunk.NewIndexer(b.ChunkShape)
	if err != nil {
		return nil, err
	}
	shapeLog2 := indexer.ShapeLog2()
	for i := 0; i < shapeLog2.Dim(); i++ {
		if int(shapeLog2.At(i))+int(numLevels)-1 > maxSpanLog2 {
			return nil, fmt.Errorf("%w: chunk shape %v with %d levels overflows int32 coordinates",
				ErrInvalidArgument, b.ChunkShape, numLevels)
		}
	}

	levels := make([]*chunk.Map[P, T, M], 0, numLevels)
	for range int(numLevels) {
		var (
			m   *chunk.Map[P, T, M]
			err error
		)
		switch o.backend {
		case BackendCompressible:
			m, err = b.BuildWithCompressible(chunk.CompressibleConfig{
				Compression:        o.compression,
				CacheCapacityBytes: o.cacheBytes,
				Controller:         o.rc,
			})
		default:
			m, err = b.BuildWithHashMap()
		}
		if err != nil {
			return nil, err
		}
		levels = append(levels, m)
	}

	o.logger.LogBuild(len(levels), o.backend, b.ChunkShape)

	return &Pyramid[P, T, M]{
		levels:  levels,
		backend: o.backend,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}, nil
}

// New2 creates a 2-dimensional pyramid.
func New2[T any, M any](b chunk.Builder[geom.Point2i, T, M], numLevels uint8, opts ...Option) (*Pyramid[geom.Point2i, T, M], error) {
	return New(b, numLevels, opts...)
}

// New3 creates a 3-dimensional pyramid.
func New3[T any, M any](b chunk.Builder[geom.Point3i, T, M], numLevels uint8, opts ...Option) (*Pyramid[geom.Point3i, T, M], error) {
	return New(b, numLevels, opts...)
}

// NumLevels returns the number of levels.
func (p *Pyramid[P, T, M]) NumLevels() int { return len(p.levels) }

// Backend returns the storage backend of the levels.
func (p *Pyramid[P, T, M]) Backend() Backend { return p.backend }

// ChunkShape returns the chunk shape shared by all levels.
func (p *Pyramid[P, T, M]) ChunkShape() P { return p.levels[0].ChunkShape() }

// Levels returns the levels, finest first. The slice is a copy; the maps
// are not.
func (p *Pyramid[P, T, M]) Levels() []*chunk.Map[P, T, M] {
	out := make([]*chunk.Map[P, T, M], len(p.levels))
	copy(out, p.levels)
	return out
}

// Level returns the chunk map of the given level. Reads and writes through
// it bypass downsampling.
func (p *Pyramid[P, T, M]) Level(lod uint8) (*chunk.Map[P, T, M], error) {
	if int(lod) >= len(p.levels) {
		return nil, &LevelOutOfRangeError{LOD: lod, NumLevels: len(p.levels)}
	}
	return p.levels[lod], nil
}

// MustLevel is like Level but panics if lod is out of range.
func (p *Pyramid[P, T, M]) MustLevel(lod uint8) *chunk.Map[P, T, M] {
	m, err := p.Level(lod)
	if err != nil {
		panic(err)
	}
	return m
}

func (p *Pyramid[P, T, M]) checkLevels(srcLOD, dstLOD uint8) error {
	if dstLOD <= srcLOD {
		return &InvalidLevelOrderError{SrcLOD: srcLOD, DstLOD: dstLOD}
	}
	if int(dstLOD) >= len(p.levels) {
		return &LevelOutOfRangeError{LOD: dstLOD, NumLevels: len(p.levels)}
	}
	return nil
}

// DownsampleChunk propagates the chunk at srcChunkKey in level srcLOD into
// level dstLOD.
//
// The destination chunk is created with the destination's ambient value if
// absent. If the source chunk exists, s writes its reduced samples into the
// destination; otherwise the same region is filled with the source level's
// ambient value. The region is chunkShape >> (dstLOD - srcLOD) voxels wide
// on every axis.
//
// dstLOD must be greater than srcLOD and both must be valid levels. On any
// error no level is modified.
func (p *Pyramid[P, T, M]) DownsampleChunk(s sampler.Downsampler[P, T], srcChunkKey P, srcLOD, dstLOD uint8) error {
	start := time.Now()

	dstKey, sparse, err := p.downsampleChunk(s, srcChunkKey, srcLOD, dstLOD)

	p.metrics.RecordDownsample(dstLOD-srcLOD, sparse, time.Since(start), err)
	p.logger.LogDownsample(srcChunkKey, dstKey, srcLOD, dstLOD, sparse, err)
	return err
}

func (p *Pyramid[P, T, M]) downsampleChunk(s sampler.Downsampler[P, T], srcChunkKey P, srcLOD, dstLOD uint8) (dstKey P, sparse bool, err error) {
	if err := p.checkLevels(srcLOD, dstLOD); err != nil {
		return dstKey, false, err
	}
	lodDelta := dstLOD - srcLOD

	// Split at dstLOD so the two levels come from disjoint views.
	head, tail := p.levels[:dstLOD], p.levels[dstLOD:]
	srcMap, dstMap := head[srcLOD], tail[0]

	chunkShape := srcMap.ChunkShape()
	if !srcMap.Indexer().IsAligned(srcChunkKey) {
		return dstKey, false, fmt.Errorf("%w: %w: %v", ErrInvalidArgument, chunk.ErrMisalignedKey, srcChunkKey)
	}

	srcChunk, ok := srcMap.GetChunk(srcChunkKey)
	if ok {
		if shape := srcChunk.Array.Extent().Shape; shape != chunkShape {
			return dstKey, false, fmt.Errorf("%w: chunk %v has shape %v, want %v",
				chunk.ErrChunkShapeMismatch, srcChunkKey, shape, chunkShape)
		}
	}

	dst := DestinationForSourceChunk(chunkShape, srcChunkKey, lodDelta)
	dstChunk := dstMap.GetChunkOrInsertAmbient(dst.ChunkKey)

	if ok {
		s.Downsample(srcChunk.Array, dstChunk.Array, dst.Offset, lodDelta)
		return dst.ChunkKey, false, nil
	}

	dstExtent := geom.ExtentFromMinAndShape(
		geom.Add(dstChunk.Array.Extent().Min, dst.Offset),
		geom.Shr(chunkShape, uint(lodDelta)),
	)
	dstChunk.Array.FillExtent(dstExtent, srcMap.AmbientValue())
	return dst.ChunkKey, true, nil
}

// DownsampleChunks downsamples every key in order. It stops at the first
// error; keys before it have been applied.
func (p *Pyramid[P, T, M]) DownsampleChunks(s sampler.Downsampler[P, T], srcChunkKeys []P, srcLOD, dstLOD uint8) error {
	if err := p.checkLevels(srcLOD, dstLOD); err != nil {
		return err
	}
	for _, key := range srcChunkKeys {
		if err := p.DownsampleChunk(s, key, srcLOD, dstLOD); err != nil {
			return err
		}
	}
	return nil
}

// DownsampleLevel downsamples every chunk currently stored in srcLOD into
// dstLOD, in layout order.
func (p *Pyramid[P, T, M]) DownsampleLevel(s sampler.Downsampler[P, T], srcLOD, dstLOD uint8) error {
	if err := p.checkLevels(srcLOD, dstLOD); err != nil {
		return err
	}
	return p.DownsampleChunks(s, p.levels[srcLOD].ChunkKeys(), srcLOD, dstLOD)
}

// CompressAll moves every decompressed chunk of every compressible level to
// its cold tier. Levels on other backends are skipped.
func (p *Pyramid[P, T, M]) CompressAll(ctx context.Context) error {
	type compressor interface {
		CompressAll(ctx context.Context) error
	}
	for lod, m := range p.levels {
		c, ok := m.Storage().(compressor)
		if !ok {
			continue
		}
		if err := c.CompressAll(ctx); err != nil {
			return fmt.Errorf("compress level %d: %w", lod, err)
		}
		p.logger.WithLOD(uint8(lod)).Debug("level compressed", "chunks", m.Len())
	}
	return nil
}
