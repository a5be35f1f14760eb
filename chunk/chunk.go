package chunk

import (
	"errors"
	"fmt"

	"github.com/hupe1980/voxgo/array"
	"github.com/hupe1980/voxgo/geom"
)

var (
	// ErrInvalidChunkShape is returned when a chunk shape component is not a
	// positive power of two.
	ErrInvalidChunkShape = errors.New("chunk shape must be a power of two on every axis")
	// ErrMisalignedKey is returned for a chunk key that is not a multiple of
	// the chunk shape.
	ErrMisalignedKey = errors.New("chunk key is not aligned to the chunk grid")
	// ErrChunkShapeMismatch is returned when a chunk's array does not have the
	// level's chunk shape.
	ErrChunkShapeMismatch = errors.New("chunk array shape does not match chunk shape")
	// ErrUnsupportedElementType is returned when a backend cannot encode the
	// element type.
	ErrUnsupportedElementType = errors.New("unsupported element type")
)

// Chunk is a fixed-shape array of voxels plus caller metadata.
type Chunk[P geom.IntegerPoint[P], T any, M any] struct {
	Array    *array.Array[P, T]
	Metadata M
}

// New returns a chunk covering extent with every voxel set to fill.
func New[P geom.IntegerPoint[P], T any, M any](extent geom.Extent[P], fill T, metadata M) *Chunk[P, T, M] {
	return &Chunk[P, T, M]{
		Array:    array.New(extent, fill),
		Metadata: metadata,
	}
}

// Indexer maps voxel points to the chunk grid.
type Indexer[P geom.IntegerPoint[P]] struct {
	chunkShape P
	shapeLog2  P
}

// NewIndexer validates chunkShape and returns its indexer.
func NewIndexer[P geom.IntegerPoint[P]](chunkShape P) (Indexer[P], error) {
	if !geom.IsPowerOfTwo(chunkShape) {
		return Indexer[P]{}, fmt.Errorf("%w: %v", ErrInvalidChunkShape, chunkShape)
	}
	return Indexer[P]{
		chunkShape: chunkShape,
		shapeLog2:  geom.Log2(chunkShape),
	}, nil
}

// ChunkShape returns the shape shared by all chunks.
func (ix Indexer[P]) ChunkShape() P { return ix.chunkShape }

// ShapeLog2 returns log2 of each chunk shape component.
func (ix Indexer[P]) ShapeLog2() P { return ix.shapeLog2 }

// KeyForPoint returns the key of the chunk containing p.
func (ix Indexer[P]) KeyForPoint(p P) P {
	return geom.ShlVec(geom.ShrVec(p, ix.shapeLog2), ix.shapeLog2)
}

// IsAligned reports whether key is a valid chunk key.
func (ix Indexer[P]) IsAligned(key P) bool {
	return ix.KeyForPoint(key) == key
}

// ExtentForKey returns the voxel extent of the chunk at key.
func (ix Indexer[P]) ExtentForKey(key P) geom.Extent[P] {
	return geom.ExtentFromMinAndShape(key, ix.chunkShape)
}

// KeysForExtent returns the keys of all chunks overlapping ext, first axis
// fastest.
func (ix Indexer[P]) KeysForExtent(ext geom.Extent[P]) []P {
	if ext.IsEmpty() {
		return nil
	}
	lo := geom.ShrVec(ext.Min, ix.shapeLog2)
	hi := geom.ShrVec(ext.Max(), ix.shapeLog2)

	var keys []P
	geom.ForEachPoint(geom.ExtentFromMinAndMax(lo, hi), func(c P) {
		keys = append(keys, geom.ShlVec(c, ix.shapeLog2))
	})
	return keys
}
