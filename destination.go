package voxgo

import "github.com/hupe1980/voxgo/geom"

// DownsampleDestination locates the contribution of one source chunk inside
// a coarser level.
type DownsampleDestination[P geom.IntegerPoint[P]] struct {
	// ChunkKey is the key of the destination chunk.
	ChunkKey P
	// Offset is the position of the contribution relative to the minimum of
	// the destination chunk. Every component lies in [0, chunkShape).
	Offset P
}

// DownsampleDestination2 is the 2-dimensional DownsampleDestination.
type DownsampleDestination2 = DownsampleDestination[geom.Point2i]

// DownsampleDestination3 is the 3-dimensional DownsampleDestination.
type DownsampleDestination3 = DownsampleDestination[geom.Point3i]

// DestinationForSourceChunk returns where the chunk at srcChunkKey lands when
// downsampled lodDelta levels up.
//
// chunkShape must be a power of two on every axis and srcChunkKey must be
// aligned to it; neither is checked here. log2(chunkShape)+lodDelta must not
// exceed 30 on any axis, or chunkShape << lodDelta overflows int32 and the
// result is undefined. Pyramid enforces this when it is built. A lodDelta of
// 0 maps every key to itself with a zero offset.
func DestinationForSourceChunk[P geom.IntegerPoint[P]](chunkShape, srcChunkKey P, lodDelta uint8) DownsampleDestination[P] {
	delta := uint(lodDelta)

	chunkShapeLog2 := geom.Log2(chunkShape)
	levelUpLog2 := geom.Add(chunkShapeLog2, geom.Fill[P](int32(lodDelta)))
	levelUpShape := geom.Shl(chunkShape, delta)

	dstChunkKey := geom.ShlVec(geom.ShrVec(srcChunkKey, levelUpLog2), chunkShapeLog2)
	offset := geom.Mod(srcChunkKey, levelUpShape)

	return DownsampleDestination[P]{
		ChunkKey: dstChunkKey,
		Offset:   geom.Shr(offset, delta),
	}
}
