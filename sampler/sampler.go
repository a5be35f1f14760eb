// Package sampler reduces fine voxels to coarse voxels.
//
// A Downsampler writes one destination voxel for every 2^lodDelta block of
// source voxels per axis. The written region starts at dstOffset (relative
// to the destination array's minimum) and has the shape of the source array
// shifted right by lodDelta. Implementations read only inside the source
// array and write only inside the destination array.
package sampler

import (
	"github.com/hupe1980/voxgo/array"
	"github.com/hupe1980/voxgo/geom"
)

// Downsampler is the aggregation capability used by a pyramid.
type Downsampler[P geom.IntegerPoint[P], T any] interface {
	Downsample(src, dst *array.Array[P, T], dstOffset P, lodDelta uint8)
}

// DownsamplerFunc adapts a function to Downsampler.
type DownsamplerFunc[P geom.IntegerPoint[P], T any] func(src, dst *array.Array[P, T], dstOffset P, lodDelta uint8)

// Downsample implements Downsampler.
func (f DownsamplerFunc[P, T]) Downsample(src, dst *array.Array[P, T], dstOffset P, lodDelta uint8) {
	f(src, dst, dstOffset, lodDelta)
}

// DestinationExtent returns the destination region written when
// downsampling src by lodDelta into dst at dstOffset, clipped to dst.
func DestinationExtent[P geom.IntegerPoint[P], T any](src, dst *array.Array[P, T], dstOffset P, lodDelta uint8) geom.Extent[P] {
	ext := geom.ExtentFromMinAndShape(
		geom.Add(dst.Extent().Min, dstOffset),
		geom.Shr(src.Extent().Shape, uint(lodDelta)),
	)
	return dst.Extent().Intersection(ext)
}

// forEachFootprint calls fn for every destination point together with the
// source block that reduces into it. Blocks are clipped to src.
func forEachFootprint[P geom.IntegerPoint[P], T any](
	src, dst *array.Array[P, T],
	dstOffset P,
	lodDelta uint8,
	fn func(dstPoint P, footprint geom.Extent[P]),
) {
	dstExt := DestinationExtent(src, dst, dstOffset, lodDelta)
	origin := geom.Add(dst.Extent().Min, dstOffset)
	block := geom.Fill[P](int32(1) << lodDelta)
	srcExt := src.Extent()

	geom.ForEachPoint(dstExt, func(q P) {
		local := geom.Shl(geom.Sub(q, origin), uint(lodDelta))
		fp := geom.ExtentFromMinAndShape(geom.Add(srcExt.Min, local), block)
		fn(q, srcExt.Intersection(fp))
	})
}
