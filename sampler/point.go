package sampler

import (
	"github.com/hupe1980/voxgo/array"
	"github.com/hupe1980/voxgo/geom"
)

// PointDownsampler keeps the minimum-corner voxel of every block.
type PointDownsampler[P geom.IntegerPoint[P], T any] struct{}

// Downsample implements Downsampler.
func (PointDownsampler[P, T]) Downsample(src, dst *array.Array[P, T], dstOffset P, lodDelta uint8) {
	forEachFootprint(src, dst, dstOffset, lodDelta, func(q P, fp geom.Extent[P]) {
		if fp.IsEmpty() {
			return
		}
		dst.Set(q, src.Get(fp.Min))
	})
}
