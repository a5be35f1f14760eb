package sampler

import (
	"github.com/hupe1980/voxgo/array"
	"github.com/hupe1980/voxgo/geom"
)

// Number is the set of element types MeanDownsampler can average.
type Number interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int |
		~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~float32 | ~float64
}

// MeanDownsampler writes the arithmetic mean of every block. Integer
// results are truncated toward zero.
type MeanDownsampler[P geom.IntegerPoint[P], T Number] struct{}

// Downsample implements Downsampler.
func (MeanDownsampler[P, T]) Downsample(src, dst *array.Array[P, T], dstOffset P, lodDelta uint8) {
	forEachFootprint(src, dst, dstOffset, lodDelta, func(q P, fp geom.Extent[P]) {
		n := fp.NumPoints()
		if n == 0 {
			return
		}
		var sum float64
		src.ForEach(fp, func(_ P, v T) { sum += float64(v) })
		dst.Set(q, T(sum/float64(n)))
	})
}
