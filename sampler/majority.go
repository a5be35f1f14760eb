package sampler

import (
	"github.com/hupe1980/voxgo/array"
	"github.com/hupe1980/voxgo/geom"
)

// MajorityDownsampler writes the most frequent value of every block. Ties go
// to the value seen first in layout order. Suited to label and material
// grids where averaging is meaningless.
type MajorityDownsampler[P geom.IntegerPoint[P], T comparable] struct{}

// Downsample implements Downsampler.
func (MajorityDownsampler[P, T]) Downsample(src, dst *array.Array[P, T], dstOffset P, lodDelta uint8) {
	counts := make(map[T]int)
	var order []T

	forEachFootprint(src, dst, dstOffset, lodDelta, func(q P, fp geom.Extent[P]) {
		if fp.IsEmpty() {
			return
		}
		clear(counts)
		order = order[:0]

		src.ForEach(fp, func(_ P, v T) {
			if counts[v] == 0 {
				order = append(order, v)
			}
			counts[v]++
		})

		best := order[0]
		for _, v := range order[1:] {
			if counts[v] > counts[best] {
				best = v
			}
		}
		dst.Set(q, best)
	})
}
