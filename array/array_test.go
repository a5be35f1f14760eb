package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/voxgo/geom"
)

func TestArray_GetSet(t *testing.T) {
	ext := geom.ExtentFromMinAndShape(geom.Point3i{-4, 0, 8}, geom.Point3i{4, 4, 4})
	a := New(ext, uint8(3))

	assert.Equal(t, 64, a.Len())
	assert.Equal(t, uint8(3), a.Get(geom.Point3i{-4, 0, 8}))

	a.Set(geom.Point3i{-1, 3, 11}, 9)
	assert.Equal(t, uint8(9), a.Get(geom.Point3i{-1, 3, 11}))
	assert.Equal(t, uint8(9), a.Values()[63])

	assert.Panics(t, func() { a.Get(geom.Point3i{0, 0, 8}) })
}

func TestArray_FillExtentClips(t *testing.T) {
	a := New(geom.ExtentFromMinAndShape(geom.Point2i{0, 0}, geom.Point2i{4, 4}), 0)

	a.FillExtent(geom.ExtentFromMinAndShape(geom.Point2i{2, 2}, geom.Point2i{8, 8}), 1)

	count := 0
	a.ForEach(a.Extent(), func(p geom.Point2i, v int) {
		if p.X() >= 2 && p.Y() >= 2 {
			assert.Equal(t, 1, v)
			count++
		} else {
			assert.Equal(t, 0, v)
		}
	})
	assert.Equal(t, 4, count)
}

func TestArray_FromValues(t *testing.T) {
	ext := geom.ExtentFromMinAndShape(geom.Point2i{0, 0}, geom.Point2i{2, 2})

	a, err := FromValues(ext, []float32{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, float32(2), a.Get(geom.Point2i{1, 0}))
	assert.Equal(t, float32(3), a.Get(geom.Point2i{0, 1}))

	_, err = FromValues(ext, []float32{1})
	assert.Error(t, err)
}

func TestArray_CloneIsIndependent(t *testing.T) {
	a := New(geom.ExtentFromMinAndShape(geom.Point2i{0, 0}, geom.Point2i{2, 2}), 5)
	b := a.Clone()
	b.Fill(7)

	assert.Equal(t, 5, a.Get(geom.Point2i{0, 0}))
	assert.Equal(t, 7, b.Get(geom.Point2i{0, 0}))

	b.SetMinimum(geom.Point2i{10, 10})
	assert.Equal(t, 7, b.Get(geom.Point2i{11, 11}))
}
