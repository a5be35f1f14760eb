package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShr_FloorsNegativeComponents(t *testing.T) {
	p := Point3i{-1, -16, -17}
	assert.Equal(t, Point3i{-1, -1, -2}, Shr(p, 4))
	assert.Equal(t, Point3i{0, 1, 1}, Shr(Point3i{15, 16, 31}, 4))
}

func TestMod_NonNegative(t *testing.T) {
	m := Point3i{16, 16, 16}
	assert.Equal(t, Point3i{15, 0, 15}, Mod(Point3i{-1, -16, -17}, m))
	assert.Equal(t, Point3i{1, 0, 3}, Mod(Point3i{17, 32, 3}, m))
}

func TestFloorDiv(t *testing.T) {
	d := Point2i{4, 4}
	assert.Equal(t, Point2i{-1, -2}, FloorDiv(Point2i{-1, -5}, d))
	assert.Equal(t, Point2i{1, 0}, FloorDiv(Point2i{4, 3}, d))
	assert.Equal(t, Point2i{-1, 0}, FloorDiv(Point2i{-4, 0}, d))
}

func TestLog2AndPowerOfTwo(t *testing.T) {
	assert.Equal(t, Point3i{4, 5, 0}, Log2(Point3i{16, 32, 1}))

	assert.True(t, IsPowerOfTwo(Point3i{1, 2, 64}))
	assert.False(t, IsPowerOfTwo(Point3i{16, 12, 16}))
	assert.False(t, IsPowerOfTwo(Point2i{0, 16}))
	assert.False(t, IsPowerOfTwo(Point2i{-16, 16}))
}

func TestShiftVectors(t *testing.T) {
	assert.Equal(t, Point2i{8, 32}, ShlVec(Point2i{1, 2}, Point2i{3, 4}))
	assert.Equal(t, Point2i{-1, 2}, ShrVec(Point2i{-8, 32}, Point2i{3, 4}))
}

func TestFillAndVolume(t *testing.T) {
	assert.Equal(t, Point3i{7, 7, 7}, Fill[Point3i](7))
	assert.Equal(t, Point2i{1, 1}, Ones[Point2i]())
	assert.Equal(t, 4096, Volume(Point3i{16, 16, 16}))
}

func TestLess(t *testing.T) {
	assert.True(t, Less(Point2i{5, 0}, Point2i{0, 1}))
	assert.False(t, Less(Point2i{0, 1}, Point2i{5, 0}))
	assert.False(t, Less(Point2i{1, 1}, Point2i{1, 1}))
}

func TestExtent(t *testing.T) {
	e := ExtentFromMinAndShape(Point3i{-2, 0, 0}, Point3i{4, 2, 1})

	assert.Equal(t, Point3i{2, 2, 1}, e.End())
	assert.Equal(t, Point3i{1, 1, 0}, e.Max())
	assert.Equal(t, 8, e.NumPoints())
	assert.True(t, e.Contains(Point3i{-2, 1, 0}))
	assert.False(t, e.Contains(Point3i{2, 0, 0}))

	other := ExtentFromMinAndMax(Point3i{0, 0, 0}, Point3i{9, 9, 9})
	inter := e.Intersection(other)
	assert.Equal(t, ExtentFromMinAndShape(Point3i{0, 0, 0}, Point3i{2, 2, 1}), inter)
	assert.True(t, other.ContainsExtent(inter))
	assert.False(t, inter.ContainsExtent(other))

	disjoint := e.Intersection(ExtentFromMinAndShape(Point3i{10, 10, 10}, Point3i{1, 1, 1}))
	assert.True(t, disjoint.IsEmpty())
	assert.Equal(t, 0, disjoint.NumPoints())
}

func TestForEachPoint_Order(t *testing.T) {
	var got []Point2i
	ForEachPoint(ExtentFromMinAndShape(Point2i{-1, 3}, Point2i{2, 2}), func(p Point2i) {
		got = append(got, p)
	})
	assert.Equal(t, []Point2i{{-1, 3}, {0, 3}, {-1, 4}, {0, 4}}, got)

	calls := 0
	ForEachPoint(ExtentFromMinAndShape(Point2i{0, 0}, Point2i{0, 5}), func(Point2i) { calls++ })
	assert.Zero(t, calls)
}
