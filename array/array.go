// Package array implements a dense N-dimensional array addressed by global
// integer points.
package array

import (
	"fmt"

	"github.com/hupe1980/voxgo/geom"
)

// Array is a dense block of values covering one extent. Values are laid out
// with the first axis varying fastest.
type Array[P geom.IntegerPoint[P], T any] struct {
	extent  geom.Extent[P]
	strides []int
	values  []T
}

// New returns an array over extent with every value set to fill.
func New[P geom.IntegerPoint[P], T any](extent geom.Extent[P], fill T) *Array[P, T] {
	a := newUninit[P, T](extent)
	for i := range a.values {
		a.values[i] = fill
	}
	return a
}

// FromValues wraps values as an array over extent. The slice is retained.
func FromValues[P geom.IntegerPoint[P], T any](extent geom.Extent[P], values []T) (*Array[P, T], error) {
	if n := extent.NumPoints(); n != len(values) {
		return nil, fmt.Errorf("array: %d values for extent of %d points", len(values), n)
	}
	return &Array[P, T]{
		extent:  extent,
		strides: strides(extent.Shape),
		values:  values,
	}, nil
}

func newUninit[P geom.IntegerPoint[P], T any](extent geom.Extent[P]) *Array[P, T] {
	return &Array[P, T]{
		extent:  extent,
		strides: strides(extent.Shape),
		values:  make([]T, extent.NumPoints()),
	}
}

func strides[P geom.IntegerPoint[P]](shape P) []int {
	s := make([]int, shape.Dim())
	acc := 1
	for i := range s {
		s[i] = acc
		acc *= int(shape.At(i))
	}
	return s
}

// Extent returns the extent covered by the array.
func (a *Array[P, T]) Extent() geom.Extent[P] { return a.extent }

// Values exposes the backing slice.
func (a *Array[P, T]) Values() []T { return a.values }

// Len returns the number of values.
func (a *Array[P, T]) Len() int { return len(a.values) }

// SetMinimum moves the array to a new minimum corner without touching values.
func (a *Array[P, T]) SetMinimum(min P) { a.extent.Min = min }

func (a *Array[P, T]) index(p P) int {
	idx := 0
	for i, s := range a.strides {
		idx += int(p.At(i)-a.extent.Min.At(i)) * s
	}
	return idx
}

// Get returns the value at global point p. p must lie inside the extent.
func (a *Array[P, T]) Get(p P) T {
	if !a.extent.Contains(p) {
		panic(fmt.Sprintf("array: point %v outside %v", p, a.extent))
	}
	return a.values[a.index(p)]
}

// Set stores v at global point p. p must lie inside the extent.
func (a *Array[P, T]) Set(p P, v T) {
	if !a.extent.Contains(p) {
		panic(fmt.Sprintf("array: point %v outside %v", p, a.extent))
	}
	a.values[a.index(p)] = v
}

// Fill sets every value to v.
func (a *Array[P, T]) Fill(v T) {
	for i := range a.values {
		a.values[i] = v
	}
}

// FillExtent sets every value inside ext to v. Points of ext outside the
// array are ignored.
func (a *Array[P, T]) FillExtent(ext geom.Extent[P], v T) {
	a.ForEachMut(ext, func(_ P, dst *T) { *dst = v })
}

// ForEach visits every point of ext that lies inside the array.
func (a *Array[P, T]) ForEach(ext geom.Extent[P], fn func(p P, v T)) {
	geom.ForEachPoint(a.extent.Intersection(ext), func(p P) {
		fn(p, a.values[a.index(p)])
	})
}

// ForEachMut visits every point of ext that lies inside the array with a
// pointer to its value.
func (a *Array[P, T]) ForEachMut(ext geom.Extent[P], fn func(p P, v *T)) {
	geom.ForEachPoint(a.extent.Intersection(ext), func(p P) {
		fn(p, &a.values[a.index(p)])
	})
}

// Clone returns a deep copy.
func (a *Array[P, T]) Clone() *Array[P, T] {
	values := make([]T, len(a.values))
	copy(values, a.values)
	return &Array[P, T]{
		extent:  a.extent,
		strides: append([]int(nil), a.strides...),
		values:  values,
	}
}
