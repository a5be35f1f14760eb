package geom

import "fmt"

// Extent is an axis-aligned box of points [Min, Min+Shape).
type Extent[P IntegerPoint[P]] struct {
	Min   P
	Shape P
}

// ExtentFromMinAndShape returns the extent starting at min with the given shape.
func ExtentFromMinAndShape[P IntegerPoint[P]](min, shape P) Extent[P] {
	return Extent[P]{Min: min, Shape: shape}
}

// ExtentFromMinAndMax returns the extent covering [min, max] inclusive.
// An inverted range yields an empty extent.
func ExtentFromMinAndMax[P IntegerPoint[P]](min, max P) Extent[P] {
	shape := Zip(max, min, func(hi, lo int32) int32 {
		if hi < lo {
			return 0
		}
		return hi - lo + 1
	})
	return Extent[P]{Min: min, Shape: shape}
}

// End returns the exclusive upper corner Min+Shape.
func (e Extent[P]) End() P { return Add(e.Min, e.Shape) }

// Max returns the inclusive upper corner.
func (e Extent[P]) Max() P { return Sub(e.End(), Ones[P]()) }

// IsEmpty reports whether the extent contains no points.
func (e Extent[P]) IsEmpty() bool {
	for i := 0; i < e.Shape.Dim(); i++ {
		if e.Shape.At(i) <= 0 {
			return true
		}
	}
	return false
}

// NumPoints returns the number of points in the extent.
func (e Extent[P]) NumPoints() int {
	if e.IsEmpty() {
		return 0
	}
	return Volume(e.Shape)
}

// Contains reports whether p lies inside the extent.
func (e Extent[P]) Contains(p P) bool {
	end := e.End()
	for i := 0; i < p.Dim(); i++ {
		c := p.At(i)
		if c < e.Min.At(i) || c >= end.At(i) {
			return false
		}
	}
	return true
}

// ContainsExtent reports whether other lies entirely inside e. An empty
// extent is contained everywhere.
func (e Extent[P]) ContainsExtent(other Extent[P]) bool {
	if other.IsEmpty() {
		return true
	}
	return All(e.Min, other.Min, func(a, b int32) bool { return a <= b }) &&
		All(e.End(), other.End(), func(a, b int32) bool { return a >= b })
}

// Intersection returns the overlap of e and other. The result may be empty.
func (e Extent[P]) Intersection(other Extent[P]) Extent[P] {
	lo := Max(e.Min, other.Min)
	hi := Min(e.End(), other.End())
	shape := Zip(hi, lo, func(h, l int32) int32 { return max(h-l, 0) })
	return Extent[P]{Min: lo, Shape: shape}
}

func (e Extent[P]) String() string {
	return fmt.Sprintf("Extent{Min: %v, Shape: %v}", e.Min, e.Shape)
}

// ForEachPoint calls fn for every point of e, first axis fastest.
func ForEachPoint[P IntegerPoint[P]](e Extent[P], fn func(p P)) {
	if e.IsEmpty() {
		return
	}
	end := e.End()
	p := e.Min
	dim := p.Dim()
	for {
		fn(p)

		// Odometer increment.
		axis := 0
		for ; axis < dim; axis++ {
			next := p.At(axis) + 1
			if next < end.At(axis) {
				p = p.With(axis, next)
				break
			}
			p = p.With(axis, e.Min.At(axis))
		}
		if axis == dim {
			return
		}
	}
}
