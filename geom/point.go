package geom

import (
	"fmt"
	"math/bits"
)

// IntegerPoint is the constraint for fixed-size integer coordinates.
//
// Implementations are small value types (arrays). With must not modify the
// receiver.
type IntegerPoint[P any] interface {
	comparable
	// Dim returns the number of axes.
	Dim() int
	// At returns the component on axis i.
	At(i int) int32
	// With returns a copy of the point with axis i set to v.
	With(i int, v int32) P
}

// Point2i is a 2-dimensional integer point.
type Point2i [2]int32

// Point3i is a 3-dimensional integer point.
type Point3i [3]int32

func (p Point2i) Dim() int       { return 2 }
func (p Point2i) At(i int) int32 { return p[i] }
func (p Point2i) X() int32       { return p[0] }
func (p Point2i) Y() int32       { return p[1] }
func (p Point2i) String() string { return fmt.Sprintf("(%d, %d)", p[0], p[1]) }

func (p Point3i) Dim() int       { return 3 }
func (p Point3i) At(i int) int32 { return p[i] }
func (p Point3i) X() int32       { return p[0] }
func (p Point3i) Y() int32       { return p[1] }
func (p Point3i) Z() int32       { return p[2] }
func (p Point3i) String() string { return fmt.Sprintf("(%d, %d, %d)", p[0], p[1], p[2]) }

// With implements IntegerPoint.
func (p Point2i) With(i int, v int32) Point2i {
	p[i] = v
	return p
}

// With implements IntegerPoint.
func (p Point3i) With(i int, v int32) Point3i {
	p[i] = v
	return p
}

// Fill returns a point with every component set to v.
func Fill[P IntegerPoint[P]](v int32) P {
	var p P
	for i := 0; i < p.Dim(); i++ {
		p = p.With(i, v)
	}
	return p
}

// Ones returns the point with every component set to 1.
func Ones[P IntegerPoint[P]]() P { return Fill[P](1) }

// Map applies f to every component.
func Map[P IntegerPoint[P]](p P, f func(c int32) int32) P {
	for i := 0; i < p.Dim(); i++ {
		p = p.With(i, f(p.At(i)))
	}
	return p
}

// Zip combines the components of a and b pairwise.
func Zip[P IntegerPoint[P]](a, b P, f func(x, y int32) int32) P {
	for i := 0; i < a.Dim(); i++ {
		a = a.With(i, f(a.At(i), b.At(i)))
	}
	return a
}

// All reports whether pred holds for every pair of components.
func All[P IntegerPoint[P]](a, b P, pred func(x, y int32) bool) bool {
	for i := 0; i < a.Dim(); i++ {
		if !pred(a.At(i), b.At(i)) {
			return false
		}
	}
	return true
}

func Add[P IntegerPoint[P]](a, b P) P {
	return Zip(a, b, func(x, y int32) int32 { return x + y })
}

func Sub[P IntegerPoint[P]](a, b P) P {
	return Zip(a, b, func(x, y int32) int32 { return x - y })
}

func Mul[P IntegerPoint[P]](a, b P) P {
	return Zip(a, b, func(x, y int32) int32 { return x * y })
}

// Shl shifts every component left by n.
func Shl[P IntegerPoint[P]](p P, n uint) P {
	return Map(p, func(c int32) int32 { return c << n })
}

// Shr shifts every component right by n. The shift is arithmetic, i.e. it
// divides by 2^n rounding toward negative infinity.
func Shr[P IntegerPoint[P]](p P, n uint) P {
	return Map(p, func(c int32) int32 { return c >> n })
}

// ShlVec shifts each component of p left by the matching component of n.
func ShlVec[P IntegerPoint[P]](p, n P) P {
	return Zip(p, n, func(c, s int32) int32 { return c << uint32(s) })
}

// ShrVec arithmetically shifts each component of p right by the matching
// component of n.
func ShrVec[P IntegerPoint[P]](p, n P) P {
	return Zip(p, n, func(c, s int32) int32 { return c >> uint32(s) })
}

// Mod returns the non-negative remainder of a divided by m per axis. Every
// result component lies in [0, m).
func Mod[P IntegerPoint[P]](a, m P) P {
	return Zip(a, m, func(x, y int32) int32 {
		r := x % y
		if r < 0 {
			r += y
		}
		return r
	})
}

// FloorDiv divides per axis rounding toward negative infinity.
func FloorDiv[P IntegerPoint[P]](a, d P) P {
	return Zip(a, d, func(x, y int32) int32 {
		q := x / y
		if (x%y != 0) && ((x < 0) != (y < 0)) {
			q--
		}
		return q
	})
}

// Log2 returns the base-2 logarithm of each component. Components must be
// powers of two.
func Log2[P IntegerPoint[P]](p P) P {
	return Map(p, func(c int32) int32 { return int32(bits.TrailingZeros32(uint32(c))) })
}

// IsPowerOfTwo reports whether every component is a positive power of two.
func IsPowerOfTwo[P IntegerPoint[P]](p P) bool {
	for i := 0; i < p.Dim(); i++ {
		c := p.At(i)
		if c <= 0 || c&(c-1) != 0 {
			return false
		}
	}
	return true
}

// Volume returns the product of all components.
func Volume[P IntegerPoint[P]](p P) int {
	v := 1
	for i := 0; i < p.Dim(); i++ {
		v *= int(p.At(i))
	}
	return v
}

func Min[P IntegerPoint[P]](a, b P) P {
	return Zip(a, b, func(x, y int32) int32 { return min(x, y) })
}

func Max[P IntegerPoint[P]](a, b P) P {
	return Zip(a, b, func(x, y int32) int32 { return max(x, y) })
}

// Less orders points lexicographically from the last axis to the first, which
// matches the linear layout of array.Array.
func Less[P IntegerPoint[P]](a, b P) bool {
	for i := a.Dim() - 1; i >= 0; i-- {
		if a.At(i) != b.At(i) {
			return a.At(i) < b.At(i)
		}
	}
	return false
}
