// Package geom provides the integer point and extent arithmetic used to
// address voxels and chunks.
//
// Points are fixed-size integer coordinates. Dimensionality is a type
// parameter: every generic helper is constrained by IntegerPoint, which
// Point2i and Point3i implement.
//
// # Floor semantics
//
// All division-like helpers round toward negative infinity, so negative
// coordinates land on the same grid as positive ones:
//
//	geom.Shr(geom.Point3i{-1, -16, -17}, 4) // {-1, -1, -2}
//	geom.Mod(geom.Point3i{-1, -16, -17}, geom.Point3i{16, 16, 16}) // {15, 0, 15}
package geom
