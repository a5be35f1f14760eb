// Package testutil provides testing utilities for voxgo.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG with helpers for random chunk keys
// and voxel data.
//
//	rng := testutil.NewRNG(seed)
//	key := testutil.RandomKey(rng, chunkShape, 64)
//	rng.FillUniform(arr.Values())
package testutil
