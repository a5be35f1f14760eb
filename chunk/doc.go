// Package chunk stores a sparse N-dimensional voxel grid as fixed-shape
// chunks.
//
// A Map is one level of detail: a chunk Indexer (the shared chunk shape), an
// ambient value that stands in for missing data, and a Storage backend that
// owns the chunks. Two backends exist:
//
//   - HashMapStorage keeps every chunk decompressed in a Go map.
//   - CompressibleStorage keeps a byte-bounded LRU of decompressed chunks and
//     compresses everything it evicts.
//
// Chunk keys are the minimum corner of the chunk and are always multiples of
// the chunk shape, including below zero:
//
//	idx, _ := chunk.NewIndexer(geom.Point3i{16, 16, 16})
//	idx.KeyForPoint(geom.Point3i{-1, 5, 40}) // {-16, 0, 32}
//
// # Pointer validity
//
// A *Chunk returned by a Storage stays valid until the next call on the same
// Storage that may evict. For CompressibleStorage that is any call that adds
// a chunk to the hot tier. Writes through a stale pointer are lost.
package chunk
