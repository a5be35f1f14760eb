// Package voxgo provides a multi-resolution chunked voxel store.
//
// A Pyramid is an ordered stack of chunk maps (levels). Level 0 holds the
// finest samples; level L+1 covers the same space as level L with half the
// sample density per axis. Every level uses the same chunk shape, so a chunk
// at level L+1 spans 2^N chunks of level L.
//
// Callers write fine levels directly through Level and propagate detail
// upward with DownsampleChunk. Where the fine level has no chunk, the
// coarse level is filled with the fine level's ambient value.
//
// # Quick Start
//
//	p, err := voxgo.New3(chunk.Builder[geom.Point3i, float32, struct{}]{
//	    ChunkShape:   geom.Point3i{16, 16, 16},
//	    AmbientValue: 0,
//	}, 4, voxgo.WithBackend(voxgo.BackendCompressible), voxgo.WithCompression(compression.LZ4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lod0 := p.MustLevel(0)
//	lod0.Set(geom.Point3i{3, 4, 5}, 1.5)
//
//	mean := sampler.MeanDownsampler[geom.Point3i, float32]{}
//	if err := p.DownsampleChunk(mean, geom.Point3i{0, 0, 0}, 0, 1); err != nil {
//	    log.Fatal(err)
//	}
//
// # Addressing
//
// DestinationForSourceChunk maps a source chunk key and a level delta to the
// destination chunk key and the offset of the contribution inside it. The
// mapping floors negative coordinates and is periodic in the source key with
// period chunkShape << delta.
//
// # Backends
//
// The storage backend and compression codec are runtime options:
//
//   - BackendHashMap keeps every chunk decompressed.
//   - BackendCompressible keeps a byte-bounded hot set and compresses the
//     rest with the selected codec (none, lz4, snappy, zstd).
//
// A resource.Controller passed with WithResourceController gives all levels
// one shared memory budget.
//
// # Concurrency
//
// A Pyramid is not safe for concurrent use. Callers that share one across
// goroutines must synchronize externally.
package voxgo
