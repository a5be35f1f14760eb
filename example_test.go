package voxgo_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/voxgo"
	"github.com/hupe1980/voxgo/chunk"
	"github.com/hupe1980/voxgo/compression"
	"github.com/hupe1980/voxgo/geom"
	"github.com/hupe1980/voxgo/sampler"
)

// Example demonstrates writing to the finest level and propagating it up.
func Example() {
	p, err := voxgo.New2(chunk.Builder[geom.Point2i, float32, struct{}]{
		ChunkShape: geom.Point2i{4, 4},
	}, 2)
	if err != nil {
		log.Fatal(err)
	}

	lod0 := p.MustLevel(0)
	lod0.FillExtent(geom.ExtentFromMinAndShape(geom.Point2i{4, 0}, geom.Point2i{4, 4}), 2)
	lod0.Set(geom.Point2i{4, 0}, 6)

	mean := sampler.MeanDownsampler[geom.Point2i, float32]{}
	if err := p.DownsampleChunk(mean, geom.Point2i{4, 0}, 0, 1); err != nil {
		log.Fatal(err)
	}

	lod1 := p.MustLevel(1)
	fmt.Println(lod1.Get(geom.Point2i{2, 0}), lod1.Get(geom.Point2i{3, 1}), lod1.Get(geom.Point2i{0, 0}))
	// Output: 3 2 0
}

// ExampleDestinationForSourceChunk shows where a chunk lands one level up.
func ExampleDestinationForSourceChunk() {
	d := voxgo.DestinationForSourceChunk(geom.Point3i{16, 16, 16}, geom.Point3i{16, 16, 16}, 1)
	fmt.Println(d.ChunkKey, d.Offset)
	// Output: (0, 0, 0) (8, 8, 8)
}

// Example_compressible demonstrates a pyramid that compresses idle chunks.
func Example_compressible() {
	p, err := voxgo.New3(chunk.Builder[geom.Point3i, uint8, struct{}]{
		ChunkShape: geom.Point3i{16, 16, 16},
	}, 3,
		voxgo.WithBackend(voxgo.BackendCompressible),
		voxgo.WithCompression(compression.Zstd),
	)
	if err != nil {
		log.Fatal(err)
	}

	p.MustLevel(0).FillExtent(geom.ExtentFromMinAndShape(geom.Point3i{}, geom.Point3i{32, 32, 32}), 1)

	majority := sampler.MajorityDownsampler[geom.Point3i, uint8]{}
	if err := p.DownsampleLevel(majority, 0, 1); err != nil {
		log.Fatal(err)
	}
	if err := p.CompressAll(context.Background()); err != nil {
		log.Fatal(err)
	}

	fmt.Println(p.Backend(), p.MustLevel(1).Get(geom.Point3i{15, 15, 15}), p.MustLevel(1).Get(geom.Point3i{16, 0, 0}))
	// Output: compressible 1 0
}
