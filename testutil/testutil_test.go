package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/voxgo/geom"
)

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(42)
	a := rng.Intn(1000)
	rng.Reset()
	assert.Equal(t, a, rng.Intn(1000))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestInt32Range(t *testing.T) {
	rng := NewRNG(1)
	for range 1000 {
		v := rng.Int32Range(-5, 3)
		assert.GreaterOrEqual(t, v, int32(-5))
		assert.Less(t, v, int32(3))
	}
}

func TestRandomKey(t *testing.T) {
	rng := NewRNG(7)
	shape := geom.Point3i{16, 8, 32}
	for range 100 {
		key := RandomKey(rng, shape, 10)
		assert.Equal(t, geom.Point3i{}, geom.Mod(key, shape))
	}
}

func TestFillBytes(t *testing.T) {
	rng := NewRNG(3)
	buf := make([]uint8, 256)
	rng.FillBytes(buf, 4)
	for _, v := range buf {
		assert.Less(t, v, uint8(4))
	}
}
