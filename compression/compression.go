// Package compression provides the block codecs used to store cold chunks.
//
// The codec is a runtime value, so one binary can hold pyramids with
// different codecs side by side:
//
//	c, err := compression.Parse("lz4")
//	block, err := c.Compress(raw)
//	raw, err = c.Decompress(block)
//
// Every block carries an 8-byte header:
//
//	[UncompressedSize uint32][CompressedSize uint32][Data...]
//
// CompressedSize == 0 means the payload is stored raw, which happens for
// Compression None and whenever a codec fails to shrink the input.
package compression

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/voxgo/internal/conv"
)

var (
	// ErrUnknownCompression is returned for an unsupported codec value or name.
	ErrUnknownCompression = errors.New("unknown compression")
	// ErrCorruptBlock is returned when a block header does not match its payload.
	ErrCorruptBlock = errors.New("corrupt compressed block")
)

// Compression selects a block codec.
type Compression uint8

const (
	// None stores blocks raw.
	None Compression = iota
	// LZ4 is fast and suits chunks that are touched often.
	LZ4
	// Snappy trades a little ratio for very cheap decompression.
	Snappy
	// Zstd has the best ratio and suits rarely visited levels.
	Zstd
)

const blockHeaderSize = 8

// Parse returns the codec with the given name.
func Parse(name string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "snappy":
		return Snappy, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Snappy:
		return "snappy"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Valid reports whether c names a supported codec.
func (c Compression) Valid() bool { return c <= Zstd }

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Compress encodes data into a self-describing block. Safe for concurrent use.
func (c Compression) Compress(data []byte) ([]byte, error) {
	var (
		compressed []byte
		err        error
	)

	switch c {
	case None:
	case LZ4:
		if len(data) > 0 {
			compressed, err = compressLZ4(data)
		}
	case Snappy:
		compressed = snappy.Encode(nil, data)
	case Zstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
	if err != nil {
		return nil, err
	}

	uncompressedSize, err := conv.IntToUint32(len(data))
	if err != nil {
		return nil, err
	}

	// Keep the raw bytes when the codec does not help.
	if len(compressed) == 0 || len(compressed) >= len(data) {
		block := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(block[0:], uncompressedSize)
		binary.LittleEndian.PutUint32(block[4:], 0)
		copy(block[blockHeaderSize:], data)
		return block, nil
	}

	block := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(block[0:], uncompressedSize)
	binary.LittleEndian.PutUint32(block[4:], uint32(len(compressed)))
	copy(block[blockHeaderSize:], compressed)
	return block, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return dst[:n], nil
}

// Decompress decodes a block produced by Compress with the same codec.
func (c Compression) Decompress(block []byte) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, fmt.Errorf("%w: block too small for header", ErrCorruptBlock)
	}

	uncompressedSize := binary.LittleEndian.Uint32(block[0:])
	compressedSize := binary.LittleEndian.Uint32(block[4:])
	payload := block[blockHeaderSize:]

	if compressedSize == 0 {
		if uint32(len(payload)) != uncompressedSize {
			return nil, fmt.Errorf("%w: raw payload is %d bytes, header says %d", ErrCorruptBlock, len(payload), uncompressedSize)
		}
		out := make([]byte, uncompressedSize)
		copy(out, payload)
		return out, nil
	}

	if uint32(len(payload)) != compressedSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorruptBlock, len(payload), compressedSize)
	}

	out := make([]byte, uncompressedSize)

	switch c {
	case LZ4:
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		out = out[:n]
	case Snappy:
		decoded, err := snappy.Decode(out, payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		out = decoded
	case Zstd:
		dec := getZstdDecoder()
		decoded, err := dec.DecodeAll(payload, out[:0])
		putZstdDecoder(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		out = decoded
	case None:
		return nil, fmt.Errorf("%w: compressed payload in an uncompressed block", ErrCorruptBlock)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}

	if uint32(len(out)) != uncompressedSize {
		return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", ErrCorruptBlock, len(out), uncompressedSize)
	}
	return out, nil
}
