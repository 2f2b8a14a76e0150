package store

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the block compression algorithm used for stored
// sections.
type Compression uint8

const (
	// CompressionNone stores blobs uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot
	// sections).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good
	// for cold sections).
	CompressionZSTD Compression = 2
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZSTD:
		return "ZSTD"
	default:
		return "Unknown"
	}
}

// Stored blocks are self-describing so readers need no out-of-band
// configuration:
//
//	[algorithm:1][uncompressedSize:4 LE][payload]
//
// An algorithm byte of CompressionNone means the payload is verbatim.
const blockHeaderSize = 5

// ZSTD encoder/decoder pools for efficiency.
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

// compressBlock frames data with the block header, compressing with the
// given algorithm. Incompressible data falls back to a None block.
func compressBlock(data []byte, algorithm Compression) ([]byte, error) {
	var compressed []byte
	var err error

	switch algorithm {
	case CompressionNone:
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed, err = compressBlockZSTD(data)
	default:
		return nil, fmt.Errorf("store: unknown compression %d", algorithm)
	}
	if err != nil {
		return nil, err
	}

	// Fall back to a raw block when compression does not pay off.
	if compressed == nil || len(compressed) >= len(data) {
		algorithm = CompressionNone
		compressed = data
	}

	block := make([]byte, blockHeaderSize+len(compressed))
	block[0] = byte(algorithm)
	binary.LittleEndian.PutUint32(block[1:], uint32(len(data)))
	copy(block[blockHeaderSize:], compressed)
	return block, nil
}

// compressBlockLZ4 compresses data using LZ4. A nil result means the
// input was incompressible.
func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // Incompressible
	}
	return compressed[:n], nil
}

// compressBlockZSTD compresses data using ZSTD.
func compressBlockZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)
	return enc.EncodeAll(data, nil), nil
}

// decompressBlock undoes compressBlock; the algorithm comes from the
// block header.
func decompressBlock(block []byte) ([]byte, error) {
	if len(block) < blockHeaderSize {
		return nil, fmt.Errorf("store: block shorter than header: %d bytes", len(block))
	}
	algorithm := Compression(block[0])
	uncompressedSize := binary.LittleEndian.Uint32(block[1:])
	payload := block[blockHeaderSize:]

	switch algorithm {
	case CompressionNone:
		if uint32(len(payload)) != uncompressedSize {
			return nil, fmt.Errorf("store: raw block size mismatch: header %d, payload %d", uncompressedSize, len(payload))
		}
		return payload, nil

	case CompressionLZ4:
		result := make([]byte, uncompressedSize)
		n, err := lz4.UncompressBlock(payload, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("store: decompressed size mismatch: header %d, got %d", uncompressedSize, n)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		decoded, err := dec.DecodeAll(payload, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("store: decompressed size mismatch: header %d, got %d", uncompressedSize, len(decoded))
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("store: unknown compression %d", algorithm)
	}
}
