package paletted

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/voxelforge/paletted/bitarray"
	"github.com/voxelforge/paletted/palette"
)

// Wire layout, bit-exact and in this order:
//
//	1 byte   storage element width (0 for the empty marker)
//	palette  Singular: uvarint raw id of the one value
//	         Array/BiMap: uvarint count, then count uvarint raw ids in
//	         insertion order
//	         Direct: nothing
//	storage  uvarint word count, then count big-endian 8-byte words,
//	         the bit-packed backing verbatim
//
// The palette section carries raw ids from the container's IndexList, so
// both peers must share one id assignment. The strategy is not tagged on
// the wire: the decoder derives it from the width byte through the same
// Policy the encoder was built with.

var (
	_ encoding.BinaryMarshaler   = (*Container[int])(nil)
	_ encoding.BinaryUnmarshaler = (*Container[int])(nil)
)

// MarshalBinary encodes the container in the wire layout.
func (c *Container[T]) MarshalBinary() ([]byte, error) {
	words := c.store.Words()
	buf := make([]byte, 0, 1+binary.MaxVarintLen32*(1+c.pal.Len())+8*len(words))

	buf = append(buf, byte(c.store.Bits()))

	switch c.pal.Strategy() {
	case palette.StrategySingular:
		v, ok := c.pal.ValueAt(0)
		if !ok {
			return nil, fmt.Errorf("paletted: encoding unseeded singular palette")
		}
		id, err := c.rawID(v)
		if err != nil {
			return nil, err
		}
		buf = binary.AppendUvarint(buf, uint64(id))
	case palette.StrategyArray, palette.StrategyBiMap:
		buf = binary.AppendUvarint(buf, uint64(c.pal.Len()))
		for v := range c.pal.Values() {
			id, err := c.rawID(v)
			if err != nil {
				return nil, err
			}
			buf = binary.AppendUvarint(buf, uint64(id))
		}
	case palette.StrategyDirect:
		// Indices are raw ids already; no palette payload.
	}

	buf = binary.AppendUvarint(buf, uint64(len(words)))
	for _, w := range words {
		buf = binary.BigEndian.AppendUint64(buf, w)
	}
	return buf, nil
}

func (c *Container[T]) rawID(v T) (uint32, error) {
	id, ok := c.ids.IndexOf(v)
	if !ok {
		return 0, &palette.UnknownValueError[T]{Value: v}
	}
	return id, nil
}

// UnmarshalBinary decodes data into the container, replacing its palette
// generation and storage wholesale. The container keeps its IndexList,
// Policy and size; data must describe exactly Size cells and nothing may
// trail the storage section.
func (c *Container[T]) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	widthByte, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("%w: missing width byte", ErrTruncated)
	}
	cfg := c.policy.Configuration(c.ids, int(widthByte))
	pal, store := c.makeData(cfg)

	switch pal.Strategy() {
	case palette.StrategySingular:
		if err := c.readPaletteEntry(r, pal); err != nil {
			return err
		}
	case palette.StrategyArray, palette.StrategyBiMap:
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return fmt.Errorf("%w: palette count: %v", ErrTruncated, err)
		}
		if n > uint64(1)<<cfg.Bits {
			return fmt.Errorf("%w: palette count %d exceeds capacity %d", ErrMalformed, n, 1<<cfg.Bits)
		}
		for i := uint64(0); i < n; i++ {
			if err := c.readPaletteEntry(r, pal); err != nil {
				return err
			}
		}
	case palette.StrategyDirect:
		// No palette payload.
	}

	wordCount, err := binary.ReadUvarint(r)
	if err != nil {
		return fmt.Errorf("%w: word count: %v", ErrTruncated, err)
	}
	if cfg.Bits == 0 {
		if wordCount != 0 {
			return fmt.Errorf("%w: %d words for zero-width storage", ErrMalformed, wordCount)
		}
	} else {
		want := bitarray.WordsFor(cfg.Bits, c.size)
		if wordCount != uint64(want) {
			return fmt.Errorf("%w: word count %d, want %d for %d cells at %d bits", ErrMalformed, wordCount, want, c.size, cfg.Bits)
		}
		words := make([]uint64, wordCount)
		for i := range words {
			var raw [8]byte
			if _, err := io.ReadFull(r, raw[:]); err != nil {
				return fmt.Errorf("%w: storage word %d", ErrTruncated, i)
			}
			words[i] = binary.BigEndian.Uint64(raw[:])
		}
		arr, err := bitarray.FromWords(cfg.Bits, c.size, words)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		store = arr
	}

	if r.Len() != 0 {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, r.Len())
	}

	c.cfg, c.pal, c.store = cfg, pal, store
	return nil
}

// readPaletteEntry reads one raw id, resolves it through the IndexList
// and inserts the value into pal.
func (c *Container[T]) readPaletteEntry(r *bytes.Reader, pal palette.Palette[T]) error {
	id, err := binary.ReadUvarint(r)
	if err != nil {
		return fmt.Errorf("%w: palette entry: %v", ErrTruncated, err)
	}
	if id > uint64(^uint32(0)) {
		return fmt.Errorf("%w: raw id %d overflows 32 bits", ErrMalformed, id)
	}
	v, ok := c.ids.ValueAt(uint32(id))
	if !ok {
		return fmt.Errorf("%w: raw id %d not in index list", ErrMalformed, id)
	}
	if _, err := pal.IndexOrInsert(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
