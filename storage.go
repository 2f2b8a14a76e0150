package paletted

import (
	"iter"

	"github.com/voxelforge/paletted/bitarray"
)

// Storage is the index store behind a container: a bit-packed array, or
// the zero-width marker used while a single palette entry covers every
// cell. The bitarray layer itself never admits width zero; the marker
// exists only at this level.
type Storage interface {
	// Bits returns the element width; zero for the empty marker.
	Bits() int
	// Len returns the number of cells.
	Len() int
	// Words returns the raw backing words; nil for the empty marker.
	Words() []uint64
	// Get returns the index stored at cell i, or false out of range.
	Get(i int) (uint32, bool)
	// Set stores index v at cell i.
	Set(i int, v uint32) error
	// Swap stores index v at cell i and returns the previous index.
	Swap(i int, v uint32) (uint32, error)
	// Values returns all Len stored indices in cell order.
	Values() iter.Seq[uint32]
}

var _ Storage = (*bitarray.Array)(nil)
var _ Storage = emptyStorage{}

// emptyStorage holds size cells of the implicit index zero and stores
// nothing. Writes of any other index are value-range errors, which the
// container never produces: a second distinct value overflows the
// Singular palette and replaces this storage before any write lands.
type emptyStorage struct {
	size int
}

func (s emptyStorage) Bits() int       { return 0 }
func (s emptyStorage) Len() int        { return s.size }
func (s emptyStorage) Words() []uint64 { return nil }

func (s emptyStorage) Get(i int) (uint32, bool) {
	return 0, i >= 0 && i < s.size
}

func (s emptyStorage) Set(i int, v uint32) error {
	_, err := s.Swap(i, v)
	return err
}

func (s emptyStorage) Swap(i int, v uint32) (uint32, error) {
	if i < 0 || i >= s.size {
		return 0, &bitarray.IndexError{Index: i, Len: s.size}
	}
	if v != 0 {
		return 0, &bitarray.ValueError{Value: v, Max: 0}
	}
	return 0, nil
}

func (s emptyStorage) Values() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := 0; i < s.size; i++ {
			if !yield(0) {
				return
			}
		}
	}
}
