// Package section layers chunk-section bookkeeping on top of a paletted
// container: a non-empty cell count and an occupancy bitmap, maintained
// incrementally from writes. The container stays generic; what counts as
// "empty" is a predicate the embedder supplies (air blocks, the default
// biome, and so on).
package section

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/voxelforge/paletted"
)

// Section wraps a paletted container with occupancy bookkeeping.
// Like the container itself it is not safe for concurrent mutation.
type Section[T comparable] struct {
	states   *paletted.Container[T]
	empty    func(T) bool
	nonEmpty int
	occupied *roaring.Bitmap
}

// New returns a Section over states. The empty predicate decides which
// values count as occupancy; the initial counts are taken from the
// container's current contents.
func New[T comparable](states *paletted.Container[T], empty func(T) bool) *Section[T] {
	s := &Section[T]{
		states:   states,
		empty:    empty,
		occupied: roaring.New(),
	}
	s.Recount()
	return s
}

// States returns the underlying container. Mutating it directly leaves
// the bookkeeping stale until Recount.
func (s *Section[T]) States() *paletted.Container[T] { return s.states }

// Get returns the value at cell i, or false when i is out of range.
func (s *Section[T]) Get(i int) (T, bool) {
	return s.states.Get(i)
}

// Set stores value at cell i, updates the occupancy bookkeeping and
// returns the value previously held there.
func (s *Section[T]) Set(i int, value T) (T, error) {
	old, err := s.states.Swap(i, value)
	if err != nil {
		return old, err
	}
	if !s.empty(old) {
		s.nonEmpty--
	}
	if s.empty(value) {
		s.occupied.Remove(uint32(i))
	} else {
		s.nonEmpty++
		s.occupied.Add(uint32(i))
	}
	return old, nil
}

// NonEmpty returns the number of cells whose value fails the empty
// predicate.
func (s *Section[T]) NonEmpty() int { return s.nonEmpty }

// IsEmpty reports whether every cell is empty.
func (s *Section[T]) IsEmpty() bool { return s.nonEmpty == 0 }

// Occupied returns the indices of all non-empty cells in ascending
// order.
func (s *Section[T]) Occupied() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.occupied.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Recount rebuilds the non-empty count and occupancy bitmap from the
// container. Needed after mutating the container behind the section's
// back, for example by decoding into it.
func (s *Section[T]) Recount() {
	s.occupied.Clear()
	s.nonEmpty = 0
	for i := 0; i < s.states.Size(); i++ {
		v, ok := s.states.Get(i)
		if !ok {
			continue
		}
		if !s.empty(v) {
			s.nonEmpty++
			s.occupied.Add(uint32(i))
		}
	}
}
