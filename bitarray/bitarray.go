// Package bitarray implements dense storage of fixed-width unsigned
// integers packed into 64-bit words.
//
// An Array of n elements at w bits each occupies ceil(n / (64/w)) words.
// Elements never straddle a word boundary; the unused high bits of each
// word are always zero. The backing words are the wire representation of
// the array, so they can be written out and reinstalled verbatim.
package bitarray

import (
	"fmt"
	"iter"
	"math"
	"math/bits"
)

const wordBits = 64

// MinElementBits and MaxElementBits bound the supported element width.
const (
	MinElementBits = 1
	MaxElementBits = 32
)

// divMagic holds the multiply-shift constants that replace the integer
// division index/valuesPerWord on every access:
//
//	index / valuesPerWord == (index*mul + add) >> 32 >> shift
//
// valid for any index addressable by the array.
type divMagic struct {
	mul   uint64
	add   uint64
	shift uint
}

// magicTable is keyed by valuesPerWord-1. It is computed once and never
// mutated afterwards.
var magicTable = func() [wordBits]divMagic {
	var table [wordBits]divMagic
	for v := 1; v <= wordBits; v++ {
		if v > 1 && v&(v-1) == 0 {
			// Power of two: a plain shift, folded into the >>32.
			table[v-1] = divMagic{mul: 1 << 31, shift: uint(bits.TrailingZeros(uint(v))) - 1}
			continue
		}
		m := uint64(math.MaxUint32) / uint64(v)
		table[v-1] = divMagic{mul: m, add: m}
	}
	return table
}()

// Array stores a fixed number of unsigned integers at a fixed bit width.
// The zero value is not usable; construct with New or FromWords.
type Array struct {
	words         []uint64
	mask          uint64
	elementBits   int
	size          int
	valuesPerWord int
	div           divMagic
}

// WordsFor returns the number of backing words an array of size elements
// at the given width requires. It panics unless elementBits is in
// [MinElementBits, MaxElementBits].
func WordsFor(elementBits, size int) int {
	vpw := valuesPerWord(elementBits)
	return (size + vpw - 1) / vpw
}

func valuesPerWord(elementBits int) int {
	if elementBits < MinElementBits || elementBits > MaxElementBits {
		panic(fmt.Sprintf("bitarray: element bits %d outside [%d, %d]", elementBits, MinElementBits, MaxElementBits))
	}
	return wordBits / elementBits
}

// New returns a zero-filled Array of size elements at elementBits width
// each. It panics unless elementBits is in [MinElementBits, MaxElementBits];
// an invalid width is a programmer error, not a data error.
func New(elementBits, size int) *Array {
	a, err := FromWords(elementBits, size, nil)
	if err != nil {
		panic(err)
	}
	return a
}

// FromWords returns an Array backed by the given words, which must have
// length WordsFor(elementBits, size); a mismatch is reported as a
// *WordCountError. A nil words slice allocates a zero-filled backing.
// The slice is retained, not copied. FromWords panics on an invalid
// width, same as New.
func FromWords(elementBits, size int, words []uint64) (*Array, error) {
	vpw := valuesPerWord(elementBits)
	n := (size + vpw - 1) / vpw
	if words == nil {
		words = make([]uint64, n)
	} else if len(words) != n {
		return nil, &WordCountError{Expected: n, Actual: len(words)}
	}
	return &Array{
		words:         words,
		mask:          1<<elementBits - 1,
		elementBits:   elementBits,
		size:          size,
		valuesPerWord: vpw,
		div:           magicTable[vpw-1],
	}, nil
}

// Bits returns the element width in bits.
func (a *Array) Bits() int { return a.elementBits }

// Len returns the number of elements.
func (a *Array) Len() int { return a.size }

// Words returns the raw backing words. The slice aliases the array's
// storage and is the array's wire representation.
func (a *Array) Words() []uint64 { return a.words }

func (a *Array) wordIndex(i int) int {
	return int((uint64(i)*a.div.mul + a.div.add) >> 32 >> a.div.shift)
}

// Get returns the element at index i, or false when i is out of range.
func (a *Array) Get(i int) (uint32, bool) {
	if i < 0 || i >= a.size {
		return 0, false
	}
	w := a.wordIndex(i)
	shift := uint(i-w*a.valuesPerWord) * uint(a.elementBits)
	return uint32(a.words[w] >> shift & a.mask), true
}

// Set stores v at index i. It reports an *IndexError when i is out of
// range and a *ValueError when v does not fit in the element width.
func (a *Array) Set(i int, v uint32) error {
	_, err := a.put(i, v)
	return err
}

// Swap stores v at index i and returns the element previously stored
// there. The error contract is identical to Set; on error nothing is
// written.
func (a *Array) Swap(i int, v uint32) (uint32, error) {
	return a.put(i, v)
}

func (a *Array) put(i int, v uint32) (uint32, error) {
	if i < 0 || i >= a.size {
		return 0, &IndexError{Index: i, Len: a.size}
	}
	if uint64(v) > a.mask {
		return 0, &ValueError{Value: v, Max: uint32(a.mask)}
	}
	w := a.wordIndex(i)
	shift := uint(i-w*a.valuesPerWord) * uint(a.elementBits)
	old := uint32(a.words[w] >> shift & a.mask)
	a.words[w] = a.words[w]&^(a.mask<<shift) | uint64(v)<<shift
	return old, nil
}

// Values returns a lazy sequence of all Len elements in index order,
// unpacking one backing word at a time. The sequence is restartable and
// reflects the array contents at iteration time.
func (a *Array) Values() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		i := 0
		for _, w := range a.words {
			for j := 0; j < a.valuesPerWord; j++ {
				if i >= a.size {
					return
				}
				if !yield(uint32(w & a.mask)) {
					return
				}
				w >>= a.elementBits
				i++
			}
		}
	}
}
