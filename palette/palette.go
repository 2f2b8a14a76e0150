// Package palette provides bidirectional value-to-index mappings used by
// paletted containers.
//
// A palette maps a small set of distinct values to compact integer
// indices. Four interchangeable strategies cover the cardinality range:
// Singular (one distinct value), Array (linear scan, small capacities),
// BiMap (hashed lookup, medium capacities) and Direct (delegates to the
// global IndexList, unbounded). The strategy set is closed; callers
// dispatch on the Strategy tag rather than on dynamic types.
package palette

import (
	"fmt"
	"iter"
)

// IndexList is the external registry mapping every known value to a
// stable raw id and back. Raw ids are dense in [0, Len). Implementations
// are treated as read-only services and must not change while a palette
// built on them is live.
type IndexList[T comparable] interface {
	// Len returns the number of registered values.
	Len() int

	// IndexOf returns the raw id of value, or false when value is not
	// registered.
	IndexOf(value T) (uint32, bool)

	// ValueAt returns the value registered under the raw id, or false
	// when the id is out of range.
	ValueAt(index uint32) (T, bool)
}

// Strategy identifies which palette implementation is active.
type Strategy uint8

const (
	// StrategySingular holds at most one distinct value.
	StrategySingular Strategy = iota
	// StrategyArray holds up to 2^bits values behind a linear scan.
	StrategyArray
	// StrategyBiMap holds up to 2^bits values behind a hashed bimap.
	StrategyBiMap
	// StrategyDirect maps 1:1 to the global IndexList raw id space.
	StrategyDirect
)

// String returns a string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySingular:
		return "Singular"
	case StrategyArray:
		return "Array"
	case StrategyBiMap:
		return "BiMap"
	case StrategyDirect:
		return "Direct"
	default:
		return "Unknown"
	}
}

// Palette is the uniform contract shared by all strategies.
type Palette[T comparable] interface {
	// Strategy returns the tag identifying the implementation.
	Strategy() Strategy

	// ValueAt returns the value stored at index, or false when no value
	// is stored there.
	ValueAt(index uint32) (T, bool)

	// IndexOf returns the index of value without mutating the palette,
	// or false when value is not present.
	IndexOf(value T) (uint32, bool)

	// IndexOrInsert returns the index of value, inserting it first if
	// necessary. When the palette cannot admit another distinct value it
	// returns a *Overflow carrying the element width a replacement
	// generation needs. Direct palettes never overflow but report a
	// *UnknownValueError for values missing from the IndexList.
	IndexOrInsert(value T) (uint32, error)

	// Len returns the number of values currently present.
	Len() int

	// Values returns the present values in insertion order (Direct: the
	// backing IndexList's own order).
	Values() iter.Seq[T]
}

// Overflow is returned by IndexOrInsert when a palette is full. Bits is
// the element width a replacement generation needs to admit Value; the
// sizing policy consuming it must answer with a configuration holding at
// least one spare slot.
type Overflow[T comparable] struct {
	Bits  int
	Value T
}

func (e *Overflow[T]) Error() string {
	return fmt.Sprintf("palette: full, %d bits required for %v", e.Bits, e.Value)
}

// UnknownValueError reports a value missing from the backing IndexList.
type UnknownValueError[T comparable] struct {
	Value T
}

func (e *UnknownValueError[T]) Error() string {
	return fmt.Sprintf("palette: value %v not present in index list", e.Value)
}

// Compile-time checks that every strategy satisfies Palette.
var (
	_ Palette[int] = (*Singular[int])(nil)
	_ Palette[int] = (*Array[int])(nil)
	_ Palette[int] = (*BiMap[int])(nil)
	_ Palette[int] = (*Direct[int])(nil)
)
