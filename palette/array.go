package palette

import (
	"fmt"
	"iter"
)

// Array stores up to 2^bits values in insertion order and resolves
// lookups by linear scan. At the small capacities it is configured for,
// the scan beats hashing.
type Array[T comparable] struct {
	values []T
	bits   int
}

// NewArray returns an empty Array palette with capacity 2^bits. It
// panics unless bits is in [1, 16].
func NewArray[T comparable](bits int) *Array[T] {
	checkBits(bits)
	return &Array[T]{
		values: make([]T, 0, 1<<bits),
		bits:   bits,
	}
}

// NewArraySeeded returns an Array palette pre-populated with values in
// order. It panics on an invalid width and reports an error when values
// exceed the capacity; duplicates are not checked.
func NewArraySeeded[T comparable](bits int, values []T) (*Array[T], error) {
	p := NewArray[T](bits)
	if len(values) > cap(p.values) {
		return nil, fmt.Errorf("palette: %d seed values exceed capacity %d", len(values), cap(p.values))
	}
	p.values = append(p.values, values...)
	return p, nil
}

func checkBits(bits int) {
	if bits < 1 || bits > 16 {
		panic(fmt.Sprintf("palette: bits %d outside [1, 16]", bits))
	}
}

func (p *Array[T]) Strategy() Strategy { return StrategyArray }

func (p *Array[T]) ValueAt(index uint32) (T, bool) {
	if int(index) >= len(p.values) {
		var zero T
		return zero, false
	}
	return p.values[index], true
}

func (p *Array[T]) IndexOf(value T) (uint32, bool) {
	for i, v := range p.values {
		if v == value {
			return uint32(i), true
		}
	}
	return 0, false
}

func (p *Array[T]) IndexOrInsert(value T) (uint32, error) {
	if i, ok := p.IndexOf(value); ok {
		return i, nil
	}
	if len(p.values) == cap(p.values) {
		return 0, &Overflow[T]{Bits: p.bits + 1, Value: value}
	}
	p.values = append(p.values, value)
	return uint32(len(p.values) - 1), nil
}

func (p *Array[T]) Len() int { return len(p.values) }

func (p *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range p.values {
			if !yield(v) {
				return
			}
		}
	}
}
