package palette

import (
	"fmt"
	"iter"
)

// BiMap stores up to 2^bits values behind a hashed bidirectional map:
// a slice for index-to-value and a map for value-to-index. Same contract
// as Array, constant-time lookup at the larger capacities.
type BiMap[T comparable] struct {
	byIndex []T
	byValue map[T]uint32
	bits    int
}

// NewBiMap returns an empty BiMap palette with capacity 2^bits. It
// panics unless bits is in [1, 16].
func NewBiMap[T comparable](bits int) *BiMap[T] {
	checkBits(bits)
	return &BiMap[T]{
		byIndex: make([]T, 0, 1<<bits),
		byValue: make(map[T]uint32, 1<<bits),
		bits:    bits,
	}
}

// NewBiMapSeeded returns a BiMap palette pre-populated with values in
// order. It panics on an invalid width and reports an error when values
// exceed the capacity. Duplicate seed values collapse onto the first
// occurrence's index.
func NewBiMapSeeded[T comparable](bits int, values []T) (*BiMap[T], error) {
	p := NewBiMap[T](bits)
	if len(values) > cap(p.byIndex) {
		return nil, fmt.Errorf("palette: %d seed values exceed capacity %d", len(values), cap(p.byIndex))
	}
	for _, v := range values {
		if _, ok := p.byValue[v]; !ok {
			p.byValue[v] = uint32(len(p.byIndex))
		}
		p.byIndex = append(p.byIndex, v)
	}
	return p, nil
}

func (p *BiMap[T]) Strategy() Strategy { return StrategyBiMap }

func (p *BiMap[T]) ValueAt(index uint32) (T, bool) {
	if int(index) >= len(p.byIndex) {
		var zero T
		return zero, false
	}
	return p.byIndex[index], true
}

func (p *BiMap[T]) IndexOf(value T) (uint32, bool) {
	i, ok := p.byValue[value]
	return i, ok
}

func (p *BiMap[T]) IndexOrInsert(value T) (uint32, error) {
	if i, ok := p.byValue[value]; ok {
		return i, nil
	}
	if len(p.byIndex) == cap(p.byIndex) {
		return 0, &Overflow[T]{Bits: p.bits + 1, Value: value}
	}
	i := uint32(len(p.byIndex))
	p.byIndex = append(p.byIndex, value)
	p.byValue[value] = i
	return i, nil
}

func (p *BiMap[T]) Len() int { return len(p.byIndex) }

func (p *BiMap[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range p.byIndex {
			if !yield(v) {
				return
			}
		}
	}
}
