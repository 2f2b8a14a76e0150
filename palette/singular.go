package palette

import "iter"

// Singular holds zero or one distinct value at index 0. It backs the
// common all-cells-equal case where the container keeps no bit storage
// at all.
type Singular[T comparable] struct {
	value T
	set   bool
}

// NewSingular returns an empty Singular palette.
func NewSingular[T comparable]() *Singular[T] {
	return &Singular[T]{}
}

func (p *Singular[T]) Strategy() Strategy { return StrategySingular }

func (p *Singular[T]) ValueAt(index uint32) (T, bool) {
	if !p.set || index != 0 {
		var zero T
		return zero, false
	}
	return p.value, true
}

func (p *Singular[T]) IndexOf(value T) (uint32, bool) {
	return 0, p.set && p.value == value
}

func (p *Singular[T]) IndexOrInsert(value T) (uint32, error) {
	if p.set && p.value != value {
		return 0, &Overflow[T]{Bits: 1, Value: value}
	}
	p.value = value
	p.set = true
	return 0, nil
}

func (p *Singular[T]) Len() int {
	if p.set {
		return 1
	}
	return 0
}

func (p *Singular[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		if p.set {
			yield(p.value)
		}
	}
}
