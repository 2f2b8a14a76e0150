package palette

import "iter"

// Direct delegates entirely to the global IndexList: the palette index
// of a value is its raw id. Capacity is the IndexList's size, so inserts
// never overflow, and the container needs no per-palette wire payload.
type Direct[T comparable] struct {
	ids IndexList[T]
}

// NewDirect returns a Direct palette over ids.
func NewDirect[T comparable](ids IndexList[T]) *Direct[T] {
	return &Direct[T]{ids: ids}
}

func (p *Direct[T]) Strategy() Strategy { return StrategyDirect }

func (p *Direct[T]) ValueAt(index uint32) (T, bool) {
	return p.ids.ValueAt(index)
}

func (p *Direct[T]) IndexOf(value T) (uint32, bool) {
	return p.ids.IndexOf(value)
}

func (p *Direct[T]) IndexOrInsert(value T) (uint32, error) {
	id, ok := p.ids.IndexOf(value)
	if !ok {
		return 0, &UnknownValueError[T]{Value: value}
	}
	return id, nil
}

func (p *Direct[T]) Len() int { return p.ids.Len() }

func (p *Direct[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < p.ids.Len(); i++ {
			v, ok := p.ids.ValueAt(uint32(i))
			if !ok {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
