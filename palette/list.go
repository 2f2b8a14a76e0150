package palette

// List is a simple in-memory IndexList assigning raw ids in registration
// order. It covers embedders that do not bring their own registry.
type List[T comparable] struct {
	values []T
	index  map[T]uint32
}

// NewList returns a List registering values in order. Duplicates keep
// their first id.
func NewList[T comparable](values ...T) *List[T] {
	l := &List[T]{index: make(map[T]uint32, len(values))}
	for _, v := range values {
		l.Register(v)
	}
	return l
}

// Register adds value to the list if absent and returns its raw id.
func (l *List[T]) Register(value T) uint32 {
	if id, ok := l.index[value]; ok {
		return id
	}
	id := uint32(len(l.values))
	l.values = append(l.values, value)
	l.index[value] = id
	return id
}

func (l *List[T]) Len() int { return len(l.values) }

func (l *List[T]) IndexOf(value T) (uint32, bool) {
	id, ok := l.index[value]
	return id, ok
}

func (l *List[T]) ValueAt(index uint32) (T, bool) {
	if int(index) >= len(l.values) {
		var zero T
		return zero, false
	}
	return l.values[index], true
}

var _ IndexList[int] = (*List[int])(nil)
