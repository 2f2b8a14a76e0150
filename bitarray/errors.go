package bitarray

import "fmt"

// WordCountError reports a backing buffer whose length does not match the
// length implied by the element width and size.
type WordCountError struct {
	Expected int // Expected number of words
	Actual   int // Actual number of words
}

func (e *WordCountError) Error() string {
	return fmt.Sprintf("bitarray: backing word count mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// IndexError reports an access outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("bitarray: index %d out of range [0, %d)", e.Index, e.Len)
}

// ValueError reports a value that does not fit in the element width.
type ValueError struct {
	Value uint32
	Max   uint32
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("bitarray: value %d exceeds element maximum %d", e.Value, e.Max)
}
