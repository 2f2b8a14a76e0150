package paletted

import "errors"

var (
	// ErrPolicyExhausted is returned when a full palette cannot grow
	// because the policy answered with the configuration already in use,
	// or with one that still rejects the insert.
	ErrPolicyExhausted = errors.New("paletted: sizing policy cannot grow palette")

	// ErrTruncated is returned when decoding runs out of input before
	// the wire layout is complete.
	ErrTruncated = errors.New("paletted: truncated input")

	// ErrMalformed is returned when decoded input violates the wire
	// layout: bad counts, unknown raw ids, or trailing bytes.
	ErrMalformed = errors.New("paletted: malformed input")
)
