package strtype

import (
	"errors"
	"fmt"
)

// Standard sentinel errors shared by generated code.
var (
	// ErrDecode is returned when a byte-sequence input is not well-formed
	// UTF-8. It only occurs on the byte entry points of infallible types,
	// where validation itself cannot fail but decoding still can.
	ErrDecode = errors.New("strtype: input is not valid UTF-8")
)

// DecodeError reports a byte sequence that is not well-formed UTF-8.
// It is distinct from the per-type Invalid* validation errors: a value
// rejected by DecodeError never reached the validation predicate.
type DecodeError struct {
	// Input is the rejected byte sequence.
	Input []byte
}

// Error returns the error string.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("strtype: input of %d bytes is not valid UTF-8", len(e.Input))
}

// Is reports whether the target matches the sentinel error for DecodeError.
// This allows errors.Is(err, ErrDecode) to return true.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// NewDecodeError returns a new DecodeError for the given input.
func NewDecodeError(input []byte) *DecodeError {
	return &DecodeError{Input: input}
}

// IsDecodeError reports whether the error is a DecodeError.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}
