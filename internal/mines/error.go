package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams = errors.New("invalid game params")
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrCorruptState  = errors.New("corrupt game state")
)

// AssertionError reports a broken engine contract: out-of-range
// coordinates, impossible mine counts and the like.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(AssertionError{fmt.Sprintf(format, args...)})
	}
}

// recoverAssertion turns an [AssertionError] panic into *err. Any other
// panic is re-raised.
func recoverAssertion(err *error) {
	r := recover()
	if r == nil {
		return
	}
	var ae AssertionError
	if e, ok := r.(error); ok && errors.As(e, &ae) {
		*err = ae
		return
	}
	panic(r)
}
