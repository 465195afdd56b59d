package ndarray

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrShapeMismatch is returned when values that must share a shape do not,
	// including ragged nested slices.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")

	// ErrKindMismatch is returned when values that must share an element kind
	// do not.
	ErrKindMismatch = errors.New("ndarray: element kind mismatch")

	// ErrUnsupported is returned for values that are not numeric scalars,
	// rectangular slices of numbers or Arrays.
	ErrUnsupported = errors.New("ndarray: unsupported value")

	// ErrBadShape is returned for negative dimensions, data that does not fit
	// its shape, and operations that need a different number of dimensions.
	ErrBadShape = errors.New("ndarray: invalid shape")

	// ErrEmpty is returned by Stack when there is nothing to stack.
	ErrEmpty = errors.New("ndarray: nothing to stack")
)

// MismatchError reports which element of a Stack call disagreed with the
// first one. Err is either ErrShapeMismatch or ErrKindMismatch.
type MismatchError struct {
	Index     int
	WantShape []int
	GotShape  []int
	WantKind  reflect.Kind
	GotKind   reflect.Kind
	Err       error
}

func (e MismatchError) Error() string {
	if errors.Is(e.Err, ErrKindMismatch) {
		return fmt.Sprintf("%v: element %d has kind %s, want %s", e.Err, e.Index, e.GotKind, e.WantKind)
	}
	return fmt.Sprintf("%v: element %d has shape %v, want %v", e.Err, e.Index, e.GotShape, e.WantShape)
}

func (e MismatchError) Unwrap() error {
	return e.Err
}
