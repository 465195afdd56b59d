package batch

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSources is returned when a Generator would have no sources.
	ErrNoSources = errors.New("batch: no sample sources")

	// ErrNilSource is returned when one of the sources is nil.
	ErrNilSource = errors.New("batch: nil sample source")

	// ErrNoSuchMethod is returned when a source does not support the
	// requested method. It is the Go counterpart of an attribute lookup
	// failure, and every unknown name produces it.
	ErrNoSuchMethod = errors.New("no such method")

	// ErrBadArguments is returned when the arguments of a call do not match
	// a source's method signature.
	ErrBadArguments = errors.New("bad arguments")
)

// MethodError is returned when a method cannot be called on one of the
// sources, either because it does not exist there (ErrNoSuchMethod) or
// because the arguments do not fit (ErrBadArguments). For sources with Go
// methods it is detected before any source is called.
type MethodError struct {
	Method string
	Index  int
	Err    error
}

func (e MethodError) Error() string {
	return fmt.Sprintf("batch: method %s on source %d: %v", e.Method, e.Index, e.Err)
}

func (e MethodError) Unwrap() error {
	return e.Err
}

// SourceError is returned when a source's method returns an error. Sources
// before Index have already been called and their state has advanced.
type SourceError struct {
	Method string
	Index  int
	Err    error
}

func (e SourceError) Error() string {
	return fmt.Sprintf("batch: source %d: %s: %v", e.Index, e.Method, e.Err)
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// StackError is returned when the results of a call cannot be combined,
// because a result is not numeric or the results differ in shape or kind.
// Err wraps one of the ndarray errors.
type StackError struct {
	Method string
	Err    error
}

func (e StackError) Error() string {
	return fmt.Sprintf("batch: stack %s results: %v", e.Method, e.Err)
}

func (e StackError) Unwrap() error {
	return e.Err
}
