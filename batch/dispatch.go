package batch

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/MasterOfBinary/batchrand/ndarray"
)

// Invoker is implemented by sample sources that resolve generation methods
// themselves instead of exposing them as Go methods. Invoke must return an
// error wrapping ErrNoSuchMethod for names it does not support.
//
// Invoker sources cannot be checked before a call, so a Call on a batch
// containing one may advance earlier sources before failing.
type Invoker interface {
	Invoke(method string, args ...interface{}) (interface{}, error)
}

var (
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	arrayPtrType = reflect.TypeOf((*ndarray.Array)(nil))
	arrayType    = arrayPtrType.Elem()
)

// boundSource is a sample source with its generation methods resolved.
type boundSource struct {
	value   interface{}
	invoker Invoker
	methods map[string]reflect.Value
}

// bind builds the method table of src. Only methods that look like
// generation methods are kept; see isGenerationMethod.
func bind(src interface{}) boundSource {
	if inv, ok := src.(Invoker); ok {
		return boundSource{value: src, invoker: inv}
	}

	v := reflect.ValueOf(src)
	t := v.Type()
	methods := make(map[string]reflect.Value, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := v.Method(i)
		if isGenerationMethod(m.Type()) {
			methods[t.Method(i).Name] = m
		}
	}
	return boundSource{value: src, methods: methods}
}

// isGenerationMethod reports whether a method returns a value that could be
// numeric, optionally followed by an error.
func isGenerationMethod(ft reflect.Type) bool {
	switch ft.NumOut() {
	case 1:
	case 2:
		if ft.Out(1) != errorType {
			return false
		}
	default:
		return false
	}
	return mayBeNumeric(ft.Out(0))
}

// mayBeNumeric reports whether values of type t can convert to an
// ndarray.Array. Byte slices are taken to be encoded data, not samples, and
// numbers with a String method are labels such as enums or durations.
func mayBeNumeric(t reflect.Type) bool {
	switch {
	case t == arrayPtrType || t == arrayType:
		return true
	case t.Implements(stringerType):
		return false
	case t.Kind() == reflect.Interface:
		return t != errorType
	case ndarray.IsNumeric(t.Kind()):
		return true
	case t.Kind() == reflect.Slice || t.Kind() == reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return false
		}
		return mayBeNumeric(t.Elem())
	default:
		return false
	}
}

// preparedCall is a resolved method with its converted arguments.
type preparedCall struct {
	fn     reflect.Value
	in     []reflect.Value
	spread bool
}

// prepare resolves method on the source and checks args against its
// signature without calling it. Invoker sources are resolved when invoked.
func (b *boundSource) prepare(method string, args []interface{}) (preparedCall, error) {
	if b.invoker != nil {
		return preparedCall{}, nil
	}

	fn, ok := b.methods[method]
	if !ok {
		return preparedCall{}, fmt.Errorf("%w: %T has no method %s", ErrNoSuchMethod, b.value, method)
	}

	in, spread, err := prepareArgs(fn.Type(), args)
	if err != nil {
		return preparedCall{}, err
	}
	return preparedCall{fn: fn, in: in, spread: spread}, nil
}

func (b *boundSource) invoke(method string, args []interface{}, c preparedCall) (interface{}, error) {
	if b.invoker != nil {
		return b.invoker.Invoke(method, args...)
	}

	var out []reflect.Value
	if c.spread {
		out = c.fn.CallSlice(c.in)
	} else {
		out = c.fn.Call(c.in)
	}

	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// prepareArgs converts args to the parameter types of ft. For variadic
// functions a slice in the variadic position is passed as the whole variadic
// argument, like f(xs...); spread reports that case.
func prepareArgs(ft reflect.Type, args []interface{}) (in []reflect.Value, spread bool, err error) {
	n := ft.NumIn()
	if !ft.IsVariadic() {
		if len(args) != n {
			return nil, false, fmt.Errorf("%w: want %d arguments, got %d", ErrBadArguments, n, len(args))
		}
		in, err = convertArgs(ft, args, n)
		return in, false, err
	}

	fixed := n - 1
	if len(args) < fixed {
		return nil, false, fmt.Errorf("%w: want at least %d arguments, got %d", ErrBadArguments, fixed, len(args))
	}
	in, err = convertArgs(ft, args[:fixed], fixed)
	if err != nil {
		return nil, false, err
	}

	if len(args) == n && args[fixed] != nil {
		last := reflect.ValueOf(args[fixed])
		if last.Type().AssignableTo(ft.In(fixed)) {
			return append(in, last), true, nil
		}
	}

	elem := ft.In(fixed).Elem()
	for i, a := range args[fixed:] {
		v, err := convertArg(a, elem)
		if err != nil {
			return nil, false, fmt.Errorf("%w: argument %d: %v", ErrBadArguments, fixed+i, err)
		}
		in = append(in, v)
	}
	return in, false, nil
}

func convertArgs(ft reflect.Type, args []interface{}, n int) ([]reflect.Value, error) {
	in := make([]reflect.Value, 0, n)
	for i, a := range args {
		v, err := convertArg(a, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrBadArguments, i, err)
		}
		in = append(in, v)
	}
	return in, nil
}

// convertArg returns arg as a value of type t. Assignable values are used as
// is; numbers are converted between kinds only when the value survives
// unchanged, so 10 can fill an int64 or float64 parameter but 2.5 cannot
// fill an int.
func convertArg(arg interface{}, t reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", t)
	}

	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if ndarray.IsNumeric(v.Kind()) && ndarray.IsNumeric(t.Kind()) {
		c := v.Convert(t)
		if lossless(v, c) {
			return c, nil
		}
		return reflect.Value{}, fmt.Errorf("%v (%s) does not fit %s", arg, v.Type(), t)
	}
	return reflect.Value{}, fmt.Errorf("cannot use %v (%s) as %s", arg, v.Type(), t)
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

// lossless reports whether c, the conversion of v, holds the same number.
func lossless(v, c reflect.Value) bool {
	vk, ck := v.Kind(), c.Kind()
	switch {
	case isInt(ck):
		switch {
		case isInt(vk):
			return c.Int() == v.Int()
		case isUint(vk):
			return v.Uint() <= math.MaxInt64 && uint64(c.Int()) == v.Uint()
		default:
			f := v.Float()
			return f == math.Trunc(f) && math.Abs(f) < 1<<63 && float64(c.Int()) == f
		}
	case isUint(ck):
		switch {
		case isInt(vk):
			return v.Int() >= 0 && c.Uint() == uint64(v.Int())
		case isUint(vk):
			return c.Uint() == v.Uint()
		default:
			f := v.Float()
			return f == math.Trunc(f) && f >= 0 && f < 1<<64 && float64(c.Uint()) == f
		}
	default:
		f := c.Float()
		switch {
		case isInt(vk):
			return f == math.Trunc(f) && math.Abs(f) < 1<<63 && int64(f) == v.Int()
		case isUint(vk):
			return f == math.Trunc(f) && f >= 0 && f < 1<<64 && uint64(f) == v.Uint()
		default:
			return f == v.Float() || (math.IsNaN(f) && math.IsNaN(v.Float()))
		}
	}
}

// isMissing reports whether err from an Invoker means the method does not
// exist on that source.
func isMissing(err error) bool {
	return errors.Is(err, ErrNoSuchMethod)
}
