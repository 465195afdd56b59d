package ndarray

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// class groups element kinds by their storage.
type class uint8

const (
	classNone class = iota
	classInt
	classUint
	classFloat
)

func classOf(k reflect.Kind) class {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return classInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return classUint
	case reflect.Float32, reflect.Float64:
		return classFloat
	default:
		return classNone
	}
}

// IsNumeric reports whether k can be the element kind of an Array.
func IsNumeric(k reflect.Kind) bool {
	return classOf(k) != classNone
}

// Array is an n-dimensional array of numbers stored in row-major order.
//
// The zero value is not usable; create Arrays with New, From or one of the
// From*s constructors. Arrays are not safe for concurrent mutation, but none
// of the methods here mutate the receiver.
type Array struct {
	shape  []int
	kind   reflect.Kind
	ints   []int64
	uints  []uint64
	floats []float64
}

// New returns a zero-filled Array with the given element kind and shape. An
// empty shape gives a scalar.
func New(kind reflect.Kind, shape ...int) (*Array, error) {
	c := classOf(kind)
	if c == classNone {
		return nil, fmt.Errorf("%w: element kind %s", ErrUnsupported, kind)
	}
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}

	a := &Array{
		shape: append([]int{}, shape...),
		kind:  kind,
	}
	switch c {
	case classInt:
		a.ints = make([]int64, size)
	case classUint:
		a.uints = make([]uint64, size)
	case classFloat:
		a.floats = make([]float64, size)
	}
	return a, nil
}

// FromInt64s wraps data in an Array of kind reflect.Int64. If shape is
// omitted the Array is one-dimensional. The Array takes ownership of data.
func FromInt64s(data []int64, shape ...int) (*Array, error) {
	shape, err := fitShape(len(data), shape)
	if err != nil {
		return nil, err
	}
	return &Array{shape: shape, kind: reflect.Int64, ints: data}, nil
}

// FromUint64s wraps data in an Array of kind reflect.Uint64. If shape is
// omitted the Array is one-dimensional. The Array takes ownership of data.
func FromUint64s(data []uint64, shape ...int) (*Array, error) {
	shape, err := fitShape(len(data), shape)
	if err != nil {
		return nil, err
	}
	return &Array{shape: shape, kind: reflect.Uint64, uints: data}, nil
}

// FromFloat64s wraps data in an Array of kind reflect.Float64. If shape is
// omitted the Array is one-dimensional. The Array takes ownership of data.
func FromFloat64s(data []float64, shape ...int) (*Array, error) {
	shape, err := fitShape(len(data), shape)
	if err != nil {
		return nil, err
	}
	return &Array{shape: shape, kind: reflect.Float64, floats: data}, nil
}

// maxSize is the most elements any storage slice can hold; every element
// is 8 bytes wide.
const maxSize = math.MaxInt / 8

func sizeOf(shape []int) (int, error) {
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension in %v", ErrBadShape, shape)
		}
	}
	size := 1
	for _, d := range shape {
		if d != 0 && size > maxSize/d {
			// An empty axis later on still makes the array empty
			if hasZero(shape) {
				return 0, nil
			}
			return 0, fmt.Errorf("%w: shape %v is too large", ErrBadShape, shape)
		}
		size *= d
	}
	return size, nil
}

func hasZero(shape []int) bool {
	for _, d := range shape {
		if d == 0 {
			return true
		}
	}
	return false
}

func fitShape(n int, shape []int) ([]int, error) {
	if len(shape) == 0 {
		return []int{n}, nil
	}
	size, err := sizeOf(shape)
	if err != nil {
		return nil, err
	}
	if size != n {
		return nil, fmt.Errorf("%w: %d elements do not fit shape %v", ErrBadShape, n, shape)
	}
	return append([]int{}, shape...), nil
}

// Shape returns a copy of the array's dimensions. Scalars have an empty shape.
func (a *Array) Shape() []int {
	return append([]int{}, a.shape...)
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Size returns the number of elements.
func (a *Array) Size() int {
	switch classOf(a.kind) {
	case classInt:
		return len(a.ints)
	case classUint:
		return len(a.uints)
	default:
		return len(a.floats)
	}
}

// Kind returns the element kind the array was built from.
func (a *Array) Kind() reflect.Kind {
	return a.kind
}

// Int64s returns the backing storage of a signed integer array, or nil for
// other kinds. The slice aliases the array, so writes through it change the
// array.
func (a *Array) Int64s() []int64 {
	return a.ints
}

// Uint64s returns the backing storage of an unsigned integer array, or nil
// for other kinds. The slice aliases the array.
func (a *Array) Uint64s() []uint64 {
	return a.uints
}

// Float64s returns the backing storage of a float array, or nil for other
// kinds. The slice aliases the array.
func (a *Array) Float64s() []float64 {
	return a.floats
}

// AsFloat64s returns a copy of the elements converted to float64.
func (a *Array) AsFloat64s() []float64 {
	out := make([]float64, a.Size())
	for i := range out {
		switch classOf(a.kind) {
		case classInt:
			out[i] = float64(a.ints[i])
		case classUint:
			out[i] = float64(a.uints[i])
		default:
			out[i] = a.floats[i]
		}
	}
	return out
}

// At returns the element at the given index as an int64, uint64 or float64,
// depending on the array's kind. It panics if the number of indices does not
// match NDim or an index is out of range.
func (a *Array) At(idx ...int) interface{} {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("ndarray: At called with %d indices on %d-dimensional array", len(idx), len(a.shape)))
	}
	flat := 0
	for d, i := range idx {
		if i < 0 || i >= a.shape[d] {
			panic(fmt.Sprintf("ndarray: index %d out of range for axis %d with size %d", i, d, a.shape[d]))
		}
		flat = flat*a.shape[d] + i
	}
	return a.elem(flat)
}

func (a *Array) elem(i int) interface{} {
	switch classOf(a.kind) {
	case classInt:
		return a.ints[i]
	case classUint:
		return a.uints[i]
	default:
		return a.floats[i]
	}
}

// Index returns a copy of the i-th slice along the leading axis. For a
// stacked batch result this is the value produced by the i-th source. It
// panics on scalars and out-of-range indices.
func (a *Array) Index(i int) *Array {
	if len(a.shape) == 0 {
		panic("ndarray: Index called on a scalar")
	}
	if i < 0 || i >= a.shape[0] {
		panic(fmt.Sprintf("ndarray: index %d out of range for axis 0 with size %d", i, a.shape[0]))
	}

	inner := a.shape[1:]
	n := 1
	for _, d := range inner {
		n *= d
	}
	lo, hi := i*n, (i+1)*n

	out := &Array{shape: append([]int{}, inner...), kind: a.kind}
	switch classOf(a.kind) {
	case classInt:
		out.ints = append([]int64{}, a.ints[lo:hi]...)
	case classUint:
		out.uints = append([]uint64{}, a.uints[lo:hi]...)
	default:
		out.floats = append([]float64{}, a.floats[lo:hi]...)
	}
	return out
}

// Equal reports whether b has the same shape, kind and bit-identical
// elements as a. NaNs with the same bit pattern compare equal.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || !sameShape(a.shape, b.shape) {
		return false
	}
	switch classOf(a.kind) {
	case classInt:
		for i := range a.ints {
			if a.ints[i] != b.ints[i] {
				return false
			}
		}
	case classUint:
		for i := range a.uints {
			if a.uints[i] != b.uints[i] {
				return false
			}
		}
	default:
		for i := range a.floats {
			if math.Float64bits(a.floats[i]) != math.Float64bits(b.floats[i]) {
				return false
			}
		}
	}
	return true
}

func sameShape(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Matrix returns a two-dimensional array as a gonum matrix. Elements are
// converted to float64.
func (a *Array) Matrix() (*mat.Dense, error) {
	if len(a.shape) != 2 {
		return nil, fmt.Errorf("%w: Matrix needs 2 dimensions, have %d", ErrBadShape, len(a.shape))
	}
	if a.shape[0] == 0 || a.shape[1] == 0 {
		return nil, fmt.Errorf("%w: Matrix needs non-empty dimensions, have %v", ErrBadShape, a.shape)
	}
	return mat.NewDense(a.shape[0], a.shape[1], a.AsFloat64s()), nil
}

// String formats the array with nested brackets, e.g. "[[8 6 5] [4 5 7]]".
func (a *Array) String() string {
	var sb strings.Builder
	pos := 0
	a.format(&sb, 0, &pos)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, depth int, pos *int) {
	if depth == len(a.shape) {
		switch v := a.elem(*pos).(type) {
		case int64:
			sb.WriteString(strconv.FormatInt(v, 10))
		case uint64:
			sb.WriteString(strconv.FormatUint(v, 10))
		case float64:
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		*pos++
		return
	}

	sb.WriteByte('[')
	for i := 0; i < a.shape[depth]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		a.format(sb, depth+1, pos)
	}
	sb.WriteByte(']')
}
