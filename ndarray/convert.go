package ndarray

import (
	"fmt"
	"reflect"
)

// From converts v into an Array. Accepted values are *Array and Array,
// numeric scalars, and arbitrarily nested slices or Go arrays of numbers
// (including through interface{} elements). Nested slices must be
// rectangular and every leaf must have the same kind.
//
// A *Array is returned as is, not copied.
func From(v interface{}) (*Array, error) {
	switch a := v.(type) {
	case *Array:
		if a == nil {
			return nil, fmt.Errorf("%w: nil *Array", ErrUnsupported)
		}
		return a, nil
	case Array:
		return &a, nil
	}

	rv, err := unwrap(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}

	shape, kind, err := probe(rv)
	if err != nil {
		return nil, err
	}

	out, err := New(kind, shape...)
	if err != nil {
		return nil, err
	}

	f := filler{out: out}
	if err := f.fill(rv, 0); err != nil {
		return nil, err
	}
	return out, nil
}

func unwrap(rv reflect.Value) (reflect.Value, error) {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv, fmt.Errorf("%w: nil", ErrUnsupported)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return rv, fmt.Errorf("%w: nil", ErrUnsupported)
	}
	return rv, nil
}

func isList(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array
}

// probe walks the first element of every level to find the shape and leaf
// kind. Empty lists take their kind from the static element type.
func probe(rv reflect.Value) ([]int, reflect.Kind, error) {
	var shape []int
	for {
		if IsNumeric(rv.Kind()) {
			return shape, rv.Kind(), nil
		}
		if !isList(rv.Kind()) {
			return nil, reflect.Invalid, fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
		}

		shape = append(shape, rv.Len())
		if rv.Len() == 0 {
			t := rv.Type().Elem()
			for isList(t.Kind()) {
				t = t.Elem()
			}
			if !IsNumeric(t.Kind()) {
				return nil, reflect.Invalid, fmt.Errorf("%w: empty %s", ErrUnsupported, rv.Type())
			}
			return shape, t.Kind(), nil
		}

		next, err := unwrap(rv.Index(0))
		if err != nil {
			return nil, reflect.Invalid, err
		}
		rv = next
	}
}

type filler struct {
	out *Array
	pos int
}

func (f *filler) fill(rv reflect.Value, depth int) error {
	shape := f.out.shape
	if depth == len(shape) {
		if rv.Kind() != f.out.kind {
			if isList(rv.Kind()) {
				return fmt.Errorf("%w: ragged value, unexpected list at depth %d", ErrShapeMismatch, depth)
			}
			if IsNumeric(rv.Kind()) {
				return fmt.Errorf("%w: found %s among %s elements", ErrKindMismatch, rv.Kind(), f.out.kind)
			}
			return fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
		}
		switch classOf(rv.Kind()) {
		case classInt:
			f.out.ints[f.pos] = rv.Int()
		case classUint:
			f.out.uints[f.pos] = rv.Uint()
		default:
			f.out.floats[f.pos] = rv.Float()
		}
		f.pos++
		return nil
	}

	if !isList(rv.Kind()) {
		return fmt.Errorf("%w: ragged value, expected a list of length %d at depth %d", ErrShapeMismatch, shape[depth], depth)
	}
	if rv.Len() != shape[depth] {
		return fmt.Errorf("%w: ragged value, length %d at depth %d, want %d", ErrShapeMismatch, rv.Len(), depth, shape[depth])
	}
	for i := 0; i < rv.Len(); i++ {
		elem, err := unwrap(rv.Index(i))
		if err != nil {
			return err
		}
		if err := f.fill(elem, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Stack joins arrays along a new leading axis. Every array must have the
// same shape S and kind as the first; the result has shape (len(arrays),)+S
// and element i equals arrays[i].
//
// Shapes are compared before kinds. A mismatch is reported as a
// MismatchError naming the first offending index.
func Stack(arrays []*Array) (*Array, error) {
	if len(arrays) == 0 {
		return nil, ErrEmpty
	}
	for i, a := range arrays {
		if a == nil {
			return nil, fmt.Errorf("%w: nil *Array at index %d", ErrUnsupported, i)
		}
	}

	first := arrays[0]
	for i, a := range arrays[1:] {
		if !sameShape(first.shape, a.shape) {
			return nil, &MismatchError{
				Index:     i + 1,
				WantShape: first.Shape(),
				GotShape:  a.Shape(),
				WantKind:  first.kind,
				GotKind:   a.kind,
				Err:       ErrShapeMismatch,
			}
		}
		if first.kind != a.kind {
			return nil, &MismatchError{
				Index:     i + 1,
				WantShape: first.Shape(),
				GotShape:  a.Shape(),
				WantKind:  first.kind,
				GotKind:   a.kind,
				Err:       ErrKindMismatch,
			}
		}
	}

	out := &Array{
		shape: append([]int{len(arrays)}, first.shape...),
		kind:  first.kind,
	}
	n := first.Size() * len(arrays)
	switch classOf(first.kind) {
	case classInt:
		out.ints = make([]int64, 0, n)
		for _, a := range arrays {
			out.ints = append(out.ints, a.ints...)
		}
	case classUint:
		out.uints = make([]uint64, 0, n)
		for _, a := range arrays {
			out.uints = append(out.uints, a.uints...)
		}
	default:
		out.floats = make([]float64, 0, n)
		for _, a := range arrays {
			out.floats = append(out.floats, a.floats...)
		}
	}
	return out, nil
}
