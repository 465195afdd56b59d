// Package ndarray contains Array, a small n-dimensional numeric value used to
// carry the results of batched generation calls.
//
// An Array has a shape, an element kind and flat row-major storage. Values of
// any signed integer kind are stored as int64, unsigned kinds as uint64 and
// float kinds as float64, so conversion is exact and Equal compares bit for
// bit. The original element kind is kept and takes part in Stack's checks.
//
// From converts the usual Go shapes of numeric data into an Array:
//
//	a, _ := ndarray.From(3)                         // shape []
//	b, _ := ndarray.From([]float64{1, 2, 3})        // shape [3]
//	c, _ := ndarray.From([][]int{{1, 2}, {3, 4}})   // shape [2 2]
//
// Stack combines equally shaped arrays into one array with a new leading
// axis:
//
//	s, _ := ndarray.Stack([]*ndarray.Array{b, b})  // shape [2 3]
package ndarray
