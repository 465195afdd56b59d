// Package batch contains Generator, which gives every item of a batch its
// own reproducible random stream while letting callers treat the batch as
// one vectorized generator.
//
// A Generator holds N sample sources. Call forwards a method name and
// arguments to each source in order and stacks the N results along a new
// leading axis, the batch axis:
//
//	g, _ := batch.FromSlice(source.NewBatch(source.PCG, 4, 0))
//
//	u, _ := g.Call("Random")           // shape [4]
//	x, _ := g.Call("Normal", 0, 1, 8) // shape [4 8]
//
// Row i of every result comes from source i. Given sources with the same
// initial state, the same sequence of calls always produces bit-identical
// results, which is what makes a training loop that draws per-sample noise
// reproducible regardless of batch composition elsewhere.
//
// There is no fixed list of methods. Whatever generation methods the sources
// have are available through Call, so new source capabilities need no
// changes here. Names the sources do not have fail with ErrNoSuchMethod.
//
// Errors are returned, never logged or retried:
//
//   - MethodError: unknown method (ErrNoSuchMethod) or arguments that do not
//     fit (ErrBadArguments). Checked on all sources before any is called.
//   - SourceError: a source returned an error.
//   - StackError: results are not numeric or differ in shape or kind.
//
// A Generator can be saved and restored with Save and Load, or through
// encoding.BinaryMarshaler. The restored Generator continues exactly where
// the original was.
package batch
