// Package source contains sample sources for batch.Generator:
//
// - Generator: A seeded, serializable random number generator over one of
// math/rand/v2's bit generators, with scalar and shaped draws
// - Constant: A source that always returns the same value
//
// Two bit generators are provided. PCG is small and fast; ChaCha8 is a
// cryptographically strong stream generator, slower to start. Seeds are
// spread over the generator state with splitmix64, so consecutive seeds
// give unrelated streams.
//
// Shaped methods take their dimensions as trailing arguments and return an
// *ndarray.Array. With no dimensions the result is a scalar:
//
//	gen := source.New(source.PCG, 1337)
//	x, _ := gen.Integers(10)        // shape []
//	xs, _ := gen.Integers(10, 3, 4) // shape [3 4]
//
// Distributions are sampled with gonum's stat/distuv on the generator's own
// bit stream.
//
// Both types register themselves with encoding/gob. Generator implements
// encoding.BinaryMarshaler, and a restored Generator continues exactly where
// the original was when it was marshaled.
package source
