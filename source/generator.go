package source

import (
	"encoding"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/MasterOfBinary/batchrand/ndarray"
)

func init() {
	gob.Register(&Generator{})
	gob.Register(Constant{})
}

// ErrInvalidParameter is returned when a distribution parameter is out of
// range.
var ErrInvalidParameter = errors.New("source: invalid parameter")

// GeneratorType is a flag used to indicate the bit generator behind a
// Generator.
type GeneratorType uint8

const (
	// PCG is math/rand/v2's PCG with 128 bits of state.
	PCG GeneratorType = iota
	// ChaCha8 is math/rand/v2's ChaCha8 stream generator.
	ChaCha8
)

// String returns the name of the generator type.
func (gt GeneratorType) String() string {
	switch gt {
	case PCG:
		return "PCG"
	case ChaCha8:
		return "ChaCha8"
	default:
		return fmt.Sprintf("GeneratorType(%d)", uint8(gt))
	}
}

// bitSource is a rand.Source whose full state can be captured and restored.
type bitSource interface {
	rand.Source
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

func newBitSource(gt GeneratorType) (bitSource, error) {
	switch gt {
	case PCG:
		return new(rand.PCG), nil
	case ChaCha8:
		return new(rand.ChaCha8), nil
	default:
		return nil, fmt.Errorf("source: unrecognized %v", gt)
	}
}

// Generator is a seeded, serializable random number generator meant to be
// one sample source of a batch.Generator. All draws, including the
// distribution methods, advance a single bit stream, so two Generators with
// the same type and state produce the same sequence for the same calls.
//
// Generator is not safe for concurrent use.
type Generator struct {
	gt  GeneratorType
	src bitSource
	r   *rand.Rand
}

// New returns a Generator of the given type seeded with seed. It panics on an
// unrecognized GeneratorType.
func New(gt GeneratorType, seed uint64) *Generator {
	var src bitSource
	switch gt {
	case PCG:
		src = rand.NewPCG(mix(seed), mix(seed+goldenRatio64))
	case ChaCha8:
		var key [32]byte
		s := seed
		for i := 0; i < len(key); i += 8 {
			binary.LittleEndian.PutUint64(key[i:], mix(s))
			s += goldenRatio64
		}
		src = rand.NewChaCha8(key)
	default:
		panic(fmt.Sprintf("source: unrecognized %v", gt))
	}
	return &Generator{gt: gt, src: src, r: rand.New(src)}
}

// NewBatch returns n Generators of the given type seeded base, base+1, ...,
// base+n-1, in that order.
func NewBatch(gt GeneratorType, n int, base uint64) []*Generator {
	gens := make([]*Generator, n)
	for i := range gens {
		gens[i] = New(gt, base+uint64(i))
	}
	return gens
}

const goldenRatio64 = 0x9e3779b97f4a7c15

// mix is the splitmix64 finalizer. It spreads nearby seeds over the whole
// state space.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Type returns the generator's bit generator type.
func (g *Generator) Type() GeneratorType {
	return g.gt
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding is the
// generator type followed by the bit generator's own state encoding.
func (g *Generator) MarshalBinary() ([]byte, error) {
	state, err := g.src.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("source: marshal %v state: %w", g.gt, err)
	}
	return append([]byte{byte(g.gt)}, state...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// receiver's state with the encoded one.
func (g *Generator) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.New("source: empty Generator encoding")
	}
	gt := GeneratorType(data[0])
	src, err := newBitSource(gt)
	if err != nil {
		return err
	}
	if err := src.UnmarshalBinary(data[1:]); err != nil {
		return fmt.Errorf("source: unmarshal %v state: %w", gt, err)
	}

	g.gt = gt
	g.src = src
	g.r = rand.New(src)
	return nil
}

// Uint64 returns 64 uniformly random bits.
func (g *Generator) Uint64() uint64 {
	return g.r.Uint64()
}

// IntN returns an int uniformly in [0, n).
func (g *Generator) IntN(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: IntN needs n > 0, got %d", ErrInvalidParameter, n)
	}
	return g.r.IntN(n), nil
}

// Float64 returns a float64 uniformly in [0, 1).
func (g *Generator) Float64() float64 {
	return g.r.Float64()
}

// NormFloat64 returns a standard normal float64.
func (g *Generator) NormFloat64() float64 {
	return g.r.NormFloat64()
}

// ExpFloat64 returns an exponentially distributed float64 with rate 1.
func (g *Generator) ExpFloat64() float64 {
	return g.r.ExpFloat64()
}

// Perm returns a random permutation of [0, n).
func (g *Generator) Perm(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: Perm needs n >= 0, got %d", ErrInvalidParameter, n)
	}
	return g.r.Perm(n), nil
}

// Integers returns int64 values drawn uniformly from [0, high). With no shape
// the result is a scalar.
func (g *Generator) Integers(high int64, shape ...int) (*ndarray.Array, error) {
	if high <= 0 {
		return nil, fmt.Errorf("%w: Integers needs high > 0, got %d", ErrInvalidParameter, high)
	}
	return g.ints(shape, func() int64 { return g.r.Int64N(high) })
}

// Random returns float64 values drawn uniformly from [0, 1).
func (g *Generator) Random(shape ...int) (*ndarray.Array, error) {
	return g.floats(shape, g.r.Float64)
}

// Uniform returns float64 values drawn uniformly from [low, high). The
// bounds are required; Random draws from the default range [0, 1).
func (g *Generator) Uniform(low, high float64, shape ...int) (*ndarray.Array, error) {
	if !finite(low) || !finite(high) || low > high {
		return nil, fmt.Errorf("%w: Uniform needs finite low <= high, got [%v, %v)", ErrInvalidParameter, low, high)
	}
	d := distuv.Uniform{Min: low, Max: high, Src: g.src}
	return g.floats(shape, d.Rand)
}

// Normal returns normally distributed float64 values with mean mu and
// standard deviation sigma. Both are required; Normal(0, 1, shape...) or
// NormFloat64 give the standard normal distribution.
func (g *Generator) Normal(mu, sigma float64, shape ...int) (*ndarray.Array, error) {
	if !finite(mu) || !finite(sigma) || sigma < 0 {
		return nil, fmt.Errorf("%w: Normal needs finite mu and sigma >= 0, got %v, %v", ErrInvalidParameter, mu, sigma)
	}
	d := distuv.Normal{Mu: mu, Sigma: sigma, Src: g.src}
	return g.floats(shape, d.Rand)
}

// Exponential returns exponentially distributed float64 values.
func (g *Generator) Exponential(rate float64, shape ...int) (*ndarray.Array, error) {
	if !finite(rate) || rate <= 0 {
		return nil, fmt.Errorf("%w: Exponential needs rate > 0, got %v", ErrInvalidParameter, rate)
	}
	d := distuv.Exponential{Rate: rate, Src: g.src}
	return g.floats(shape, d.Rand)
}

// Gamma returns gamma distributed float64 values with shape alpha and rate
// beta.
func (g *Generator) Gamma(alpha, beta float64, shape ...int) (*ndarray.Array, error) {
	if !finite(alpha) || !finite(beta) || alpha <= 0 || beta <= 0 {
		return nil, fmt.Errorf("%w: Gamma needs alpha > 0 and beta > 0, got %v, %v", ErrInvalidParameter, alpha, beta)
	}
	d := distuv.Gamma{Alpha: alpha, Beta: beta, Src: g.src}
	return g.floats(shape, d.Rand)
}

// Poisson returns Poisson distributed counts.
func (g *Generator) Poisson(lambda float64, shape ...int) (*ndarray.Array, error) {
	if !finite(lambda) || lambda <= 0 {
		return nil, fmt.Errorf("%w: Poisson needs lambda > 0, got %v", ErrInvalidParameter, lambda)
	}
	d := distuv.Poisson{Lambda: lambda, Src: g.src}
	return g.ints(shape, func() int64 { return int64(d.Rand()) })
}

// Binomial returns the number of successes in n trials with success
// probability p.
func (g *Generator) Binomial(n int64, p float64, shape ...int) (*ndarray.Array, error) {
	if n < 0 || !(p >= 0 && p <= 1) {
		return nil, fmt.Errorf("%w: Binomial needs n >= 0 and 0 <= p <= 1, got %d, %v", ErrInvalidParameter, n, p)
	}
	d := distuv.Binomial{N: float64(n), P: p, Src: g.src}
	return g.ints(shape, func() int64 { return int64(d.Rand()) })
}

func (g *Generator) floats(shape []int, draw func() float64) (*ndarray.Array, error) {
	a, err := ndarray.New(reflect.Float64, shape...)
	if err != nil {
		return nil, err
	}
	data := a.Float64s()
	for i := range data {
		data[i] = draw()
	}
	return a, nil
}

func (g *Generator) ints(shape []int, draw func() int64) (*ndarray.Array, error) {
	a, err := ndarray.New(reflect.Int64, shape...)
	if err != nil {
		return nil, err
	}
	data := a.Int64s()
	for i := range data {
		data[i] = draw()
	}
	return a, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
