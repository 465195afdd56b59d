package batch

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/MasterOfBinary/batchrand/ndarray"
)

// Generator forwards generation calls to an ordered batch of sample sources
// and stacks their results along a new leading axis.
//
// To create a new Generator, call New:
//
//	gens := source.NewBatch(source.PCG, 2, 0)
//	g, err := batch.FromSlice(gens)
//	if err != nil {
//		return err
//	}
//
//	x, err := g.Call("Integers", 10, 3) // shape [2 3]
//
// A sample source can be any value. Its exported methods that return a
// number, a (nested) slice of numbers or an *ndarray.Array, optionally
// followed by an error, are collected into a method table when the
// Generator is created. Sources implementing Invoker resolve names
// themselves. The sources do not need to support the same methods; that is
// only checked when a method is called.
//
// The sources are never reordered or replaced. Their state only changes as a
// side effect of the calls forwarded to them.
//
// A Generator is not safe for concurrent use, and neither are the sources it
// calls. Callers that share one between goroutines must serialize access.
type Generator struct {
	sources []boundSource
	logger  Logger
	stats   StatsCollector
}

// New creates a Generator over sources using the default options. The
// sources are used in the given order; index i of every result belongs to
// sources[i].
//
// New returns ErrNoSources if no sources are given and ErrNilSource if one of
// them is nil.
func New(sources ...interface{}) (*Generator, error) {
	return NewWithOptions(nil, sources...)
}

// NewWithOptions creates a Generator with the given options. If opts is nil,
// the default options are used.
func NewWithOptions(opts *Options, sources ...interface{}) (*Generator, error) {
	opts = opts.WithDefaults()

	bound, err := bindAll(sources)
	if err != nil {
		return nil, err
	}

	return &Generator{
		sources: bound,
		logger:  opts.Logger,
		stats:   opts.Stats,
	}, nil
}

// FromSlice creates a Generator over a typed slice of sources with the
// default options.
func FromSlice[S any](sources []S) (*Generator, error) {
	vals := make([]interface{}, len(sources))
	for i, s := range sources {
		vals[i] = s
	}
	return New(vals...)
}

func bindAll(sources []interface{}) ([]boundSource, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	bound := make([]boundSource, len(sources))
	for i, s := range sources {
		if isNil(s) {
			return nil, fmt.Errorf("%w at index %d", ErrNilSource, i)
		}
		bound[i] = bind(s)
	}
	return bound, nil
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// WithLogger sets the logger used by the Generator. A nil logger disables
// logging.
//
// Example:
//
//	g, _ := batch.New(sources...)
//	g = g.WithLogger(batch.NewSimpleLogger(os.Stderr, batch.LogLevelDebug))
func (g *Generator) WithLogger(logger Logger) *Generator {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	g.logger = logger
	return g
}

// WithStats sets the stats collector used by the Generator. A nil collector
// disables statistics.
func (g *Generator) WithStats(stats StatsCollector) *Generator {
	if stats == nil {
		stats = &NoOpStatsCollector{}
	}
	g.stats = stats
	return g
}

// Len returns the number of sources, which is the size of the leading axis of
// every result.
func (g *Generator) Len() int {
	return len(g.sources)
}

// Source returns the i-th source as it was passed in.
func (g *Generator) Source(i int) interface{} {
	return g.sources[i].value
}

// Sources returns the sources in order. The returned slice is a copy, but the
// sources themselves are shared with the Generator.
func (g *Generator) Sources() []interface{} {
	out := make([]interface{}, len(g.sources))
	for i, s := range g.sources {
		out[i] = s.value
	}
	return out
}

// Methods returns the sorted names of the generation methods every source
// supports. Accessors whose result has a String method, like
// source.Generator.Type, are not generation methods and are not listed.
// Invoker sources cannot list their methods and are skipped, so a batch made
// only of Invokers returns nil.
func (g *Generator) Methods() []string {
	var counts map[string]int
	var tables int
	for _, s := range g.sources {
		if s.invoker != nil {
			continue
		}
		if counts == nil {
			counts = make(map[string]int, len(s.methods))
		}
		tables++
		for name := range s.methods {
			counts[name]++
		}
	}

	var names []string
	for name, n := range counts {
		if n == tables {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Call invokes method with args on every source, in order, and stacks the
// results. Every source receives exactly the same arguments. If each source
// returns a value of shape S, the result has shape (Len(),)+S and its i-th
// element is the value returned by the i-th source.
//
// Go has no keyword arguments; options are trailing or variadic parameters
// of the source methods, e.g. Call("Integers", 10, 3, 4) for a 3x4 draw.
// Numbers are converted to the parameter types when that loses nothing.
//
// Before any source is called, the method and arguments are checked on every
// source. An unknown name yields a *MethodError wrapping ErrNoSuchMethod, and
// a signature mismatch one wrapping ErrBadArguments. Neither advances any
// source. An error returned by a source stops the call with a *SourceError;
// results that cannot be stacked yield a *StackError.
func (g *Generator) Call(method string, args ...interface{}) (*ndarray.Array, error) {
	start := time.Now()
	g.logger.Debug("Dispatching %s to %d sources", method, len(g.sources))

	calls := make([]preparedCall, len(g.sources))
	for i := range g.sources {
		c, err := g.sources[i].prepare(method, args)
		if err != nil {
			g.stats.RecordMethodError(method)
			return nil, &MethodError{Method: method, Index: i, Err: err}
		}
		calls[i] = c
	}

	results := make([]*ndarray.Array, len(g.sources))
	for i := range g.sources {
		out, err := g.sources[i].invoke(method, args, calls[i])
		if err != nil {
			if g.sources[i].invoker != nil && isMissing(err) {
				g.stats.RecordMethodError(method)
				return nil, &MethodError{Method: method, Index: i, Err: err}
			}
			g.stats.RecordSourceError(method)
			return nil, &SourceError{Method: method, Index: i, Err: err}
		}

		a, err := ndarray.From(out)
		if err != nil {
			g.stats.RecordStackError(method)
			return nil, &StackError{Method: method, Err: fmt.Errorf("source %d: %w", i, err)}
		}
		results[i] = a
	}

	stacked, err := ndarray.Stack(results)
	if err != nil {
		g.stats.RecordStackError(method)
		return nil, &StackError{Method: method, Err: err}
	}

	duration := time.Since(start)
	g.stats.RecordCall(method, len(g.sources), duration)
	g.logger.Debug("%s returned shape %v in %v", method, stacked.Shape(), duration)
	return stacked, nil
}
