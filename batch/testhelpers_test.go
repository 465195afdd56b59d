package batch_test

import (
	"errors"
	"fmt"

	"github.com/MasterOfBinary/batchrand/batch"
)

var errBoom = errors.New("boom")

// mockSource returns the same number from every Get call.
type mockSource struct {
	x int
}

func (m *mockSource) Get() int {
	return m.x
}

// countingSource returns 1, 2, 3, ... from Next and can be told to fail.
type countingSource struct {
	n int
}

func (c *countingSource) Next() int {
	c.n++
	return c.n
}

func (c *countingSource) Fail() (int, error) {
	return 0, errBoom
}

// recordingSource remembers the arguments of every Record call.
type recordingSource struct {
	xs []int64
	ys [][]float64
}

func (r *recordingSource) Record(x int64, ys ...float64) int {
	r.xs = append(r.xs, x)
	r.ys = append(r.ys, append([]float64(nil), ys...))
	return len(r.xs)
}

// failingSource fails Next without advancing anything.
type failingSource struct{}

func (failingSource) Next() (int, error) {
	return 0, errBoom
}

// lengthSource returns a slice of n values, so a batch of them with
// different n cannot be stacked.
type lengthSource struct {
	n int
}

func (l lengthSource) Values() []int {
	return make([]int, l.n)
}

// mode is a numeric label, not a sample.
type mode uint8

func (m mode) String() string { return "mode" }

// protocolSource has methods that are not generation methods.
type protocolSource struct{}

func (protocolSource) Mode() mode                     { return 1 }
func (protocolSource) Modes() []mode                  { return nil }
func (protocolSource) Name() string                   { return "protocol" }
func (protocolSource) MarshalBinary() ([]byte, error) { return nil, nil }
func (protocolSource) Reset()                         {}
func (protocolSource) Value() float64                 { return 1 }

// echoInvoker resolves its own methods: Echo returns its first argument.
type echoInvoker struct {
	calls int
}

func (e *echoInvoker) Invoke(method string, args ...interface{}) (interface{}, error) {
	e.calls++
	if method == "Echo" && len(args) == 1 {
		return args[0], nil
	}
	return nil, fmt.Errorf("%w: echoInvoker cannot %s", batch.ErrNoSuchMethod, method)
}
