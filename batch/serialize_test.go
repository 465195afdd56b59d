package batch_test

import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/MasterOfBinary/batchrand/batch"
	"github.com/MasterOfBinary/batchrand/source"
)

// registeredSource is a plain struct source that gob can encode once
// registered.
type registeredSource struct {
	N int
}

func (r *registeredSource) Next() int {
	r.N++
	return r.N
}

func init() {
	gob.Register(&registeredSource{})
}

func TestGenerator_MarshalBinary(t *testing.T) {
	for _, gt := range []source.GeneratorType{source.PCG, source.ChaCha8} {
		t.Run(gt.String(), func(t *testing.T) {
			g, err := batch.FromSlice(source.NewBatch(gt, 3, 7))
			if err != nil {
				t.Fatal(err)
			}
			// Advance before saving so the restored state is not the seed state
			if _, err := g.Call("Normal", 0, 1, 4); err != nil {
				t.Fatal(err)
			}

			data, err := g.MarshalBinary()
			if err != nil {
				t.Fatalf("MarshalBinary error: %v", err)
			}

			var restored batch.Generator
			if err := restored.UnmarshalBinary(data); err != nil {
				t.Fatalf("UnmarshalBinary error: %v", err)
			}
			if restored.Len() != 3 {
				t.Fatalf("restored Len() = %d, want 3", restored.Len())
			}

			calls := [][]interface{}{
				{"Uniform", 1, 10, 5},
				{"Integers", 10, 5},
				{"Gamma", 2, 1},
			}
			for _, c := range calls {
				method := c[0].(string)
				want, err := g.Call(method, c[1:]...)
				if err != nil {
					t.Fatal(err)
				}
				got, err := restored.Call(method, c[1:]...)
				if err != nil {
					t.Fatal(err)
				}
				if !got.Equal(want) {
					t.Errorf("%s after restore = %v, want %v", method, got, want)
				}
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	g, err := batch.New(&registeredSource{N: 1}, &registeredSource{N: 10})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := g.Save(&buf); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	stats := batch.NewBasicStatsCollector()
	loaded, err := batch.Load(&buf, &batch.Options{Stats: stats})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	got, err := loaded.Call("Next")
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "[2 11]" {
		t.Errorf("Call(Next) = %v, want [2 11]", got)
	}
	if stats.GetStats().Calls != 1 {
		t.Error("Load did not apply the options")
	}

	// The original is unaffected
	if g.Source(0).(*registeredSource).N != 1 {
		t.Error("loaded generator shares state with the original")
	}
}

func TestSave_UnregisteredSource(t *testing.T) {
	g, err := batch.New(&mockSource{1})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Save(&bytes.Buffer{}); err == nil {
		t.Error("Save succeeded for a type gob does not know")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := batch.Load(bytes.NewReader([]byte("not gob")), nil); err == nil {
		t.Error("Load succeeded on garbage")
	}

	var g batch.Generator
	if err := g.UnmarshalBinary(nil); err == nil {
		t.Error("UnmarshalBinary succeeded on empty data")
	}
}

func TestGenerator_Clone(t *testing.T) {
	g, err := batch.FromSlice(source.NewBatch(source.PCG, 2, 0))
	if err != nil {
		t.Fatal(err)
	}

	c, err := g.Clone()
	if err != nil {
		t.Fatalf("Clone error: %v", err)
	}

	want, _ := g.Call("Random", 3)
	got, _ := c.Call("Random", 3)
	if !got.Equal(want) {
		t.Errorf("clone drew %v, want %v", got, want)
	}

	// Advancing one does not advance the other
	g.Call("Random")
	a, _ := g.Call("Uint64")
	b, _ := c.Call("Uint64")
	if a.Equal(b) {
		t.Error("clone shares state with the original")
	}
}
