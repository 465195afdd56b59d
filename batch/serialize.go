package batch

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
)

// snapshot is the encoded form of a Generator: the sources in order. Each
// source is encoded by gob as an opaque value, through its MarshalBinary or
// GobEncode method when it has one.
type snapshot struct {
	Sources []interface{}
}

// Save writes the sources of g, with their current state, to w using
// encoding/gob. The concrete source types must be registered with
// gob.Register; the source package registers its own.
//
// Logger and stats collector are not saved.
func (g *Generator) Save(w io.Writer) error {
	snap := snapshot{Sources: g.Sources()}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("batch: encode sources: %w", err)
	}
	return nil
}

// Load reads a Generator written by Save. If opts is nil, the default
// options are used.
//
// The restored Generator continues exactly where the saved one was: given
// the same sequence of calls, both return identical results.
func Load(r io.Reader, opts *Options) (*Generator, error) {
	sources, err := decode(r)
	if err != nil {
		return nil, err
	}
	return NewWithOptions(opts, sources...)
}

func decode(r io.Reader) ([]interface{}, error) {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("batch: decode sources: %w", err)
	}
	return snap.Sources, nil
}

// MarshalBinary implements encoding.BinaryMarshaler using Save.
func (g *Generator) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// sources of g with the decoded ones and keeps its logger and stats
// collector, so a zero Generator can be used as the target.
func (g *Generator) UnmarshalBinary(data []byte) error {
	sources, err := decode(bytes.NewReader(data))
	if err != nil {
		return err
	}
	bound, err := bindAll(sources)
	if err != nil {
		return err
	}

	g.sources = bound
	if g.logger == nil {
		g.logger = &NoOpLogger{}
	}
	if g.stats == nil {
		g.stats = &NoOpStatsCollector{}
	}
	return nil
}

// Clone returns an independent copy of g by saving and loading it. The clone
// shares g's logger and stats collector but none of its source state.
func (g *Generator) Clone() (*Generator, error) {
	data, err := g.MarshalBinary()
	if err != nil {
		return nil, err
	}
	c := &Generator{logger: g.logger, stats: g.stats}
	if err := c.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return c, nil
}
