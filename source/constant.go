package source

// Constant is a sample source whose Get method always returns Value. It has
// no state to advance and is mostly useful for testing code built on
// batch.Generator.
//
// Constant is registered with encoding/gob, so Value must be a type gob
// knows about (basic types and slices of them are).
type Constant struct {
	Value interface{}
}

// Get returns c.Value.
func (c Constant) Get() interface{} {
	return c.Value
}
