package batch

// Options contains optional configuration for creating a Generator.
type Options struct {
	// Logger receives debug messages about dispatch.
	// If nil, no logging occurs.
	Logger Logger

	// Stats collects call statistics.
	// If nil, no statistics are collected.
	Stats StatsCollector
}

// WithDefaults returns Options with default values where not specified.
// The receiver is not modified.
func (o *Options) WithDefaults() *Options {
	var out Options
	if o != nil {
		out = *o
	}

	if out.Logger == nil {
		out.Logger = &NoOpLogger{}
	}
	if out.Stats == nil {
		out.Stats = &NoOpStatsCollector{}
	}

	return &out
}
