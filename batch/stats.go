package batch

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsCollector defines the interface for collecting metrics about
// generation calls. Implementations can keep them in memory or export them;
// see the metrics package for a Prometheus implementation.
// The StatsCollector is optional - if not provided, no statistics are collected.
type StatsCollector interface {
	// RecordCall is called after a call succeeded on all sources.
	// duration covers dispatch and stacking.
	RecordCall(method string, sources int, duration time.Duration)

	// RecordMethodError is called when a method is missing on a source or
	// its arguments do not fit.
	RecordMethodError(method string)

	// RecordSourceError is called when a source returns an error.
	RecordSourceError(method string)

	// RecordStackError is called when results cannot be stacked.
	RecordStackError(method string)

	// GetStats returns a snapshot of the current statistics.
	GetStats() Stats
}

// Stats holds aggregated statistics about generation calls.
type Stats struct {
	// Calls is the number of successful calls.
	Calls uint64

	// SourceCalls is the number of per-source results in successful calls.
	SourceCalls uint64

	// MethodErrors is the number of calls rejected before dispatch.
	MethodErrors uint64

	// SourceErrors is the number of calls stopped by a source error.
	SourceErrors uint64

	// StackErrors is the number of calls whose results could not be stacked.
	StackErrors uint64

	// TotalCallTime is the cumulative duration of successful calls.
	TotalCallTime time.Duration

	// MinCallTime is the shortest successful call.
	MinCallTime time.Duration

	// MaxCallTime is the longest successful call.
	MaxCallTime time.Duration

	// StartTime is when statistics collection began.
	StartTime time.Time

	// LastUpdateTime is when statistics were last updated.
	LastUpdateTime time.Time
}

// NoOpStatsCollector is a stats collector that discards all metrics.
// This is the default stats collector when none is specified.
type NoOpStatsCollector struct{}

// RecordCall implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordCall(method string, sources int, duration time.Duration) {}

// RecordMethodError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordMethodError(method string) {}

// RecordSourceError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordSourceError(method string) {}

// RecordStackError implements the StatsCollector interface.
func (n *NoOpStatsCollector) RecordStackError(method string) {}

// GetStats implements the StatsCollector interface.
func (n *NoOpStatsCollector) GetStats() Stats {
	return Stats{}
}

// BasicStatsCollector is a simple in-memory implementation of
// StatsCollector. It ignores method names. All operations are thread-safe,
// so one collector can be shared by several Generators.
type BasicStatsCollector struct {
	mu    sync.RWMutex
	stats Stats

	// Atomic counters for lock-free updates
	calls        uint64
	sourceCalls  uint64
	methodErrors uint64
	sourceErrors uint64
	stackErrors  uint64
}

// NewBasicStatsCollector creates a new BasicStatsCollector.
func NewBasicStatsCollector() *BasicStatsCollector {
	now := time.Now()
	return &BasicStatsCollector{
		stats: Stats{
			StartTime:      now,
			LastUpdateTime: now,
			MinCallTime:    time.Duration(1<<63 - 1),
		},
	}
}

// RecordCall implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordCall(method string, sources int, duration time.Duration) {
	atomic.AddUint64(&b.calls, 1)
	atomic.AddUint64(&b.sourceCalls, uint64(sources))

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stats.LastUpdateTime = time.Now()
	b.stats.TotalCallTime += duration
	if duration < b.stats.MinCallTime {
		b.stats.MinCallTime = duration
	}
	if duration > b.stats.MaxCallTime {
		b.stats.MaxCallTime = duration
	}
}

// RecordMethodError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordMethodError(method string) {
	atomic.AddUint64(&b.methodErrors, 1)
	b.touch()
}

// RecordSourceError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordSourceError(method string) {
	atomic.AddUint64(&b.sourceErrors, 1)
	b.touch()
}

// RecordStackError implements the StatsCollector interface.
func (b *BasicStatsCollector) RecordStackError(method string) {
	atomic.AddUint64(&b.stackErrors, 1)
	b.touch()
}

func (b *BasicStatsCollector) touch() {
	b.mu.Lock()
	b.stats.LastUpdateTime = time.Now()
	b.mu.Unlock()
}

// GetStats implements the StatsCollector interface.
// It returns a snapshot of the current statistics.
func (b *BasicStatsCollector) GetStats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stats := b.stats
	stats.Calls = atomic.LoadUint64(&b.calls)
	stats.SourceCalls = atomic.LoadUint64(&b.sourceCalls)
	stats.MethodErrors = atomic.LoadUint64(&b.methodErrors)
	stats.SourceErrors = atomic.LoadUint64(&b.sourceErrors)
	stats.StackErrors = atomic.LoadUint64(&b.stackErrors)

	if stats.Calls == 0 {
		stats.MinCallTime = 0
	}
	return stats
}

// Errors returns the total number of failed calls.
func (s *Stats) Errors() uint64 {
	return s.MethodErrors + s.SourceErrors + s.StackErrors
}

// AverageCallTime returns the average duration of a successful call.
// Returns 0 if there were none.
func (s *Stats) AverageCallTime() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.TotalCallTime / time.Duration(s.Calls)
}

// ErrorRate returns the percentage of calls that failed.
// Returns 0 if no calls were made.
func (s *Stats) ErrorRate() float64 {
	total := s.Calls + s.Errors()
	if total == 0 {
		return 0
	}
	return float64(s.Errors()) / float64(total) * 100
}

// Duration returns the time between the start of collection and the last
// update.
func (s *Stats) Duration() time.Duration {
	return s.LastUpdateTime.Sub(s.StartTime)
}
