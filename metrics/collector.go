package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MasterOfBinary/batchrand/batch"
)

// Error kinds used as the "kind" label of the errors counter.
const (
	KindMethod = "method"
	KindSource = "source"
	KindStack  = "stack"
)

// durations of a whole batched call, in seconds
var histogramBuckets = []float64{0.00001, 0.0001, 0.001, 0.005, 0.010, 0.050, 0.100, 0.500, 1}

// Collector is a batch.StatsCollector that records calls as Prometheus
// metrics, partitioned by method name.
type Collector struct {
	*batch.BasicStatsCollector

	calls    *prometheus.CounterVec
	draws    *prometheus.CounterVec
	errors   *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ batch.StatsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg. The
// metric names are prefixed with namespace when it is not empty. It panics if
// the metrics are already registered with reg, like promauto does.
func NewCollector(reg prometheus.Registerer, namespace string) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		BasicStatsCollector: batch.NewBasicStatsCollector(),

		calls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_calls_total",
			Help:      "successful batched generation calls; partitioned by method",
		}, []string{"method"}),

		draws: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_source_calls_total",
			Help:      "per-source results of successful calls; partitioned by method",
		}, []string{"method"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_errors_total",
			Help:      "failed batched calls; partitioned by method and error kind",
		}, []string{"method", "kind"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_call_duration_seconds",
			Help:      "duration of successful calls including stacking; partitioned by method",
			Buckets:   histogramBuckets,
		}, []string{"method"}),
	}
}

// RecordCall implements the batch.StatsCollector interface.
func (c *Collector) RecordCall(method string, sources int, duration time.Duration) {
	c.BasicStatsCollector.RecordCall(method, sources, duration)
	c.calls.WithLabelValues(method).Inc()
	c.draws.WithLabelValues(method).Add(float64(sources))
	c.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordMethodError implements the batch.StatsCollector interface.
func (c *Collector) RecordMethodError(method string) {
	c.BasicStatsCollector.RecordMethodError(method)
	c.errors.WithLabelValues(method, KindMethod).Inc()
}

// RecordSourceError implements the batch.StatsCollector interface.
func (c *Collector) RecordSourceError(method string) {
	c.BasicStatsCollector.RecordSourceError(method)
	c.errors.WithLabelValues(method, KindSource).Inc()
}

// RecordStackError implements the batch.StatsCollector interface.
func (c *Collector) RecordStackError(method string) {
	c.BasicStatsCollector.RecordStackError(method)
	c.errors.WithLabelValues(method, KindStack).Inc()
}
