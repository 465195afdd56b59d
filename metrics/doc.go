// Package metrics exports batch.Generator call statistics to Prometheus.
//
//	c := metrics.NewCollector(prometheus.DefaultRegisterer, "trainer")
//	g, err := batch.NewWithOptions(&batch.Options{Stats: c}, sources...)
//
// Collector also keeps the in-memory totals of batch.BasicStatsCollector,
// so GetStats keeps working alongside the exported series.
package metrics
