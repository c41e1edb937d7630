// Package metrics exposes command and inventory metrics in Prometheus
// format. zpoolctl is not a daemon, so metrics are written to a file for
// node_exporter's textfile collector rather than served.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jbweber/zpoolctl/internal/executor"
	"github.com/jbweber/zpoolctl/internal/inventory"
	"github.com/jbweber/zpoolctl/internal/status"
)

const namespace = "zpoolctl"

// Metrics holds a private registry and the collectors registered on it.
type Metrics struct {
	registry *prometheus.Registry

	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	poolSize        *prometheus.GaugeVec
	poolFree        *prometheus.GaugeVec
	poolFrag        *prometheus.GaugeVec
	poolHealthy     *prometheus.GaugeVec
	disks           prometheus.Gauge
	lastRefresh     prometheus.Gauge
}

// New creates a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		commandsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands run, by verb and outcome.",
		}, []string{"verb", "outcome"}),
		commandDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command wall time in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"verb"}),
		poolSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_size_bytes",
			Help:      "Pool size in bytes.",
		}, []string{"pool"}),
		poolFree: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_free_bytes",
			Help:      "Pool free space in bytes.",
		}, []string{"pool"}),
		poolFrag: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_fragmentation_ratio",
			Help:      "Pool fragmentation as a ratio between 0 and 1.",
		}, []string{"pool"}),
		poolHealthy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_healthy",
			Help:      "1 if the pool is ONLINE, 0 otherwise.",
		}, []string{"pool", "status"}),
		disks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disks",
			Help:      "Whole disks seen in the last inventory.",
		}),
		lastRefresh: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_timestamp_seconds",
			Help:      "Unix time of the last inventory refresh.",
		}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCommand implements executor.Recorder.
func (m *Metrics) ObserveCommand(verb string, outcome executor.Outcome, d time.Duration) {
	m.commandsTotal.WithLabelValues(verb, string(outcome)).Inc()
	m.commandDuration.WithLabelValues(verb).Observe(d.Seconds())
}

// ObserveSnapshot replaces the pool and disk gauges with the contents of
// snap. Pools missing from snap are dropped. Unparseable sizes are left
// unset rather than reported as zero.
func (m *Metrics) ObserveSnapshot(snap *inventory.Snapshot) {
	m.poolSize.Reset()
	m.poolFree.Reset()
	m.poolFrag.Reset()
	m.poolHealthy.Reset()

	if snap == nil {
		m.disks.Set(0)
		return
	}

	for _, p := range snap.Pools {
		if v, ok := inventory.SizeBytes(p.Size); ok {
			m.poolSize.WithLabelValues(p.Name).Set(float64(v))
		}
		if v, ok := inventory.SizeBytes(p.Free); ok {
			m.poolFree.WithLabelValues(p.Name).Set(float64(v))
		}
		if v, ok := inventory.FragRatio(p.Frag); ok {
			m.poolFrag.WithLabelValues(p.Name).Set(v)
		}

		h := status.ParseHealth(p.Status)
		healthy := 0.0
		if status.IsHealthy(h) {
			healthy = 1
		}
		m.poolHealthy.WithLabelValues(p.Name, string(h)).Set(healthy)
	}

	m.disks.Set(float64(len(snap.Disks)))
	m.lastRefresh.Set(float64(snap.TakenAt.Unix()))
}

// WriteTextfile writes every metric to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

var _ executor.Recorder = (*Metrics)(nil)
