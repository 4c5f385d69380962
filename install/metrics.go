package install

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric label names.
const (
	PublisherLabel = "publisher"
	StageLabel     = "stage"
)

// Metrics holds the counters of an installation pipeline.
type Metrics struct {
	InstalledTotal *prometheus.CounterVec
	FailedTotal    *prometheus.CounterVec
	RepackedTotal  prometheus.Counter
	Duration       *prometheus.HistogramVec
}

// NewMetrics creates the pipeline metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		InstalledTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bundledeps_install_installed_total",
				Help: "Number of bundles published.",
			},
			[]string{PublisherLabel},
		),
		FailedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bundledeps_install_failed_total",
				Help: "Number of bundles that failed to publish, by stage.",
			},
			[]string{PublisherLabel, StageLabel},
		),
		RepackedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bundledeps_install_repacked_total",
				Help: "Number of exploded bundle directories repacked into archives.",
			},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bundledeps_install_duration_seconds",
				Help:    "Time taken to publish a single bundle.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{PublisherLabel},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.InstalledTotal, m.FailedTotal, m.RepackedTotal, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}
