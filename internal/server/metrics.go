package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the recognizer's hot paths:
// encode/predict latency and per-class example counts, grounded on
// hupe1980-vecgo's PrometheusObserver pattern (histogram per operation,
// gauge vec for a per-key value).
type Metrics struct {
	encodeLatency      prometheus.Histogram
	predictLatency     prometheus.Histogram
	classExampleCounts *prometheus.GaugeVec
}

// NewMetrics constructs and registers the recognizer's metric collectors
// against the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		encodeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mudra_recognizer_encode_latency_seconds",
			Help:    "Latency of hand-pose hypervector encoding",
			Buckets: prometheus.DefBuckets,
		}),
		predictLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mudra_recognizer_predict_latency_seconds",
			Help:    "Latency of nearest-prototype classification",
			Buckets: prometheus.DefBuckets,
		}),
		classExampleCounts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "mudra_recognizer_class_example_count",
			Help: "Number of training examples bundled into each gesture class",
		}, []string{"gesture"}),
	}

	reg.MustRegister(m.encodeLatency, m.predictLatency, m.classExampleCounts)
	return m
}

// ObserveEncode records how long one Encode call took.
func (m *Metrics) ObserveEncode(d time.Duration) {
	m.encodeLatency.Observe(d.Seconds())
}

// ObservePredict records how long one Predict call took.
func (m *Metrics) ObservePredict(d time.Duration) {
	m.predictLatency.Observe(d.Seconds())
}

// SetClassExampleCount updates the gauge for a single gesture class.
func (m *Metrics) SetClassExampleCount(gesture string, count int) {
	m.classExampleCounts.WithLabelValues(gesture).Set(float64(count))
}

// RefreshClassExampleCounts snapshots every class's current example count,
// called after training mutations so /api/metrics reflects the latest state.
func (m *Metrics) RefreshClassExampleCounts(names []string, countOf func(string) int) {
	for _, name := range names {
		m.SetClassExampleCount(name, countOf(name))
	}
}
