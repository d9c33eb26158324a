// Package metrics exposes Prometheus instrumentation for packet
// traffic and parse outcomes, shared by the cmd/ tools.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	packetsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xenwire",
			Subsystem: "packet",
			Name:      "total",
			Help:      "Packets processed, by direction and op.",
		},
		[]string{"direction", "op"},
	)

	parseFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "xenwire",
			Subsystem: "packet",
			Name:      "parse_failures_total",
			Help:      "Packet parse failures, by error kind.",
		},
		[]string{"kind"},
	)

	payloadSizeBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "xenwire",
			Subsystem: "packet",
			Name:      "payload_size_bytes",
			Help:      "Packet payload size in bytes, by direction.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10),
		},
		[]string{"direction"},
	)
)

// Register installs the collectors with the default Prometheus
// registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(packetsTotal, parseFailuresTotal, payloadSizeBytes)
	})
}

// RecordSent records a packet transmitted on the wire.
func RecordSent(op string, payloadLen int) {
	Register()
	packetsTotal.WithLabelValues("sent", op).Inc()
	payloadSizeBytes.WithLabelValues("sent").Observe(float64(payloadLen))
}

// RecordReceived records a packet successfully parsed off the wire.
func RecordReceived(op string, payloadLen int) {
	Register()
	packetsTotal.WithLabelValues("received", op).Inc()
	payloadSizeBytes.WithLabelValues("received").Observe(float64(payloadLen))
}

// RecordParseFailure records a failed parse attempt, classified by
// kind (e.g. "unknown_op", "end_of_stream").
func RecordParseFailure(kind string) {
	Register()
	parseFailuresTotal.WithLabelValues(kind).Inc()
}
