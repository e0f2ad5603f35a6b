package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pitboard"

type metrics struct {
	renders        *prometheus.CounterVec
	renderErrors   *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	encodedBytes   *prometheus.CounterVec
}

// newMetrics creates the server collectors. A nil registerer leaves
// them unregistered.
func newMetrics(registerer prometheus.Registerer) *metrics {
	m := &metrics{
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Number of screens rendered and encoded",
		}, []string{"screen", "format"}),
		renderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_errors_total",
			Help:      "Number of failed renders",
		}, []string{"screen"}),
		renderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time to fetch, draw and encode a screen",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
		}, []string{"screen"}),
		encodedBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encoded_bytes_total",
			Help:      "Bytes produced by the encoders",
		}, []string{"format"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.renders, m.renderErrors, m.renderDuration, m.encodedBytes)
	}
	return m
}
