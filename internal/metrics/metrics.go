// Package metrics exports relay and image generation metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomePartial = "partial"
)

// Recorder owns a private registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	chatRequests *prometheus.CounterVec
	chatDuration *prometheus.HistogramVec
	chatActive   prometheus.Gauge
	toolCalls    *prometheus.CounterVec
	images       *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.chatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polychat",
			Subsystem: "chat",
			Name:      "requests_total",
			Help:      "Total number of chat relay requests",
		},
		[]string{"model", "outcome"},
	)
	r.chatDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "polychat",
			Subsystem: "chat",
			Name:      "duration_seconds",
			Help:      "Chat relay duration from request to terminal event",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"model"},
	)
	r.chatActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "polychat",
			Subsystem: "chat",
			Name:      "active_streams",
			Help:      "Number of chat streams in progress",
		},
	)
	r.toolCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polychat",
			Subsystem: "chat",
			Name:      "tool_calls_total",
			Help:      "Total number of tool calls executed",
		},
		[]string{"tool", "outcome"},
	)
	r.images = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "polychat",
			Subsystem: "image",
			Name:      "generations_total",
			Help:      "Total number of image generation requests",
		},
		[]string{"outcome"},
	)

	r.registry.MustRegister(
		r.chatRequests,
		r.chatDuration,
		r.chatActive,
		r.toolCalls,
		r.images,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// StartChat marks a stream as active and returns the function that records
// its completion.
func (r *Recorder) StartChat(model string) func(outcome string) {
	if r == nil {
		return func(string) {}
	}
	start := time.Now()
	r.chatActive.Inc()
	return func(outcome string) {
		r.chatActive.Dec()
		r.chatRequests.WithLabelValues(model, outcome).Inc()
		r.chatDuration.WithLabelValues(model).Observe(time.Since(start).Seconds())
	}
}

func (r *Recorder) RecordToolCall(tool string, success bool) {
	if r == nil {
		return
	}
	r.toolCalls.WithLabelValues(tool, outcome(success)).Inc()
}

func (r *Recorder) RecordImage(success bool) {
	if r == nil {
		return
	}
	r.images.WithLabelValues(outcome(success)).Inc()
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func outcome(success bool) string {
	if success {
		return OutcomeSuccess
	}
	return OutcomeError
}
