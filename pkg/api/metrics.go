package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/skarsten/keywire/pkg/codec"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Codec operation metrics
	codecEncodesTotal      *prometheus.CounterVec
	codecDecodesTotal      *prometheus.CounterVec
	codecDecodeErrorsTotal *prometheus.CounterVec
	packetSizeBytes        prometheus.Histogram

	// Journal metrics
	journalOperationsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics on the default
// registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegistry creates all metrics on the given registry. Tests
// use this with a fresh registry to avoid duplicate registration.
func NewMetricsWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywire_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keywire_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "keywire_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		codecEncodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywire_codec_encodes_total",
				Help: "Total number of key event encode operations",
			},
			[]string{"status"},
		),

		codecDecodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywire_codec_decodes_total",
				Help: "Total number of key event decode operations",
			},
			[]string{"status"},
		),

		codecDecodeErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywire_codec_decode_errors_total",
				Help: "Total number of structural decode errors by kind",
			},
			[]string{"kind"},
		),

		packetSizeBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "keywire_packet_size_bytes",
				Help:    "Size of encoded key event packets in bytes",
				Buckets: []float64{56, 57, 60, 64, 72, 88, 120, 184, 312},
			},
		),

		journalOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keywire_journal_operations_total",
				Help: "Total number of journal operations",
			},
			[]string{"operation", "status"},
		),
	}
}

// RecordEncode records an encode operation
func (m *Metrics) RecordEncode(err error, packetSize int) {
	if err != nil {
		m.codecEncodesTotal.WithLabelValues(statusError).Inc()
		return
	}
	m.codecEncodesTotal.WithLabelValues(statusSuccess).Inc()
	m.packetSizeBytes.Observe(float64(packetSize))
}

// RecordDecode records a decode operation, classifying structural errors
func (m *Metrics) RecordDecode(err error) {
	if err == nil {
		m.codecDecodesTotal.WithLabelValues(statusSuccess).Inc()
		return
	}
	m.codecDecodesTotal.WithLabelValues(statusError).Inc()
	m.codecDecodeErrorsTotal.WithLabelValues(decodeErrorKind(err)).Inc()
}

// RecordJournalOperation records a journal operation
func (m *Metrics) RecordJournalOperation(operation string, success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.journalOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

func decodeErrorKind(err error) string {
	switch {
	case errors.Is(err, codec.ErrTruncatedBuffer):
		return "truncated"
	case errors.Is(err, codec.ErrInvalidEnumValue):
		return "invalid_enum"
	case errors.Is(err, codec.ErrInvalidUTF8):
		return "invalid_utf8"
	default:
		return "other"
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
