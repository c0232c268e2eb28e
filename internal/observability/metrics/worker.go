package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	ocrConfidence   *prometheus.HistogramVec
	fallbackTotal   *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docinsights",
			Subsystem: "worker",
			Name:      "document_process_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docinsights",
			Subsystem: "worker",
			Name:      "document_process_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docinsights",
			Subsystem: "worker",
			Name:      "document_process_in_flight",
			Help:      "Number of in-flight document processing tasks.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	ocrConfidence := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docinsights",
			Subsystem: "worker",
			Name:      "ocr_confidence",
			Help:      "Extraction-quality score distribution.",
			Buckets:   []float64{0, 50, 65, 70, 80, 85, 90, 95},
		},
		[]string{"service"},
	)
	fallbackTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docinsights",
			Subsystem: "synthesizer",
			Name:      "mock_fallback_total",
			Help:      "Model-path analyses degraded to the mock synthesizer, by reason.",
		},
		[]string{"service", "reason"},
	)

	registry.MustRegister(processTotal, processDuration, processInFlight, ocrConfidence, fallbackTotal)

	return &WorkerMetrics{
		registry:        registry,
		processTotal:    processTotal,
		processDuration: processDuration,
		processInFlight: processInFlight,
		ocrConfidence:   ocrConfidence,
		fallbackTotal:   fallbackTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(service string, duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}
	m.processTotal.WithLabelValues(service, status).Inc()
	m.processDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveOCRConfidence(service string, confidence int) {
	m.ocrConfidence.WithLabelValues(service).Observe(float64(confidence))
}

func (m *WorkerMetrics) ObserveFallback(service, reason string) {
	m.fallbackTotal.WithLabelValues(service, reason).Inc()
}
