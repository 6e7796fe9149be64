package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics tracks HTTP API and registry metrics
type APIMetrics struct {
	apiRequestsTotal        *prometheus.CounterVec
	apiRequestDuration      *prometheus.HistogramVec
	schemasActive           *prometheus.GaugeVec
	schemaCreationsTotal    *prometheus.CounterVec
	schemaDeletionsTotal    *prometheus.CounterVec
	documentOperationsTotal *prometheus.CounterVec
	documentWriteDuration   *prometheus.HistogramVec
	validationFailuresTotal *prometheus.CounterVec
	quotaRejectionsTotal    *prometheus.CounterVec
}

// NewAPIMetrics initializes API metrics with the collector
func NewAPIMetrics(collector *Collector) *APIMetrics {
	return &APIMetrics{
		apiRequestsTotal: collector.RegisterCounter(
			MetricAPIRequestsTotal,
			"Total HTTP requests by surface, method, and status",
			[]string{LabelSurface, LabelMethod, LabelStatus},
		),
		apiRequestDuration: collector.RegisterHistogram(
			MetricAPIRequestDuration,
			"HTTP request latency in seconds",
			[]string{LabelSurface, LabelMethod},
			prometheus.DefBuckets,
		),
		schemasActive: collector.RegisterGauge(
			MetricSchemasActive,
			"Number of active schemas",
			[]string{},
		),
		schemaCreationsTotal: collector.RegisterCounter(
			MetricSchemaCreationsTotal,
			"Total number of schemas created",
			[]string{},
		),
		schemaDeletionsTotal: collector.RegisterCounter(
			MetricSchemaDeletionsTotal,
			"Total number of schemas deleted",
			[]string{},
		),
		documentOperationsTotal: collector.RegisterCounter(
			MetricDocumentOperationsTotal,
			"Total generated-API document operations by operation and status",
			[]string{LabelOperation, LabelStatus},
		),
		documentWriteDuration: collector.RegisterHistogram(
			MetricDocumentWriteDuration,
			"Document write latency in seconds",
			[]string{LabelOperation},
			prometheus.DefBuckets,
		),
		validationFailuresTotal: collector.RegisterCounter(
			MetricValidationFailuresTotal,
			"Total document payloads rejected by schema validation",
			[]string{LabelOperation},
		),
		quotaRejectionsTotal: collector.RegisterCounter(
			MetricQuotaRejectionsTotal,
			"Total requests rejected because the monthly quota was exhausted",
			[]string{},
		),
	}
}

// RecordRequest records an HTTP request
func (m *APIMetrics) RecordRequest(surface, method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.apiRequestDuration.WithLabelValues(surface, method).Observe(duration.Seconds())
	m.apiRequestsTotal.WithLabelValues(surface, method, status).Inc()
}

// RecordSchemaCreated increments the schema creation counter and active gauge
func (m *APIMetrics) RecordSchemaCreated() {
	if m == nil {
		return
	}
	m.schemaCreationsTotal.WithLabelValues().Inc()
	m.schemasActive.WithLabelValues().Inc()
}

// RecordSchemaDeleted increments the schema deletion counter and decrements the active gauge
func (m *APIMetrics) RecordSchemaDeleted() {
	if m == nil {
		return
	}
	m.schemaDeletionsTotal.WithLabelValues().Inc()
	m.schemasActive.WithLabelValues().Dec()
}

// SetActiveSchemas sets the active schema gauge, used at startup
func (m *APIMetrics) SetActiveSchemas(count int) {
	if m == nil {
		return
	}
	m.schemasActive.WithLabelValues().Set(float64(count))
}

// RecordDocumentOperation records a generated-API document operation
func (m *APIMetrics) RecordDocumentOperation(operation, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.documentOperationsTotal.WithLabelValues(operation, status).Inc()
	m.documentWriteDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordValidationFailure increments the validation failure counter
func (m *APIMetrics) RecordValidationFailure(operation string) {
	if m == nil {
		return
	}
	m.validationFailuresTotal.WithLabelValues(operation).Inc()
}

// RecordQuotaRejection increments the quota rejection counter
func (m *APIMetrics) RecordQuotaRejection() {
	if m == nil {
		return
	}
	m.quotaRejectionsTotal.WithLabelValues().Inc()
}
