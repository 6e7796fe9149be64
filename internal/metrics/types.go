package metrics

// Metric name constants following Prometheus naming conventions
// Format: schemacraft_{component}_{metric}_{unit}

// HTTP API metrics
const (
	MetricAPIRequestsTotal   = "schemacraft_api_requests_total"
	MetricAPIRequestDuration = "schemacraft_api_request_duration_seconds"
)

// Registry metrics
const (
	MetricSchemasActive        = "schemacraft_schemas_active"
	MetricSchemaCreationsTotal = "schemacraft_schema_creations_total"
	MetricSchemaDeletionsTotal = "schemacraft_schema_deletions_total"
)

// Document metrics
const (
	MetricDocumentOperationsTotal = "schemacraft_document_operations_total"
	MetricDocumentWriteDuration   = "schemacraft_document_write_duration_seconds"
	MetricValidationFailuresTotal = "schemacraft_validation_failures_total"
	MetricQuotaRejectionsTotal    = "schemacraft_quota_rejections_total"
)

// Label name constants
const (
	LabelMethod     = "method"
	LabelSurface    = "surface"
	LabelStatus     = "status"
	LabelOperation  = "operation"
	LabelCollection = "collection"
)
