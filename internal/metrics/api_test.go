package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIMetrics(t *testing.T) {
	collector := NewCollector()
	m := NewAPIMetrics(collector)
	require.NotNil(t, m)

	m.RecordRequest("dashboard", "GET", "200", 5*time.Millisecond)
	m.RecordSchemaCreated()
	m.RecordSchemaDeleted()
	m.SetActiveSchemas(3)
	m.RecordDocumentOperation("create", "success", time.Millisecond)
	m.RecordValidationFailure("create")
	m.RecordQuotaRejection()

	families, err := collector.GetRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names[MetricAPIRequestsTotal])
	assert.True(t, names[MetricSchemasActive])
	assert.True(t, names[MetricDocumentOperationsTotal])
	assert.True(t, names[MetricQuotaRejectionsTotal])
}

func TestAPIMetrics_NilReceiver(t *testing.T) {
	var m *APIMetrics

	// Metrics are optional; a nil receiver must not panic
	m.RecordRequest("dashboard", "GET", "200", time.Millisecond)
	m.RecordSchemaCreated()
	m.RecordSchemaDeleted()
	m.SetActiveSchemas(1)
	m.RecordDocumentOperation("get", "success", time.Millisecond)
	m.RecordValidationFailure("update")
	m.RecordQuotaRejection()
}
