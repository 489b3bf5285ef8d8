package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdsecurity/tailf/pkg/metrics"
)

func TestMetricsHandler(t *testing.T) {
	metrics.TailfLinesRead.WithLabelValues("handler-test").Inc()

	handler, err := newMetricsHandler(metrics.TailfLinesRead, metrics.TailfTruncations)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tailf_lines_read_total{source="handler-test"} 1`)

	_, err = newMetricsHandler(metrics.TailfLinesRead, metrics.TailfLinesRead)
	require.Error(t, err)
}
