package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	ScreenshotsTotal.WithLabelValues("produced").Inc()

	tests := []struct {
		path     string
		wantCode int
		contains string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "caption_screenshots_total"},
		{"/nope", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), tt.contains))
		})
	}
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(RecordsPersistedTotal.WithLabelValues("failed"))
	RecordsPersistedTotal.WithLabelValues("failed").Add(2)
	after := testutil.ToFloat64(RecordsPersistedTotal.WithLabelValues("failed"))
	require.Equal(t, before+2, after)

	CaptionsGeneratedTotal.WithLabelValues("mock_qa").Add(3)
	assert.GreaterOrEqual(t, testutil.ToFloat64(CaptionsGeneratedTotal.WithLabelValues("mock_qa")), 3.0)
}
