package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsolatedRegistries(t *testing.T) {
	first := New()
	second := New()

	first.RelayMessagesTotal.Inc()
	first.HTTPRequestsTotal.WithLabelValues("GET", "/jobs", "200").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(first.RelayMessagesTotal))
	assert.Equal(t, float64(0), testutil.ToFloat64(second.RelayMessagesTotal))
	assert.Equal(t, 0, testutil.CollectAndCount(second.HTTPRequestsTotal))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := New()
	m.RelayPeers.Set(3)
	m.HTTPRequestDuration.WithLabelValues("GET", "/jobs").Observe(0.02)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, "career_relay_peers 3"))
	assert.True(t, strings.Contains(text, "career_http_request_duration_seconds_bucket"))
	assert.True(t, strings.Contains(text, "go_goroutines"))
}
