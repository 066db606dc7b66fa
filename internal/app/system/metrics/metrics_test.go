package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestBackendRequest_CountsByEndpointAndResult(t *testing.T) {
	before := testutil.ToFloat64(backendRequests.WithLabelValues("test.endpoint", ResultRejected))

	BackendRequest("test.endpoint", ResultRejected, 20*time.Millisecond)

	after := testutil.ToFloat64(backendRequests.WithLabelValues("test.endpoint", ResultRejected))
	require.Equal(t, before+1, after)
}

func TestStaleDiscard_Increments(t *testing.T) {
	before := testutil.ToFloat64(staleDiscards.WithLabelValues("subdivision"))
	StaleDiscard("subdivision")
	StaleDiscard("subdivision")
	require.Equal(t, before+2, testutil.ToFloat64(staleDiscards.WithLabelValues("subdivision")))
}

func TestLoginThrottled_LabelsByKey(t *testing.T) {
	before := testutil.ToFloat64(loginThrottled.WithLabelValues("username"))
	LoginThrottled("username")
	require.Equal(t, before+1, testutil.ToFloat64(loginThrottled.WithLabelValues("username")))
}

func TestSetOpenPages(t *testing.T) {
	SetOpenPages(7)
	require.Equal(t, float64(7), testutil.ToFloat64(openPages))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	LookupFailure("block")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.Contains(rec.Body.String(), "teagarden_lookup_failures_total"),
		"expected lookup failure counter in exposition")
}
