package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryCounters(t *testing.T) {
	r := NewRegistry()

	r.RecordEvaluation("LONG")
	r.RecordEvaluation("LONG")
	r.RecordEmission("LONG")
	r.RecordSuppression("cooldown")
	r.RecordError("fetch")
	r.ObserveCycle(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Evaluations.WithLabelValues("LONG")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Emissions.WithLabelValues("LONG")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Suppressions.WithLabelValues("cooldown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.FetchErrors.WithLabelValues("fetch")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.CycleDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordEmission("SHORT")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `cryptosignal_emissions_total{class="SHORT"} 1`)
}
