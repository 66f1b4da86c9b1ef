package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akil18/cop-shop-server-side/pkg/metrics"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	metrics.Handler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(metrics.Middleware())
	r.Get("/product/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/product/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	body := scrape(t)
	assert.Contains(t, body, `path="/product/{id}"`)
	assert.NotContains(t, body, `path="/product/a"`)
}

func TestDomainMetricsAreExposed(t *testing.T) {
	metrics.RecordPaymentIntent("created")
	metrics.RecordSettlement("committed")
	metrics.ObserveStoreOperation("orders", "find_one", time.Now())
	metrics.CacheHits.WithLabelValues("memory").Inc()

	body := scrape(t)
	assert.Contains(t, body, "copshop_payment_intents_total")
	assert.Contains(t, body, "copshop_payment_settlements_total")
	assert.Contains(t, body, `copshop_store_operation_duration_seconds_count{collection="orders",operation="find_one"}`)
	assert.Contains(t, body, "copshop_cache_hits_total")
}
