// internal/gateway/metrics/metrics_test.go
package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_RecordRequest(t *testing.T) {
	collector := NewCollector()

	initialCount := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/api/v1/iocs/:id", "2xx"))

	collector.RecordRequest("GET", "/api/v1/iocs/:id", 200, 100*time.Millisecond, 1024, 2048)
	collector.RecordRequest("PUT", "/api/v1/iocs/:id", 201, 200*time.Millisecond, 4096, 512)
	collector.RecordRequest("GET", "/api/v1/iocs/:id", 404, 50*time.Millisecond, 512, 128)
	collector.RecordRequest("GET", "/", 500, 10*time.Millisecond, 0, 0)

	assert.Equal(t, initialCount+1, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/api/v1/iocs/:id", "2xx")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/api/v1/iocs/:id", "4xx")), float64(1))
	assert.GreaterOrEqual(t, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/", "5xx")), float64(1))
}

func TestCollector_ErrorTracking(t *testing.T) {
	collector := NewCollector()

	initial := testutil.ToFloat64(errorsTotal.WithLabelValues("client_error", "/api/v1/iocs/:id"))

	collector.RecordError("client_error", "/api/v1/iocs/:id")
	collector.RecordError("client_error", "/api/v1/iocs/:id")
	collector.RecordError("server_error", "/")

	assert.Equal(t, initial+2, testutil.ToFloat64(errorsTotal.WithLabelValues("client_error", "/api/v1/iocs/:id")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(errorsTotal.WithLabelValues("server_error", "/")), float64(1))
}

func TestCollector_PlanCacheMetrics(t *testing.T) {
	collector := NewCollector()

	initialHits := testutil.ToFloat64(planCacheHits)
	initialMisses := testutil.ToFloat64(planCacheMisses)

	for i := 0; i < 10; i++ {
		collector.RecordPlanCacheHit()
	}
	for i := 0; i < 5; i++ {
		collector.RecordPlanCacheMiss()
	}

	assert.Equal(t, initialHits+10, testutil.ToFloat64(planCacheHits))
	assert.Equal(t, initialMisses+5, testutil.ToFloat64(planCacheMisses))
}

func TestCollector_ConnectionTracking(t *testing.T) {
	collector := NewCollector()

	initial := testutil.ToFloat64(activeConnections)

	collector.IncrementConnections()
	collector.IncrementConnections()
	collector.IncrementConnections()

	assert.Equal(t, initial+3, testutil.ToFloat64(activeConnections))

	collector.DecrementConnections()

	assert.Equal(t, initial+2, testutil.ToFloat64(activeConnections))
}

func TestCollector_Uptime(t *testing.T) {
	collector := NewCollector()

	time.Sleep(100 * time.Millisecond)

	uptime := collector.Uptime()
	assert.True(t, uptime >= 100*time.Millisecond)
	assert.True(t, uptime < 200*time.Millisecond)
}

func TestMiddleware_RecordsMetrics(t *testing.T) {
	collector := NewCollector()

	initial := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/api/v1/iocs/:id", "2xx"))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("test response"))
	})

	wrapped := Middleware(collector)(handler)

	req := httptest.NewRequest("GET", "/api/v1/iocs/abc123", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test response", rec.Body.String())

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, initial+1, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/api/v1/iocs/:id", "2xx")))
}

func TestMiddleware_TracksErrors(t *testing.T) {
	collector := NewCollector()

	initial := testutil.ToFloat64(errorsTotal.WithLabelValues("server_error", "/api/v1/feeds/:id"))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("error"))
	})

	wrapped := Middleware(collector)(handler)

	req := httptest.NewRequest("POST", "/api/v1/feeds/misp", nil)
	rec := httptest.NewRecorder()

	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, initial+1, testutil.ToFloat64(errorsTotal.WithLabelValues("server_error", "/api/v1/feeds/:id")))
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/", "/"},
		{"/api/v1", "/api/v1"},
		{"/api/v1/iocs", "/api/v1/iocs"},
		{"/api/v1/iocs/", "/api/v1/iocs"},
		{"/api/v1/iocs/abc123", "/api/v1/iocs/:id"},
		{"/api/v1/iocs/abc123/related", "/api/v1/iocs/abc123/:id"},
		{"", "/"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result := normalizePath(test.input)
			assert.Equal(t, test.expected, result)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	collector := NewCollector()

	t.Run("records a rejection on 429", func(t *testing.T) {
		initial := testutil.ToFloat64(rateLimitRejections.WithLabelValues("/api/v1/iocs/:id"))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		wrapped := RateLimitMiddleware(collector)(handler)

		req := httptest.NewRequest("GET", "/api/v1/iocs/abc123", nil)
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, initial+1, testutil.ToFloat64(rateLimitRejections.WithLabelValues("/api/v1/iocs/:id")))
	})

	t.Run("does not record a rejection on success", func(t *testing.T) {
		initial := testutil.ToFloat64(rateLimitRejections.WithLabelValues("/api/v1/feeds"))

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		wrapped := RateLimitMiddleware(collector)(handler)

		req := httptest.NewRequest("GET", "/api/v1/feeds", nil)
		rec := httptest.NewRecorder()

		wrapped.ServeHTTP(rec, req)

		assert.Equal(t, initial, testutil.ToFloat64(rateLimitRejections.WithLabelValues("/api/v1/feeds")))
	})
}

func TestMetricsIntegration(t *testing.T) {
	collector := NewCollector()

	for i := 0; i < 100; i++ {
		if i%10 == 0 {
			collector.RecordRequest("GET", "/", 200, 10*time.Millisecond, 512, 1024)
		} else if i%5 == 0 {
			collector.RecordRequest("PUT", "/api/v1/iocs/:id", 201, 50*time.Millisecond, 4096, 512)
		} else {
			collector.RecordRequest("GET", "/api/v1/iocs/:id", 200, 20*time.Millisecond, 512, 2048)
		}
	}

	assert.True(t, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/", "2xx")) > 0)
	assert.True(t, testutil.ToFloat64(requestsTotal.WithLabelValues("PUT", "/api/v1/iocs/:id", "2xx")) > 0)
	assert.True(t, testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/api/v1/iocs/:id", "2xx")) > 0)
}
