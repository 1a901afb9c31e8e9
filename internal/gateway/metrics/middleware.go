// internal/gateway/metrics/middleware.go
package metrics

import (
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status and size
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int64
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)
	return n, err
}

// Middleware provides metrics collection for HTTP requests
func Middleware(collector *Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Track active connections
			collector.IncrementConnections()
			defer collector.DecrementConnections()

			// Get request size
			reqSize := r.ContentLength
			if reqSize < 0 {
				reqSize = 0
			}

			// Wrap response writer
			wrapped := &responseWriter{
				ResponseWriter: w,
				status:         200,
			}

			// Extract endpoint (normalize path)
			endpoint := normalizePath(r.URL.Path)

			// Process request
			next.ServeHTTP(wrapped, r)

			// Record metrics
			duration := time.Since(start)
			collector.RecordRequest(
				r.Method,
				endpoint,
				wrapped.status,
				duration,
				reqSize,
				wrapped.size,
			)

			// Record errors if status >= 400
			if wrapped.status >= 400 {
				errorType := "client_error"
				if wrapped.status >= 500 {
					errorType = "server_error"
				}
				collector.RecordError(errorType, endpoint)
			}
		})
	}
}

// normalizePath collapses path parameters (IDs, fingerprints) out of the
// route so the endpoint label stays low-cardinality, e.g.
// /api/v1/iocs/a1b2c3 -> /api/v1/iocs/:id.
func normalizePath(path string) string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}

	const idSegments = 5
	parts := strings.Split(path, "/")

	// Collapse the final segment to :id for any path of four or more
	// segments (/api/v1/iocs/{id}, /api/v1/feeds/{name}, ...); no route
	// table is consulted, and only the last segment is replaced.
	if len(parts) >= idSegments {
		parts[len(parts)-1] = ":id"
		return strings.Join(parts, "/")
	}

	return path
}

// RateLimitMiddleware tracks 429s issued by the rate-limit gate,
// distinguishing admission rejections from application errors.
func RateLimitMiddleware(collector *Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{ResponseWriter: w, status: 200}
			next.ServeHTTP(wrapped, r)
			if wrapped.status == http.StatusTooManyRequests {
				collector.RecordRateLimitRejection(normalizePath(r.URL.Path))
			}
		})
	}
}
