package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	t.Run("sets headers for an allowed origin", func(t *testing.T) {
		// Arrange
		mw := CORS(CORSConfig{AllowedOrigins: []string{"https://app.isora.io"}})
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/iocs", nil)
		req.Header.Set("Origin", "https://app.isora.io")
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Equal(t, "https://app.isora.io", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("omits headers for a disallowed origin", func(t *testing.T) {
		// Arrange
		mw := CORS(CORSConfig{AllowedOrigins: []string{"https://app.isora.io"}})
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/iocs", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("short-circuits preflight requests", func(t *testing.T) {
		// Arrange
		mw := CORS(CORSConfig{AllowedOrigins: []string{"*"}})
		called := false
		handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/api/v1/iocs", nil)
		rec := httptest.NewRecorder()

		// Act
		handler.ServeHTTP(rec, req)

		// Assert
		assert.False(t, called)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestClientIP(t *testing.T) {
	t.Run("prefers the leftmost X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
		req.RemoteAddr = "10.0.0.1:12345"

		assert.Equal(t, "203.0.113.5", ClientIP(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.9")
		req.RemoteAddr = "10.0.0.1:12345"

		assert.Equal(t, "203.0.113.9", ClientIP(req))
	})

	t.Run("falls back to RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "198.51.100.7:9999"

		assert.Equal(t, "198.51.100.7", ClientIP(req))
	})
}

func TestIsExcluded(t *testing.T) {
	t.Run("matches exact excluded paths", func(t *testing.T) {
		assert.True(t, IsExcluded("/health"))
		assert.True(t, IsExcluded("/api/v1/auth/login"))
	})

	t.Run("matches excluded prefixes", func(t *testing.T) {
		assert.True(t, IsExcluded("/api/v1/auth/sso/callback"))
	})

	t.Run("does not match protected paths", func(t *testing.T) {
		assert.False(t, IsExcluded("/api/v1/iocs"))
	})
}
