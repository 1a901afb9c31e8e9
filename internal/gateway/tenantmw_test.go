package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isora-platform/cyberops-core/internal/authtoken"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

func TestTenantBinder(t *testing.T) {
	v := authtoken.NewValidator([]byte("test-secret"), "HS256")

	t.Run("bypasses excluded paths without requiring a token", func(t *testing.T) {
		var tc *tenant.Context
		handler := TenantBinder{}.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, _ = tenant.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/health", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Nil(t, tc)
	})

	t.Run("passes through unauthenticated requests without binding a context", func(t *testing.T) {
		var err error
		handler := TenantBinder{}.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err = tenant.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/iocs", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.ErrorIs(t, err, tenant.ErrNoTenant)
	})

	t.Run("binds the tenant context from a valid token", func(t *testing.T) {
		token, err := v.Issue("user-1", "tenant-1", "admin", false, nil, time.Hour)
		require.NoError(t, err)

		var tc *tenant.Context
		handler := TenantBinder{}.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, _ = tenant.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/iocs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.NotNil(t, tc)
		assert.Equal(t, "tenant-1", tc.TenantID)
		assert.Equal(t, tenant.RoleAdmin, tc.OrgRole)
	})

	t.Run("honors a super admin's X-Tenant-ID override", func(t *testing.T) {
		token, err := v.Issue("user-1", "tenant-1", "owner", true, nil, time.Hour)
		require.NoError(t, err)

		var tc *tenant.Context
		handler := TenantBinder{}.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, _ = tenant.FromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/iocs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Tenant-ID", "tenant-9")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.NotNil(t, tc)
		assert.Equal(t, "tenant-9", tc.TenantID)
	})

	t.Run("rejects a non-super-admin override into an unavailable tenant", func(t *testing.T) {
		token, err := v.Issue("user-1", "tenant-1", "member", false, []string{"tenant-1"}, time.Hour)
		require.NoError(t, err)

		called := false
		handler := TenantBinder{}.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest("GET", "/api/v1/iocs", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("X-Tenant-ID", "tenant-9")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
