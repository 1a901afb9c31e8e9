package gateway

import (
	"net/http"
	"strings"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/authtoken"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

// TenantBinder is the third pipeline stage (spec §4.9 step 3): it decodes
// the bearer token without verifying its signature (that check is deferred
// to RequireAuth), resolves which tenant the request is scoped to —
// honoring an X-Tenant-ID override for super admins and multi-org
// members — and binds a tenant.Context for the remainder of the request.
// Grounded on
// original_source/apps/api/src/middleware/tenant_middleware.py's
// TenantContextMiddleware.
type TenantBinder struct{}

// Middleware builds the tenant-binding middleware.
func (TenantBinder) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsExcluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			claims, err := authtoken.DecodeUnverified(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			headerTenant := r.Header.Get("X-Tenant-ID")
			resolvedTenantID, err := tenant.ResolveTenantID(claims.TenantID, headerTenant, claims.IsSuperAdmin, claims.AvailableTenants)
			if err != nil {
				apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantForbidden, "tenant override not permitted for this account"))
				return
			}

			tc := authtoken.ToTenantContext(claims, resolvedTenantID)
			ctx := tenant.Bind(r.Context(), tc)
			defer func() { tenant.Clear(ctx) }()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
