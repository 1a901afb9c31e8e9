package gateway

import (
	"net/http"
	"strings"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/authtoken"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

// RequireAuth is the fourth and final pipeline stage (spec §4.9 step 4):
// it re-validates the access token's signature, expiry and type, and
// requires a tenant context to already be bound (step 3 must have run
// first). Unlike TenantBinder, a missing or invalid token is fatal here.
type RequireAuth struct {
	Validator *authtoken.Validator
}

// Middleware builds the terminal auth-enforcement middleware.
func (a RequireAuth) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				apperrors.WriteError(w, apperrors.New(apperrors.CodeUnauthenticated, "missing bearer token"))
				return
			}
			token := strings.TrimPrefix(auth, "Bearer ")

			if _, err := a.Validator.ValidateAccessToken(token); err != nil {
				apperrors.WriteError(w, err)
				return
			}

			if _, err := tenant.FromContext(r.Context()); err != nil {
				apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, "no tenant context bound to this request"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose bound tenant.Context does not hold one
// of the allowed roles. Must run after RequireAuth so a tenant.Context is
// guaranteed to be present.
func RequireRole(allowed ...tenant.OrgRole) Middleware {
	allowedSet := make(map[tenant.OrgRole]struct{}, len(allowed))
	for _, r := range allowed {
		allowedSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tc, err := tenant.FromContext(r.Context())
			if err != nil {
				apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, "no tenant context bound to this request"))
				return
			}
			if tc.IsSuperAdmin {
				next.ServeHTTP(w, r)
				return
			}
			if _, ok := allowedSet[tc.OrgRole]; !ok {
				apperrors.WriteError(w, apperrors.New(apperrors.CodeInsufficientRole, "role does not permit this operation"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
