package gateway

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/authtoken"
	"github.com/isora-platform/cyberops-core/internal/ratelimit"
)

// PlanLookup resolves a tenant's current plan when it isn't cached,
// generalizing original_source/.../rate_limit_middleware.py's
// _get_tenant_plan database fallback into an injected collaborator (this
// package never talks to persistence directly).
type PlanLookup func(ctx context.Context, tenantID string) (ratelimit.Plan, error)

// RateLimitGate is the second pipeline stage (spec §4.9 step 2): extracts
// the client IP, decodes the token to learn tenant/plan, consults the
// sliding-window limiter, and attaches X-RateLimit-*/Retry-After headers
// to every response. Grounded on
// original_source/.../rate_limit_middleware.py's RateLimitMiddleware.
type RateLimitGate struct {
	Limiter    *ratelimit.Limiter
	Validator  *authtoken.Validator
	PlanCache  *ratelimit.PlanCache
	PlanLookup PlanLookup
	Logger     *zap.Logger
	Enabled    bool

	// EnabledFunc, when set, overrides Enabled on every request — letting
	// internal/config's fsnotify watcher hot-toggle admission without
	// rebuilding the middleware chain.
	EnabledFunc func() bool
}

func (g *RateLimitGate) enabled() bool {
	if g.EnabledFunc != nil {
		return g.EnabledFunc()
	}
	return g.Enabled
}

// Middleware builds the http middleware for this gate.
func (g *RateLimitGate) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.enabled() || IsExcluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := ClientIP(r)
			tenantID, plan, isSuperAdmin := g.extractAuthInfo(r)

			result := ratelimit.CheckFailOpen(g.Logger, func() (ratelimit.Result, error) {
				return g.Limiter.CheckRateLimit(r.Context(), ratelimit.CheckParams{
					TenantID:     tenantID,
					IP:           ip,
					Path:         r.URL.Path,
					Plan:         plan,
					IsSuperAdmin: isSuperAdmin,
				})
			})

			if !result.Allowed {
				g.Logger.Warn("rate limit exceeded",
					zap.String("ip", ip), zap.String("tenant_id", tenantID), zap.String("path", r.URL.Path))
				ratelimit.WriteRejected(w, result)
				return
			}

			ratelimit.SetHeaders(w, result)
			next.ServeHTTP(w, r)
		})
	}
}

// extractAuthInfo decodes the bearer token (if present) to learn the
// tenant and plan for admission purposes only; an invalid or missing
// token is treated as an unauthenticated request here, never a 401 — that
// check is deferred to protected handlers (spec §4.9 step 4).
func (g *RateLimitGate) extractAuthInfo(r *http.Request) (tenantID string, plan ratelimit.Plan, isSuperAdmin bool) {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", "", false
	}
	token := strings.TrimPrefix(auth, "Bearer ")

	claims, err := g.Validator.Validate(token)
	if err != nil {
		return "", "", false
	}

	tenantID = claims.TenantID
	isSuperAdmin = claims.IsSuperAdmin

	if cached, ok := g.PlanCache.Get(tenantID); ok {
		return tenantID, cached, isSuperAdmin
	}
	if g.PlanLookup != nil {
		if resolved, err := g.PlanLookup(r.Context(), tenantID); err == nil {
			g.PlanCache.Set(tenantID, resolved)
			return tenantID, resolved, isSuperAdmin
		}
	}
	return tenantID, ratelimit.PlanFree, isSuperAdmin
}
