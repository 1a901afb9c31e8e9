// Package httpapi assembles the C9 request pipeline (internal/gateway)
// and the domain packages (C1-C6, C10) into the HTTP surface cmd/isora
// serves: one chi router wired the way the teacher's internal/api.Server
// wired its own S3 handlers onto its middleware stack, generalized from
// storage operations to IOC/CTI-feed/enrichment/framework/compliance/NIS2
// operations.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/authtoken"
	"github.com/isora-platform/cyberops-core/internal/compliance"
	"github.com/isora-platform/cyberops-core/internal/config"
	"github.com/isora-platform/cyberops-core/internal/enrichment"
	"github.com/isora-platform/cyberops-core/internal/gateway"
	gwmetrics "github.com/isora-platform/cyberops-core/internal/gateway/metrics"
	"github.com/isora-platform/cyberops-core/internal/nis2"
	"github.com/isora-platform/cyberops-core/internal/ratelimit"
	"github.com/isora-platform/cyberops-core/internal/repository"
	"github.com/isora-platform/cyberops-core/internal/scheduler"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

// Server holds every collaborator a handler needs. It carries no state of
// its own beyond these references — all mutable state lives in Repo.
type Server struct {
	Repo       *repository.Repository
	Validator  *authtoken.Validator
	Limiter    *ratelimit.Limiter
	PlanCache  *ratelimit.PlanCache
	Enricher   *enrichment.Enricher
	Scheduler  *scheduler.Scheduler
	NIS2       *nis2.Manager
	Evaluator  *compliance.Evaluator
	APIKeys    *gateway.APIKeyManager
	Live       *config.Live
	Collector  *gwmetrics.Collector
	Logger     *zap.Logger
}

// planLookup resolves a tenant's plan from the repository for
// gateway.RateLimitGate's cache-miss path.
func (s *Server) planLookup(ctx context.Context, tenantID string) (ratelimit.Plan, error) {
	t, err := s.Repo.Tenants.GetByID(tenantID)
	if err != nil {
		return ratelimit.PlanFree, err
	}
	return t.Plan, nil
}

// NewRouter builds the full middleware pipeline and route table.
func NewRouter(s *Server) *chi.Mux {
	r := chi.NewRouter()

	corsMw := gateway.CORSDynamic(func() gateway.CORSConfig {
		return gateway.CORSConfig{AllowedOrigins: s.Live.CORS().AllowedOrigins}
	})
	rateGate := &gateway.RateLimitGate{
		Limiter:     s.Limiter,
		Validator:   s.Validator,
		PlanCache:   s.PlanCache,
		PlanLookup:  s.planLookup,
		Logger:      s.Logger,
		EnabledFunc: s.Live.RateLimitEnabled,
	}
	tenantBinder := gateway.TenantBinder{}
	requireAuth := gateway.RequireAuth{Validator: s.Validator}

	r.Use(gwmetrics.Middleware(s.Collector))
	r.Use(corsMw)
	r.Use(gwmetrics.RateLimitMiddleware(s.Collector)(rateGate.Middleware()))
	r.Use(tenantBinder.Middleware())

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireAuth.Middleware())

		r.Route("/api/v1/iocs", func(r chi.Router) {
			r.Post("/", s.handleCreateIOC)
			r.With(gateway.RouteValidator("POST /api/v1/iocs/bulk")).Post("/bulk", s.handleBulkCreateIOC)
			r.With(gateway.RouteValidator("GET /api/v1/iocs")).Get("/", s.handleListIOCs)
			r.Get("/{iocID}", s.handleGetIOC)
			r.Delete("/{iocID}", s.handleDeleteIOC)
		})

		r.Route("/api/v1/enrichment", func(r chi.Router) {
			r.Post("/lookup", s.handleEnrichLookup)
		})

		r.Route("/api/v1/feeds", func(r chi.Router) {
			r.Get("/", s.handleListFeeds)
			r.Post("/", s.handleCreateFeed)
			r.Post("/sync", s.handleSyncAllFeeds)
			r.Post("/{feedID}/sync", s.handleSyncFeed)
		})

		r.Route("/api/v1/frameworks", func(r chi.Router) {
			r.Get("/", s.handleListFrameworks)
			r.Get("/{framework}/phases/{phase}/controls", s.handleListControls)
			r.Get("/{framework}/controls/{controlID}/equivalents", s.handleEquivalentControls)
		})

		r.Route("/api/v1/compliance", func(r chi.Router) {
			r.Post("/evaluate", s.handleEvaluateCompliance)
			r.Post("/coverage", s.handleComplianceCoverage)
			r.Get("/history", s.handleComplianceHistory)
		})

		r.Route("/api/v1/nis2/incidents", func(r chi.Router) {
			r.Post("/", s.handleCreateNIS2Notification)
			r.Get("/{incidentID}", s.handleGetNIS2Notification)
			r.Get("/{incidentID}/deadlines", s.handleGetNIS2Deadlines)
			r.Post("/{incidentID}/early-warning", s.handleSubmitEarlyWarning)
			r.Post("/{incidentID}/notification", s.handleSubmitIncidentNotification)
			r.Post("/{incidentID}/final-report", s.handleSubmitFinalReport)
		})
	})

	// Automation clients (feed-adapter webhooks, CI pipelines) authenticate
	// with a long-lived service-account key instead of a user's JWT
	// (spec §4's password-hashing entry); bindServiceAccountTenant folds
	// that identity into the same tenant.Context every handler reads.
	r.Group(func(r chi.Router) {
		r.Use(s.APIKeys.Middleware)
		r.Use(bindServiceAccountTenant)

		r.Post("/api/v1/automation/iocs/bulk", s.handleBulkCreateIOC)
		r.Post("/api/v1/automation/feeds/sync", s.handleSyncAllFeeds)
	})

	return r
}

// bindServiceAccountTenant adapts gateway.APIKeyManager's
// ContextKeyTenant string into the tenant.Context every handler expects,
// so automation routes and user-facing routes share one handler body.
func bindServiceAccountTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, _ := r.Context().Value(gateway.ContextKeyTenant).(string)
		tc := &tenant.Context{TenantID: tenantID, OrgRole: tenant.RoleMember}
		ctx := tenant.Bind(r.Context(), tc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
