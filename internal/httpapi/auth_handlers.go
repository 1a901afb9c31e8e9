package httpapi

import (
	"net/http"
	"time"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/repository"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

type loginRequest struct {
	APIKey string `json:"api_key"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	TenantID    string `json:"tenant_id"`
}

// handleLogin exchanges a tenant's long-lived API key for a short-lived
// access token, the entry point every other route's bearer-token auth
// depends on. Service-account automation clients use
// internal/gateway.APIKeyManager's X-API-Key path instead and never hit
// this endpoint.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, err)
		return
	}
	if req.APIKey == "" {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeSchemaInvalid, "api_key is required"))
		return
	}

	t, err := s.Repo.Tenants.GetByAPIKey(req.APIKey)
	if err != nil {
		if err == repository.ErrTenantNotFound {
			apperrors.WriteError(w, apperrors.New(apperrors.CodeUnauthenticated, "unknown API key"))
			return
		}
		apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "tenant lookup failed"))
		return
	}

	const ttl = time.Hour
	token, err := s.Validator.Issue(t.ID, t.ID, string(tenant.RoleMember), false, []string{t.ID}, ttl)
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to issue access token"))
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(ttl.Seconds()),
		TenantID:    t.ID,
	})
}
