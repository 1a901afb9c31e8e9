package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/ctifeed"
	"github.com/isora-platform/cyberops-core/internal/ioc"
	"github.com/isora-platform/cyberops-core/internal/scheduler"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

type createFeedRequest struct {
	Name          string       `json:"name"`
	Type          ctifeed.Type `json:"type"`
	BaseURL       string       `json:"base_url"`
	APIKey        string       `json:"api_key"`
	MinConfidence float64      `json:"min_confidence"`
	AllowedTypes  []ioc.Type   `json:"allowed_types"`
	Enabled       bool         `json:"enabled"`
}

// handleCreateFeed registers a tenant's CTI feed subscription (spec C2)
// for the background scheduler (spec C10) to pick up on its next pass.
func (s *Server) handleCreateFeed(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	var req createFeedRequest
	if perr := decodeJSON(r, &req); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	if !req.Type.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeFeedConfigError, "unsupported feed type"))
		return
	}

	f := scheduler.Feed{
		FeedID:   uuid.NewString(),
		TenantID: tc.TenantID,
		Name:     req.Name,
		Config: ctifeed.Config{
			Type:    req.Type,
			BaseURL: req.BaseURL,
			APIKey:  req.APIKey,
		},
		Enabled:       req.Enabled,
		MinConfidence: req.MinConfidence,
		AllowedTypes:  req.AllowedTypes,
	}
	if err := s.Repo.Feeds.Save(f); err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to save feed"))
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleListFeeds(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, s.Repo.Feeds.ListByTenant(tc.TenantID))
}

// handleSyncAllFeeds triggers an out-of-band sync of every enabled feed,
// the same operation the scheduler's ticker runs periodically, exposed so
// an operator can force a sync without waiting for the next tick.
func (s *Server) handleSyncAllFeeds(w http.ResponseWriter, r *http.Request) {
	result := s.Scheduler.SyncAllFeeds(r.Context())
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSyncFeed(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	feedID := chi.URLParam(r, "feedID")
	f, found, ferr := s.Repo.Feeds.Get(feedID)
	if ferr != nil || !found || f.TenantID != tc.TenantID {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeFeedConfigError, "feed not found"))
		return
	}

	result := s.Scheduler.SyncFeed(r.Context(), f)
	writeJSON(w, http.StatusOK, result)
}
