package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/ioc"
	"github.com/isora-platform/cyberops-core/internal/tenant"
)

type createIOCRequest struct {
	Type        ioc.Type `json:"type"`
	Value       string   `json:"value"`
	ThreatLevel ioc.ThreatLevel `json:"threat_level"`
	Confidence  float64  `json:"confidence"`
	Tags        []string `json:"tags"`
	Source      string   `json:"source"`
	Description string   `json:"description"`
}

// handleCreateIOC normalizes, validates and stores one indicator,
// merging into an existing record of the same fingerprint when one
// already exists for the tenant (spec C1's Merge).
func (s *Server) handleCreateIOC(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	var req createIOCRequest
	if perr := decodeJSON(r, &req); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}

	t := req.Type
	if t == "" || !t.Valid() {
		t = ioc.DetectType(req.Value)
	}
	if verr := ioc.Validate(req.Value, t); verr != nil {
		apperrors.WriteError(w, verr)
		return
	}

	normalized := ioc.Canonicalize(req.Value, t)
	now := time.Now()

	candidate := ioc.IOC{
		ID:              uuid.New(),
		TenantID:        tc.TenantID,
		Type:            t,
		Value:           req.Value,
		NormalizedValue: normalized,
		Status:          ioc.StatusActive,
		ThreatLevel:     req.ThreatLevel,
		Confidence:      req.Confidence,
		Tags:            ioc.SanitizeTags(req.Tags, 64),
		Source:          req.Source,
		Description:     req.Description,
		FirstSeen:       now,
		LastSeen:        now,
		SeenCount:       1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if candidate.ThreatLevel == "" || !candidate.ThreatLevel.Valid() {
		candidate.ThreatLevel = ioc.ThreatUnknown
	}
	candidate.RiskScore = ioc.RiskScore(candidate)

	existing, found, lerr := s.Repo.IOCs.Lookup(tc.TenantID, t, normalized)
	if lerr != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "ioc lookup failed"))
		return
	}

	if found {
		merged := ioc.Merge(existing, candidate)
		if uerr := s.Repo.IOCs.Update(merged); uerr != nil {
			apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "ioc update failed"))
			return
		}
		writeJSON(w, http.StatusOK, merged)
		return
	}

	if cerr := s.Repo.IOCs.Create(candidate); cerr != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "ioc create failed"))
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

type bulkCreateIOCRequest struct {
	IOCs []createIOCRequest `json:"iocs"`
}

// handleBulkCreateIOC normalizes and deduplicates a batch before storing
// each surviving record, the bulk-submission path a CI pipeline or feed
// webhook uses instead of one call per indicator.
func (s *Server) handleBulkCreateIOC(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	var req bulkCreateIOCRequest
	if perr := decodeJSON(r, &req); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}

	now := time.Now()
	candidates := make([]ioc.IOC, 0, len(req.IOCs))
	for _, item := range req.IOCs {
		t := item.Type
		if t == "" || !t.Valid() {
			t = ioc.DetectType(item.Value)
		}
		if ioc.Validate(item.Value, t) != nil {
			continue
		}
		threat := item.ThreatLevel
		if threat == "" || !threat.Valid() {
			threat = ioc.ThreatUnknown
		}
		candidates = append(candidates, ioc.IOC{
			ID:              uuid.New(),
			TenantID:        tc.TenantID,
			Type:            t,
			Value:           item.Value,
			NormalizedValue: ioc.Canonicalize(item.Value, t),
			Status:          ioc.StatusActive,
			ThreatLevel:     threat,
			Confidence:      item.Confidence,
			Tags:            ioc.SanitizeTags(item.Tags, 64),
			Source:          item.Source,
			Description:     item.Description,
			FirstSeen:       now,
			LastSeen:        now,
			SeenCount:       1,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	deduped := ioc.Deduplicate(candidates)
	stored := make([]ioc.IOC, 0, len(deduped))
	for _, candidate := range deduped {
		candidate.RiskScore = ioc.RiskScore(candidate)
		if existing, found, _ := s.Repo.IOCs.Lookup(tc.TenantID, candidate.Type, candidate.NormalizedValue); found {
			merged := ioc.Merge(existing, candidate)
			_ = s.Repo.IOCs.Update(merged)
			stored = append(stored, merged)
			continue
		}
		_ = s.Repo.IOCs.Create(candidate)
		stored = append(stored, candidate)
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"submitted": len(req.IOCs),
		"accepted":  len(stored),
		"iocs":      stored,
	})
}

// handleListIOCs returns every IOC scoped to the caller's tenant,
// optionally narrowed by min_confidence/min_threat_level query params
// via ioc.Filter.
func (s *Server) handleListIOCs(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	all := s.Repo.IOCs.ListByTenant(tc.TenantID)

	opts := ioc.FilterOptions{}
	if c, err := strconv.ParseFloat(r.URL.Query().Get("min_confidence"), 64); err == nil {
		opts.MinConfidence = c
	}
	if lvl :=ioc.ThreatLevel(r.URL.Query().Get("min_threat_level")); lvl.Valid() {
		opts.MinThreatLevel = lvl
	}
	writeJSON(w, http.StatusOK, ioc.Filter(all, opts))
}

func (s *Server) handleGetIOC(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	id, perr := uuid.Parse(chi.URLParam(r, "iocID"))
	if perr != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeSchemaInvalid, "invalid ioc id"))
		return
	}

	i, found := s.Repo.IOCs.Get(tc.TenantID, id.String())
	if !found {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeIOCNotFound, "ioc not found"))
		return
	}
	writeJSON(w, http.StatusOK, i)
}

func (s *Server) handleDeleteIOC(w http.ResponseWriter, r *http.Request) {
	tc, err := tenant.FromContext(r.Context())
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeTenantContextMissing, err.Error()))
		return
	}

	id := chi.URLParam(r, "iocID")
	i, found := s.Repo.IOCs.Get(tc.TenantID, id)
	if !found {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeIOCNotFound, "ioc not found"))
		return
	}
	s.Repo.IOCs.Delete(tc.TenantID, i.Type, i.NormalizedValue)
	w.WriteHeader(http.StatusNoContent)
}
