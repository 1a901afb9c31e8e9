package httpapi

import (
	"net/http"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/enrichment"
	"github.com/isora-platform/cyberops-core/internal/ioc"
)

type enrichLookupRequest struct {
	Value   string           `json:"value"`
	Type    ioc.Type         `json:"type"`
	Sources []enrichment.Source `json:"sources"`
}

// handleEnrichLookup queries the configured threat-intel sources for a
// single indicator and returns the aggregated verdict (spec C3).
func (s *Server) handleEnrichLookup(w http.ResponseWriter, r *http.Request) {
	var req enrichLookupRequest
	if err := decodeJSON(r, &req); err != nil {
		apperrors.WriteError(w, err)
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

	result, err := s.Enricher.Enrich(r.Context(), req.Value, t, req.Sources)
	if err != nil {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, "enrichment failed").
			WithDetail(map[string]any{"reason": err.Error()}))
		return
	}
	writeJSON(w, http.StatusOK, result)
}
