package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/framework"
)

// handleListFrameworks returns the frameworks that take part in
// cross-framework mapping (framework.UnifiedFrameworks, spec C4); ISO
// 27035, NIST CSF 2.0 and NIST 800-61 have catalog controls but are not
// listed here.
func (s *Server) handleListFrameworks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, framework.UnifiedFrameworks())
}

func (s *Server) handleListControls(w http.ResponseWriter, r *http.Request) {
	fw := framework.Framework(chi.URLParam(r, "framework"))
	if !fw.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownFramework, "unknown framework"))
		return
	}
	phase := framework.Phase(chi.URLParam(r, "phase"))
	if !phase.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownPhase, "unknown phase"))
		return
	}
	writeJSON(w, http.StatusOK, framework.ControlsForPhase(fw, phase))
}

// handleEquivalentControls reports which controls in every other
// cross-mapped framework correspond to one framework's control ID.
func (s *Server) handleEquivalentControls(w http.ResponseWriter, r *http.Request) {
	fw := framework.Framework(chi.URLParam(r, "framework"))
	if !fw.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeUnknownFramework, "unknown framework"))
		return
	}
	controlID := chi.URLParam(r, "controlID")
	if _, ok := framework.ControlDetails(fw, controlID); !ok {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeControlNotFound, "control not found"))
		return
	}
	writeJSON(w, http.StatusOK, framework.EquivalentControls(fw, controlID))
}
