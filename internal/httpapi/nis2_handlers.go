package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/nis2"
)

type createNotificationRequest struct {
	IncidentID       string             `json:"incident_id"`
	EntityType       nis2.EntityType    `json:"entity_type"`
	Sector           nis2.Sector        `json:"sector"`
	OrganizationName string             `json:"organization_name"`
	MemberState      string             `json:"member_state"`
	DetectionTime    time.Time          `json:"detection_time"`
	PrimaryContact   nis2.ContactPerson `json:"primary_contact"`
}

// handleCreateNIS2Notification opens the parent notification for a newly
// detected incident and computes its three statutory deadlines (spec C6).
func (s *Server) handleCreateNIS2Notification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if perr := decodeJSON(r, &req); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	if !req.Sector.Valid() {
		apperrors.WriteError(w, apperrors.New(apperrors.CodeSchemaInvalid, "unknown sector"))
		return
	}

	n, err := s.NIS2.CreateNotification(nis2.CreateNotificationParams{
		IncidentID:       req.IncidentID,
		EntityType:       req.EntityType,
		Sector:           req.Sector,
		OrganizationName: req.OrganizationName,
		MemberState:      req.MemberState,
		DetectionTime:    req.DetectionTime,
		PrimaryContact:   req.PrimaryContact,
	})
	if err != nil {
		writeNIS2Error(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleGetNIS2Notification(w http.ResponseWriter, r *http.Request) {
	view, err := s.NIS2.GetNotification(chi.URLParam(r, "incidentID"))
	if err != nil {
		writeNIS2Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetNIS2Deadlines(w http.ResponseWriter, r *http.Request) {
	deadlines, err := s.NIS2.GetDeadlines(chi.URLParam(r, "incidentID"))
	if err != nil {
		writeNIS2Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deadlines)
}

func (s *Server) handleSubmitEarlyWarning(w http.ResponseWriter, r *http.Request) {
	var p nis2.EarlyWarningParams
	if perr := decodeJSON(r, &p); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	ew, err := s.NIS2.SubmitEarlyWarning(chi.URLParam(r, "incidentID"), p)
	if err != nil {
		writeNIS2Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ew)
}

func (s *Server) handleSubmitIncidentNotification(w http.ResponseWriter, r *http.Request) {
	var p nis2.IncidentNotificationParams
	if perr := decodeJSON(r, &p); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	in, err := s.NIS2.SubmitIncidentNotification(chi.URLParam(r, "incidentID"), p)
	if err != nil {
		writeNIS2Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

func (s *Server) handleSubmitFinalReport(w http.ResponseWriter, r *http.Request) {
	var p nis2.FinalReportParams
	if perr := decodeJSON(r, &p); perr != nil {
		apperrors.WriteError(w, perr)
		return
	}
	fr, err := s.NIS2.SubmitFinalReport(chi.URLParam(r, "incidentID"), p)
	if err != nil {
		writeNIS2Error(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fr)
}

// writeNIS2Error unwraps a Manager error, which is always an
// *apperrors.Error per internal/nis2's own contract, falling back to an
// internal error for anything unexpected.
func writeNIS2Error(w http.ResponseWriter, err error) {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		apperrors.WriteError(w, appErr)
		return
	}
	apperrors.WriteError(w, apperrors.New(apperrors.CodeInternal, err.Error()))
}
