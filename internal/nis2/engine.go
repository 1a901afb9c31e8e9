package nis2

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

// Manager is the notification engine (spec C6): it owns ID generation and
// the create/submit/query operations, delegating all persistence to a
// Store.
type Manager struct {
	store Store
	now   func() time.Time
}

// NewManager builds a Manager backed by store. A nil store defaults to a
// fresh MemoryStore, matching the original's lazily-initialized singleton.
func NewManager(store Store) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Manager{store: store, now: time.Now}
}

func shortID(prefix string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:12]
}

// CreateNotificationParams collects the fields needed to open a
// notification for an incident.
type CreateNotificationParams struct {
	IncidentID       string
	EntityType       EntityType
	Sector           Sector
	OrganizationName string
	MemberState      string
	DetectionTime    time.Time
	PrimaryContact   ContactPerson
	TechnicalContact *ContactPerson
}

// CreateNotification opens the parent NIS2 notification for incidentID and
// computes its three deadlines from DetectionTime once, up front.
func (m *Manager) CreateNotification(p CreateNotificationParams) (*Notification, error) {
	ew, notif, final := computeDeadlines(p.DetectionTime)
	n := Notification{
		NotificationID:       shortID("NIS2"),
		IncidentID:           p.IncidentID,
		EntityType:           p.EntityType,
		Sector:               p.Sector,
		OrganizationName:     p.OrganizationName,
		MemberState:          p.MemberState,
		DetectionTime:        p.DetectionTime,
		PrimaryContact:       p.PrimaryContact,
		TechnicalContact:     p.TechnicalContact,
		EarlyWarningDeadline: ew,
		NotificationDeadline: notif,
		FinalReportDeadline:  final,
		CreatedAt:            m.now(),
	}
	if err := m.store.SaveNotification(n); err != nil {
		return nil, err
	}
	return &n, nil
}

func notificationNotFound(incidentID string) *apperrors.Error {
	return apperrors.New(apperrors.CodeNotificationNotFound, "no NIS2 notification found for this incident").
		WithDetail(map[string]any{"incident_id": incidentID})
}

// EarlyWarningParams collects the fields SubmitEarlyWarning accepts.
type EarlyWarningParams struct {
	SuspectedCause       string
	CrossBorderSuspected bool
	InitialAssessment    string
}

// SubmitEarlyWarning records the early warning. Idempotent: a second call
// for the same incident returns the original submission unchanged rather
// than creating a duplicate (spec §4.6: "idempotent on warning_id").
func (m *Manager) SubmitEarlyWarning(incidentID string, p EarlyWarningParams) (*EarlyWarning, error) {
	n, ok, err := m.store.GetNotification(incidentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notificationNotFound(incidentID)
	}

	if existing, ok, err := m.store.GetEarlyWarning(incidentID); err != nil {
		return nil, err
	} else if ok {
		return &existing, nil
	}

	w := EarlyWarning{
		WarningID:            shortID("EW"),
		NotificationID:       n.NotificationID,
		IncidentID:           incidentID,
		SubmittedAt:          m.now(),
		Deadline:             n.EarlyWarningDeadline,
		SuspectedCause:       p.SuspectedCause,
		CrossBorderSuspected: p.CrossBorderSuspected,
		InitialAssessment:    p.InitialAssessment,
		Status:               StatusSubmitted,
	}
	if err := m.store.SaveEarlyWarning(w); err != nil {
		return nil, err
	}
	return &w, nil
}

// IncidentNotificationParams collects the fields SubmitIncidentNotification
// accepts.
type IncidentNotificationParams struct {
	Description          string
	Severity             Severity
	IncidentType         string
	Impact               IncidentImpact
	MitigationMeasures   []string
	ContainmentStatus    string
	RootCausePreliminary string
}

// SubmitIncidentNotification records the mandatory second-stage report. The
// early warning is optional: if one was filed, its ID is recorded as this
// submission's predecessor.
func (m *Manager) SubmitIncidentNotification(incidentID string, p IncidentNotificationParams) (*IncidentNotification, error) {
	n, ok, err := m.store.GetNotification(incidentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notificationNotFound(incidentID)
	}

	var earlyWarningID string
	if ew, ok, err := m.store.GetEarlyWarning(incidentID); err != nil {
		return nil, err
	} else if ok {
		earlyWarningID = ew.WarningID
	}

	containment := p.ContainmentStatus
	if containment == "" {
		containment = "ongoing"
	}

	in := IncidentNotification{
		NotificationID:       shortID("IN"),
		ParentNotificationID: n.NotificationID,
		IncidentID:           incidentID,
		EarlyWarningID:       earlyWarningID,
		SubmittedAt:          m.now(),
		Deadline:             n.NotificationDeadline,
		IncidentDescription:  p.Description,
		Severity:             p.Severity,
		IncidentType:         p.IncidentType,
		RootCausePreliminary: p.RootCausePreliminary,
		Impact:               p.Impact,
		MitigationMeasures:   p.MitigationMeasures,
		ContainmentStatus:    containment,
		Status:               StatusSubmitted,
	}
	if err := m.store.SaveIncidentNotification(in); err != nil {
		return nil, err
	}
	return &in, nil
}

// FinalReportParams collects the fields SubmitFinalReport accepts.
type FinalReportParams struct {
	Description           string
	RootCauseAnalysis     string
	ThreatType            string
	AttackTechniques      []string
	TotalImpactAssessment string
	ServicesAffected      []string
	LessonsLearned        string
	PreventiveMeasures    []string
	SecurityImprovements  []string
	RecoveryTimeHours     *float64
	OtherCSIRTsNotified   []string
	ENISANotified         bool
}

// SubmitFinalReport records the closing third-stage report.
func (m *Manager) SubmitFinalReport(incidentID string, p FinalReportParams) (*FinalReport, error) {
	n, ok, err := m.store.GetNotification(incidentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notificationNotFound(incidentID)
	}

	var incidentNotificationID string
	if in, ok, err := m.store.GetIncidentNotification(incidentID); err != nil {
		return nil, err
	} else if ok {
		incidentNotificationID = in.NotificationID
	}

	r := FinalReport{
		ReportID:               shortID("FR"),
		NotificationID:         n.NotificationID,
		IncidentID:             incidentID,
		IncidentNotificationID: incidentNotificationID,
		SubmittedAt:            m.now(),
		Deadline:               n.FinalReportDeadline,
		IncidentDescription:    p.Description,
		RootCauseAnalysis:      p.RootCauseAnalysis,
		ThreatType:             p.ThreatType,
		AttackTechniques:       p.AttackTechniques,
		TotalImpactAssessment:  p.TotalImpactAssessment,
		ServicesAffected:       p.ServicesAffected,
		RecoveryTimeHours:      p.RecoveryTimeHours,
		LessonsLearned:         p.LessonsLearned,
		PreventiveMeasures:     p.PreventiveMeasures,
		SecurityImprovements:   p.SecurityImprovements,
		OtherCSIRTsNotified:    p.OtherCSIRTsNotified,
		ENISANotified:          p.ENISANotified,
		Status:                 StatusSubmitted,
	}
	if err := m.store.SaveFinalReport(r); err != nil {
		return nil, err
	}
	return &r, nil
}

// NotificationView is the joined view GetNotification returns: the parent
// record plus whichever of its three children have been submitted.
type NotificationView struct {
	Notification          Notification
	EarlyWarning          *EarlyWarning
	IncidentNotification  *IncidentNotification
	FinalReport           *FinalReport
}

// GetNotification returns the notification joined with its submitted
// children, or CodeNotificationNotFound if no notification was ever
// created for incidentID.
func (m *Manager) GetNotification(incidentID string) (*NotificationView, error) {
	n, ok, err := m.store.GetNotification(incidentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notificationNotFound(incidentID)
	}

	view := &NotificationView{Notification: n}
	if ew, ok, err := m.store.GetEarlyWarning(incidentID); err != nil {
		return nil, err
	} else if ok {
		view.EarlyWarning = &ew
	}
	if in, ok, err := m.store.GetIncidentNotification(incidentID); err != nil {
		return nil, err
	} else if ok {
		view.IncidentNotification = &in
	}
	if fr, ok, err := m.store.GetFinalReport(incidentID); err != nil {
		return nil, err
	} else if ok {
		view.FinalReport = &fr
	}
	return view, nil
}

// GetDeadlines reports per-stage deadline status as of now, independent of
// whatever a prior submission did — the deadlines themselves never move.
func (m *Manager) GetDeadlines(incidentID string) (*Deadlines, error) {
	n, ok, err := m.store.GetNotification(incidentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notificationNotFound(incidentID)
	}

	now := m.now()
	_, hasEW, err := m.store.GetEarlyWarning(incidentID)
	if err != nil {
		return nil, err
	}
	_, hasIN, err := m.store.GetIncidentNotification(incidentID)
	if err != nil {
		return nil, err
	}
	_, hasFR, err := m.store.GetFinalReport(incidentID)
	if err != nil {
		return nil, err
	}

	return &Deadlines{
		EarlyWarning: stageStatus(n.EarlyWarningDeadline, hasEW, now, false),
		Notification: stageStatus(n.NotificationDeadline, hasIN, now, false),
		FinalReport:  stageStatus(n.FinalReportDeadline, hasFR, now, true),
	}, nil
}

func stageStatus(deadline time.Time, submitted bool, now time.Time, isFinal bool) DeadlineStatus {
	status := DeadlineStatus{
		Deadline:  deadline,
		Submitted: submitted,
		Overdue:   !submitted && now.After(deadline),
	}
	if !submitted {
		remaining := deadline.Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		if isFinal {
			status.RemainingDays = remaining.Hours() / 24
		} else {
			status.RemainingHours = remaining.Hours()
		}
	}
	return status
}
