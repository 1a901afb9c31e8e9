package nis2

import (
	"testing"
	"time"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

func newTestManager() (*Manager, time.Time) {
	detected := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewManager(NewMemoryStore())
	m.now = func() time.Time { return detected.Add(time.Hour) }
	return m, detected
}

func TestCreateNotificationComputesDeadlines(t *testing.T) {
	m, detected := newTestManager()
	n, err := m.CreateNotification(CreateNotificationParams{
		IncidentID:       "inc-1",
		EntityType:       EntityEssential,
		Sector:           SectorDigitalInfrastructure,
		OrganizationName: "Test GmbH",
		MemberState:      "DE",
		DetectionTime:    detected,
		PrimaryContact:   ContactPerson{Name: "Max Mustermann"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !n.EarlyWarningDeadline.Equal(detected.Add(24 * time.Hour)) {
		t.Errorf("early warning deadline = %v, want +24h", n.EarlyWarningDeadline)
	}
	if !n.NotificationDeadline.Equal(detected.Add(72 * time.Hour)) {
		t.Errorf("notification deadline = %v, want +72h", n.NotificationDeadline)
	}
	if !n.FinalReportDeadline.Equal(detected.Add(30 * 24 * time.Hour)) {
		t.Errorf("final report deadline = %v, want +30d", n.FinalReportDeadline)
	}
}

func TestSubmitEarlyWarningRequiresParent(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.SubmitEarlyWarning("missing", EarlyWarningParams{})
	appErr, ok := err.(*apperrors.Error)
	if !ok || appErr.Code != apperrors.CodeNotificationNotFound {
		t.Fatalf("expected CodeNotificationNotFound, got %v", err)
	}
}

func TestSubmitEarlyWarningIsIdempotent(t *testing.T) {
	m, detected := newTestManager()
	m.CreateNotification(CreateNotificationParams{IncidentID: "inc-2", DetectionTime: detected})

	first, err := m.SubmitEarlyWarning("inc-2", EarlyWarningParams{SuspectedCause: "phishing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := m.SubmitEarlyWarning("inc-2", EarlyWarningParams{SuspectedCause: "different cause"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.WarningID != second.WarningID {
		t.Errorf("expected idempotent warning ID, got %s then %s", first.WarningID, second.WarningID)
	}
	if second.SuspectedCause != "phishing" {
		t.Errorf("expected original cause to survive, got %s", second.SuspectedCause)
	}
}

func TestSubmitIncidentNotificationRecordsEarlyWarningPredecessor(t *testing.T) {
	m, detected := newTestManager()
	m.CreateNotification(CreateNotificationParams{IncidentID: "inc-3", DetectionTime: detected})
	ew, _ := m.SubmitEarlyWarning("inc-3", EarlyWarningParams{})

	in, err := m.SubmitIncidentNotification("inc-3", IncidentNotificationParams{
		Description: "ransomware incident",
		Severity:    SeveritySignificant,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.EarlyWarningID != ew.WarningID {
		t.Errorf("EarlyWarningID = %s, want %s", in.EarlyWarningID, ew.WarningID)
	}
	if in.ContainmentStatus != "ongoing" {
		t.Errorf("expected default containment status, got %s", in.ContainmentStatus)
	}
}

func TestSubmitIncidentNotificationWithoutEarlyWarning(t *testing.T) {
	m, detected := newTestManager()
	m.CreateNotification(CreateNotificationParams{IncidentID: "inc-4", DetectionTime: detected})

	in, err := m.SubmitIncidentNotification("inc-4", IncidentNotificationParams{Description: "ddos"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.EarlyWarningID != "" {
		t.Errorf("expected no predecessor, got %s", in.EarlyWarningID)
	}
}

func TestSubmitFinalReportRequiresParent(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.SubmitFinalReport("missing", FinalReportParams{})
	appErr, ok := err.(*apperrors.Error)
	if !ok || appErr.Code != apperrors.CodeNotificationNotFound {
		t.Fatalf("expected CodeNotificationNotFound, got %v", err)
	}
}

func TestGetNotificationJoinsChildren(t *testing.T) {
	m, detected := newTestManager()
	m.CreateNotification(CreateNotificationParams{IncidentID: "inc-5", DetectionTime: detected})
	m.SubmitEarlyWarning("inc-5", EarlyWarningParams{})
	m.SubmitIncidentNotification("inc-5", IncidentNotificationParams{})
	m.SubmitFinalReport("inc-5", FinalReportParams{})

	view, err := m.GetNotification("inc-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.EarlyWarning == nil || view.IncidentNotification == nil || view.FinalReport == nil {
		t.Fatalf("expected all three children joined, got %+v", view)
	}
}

func TestGetDeadlinesReportsOverdueUnsubmittedStage(t *testing.T) {
	detected := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager(NewMemoryStore())
	m.now = func() time.Time { return detected.Add(48 * time.Hour) } // past the 24h early-warning deadline
	m.CreateNotification(CreateNotificationParams{IncidentID: "inc-6", DetectionTime: detected})

	d, err := m.GetDeadlines("inc-6")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.EarlyWarning.Overdue {
		t.Error("expected early warning stage to be overdue")
	}
	if d.Notification.Overdue {
		t.Error("did not expect notification stage (72h) to be overdue yet")
	}
}

func TestGetDeadlinesStopsCountingOnceSubmitted(t *testing.T) {
	m, detected := newTestManager()
	m.CreateNotification(CreateNotificationParams{IncidentID: "inc-7", DetectionTime: detected})
	m.SubmitEarlyWarning("inc-7", EarlyWarningParams{})

	d, err := m.GetDeadlines("inc-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.EarlyWarning.Submitted || d.EarlyWarning.Overdue {
		t.Errorf("submitted stage should never read as overdue, got %+v", d.EarlyWarning)
	}
}

func TestDefaultEntityTypeForSectors(t *testing.T) {
	essential := []Sector{SectorEnergy, SectorTransport, SectorBanking, SectorHealth,
		SectorDrinkingWater, SectorDigitalInfrastructure, SectorPublicAdministration, SectorSpace}
	for _, s := range essential {
		if got := DefaultEntityType(s); got != EntityEssential {
			t.Errorf("DefaultEntityType(%s) = %s, want essential", s, got)
		}
	}

	important := []Sector{SectorPostal, SectorWasteManagement, SectorChemicals, SectorFood,
		SectorManufacturing, SectorDigitalProviders, SectorResearch}
	for _, s := range important {
		if got := DefaultEntityType(s); got != EntityImportant {
			t.Errorf("DefaultEntityType(%s) = %s, want important", s, got)
		}
	}
}

func TestCSIRTForKnownAndUnknownState(t *testing.T) {
	if csirt, ok := CSIRTFor("DE"); !ok || csirt != "CERT-Bund" {
		t.Errorf("CSIRTFor(DE) = %s, %v, want CERT-Bund, true", csirt, ok)
	}
	if _, ok := CSIRTFor("ZZ"); ok {
		t.Error("expected unknown member state to report false")
	}
}
