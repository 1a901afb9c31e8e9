// Package nis2 implements the NIS2 Directive notification engine (spec C6):
// the three-stage early-warning/notification/final-report submission flow
// and the pure deadline arithmetic that drives it, independent of
// submission state.
//
// Grounded on
// original_source/apps/api/src/integrations/nis2_directive.py's
// NIS2DirectiveManager, with the sector/entity-type closed sets and the
// EU_MEMBER_STATES table sourced from
// original_source/apps/api/tests/integrations/test_nis2.py (the models
// module it imports from was not part of the retrieval pack).
package nis2

import "time"

// EntityType classifies an organization's obligations under the directive.
type EntityType string

const (
	EntityEssential EntityType = "essential"
	EntityImportant EntityType = "important"
)

// Sector is the closed set of NIS2-regulated sectors.
type Sector string

const (
	SectorEnergy                Sector = "energy"
	SectorTransport             Sector = "transport"
	SectorBanking               Sector = "banking"
	SectorHealth                Sector = "health"
	SectorDrinkingWater         Sector = "drinking_water"
	SectorDigitalInfrastructure Sector = "digital_infrastructure"
	SectorPublicAdministration  Sector = "public_administration"
	SectorSpace                 Sector = "space"
	SectorPostal                Sector = "postal"
	SectorWasteManagement       Sector = "waste_management"
	SectorChemicals             Sector = "chemicals"
	SectorFood                  Sector = "food"
	SectorManufacturing         Sector = "manufacturing"
	SectorDigitalProviders      Sector = "digital_providers"
	SectorResearch              Sector = "research"
)

// sectorEntityType is the default EntityType per sector (spec §4.4's
// per-sector default, duplicated here so the notification engine doesn't
// need a framework-catalog round trip just to classify an incident).
var sectorEntityType = map[Sector]EntityType{
	SectorEnergy:                EntityEssential,
	SectorTransport:             EntityEssential,
	SectorBanking:               EntityEssential,
	SectorHealth:                EntityEssential,
	SectorDrinkingWater:         EntityEssential,
	SectorDigitalInfrastructure: EntityEssential,
	SectorPublicAdministration:  EntityEssential,
	SectorSpace:                 EntityEssential,
	SectorPostal:                EntityImportant,
	SectorWasteManagement:       EntityImportant,
	SectorChemicals:             EntityImportant,
	SectorFood:                  EntityImportant,
	SectorManufacturing:         EntityImportant,
	SectorDigitalProviders:      EntityImportant,
	SectorResearch:              EntityImportant,
}

func (s Sector) Valid() bool {
	_, ok := sectorEntityType[s]
	return ok
}

// DefaultEntityType returns the sector's default classification, falling
// back to Important for any sector outside the closed set (mirroring the
// original's get_entity_type_for_sector default).
func DefaultEntityType(s Sector) EntityType {
	if et, ok := sectorEntityType[s]; ok {
		return et
	}
	return EntityImportant
}

// MemberState carries a member state's display name and national CSIRT.
type MemberState struct {
	Name  string
	CSIRT string
}

// EUMemberStates is the closed ISO-2 list of EU member states this
// platform can notify for, with each national CSIRT.
var EUMemberStates = map[string]MemberState{
	"AT": {Name: "Austria", CSIRT: "CERT.at"},
	"BE": {Name: "Belgium", CSIRT: "CERT.be"},
	"BG": {Name: "Bulgaria", CSIRT: "CERT Bulgaria"},
	"HR": {Name: "Croatia", CSIRT: "CERT.hr"},
	"CY": {Name: "Cyprus", CSIRT: "CSIRT-CY"},
	"CZ": {Name: "Czechia", CSIRT: "GovCERT.CZ"},
	"DK": {Name: "Denmark", CSIRT: "CFCS"},
	"EE": {Name: "Estonia", CSIRT: "CERT-EE"},
	"FI": {Name: "Finland", CSIRT: "NCSC-FI"},
	"FR": {Name: "France", CSIRT: "CERT-FR"},
	"DE": {Name: "Germany", CSIRT: "CERT-Bund"},
	"GR": {Name: "Greece", CSIRT: "CERT-EL"},
	"HU": {Name: "Hungary", CSIRT: "NKI"},
	"IE": {Name: "Ireland", CSIRT: "NCSC-IE"},
	"IT": {Name: "Italy", CSIRT: "CSIRT Italia"},
	"LV": {Name: "Latvia", CSIRT: "CERT.LV"},
	"LT": {Name: "Lithuania", CSIRT: "CERT-LT"},
	"LU": {Name: "Luxembourg", CSIRT: "CIRCL"},
	"MT": {Name: "Malta", CSIRT: "CSIRTMalta"},
	"NL": {Name: "Netherlands", CSIRT: "NCSC-NL"},
	"PL": {Name: "Poland", CSIRT: "CERT Polska"},
	"PT": {Name: "Portugal", CSIRT: "CERT.PT"},
	"RO": {Name: "Romania", CSIRT: "CERT-RO"},
	"SK": {Name: "Slovakia", CSIRT: "SK-CERT"},
	"SI": {Name: "Slovenia", CSIRT: "SI-CERT"},
	"ES": {Name: "Spain", CSIRT: "INCIBE-CERT"},
	"SE": {Name: "Sweden", CSIRT: "CERT-SE"},
}

// CSIRTFor returns the national CSIRT name for an ISO-2 member state code,
// and false if the code is outside the closed list.
func CSIRTFor(memberState string) (string, bool) {
	ms, ok := EUMemberStates[memberState]
	if !ok {
		return "", false
	}
	return ms.CSIRT, true
}

// Severity is the closed incident-severity classification carried on an
// IncidentNotification.
type Severity string

const (
	SeverityMinor       Severity = "minor"
	SeveritySignificant Severity = "significant"
	SeverityMajor       Severity = "major"
	SeverityCritical    Severity = "critical"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityMinor, SeveritySignificant, SeverityMajor, SeverityCritical:
		return true
	}
	return false
}

// Status is the lifecycle of a single child submission.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSubmitted Status = "submitted"
)

// ContactPerson is a named point of contact attached to a notification.
type ContactPerson struct {
	Name  string
	Email string
	Phone string
	Role  string
}

// IncidentImpact summarizes the blast radius an IncidentNotification
// reports.
type IncidentImpact struct {
	AffectedUsers     int
	AffectedServices  []string
	GeographicScope   string
	EconomicImpact    string
}

// Notification is the parent record created the moment an incident enters
// the NIS2 obligation flow; its three deadlines are computed once, from
// DetectionTime, and never recomputed.
type Notification struct {
	NotificationID        string
	IncidentID            string
	EntityType            EntityType
	Sector                Sector
	OrganizationName      string
	MemberState           string
	DetectionTime         time.Time
	PrimaryContact        ContactPerson
	TechnicalContact      *ContactPerson
	EarlyWarningDeadline  time.Time
	NotificationDeadline  time.Time
	FinalReportDeadline   time.Time
	CreatedAt             time.Time
}

// EarlyWarning is the first (optional but deadline-bound) child submission.
type EarlyWarning struct {
	WarningID           string
	NotificationID      string
	IncidentID          string
	SubmittedAt         time.Time
	Deadline            time.Time
	SuspectedCause      string
	CrossBorderSuspected bool
	InitialAssessment   string
	Status              Status
}

// IncidentNotification is the mandatory second child submission.
type IncidentNotification struct {
	NotificationID        string
	ParentNotificationID  string
	IncidentID            string
	EarlyWarningID        string // empty if no early warning was filed
	SubmittedAt           time.Time
	Deadline              time.Time
	IncidentDescription   string
	Severity              Severity
	IncidentType          string
	RootCausePreliminary  string
	Impact                IncidentImpact
	MitigationMeasures    []string
	ContainmentStatus     string
	Status                Status
}

// FinalReport closes out the notification's lifecycle.
type FinalReport struct {
	ReportID               string
	NotificationID         string
	IncidentID             string
	IncidentNotificationID string
	SubmittedAt            time.Time
	Deadline               time.Time
	IncidentDescription    string
	RootCauseAnalysis      string
	ThreatType             string
	AttackTechniques       []string
	TotalImpactAssessment  string
	ServicesAffected       []string
	RecoveryTimeHours      *float64
	LessonsLearned         string
	PreventiveMeasures     []string
	SecurityImprovements   []string
	OtherCSIRTsNotified    []string
	ENISANotified          bool
	Status                 Status
}

// DeadlineStatus is one stage's entry in GetDeadlines' response.
type DeadlineStatus struct {
	Deadline       time.Time
	Submitted      bool
	Overdue        bool
	RemainingHours float64 // 0 once submitted or past deadline
	RemainingDays  float64 // only meaningful for the final-report stage
}

// Deadlines is the full per-incident deadline report (spec §4.6).
type Deadlines struct {
	EarlyWarning DeadlineStatus
	Notification DeadlineStatus
	FinalReport  DeadlineStatus
}

// computeDeadlines derives the three authoritative deadlines from
// detection time (spec §3.5): 24h, 72h and 30 days out.
func computeDeadlines(detectionTime time.Time) (ew, notif, final time.Time) {
	return detectionTime.Add(24 * time.Hour),
		detectionTime.Add(72 * time.Hour),
		detectionTime.Add(30 * 24 * time.Hour)
}
