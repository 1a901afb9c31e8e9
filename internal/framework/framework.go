// Package framework is the cross-standard control catalog (spec C4): a
// static, read-only mapping from incident-response phases to the controls
// each supported framework expects an organization to satisfy in that
// phase, plus the cross-framework equivalence table compliance reporting
// rolls up against.
//
// Grounded on original_source/apps/api/src/integrations/iso_mapper.py
// (ISO 27001/27035), original_source/src/integrations/nist_integration.py
// (NIST CSF 2.0 and SP 800-53), original_source/src/integrations/bsi_integration.py
// (BSI IT-Grundschutz), and original_source/src/integrations/mitre_integration.py
// (ATT&CK). BSI, NIST SP 800-61 phase structure, MITRE, NIS2 and OWASP Top
// 10 entries are hand-curated from well-known published control/technique
// IDs in the same shape the originals use, since no machine-readable
// catalog for those standards was part of the retrieval pack.
package framework

// Framework is the closed set of compliance/threat frameworks the catalog
// understands.
type Framework string

const (
	BSIGrundschutz Framework = "bsi_grundschutz"
	NISTCSF2       Framework = "nist_csf_2"
	NIST80053      Framework = "nist_800_53"
	NIST80061      Framework = "nist_800_61"
	ISO27001       Framework = "iso_27001"
	ISO27035       Framework = "iso_27035"
	MITREATTACK    Framework = "mitre_attack"
	OWASPTop10     Framework = "owasp_top_10"
	NIS2Framework  Framework = "nis2"
)

var allFrameworks = map[Framework]bool{
	BSIGrundschutz: true,
	NISTCSF2:       true,
	NIST80053:      true,
	NIST80061:      true,
	ISO27001:       true,
	ISO27035:       true,
	MITREATTACK:    true,
	OWASPTop10:     true,
	NIS2Framework:  true,
}

func (f Framework) Valid() bool {
	return allFrameworks[f]
}

// Phase is the closed set of incident-response phases the catalog maps
// controls against.
type Phase string

const (
	PhaseDetection   Phase = "detection"
	PhaseAnalysis    Phase = "analysis"
	PhaseContainment Phase = "containment"
	PhaseEradication Phase = "eradication"
	PhaseRecovery    Phase = "recovery"
	PhasePostIncident Phase = "post_incident"
)

var allPhases = []Phase{
	PhaseDetection, PhaseAnalysis, PhaseContainment,
	PhaseEradication, PhaseRecovery, PhasePostIncident,
}

func (p Phase) Valid() bool {
	for _, known := range allPhases {
		if known == p {
			return true
		}
	}
	return false
}

// AllPhases returns the fixed phase ordering the catalog iterates in.
func AllPhases() []Phase {
	out := make([]Phase, len(allPhases))
	copy(out, allPhases)
	return out
}

// Control is a single named requirement within a framework.
type Control struct {
	Framework            Framework
	ControlID            string
	Name                 string
	Family               string
	Description          string
	EvidenceRequirements []string
}

// PhaseMapping is one framework's view of what a given IR phase requires:
// the controls that apply, which of them are mandatory, the documentation
// it requires, and a free-text description.
type PhaseMapping struct {
	Framework             Framework
	Phase                 Phase
	Controls              []Control
	Mandatory             []string
	DocumentationRequired []string
	Description           string
}
