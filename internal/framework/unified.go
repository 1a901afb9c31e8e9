package framework

// UnifiedControl groups the native control IDs that different frameworks
// use to express the same underlying security requirement, so a
// compliance report can roll coverage up across frameworks instead of
// repeating the same finding once per standard.
//
// Six frameworks participate in cross-mapping: BSI Grundschutz, NIST SP
// 800-53, ISO 27001, NIS2, MITRE ATT&CK and OWASP Top 10. NIST CSF 2.0,
// NIST SP 800-61 and ISO 27035 describe the same lifecycle at a coarser
// (functions/phases, not controls) grain and are looked up per-framework
// instead of folded into the unified table.
type UnifiedControl struct {
	UnifiedID string
	Category  string
	Name      string
	Phase     Phase
	Native    map[Framework][]string
}

// unifiedFrameworks is the closed set UnifiedControl.Native may key on.
var unifiedFrameworks = []Framework{
	BSIGrundschutz, NIST80053, ISO27001, NIS2Framework, MITREATTACK, OWASPTop10,
}

var unifiedCatalog = []UnifiedControl{
	{
		UnifiedID: "UC-DETECT-001",
		Category:  "Detection capability",
		Name:      "Security-relevant events are continuously monitored and logged",
		Phase:     PhaseDetection,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.1", "DER.1.A5"},
			NIST80053:      {"IR-6"},
			ISO27001:       {"A.8.15", "A.8.16"},
			NIS2Framework:  {"NIS2.Art23.EW"},
			MITREATTACK:    {"T1082", "T1083"},
			OWASPTop10:     {"A09:2021"},
		},
	},
	{
		UnifiedID: "UC-ANALYSIS-001",
		Category:  "Incident triage and assessment",
		Name:      "Detected events are assessed, classified, and escalated to a declared incident",
		Phase:     PhaseAnalysis,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.2.1.A1", "DER.2.1.A2"},
			NIST80053:      {"IR-5"},
			ISO27001:       {"A.5.25"},
			NIS2Framework:  {"NIS2.Art23.IN"},
			MITREATTACK:    {"T1018"},
			OWASPTop10:     {"A03:2021"},
		},
	},
	{
		UnifiedID: "UC-ANALYSIS-002",
		Category:  "Evidence handling",
		Name:      "Evidence is identified, collected, and preserved with chain of custody",
		Phase:     PhaseAnalysis,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.2.2", "DER.2.2.A1"},
			NIST80053:      {"IR-4"},
			ISO27001:       {"A.5.28"},
			NIS2Framework:  {},
			MITREATTACK:    {"T1560"},
			OWASPTop10:     {},
		},
	},
	{
		UnifiedID: "UC-CONTAIN-001",
		Category:  "Containment",
		Name:      "The incident is isolated to prevent further lateral spread",
		Phase:     PhaseContainment,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.2.1", "DER.2.1.A4"},
			NIST80053:      {"IR-4"},
			ISO27001:       {"A.8.20", "A.8.22"},
			NIS2Framework:  {"NIS2.Art21.Containment"},
			MITREATTACK:    {"T1021", "T1570"},
			OWASPTop10:     {"A01:2021"},
		},
	},
	{
		UnifiedID: "UC-ERADICATE-001",
		Category:  "Eradication",
		Name:      "Root cause and attacker persistence mechanisms are removed",
		Phase:     PhaseEradication,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.2.3", "DER.2.3.A2"},
			NIST80053:      {"IR-4"},
			ISO27001:       {"A.8.7", "A.8.8"},
			NIS2Framework:  {"NIS2.Art21.Eradication"},
			MITREATTACK:    {"T1053", "T1547"},
			OWASPTop10:     {"A06:2021"},
		},
	},
	{
		UnifiedID: "UC-RECOVER-001",
		Category:  "Recovery",
		Name:      "Affected systems are restored from tested backups and continuity plans",
		Phase:     PhaseRecovery,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.4", "DER.4.A1"},
			NIST80053:      {"IR-4"},
			ISO27001:       {"A.5.30", "A.8.13"},
			NIS2Framework:  {"NIS2.Art21.BCM"},
			MITREATTACK:    {"T1486", "T1490"},
			OWASPTop10:     {"A02:2021"},
		},
	},
	{
		UnifiedID: "UC-POST-001",
		Category:  "Post-incident review",
		Name:      "A lessons-learned review is conducted and reported to stakeholders",
		Phase:     PhasePostIncident,
		Native: map[Framework][]string{
			BSIGrundschutz: {"DER.2.1.A6", "DER.2.1.A7"},
			NIST80053:      {"IR-8"},
			ISO27001:       {"A.5.27", "A.5.35"},
			NIS2Framework:  {"NIS2.Art23.FR"},
			MITREATTACK:    {"T1566"},
			OWASPTop10:     {"A09:2021"},
		},
	},
}

// ControlsForPhaseUnified returns the cross-framework equivalence groups
// relevant to phase.
func ControlsForPhaseUnified(phase Phase) []UnifiedControl {
	var out []UnifiedControl
	for _, uc := range unifiedCatalog {
		if uc.Phase == phase {
			out = append(out, uc)
		}
	}
	return out
}

// EquivalentControls returns every other framework's control IDs that are
// equivalent to fw's controlID, keyed by framework. controlID's own
// framework is omitted from the result.
func EquivalentControls(fw Framework, controlID string) map[Framework][]string {
	for _, uc := range unifiedCatalog {
		ids, ok := uc.Native[fw]
		if !ok {
			continue
		}
		for _, id := range ids {
			if id != controlID {
				continue
			}
			out := make(map[Framework][]string, len(uc.Native)-1)
			for other, otherIDs := range uc.Native {
				if other == fw || len(otherIDs) == 0 {
					continue
				}
				out[other] = otherIDs
			}
			return out
		}
	}
	return nil
}

// UnifiedFrameworks returns the closed set of frameworks that participate
// in cross-framework equivalence mapping.
func UnifiedFrameworks() []Framework {
	out := make([]Framework, len(unifiedFrameworks))
	copy(out, unifiedFrameworks)
	return out
}
