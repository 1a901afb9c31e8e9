package framework

// PhaseMappingFor returns fw's view of phase, and false if fw has no
// mapping registered for that phase (every supported framework/phase pair
// is registered, so false only ever means an unsupported framework).
func PhaseMappingFor(fw Framework, phase Phase) (PhaseMapping, bool) {
	byPhase, ok := catalog[fw]
	if !ok {
		return PhaseMapping{}, false
	}
	m, ok := byPhase[phase]
	return m, ok
}

// ControlsForPhase returns the controls fw expects for phase.
func ControlsForPhase(fw Framework, phase Phase) []Control {
	m, ok := PhaseMappingFor(fw, phase)
	if !ok {
		return nil
	}
	out := make([]Control, len(m.Controls))
	copy(out, m.Controls)
	return out
}

// MandatoryControlIDs returns the subset of fw's phase controls that are
// mandatory rather than recommended.
func MandatoryControlIDs(fw Framework, phase Phase) []string {
	m, ok := PhaseMappingFor(fw, phase)
	if !ok {
		return nil
	}
	out := make([]string, len(m.Mandatory))
	copy(out, m.Mandatory)
	return out
}

// IsMandatory reports whether controlID is in fw's mandatory subset for
// phase.
func IsMandatory(fw Framework, phase Phase, controlID string) bool {
	for _, id := range MandatoryControlIDs(fw, phase) {
		if id == controlID {
			return true
		}
	}
	return false
}

// AllControls returns every control fw defines across all phases,
// deduplicated by control ID (several controls, e.g. ISO's A.5.26, recur
// across adjacent phases).
func AllControls(fw Framework) []Control {
	seen := make(map[string]bool)
	var out []Control
	for _, phase := range allPhases {
		for _, c := range ControlsForPhase(fw, phase) {
			if seen[c.ControlID] {
				continue
			}
			seen[c.ControlID] = true
			c.Framework = fw
			out = append(out, c)
		}
	}
	return out
}

// ControlDetails looks up a single control by framework and ID.
func ControlDetails(fw Framework, controlID string) (Control, bool) {
	for _, c := range AllControls(fw) {
		if c.ControlID == controlID {
			return c, true
		}
	}
	return Control{}, false
}
