package framework

import "testing"

func TestEveryFrameworkHasAllSixPhases(t *testing.T) {
	for fw := range allFrameworks {
		for _, phase := range allPhases {
			if _, ok := PhaseMappingFor(fw, phase); !ok {
				t.Errorf("%s has no mapping for phase %s", fw, phase)
			}
		}
	}
}

func TestControlsForPhaseReturnsCopy(t *testing.T) {
	got := ControlsForPhase(ISO27001, PhaseDetection)
	if len(got) == 0 {
		t.Fatal("expected ISO 27001 detection controls")
	}
	got[0].ControlID = "mutated"

	again := ControlsForPhase(ISO27001, PhaseDetection)
	if again[0].ControlID == "mutated" {
		t.Error("ControlsForPhase leaked internal storage to the caller")
	}
}

func TestMandatoryControlIDsISO27001Detection(t *testing.T) {
	mandatory := MandatoryControlIDs(ISO27001, PhaseDetection)
	want := map[string]bool{"A.5.24": true, "A.5.25": true}
	if len(mandatory) != len(want) {
		t.Fatalf("got %v, want %v", mandatory, want)
	}
	for _, id := range mandatory {
		if !want[id] {
			t.Errorf("unexpected mandatory control %s", id)
		}
	}
}

func TestIsMandatory(t *testing.T) {
	if !IsMandatory(ISO27001, PhaseDetection, "A.5.24") {
		t.Error("expected A.5.24 to be mandatory for ISO 27001 detection")
	}
	if IsMandatory(ISO27001, PhaseDetection, "A.8.15") {
		t.Error("A.8.15 is recommended, not mandatory, for ISO 27001 detection")
	}
}

func TestAllControlsDeduplicatesAcrossPhases(t *testing.T) {
	all := AllControls(ISO27001)
	seen := make(map[string]int)
	for _, c := range all {
		seen[c.ControlID]++
	}
	for id, count := range seen {
		if count > 1 {
			t.Errorf("control %s appeared %d times in AllControls, want 1", id, count)
		}
	}
	// A.5.26 recurs in analysis, containment and eradication phase
	// mappings but must only appear once here.
	if seen["A.5.26"] != 1 {
		t.Errorf("A.5.26 appeared %d times, want exactly 1", seen["A.5.26"])
	}
}

func TestControlDetails(t *testing.T) {
	c, ok := ControlDetails(ISO27001, "A.5.24")
	if !ok {
		t.Fatal("expected to find A.5.24")
	}
	if c.Name == "" || c.Framework != ISO27001 {
		t.Errorf("incomplete control details: %+v", c)
	}
	if _, ok := ControlDetails(ISO27001, "does-not-exist"); ok {
		t.Error("expected lookup of unknown control to fail")
	}
}

func TestControlsForPhaseUnified(t *testing.T) {
	groups := ControlsForPhaseUnified(PhaseDetection)
	if len(groups) == 0 {
		t.Fatal("expected at least one unified control group for detection")
	}
	for _, fw := range UnifiedFrameworks() {
		if _, ok := groups[0].Native[fw]; !ok {
			t.Errorf("unified control %s missing entry for framework %s", groups[0].UnifiedID, fw)
		}
	}
}

func TestEquivalentControlsOmitsOwnFramework(t *testing.T) {
	equiv := EquivalentControls(ISO27001, "A.8.15")
	if equiv == nil {
		t.Fatal("expected equivalence group for ISO A.8.15")
	}
	if _, ok := equiv[ISO27001]; ok {
		t.Error("expected own framework to be omitted from equivalence result")
	}
	if _, ok := equiv[BSIGrundschutz]; !ok {
		t.Error("expected BSI equivalent for detection/logging control")
	}
}

func TestEquivalentControlsUnknownReturnsNil(t *testing.T) {
	if got := EquivalentControls(ISO27001, "no-such-control"); got != nil {
		t.Errorf("expected nil for unknown control, got %v", got)
	}
}
