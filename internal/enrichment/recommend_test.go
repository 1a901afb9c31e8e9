package enrichment

import (
	"testing"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

func TestMapToMitreMatchesKnownTags(t *testing.T) {
	got := mapToMitre([]string{"Ransomware", "scanner"})
	if len(got) == 0 {
		t.Fatal("expected techniques for ransomware/scanner tags")
	}
}

func TestMapToMitreIgnoresUnknownTags(t *testing.T) {
	got := mapToMitre([]string{"benign", "empty"})
	if len(got) != 0 {
		t.Errorf("expected no techniques, got %v", got)
	}
}

func TestGenerateRecommendationsCriticalIncludesImmediateAction(t *testing.T) {
	r := &Result{OverallThreatLevel: ioc.ThreatCritical, Type: ioc.TypeIP}
	actions := generateRecommendations(r)
	if len(actions) == 0 || actions[0] == "" {
		t.Fatal("expected non-empty critical recommendations")
	}
}

func TestGenerateRecommendationsHashAddsEDRAction(t *testing.T) {
	r := &Result{OverallThreatLevel: ioc.ThreatHigh, Type: ioc.TypeSHA256}
	actions := generateRecommendations(r)
	found := false
	for _, a := range actions {
		if a == "Add hash to EDR block list immediately" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected EDR blocklist action for high-threat hash, got %v", actions)
	}
}

func TestGenerateRecommendationsCleanHasNoImmediateAction(t *testing.T) {
	r := &Result{OverallThreatLevel: ioc.ThreatClean, Type: ioc.TypeDomain}
	actions := generateRecommendations(r)
	if len(actions) != 2 {
		t.Errorf("expected DNS-log action plus default clean action, got %v", actions)
	}
}
