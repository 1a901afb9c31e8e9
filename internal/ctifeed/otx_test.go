package ctifeed

import (
	"testing"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

func TestProcessPulseMapsKnownIndicatorTypes(t *testing.T) {
	a := &OTXAdapter{}
	pulse := otxPulse{
		Name:      "Suspicious campaign",
		Adversary: "Fancy Bear",
		Tags:      []string{"phishing"},
		AttackIDs: []otxAttackID{{ID: "T1566", Name: "Phishing"}},
		Indicators: []otxIndicator{
			{Type: "IPv4", Indicator: "198.51.100.7"},
			{Type: "FileHash-SHA256", Indicator: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b85"},
			{Type: "unknown-type", Indicator: ""},
		},
	}

	got := a.processPulse(pulse)
	if len(got) != 2 {
		t.Fatalf("expected 2 indicators, got %d", len(got))
	}
	if got[0].Type != ioc.TypeIP {
		t.Errorf("first indicator type = %s, want ip", got[0].Type)
	}
	if got[0].ThreatLevel != ioc.ThreatHigh {
		t.Errorf("expected APT-marker elevation to high, got %s", got[0].ThreatLevel)
	}
	if len(got[0].RelatedIOCs) != 1 || got[0].RelatedIOCs[0] != "Fancy Bear" {
		t.Errorf("related actors = %v", got[0].RelatedIOCs)
	}
}

func TestProcessPulseDefaultsToMediumWithoutAPTMarker(t *testing.T) {
	a := &OTXAdapter{}
	pulse := otxPulse{
		Adversary:  "Unknown Group",
		Indicators: []otxIndicator{{Type: "domain", Indicator: "example.com"}},
	}
	got := a.processPulse(pulse)
	if len(got) != 1 {
		t.Fatalf("expected 1 indicator, got %d", len(got))
	}
	if got[0].ThreatLevel != ioc.ThreatMedium {
		t.Errorf("threat level = %s, want medium", got[0].ThreatLevel)
	}
}

func TestIOCTypeToOTXSection(t *testing.T) {
	cases := map[ioc.Type]string{
		ioc.TypeIP:     "IPv4",
		ioc.TypeDomain: "domain",
		ioc.TypeSHA256: "file",
		ioc.TypeCVE:    "cve",
		ioc.TypeMutex:  "",
	}
	for typ, want := range cases {
		if got := iocTypeToOTXSection(typ); got != want {
			t.Errorf("iocTypeToOTXSection(%s) = %q, want %q", typ, got, want)
		}
	}
}
