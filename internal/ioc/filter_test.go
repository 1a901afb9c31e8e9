package ioc

import "testing"

func TestFilterByMinConfidence(t *testing.T) {
	iocs := []IOC{
		{Confidence: 0.2},
		{Confidence: 0.8},
	}
	out := Filter(iocs, FilterOptions{MinConfidence: 0.5})
	if len(out) != 1 || out[0].Confidence != 0.8 {
		t.Errorf("Filter by confidence = %v, want one entry with confidence 0.8", out)
	}
}

func TestFilterByMinThreatLevel(t *testing.T) {
	iocs := []IOC{
		{ThreatLevel: ThreatLow},
		{ThreatLevel: ThreatCritical},
	}
	out := Filter(iocs, FilterOptions{MinThreatLevel: ThreatHigh})
	if len(out) != 1 || out[0].ThreatLevel != ThreatCritical {
		t.Errorf("Filter by threat level = %v, want only critical", out)
	}
}

func TestFilterByAllowedTypes(t *testing.T) {
	iocs := []IOC{
		{Type: TypeIP},
		{Type: TypeDomain},
	}
	out := Filter(iocs, FilterOptions{AllowedTypes: []Type{TypeDomain}})
	if len(out) != 1 || out[0].Type != TypeDomain {
		t.Errorf("Filter by type = %v, want only domain", out)
	}
}

func TestFilterExcludesTags(t *testing.T) {
	iocs := []IOC{
		{Tags: []string{"Benign"}},
		{Tags: []string{"ransomware"}},
	}
	out := Filter(iocs, FilterOptions{ExcludeTags: []string{"RANSOMWARE"}})
	if len(out) != 1 || out[0].Tags[0] != "Benign" {
		t.Errorf("Filter excluding tags = %v, want only the benign entry", out)
	}
}

func TestFilterZeroValueMatchesEverything(t *testing.T) {
	iocs := []IOC{{}, {ThreatLevel: ThreatCritical}}
	out := Filter(iocs, FilterOptions{})
	if len(out) != 2 {
		t.Errorf("zero-value FilterOptions should match everything, got %d", len(out))
	}
}
