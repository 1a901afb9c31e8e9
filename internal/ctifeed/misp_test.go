package ctifeed

import (
	"testing"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

func TestExtractMISPTagsSkipsGalaxyTags(t *testing.T) {
	tags := []mispTag{
		{Name: "tlp:amber"},
		{Name: "misp-galaxy:threat-actor=\"APT28\""},
		{Name: "malware"},
	}
	got := extractMISPTags(tags)
	want := []string{"tlp:amber", "malware"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestExtractMISPGalaxiesBucketsByType(t *testing.T) {
	galaxies := []mispGalaxy{
		{
			Type: "threat-actor",
			GalaxyClusters: []mispGalaxyCluster{
				{Value: "APT28"},
			},
		},
		{
			Type: "mitre-attack-pattern",
			GalaxyClusters: []mispGalaxyCluster{
				{Value: "Spearphishing Attachment", Meta: struct {
					ExternalID []string `json:"external_id"`
				}{ExternalID: []string{"T1566.001"}}},
			},
		},
	}

	actors, campaigns, techniques := extractMISPGalaxies(galaxies)
	if len(actors) != 1 || actors[0] != "APT28" {
		t.Errorf("actors = %v", actors)
	}
	if len(campaigns) != 0 {
		t.Errorf("campaigns = %v", campaigns)
	}
	if len(techniques) != 1 || techniques[0] != "T1566.001 - Spearphishing Attachment" {
		t.Errorf("techniques = %v", techniques)
	}
}

func TestAttributeToIOCToIDsConfidence(t *testing.T) {
	a := &MISPAdapter{}
	attr := mispAttribute{Type: "ip-dst", Value: "203.0.113.5", ToIDs: true}
	event := mispEvent{Info: "test event"}

	rec, ok := a.attributeToIOC(attr, event, ioc.ThreatHigh, nil, nil, nil, nil)
	if !ok {
		t.Fatal("expected valid IOC")
	}
	if rec.Type != ioc.TypeIP {
		t.Errorf("type = %s, want ip", rec.Type)
	}
	if rec.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8 for to_ids attribute", rec.Confidence)
	}
}

func TestAttributeToIOCRejectsEmptyValue(t *testing.T) {
	a := &MISPAdapter{}
	_, ok := a.attributeToIOC(mispAttribute{Type: "ip-dst", Value: "  "}, mispEvent{}, ioc.ThreatUnknown, nil, nil, nil, nil)
	if ok {
		t.Fatal("expected rejection of blank attribute value")
	}
}
