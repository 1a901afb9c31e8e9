package ioc

import (
	"testing"
	"time"
)

func TestMergeKeepsHighestThreatAndConfidence(t *testing.T) {
	existing := IOC{ThreatLevel: ThreatMedium, Confidence: 0.5}
	incoming := IOC{ThreatLevel: ThreatCritical, Confidence: 0.9}

	merged := Merge(existing, incoming)

	if merged.ThreatLevel != ThreatCritical {
		t.Errorf("ThreatLevel = %v, want critical", merged.ThreatLevel)
	}
	if merged.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", merged.Confidence)
	}
}

func TestMergeDoesNotDowngrade(t *testing.T) {
	existing := IOC{ThreatLevel: ThreatCritical, Confidence: 0.9}
	incoming := IOC{ThreatLevel: ThreatLow, Confidence: 0.2}

	merged := Merge(existing, incoming)

	if merged.ThreatLevel != ThreatCritical || merged.Confidence != 0.9 {
		t.Errorf("merge downgraded existing record: %+v", merged)
	}
}

func TestMergeUnionsTagsAndCaps(t *testing.T) {
	existing := IOC{Tags: []string{"a", "b"}}
	incoming := IOC{Tags: []string{"b", "c"}}

	merged := Merge(existing, incoming)

	if len(merged.Tags) != 3 {
		t.Errorf("Tags = %v, want 3 unique entries", merged.Tags)
	}
}

func TestMergeCombinesSources(t *testing.T) {
	existing := IOC{Source: "misp"}
	incoming := IOC{Source: "otx"}

	merged := Merge(existing, incoming)

	if merged.Source != "misp,otx" {
		t.Errorf("Source = %q, want %q", merged.Source, "misp,otx")
	}
}

func TestMergeFirstSeenEarliestLastSeenLatest(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	existing := IOC{FirstSeen: now, LastSeen: now}
	incoming := IOC{FirstSeen: now.Add(-24 * time.Hour), LastSeen: now.Add(24 * time.Hour)}

	merged := Merge(existing, incoming)

	if !merged.FirstSeen.Equal(incoming.FirstSeen) {
		t.Errorf("FirstSeen = %v, want earliest %v", merged.FirstSeen, incoming.FirstSeen)
	}
	if !merged.LastSeen.Equal(incoming.LastSeen) {
		t.Errorf("LastSeen = %v, want latest %v", merged.LastSeen, incoming.LastSeen)
	}
}

func TestMergeIsIdempotentOnRepeatedSelfMerge(t *testing.T) {
	a := IOC{ThreatLevel: ThreatHigh, Confidence: 0.7, Tags: []string{"apt"}, Source: "misp"}
	merged := Merge(a, a)

	if merged.ThreatLevel != a.ThreatLevel || merged.Confidence != a.Confidence {
		t.Errorf("self-merge changed scalar fields: %+v", merged)
	}
	if len(merged.Tags) != 1 {
		t.Errorf("self-merge duplicated tags: %v", merged.Tags)
	}
}
