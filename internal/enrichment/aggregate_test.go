package enrichment

import (
	"testing"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

func TestAggregateWeightedVoteAndBucket(t *testing.T) {
	results := map[Source]SourceResult{
		SourceVirusTotal: {Source: SourceVirusTotal, Available: true, ThreatLevel: ioc.ThreatHigh, Confidence: 0.9},
		SourceOTX:        {Source: SourceOTX, Available: true, ThreatLevel: ioc.ThreatHigh, Confidence: 0.8},
	}

	r := aggregate("1.2.3.4", ioc.TypeIP, results)

	if r.OverallThreatLevel != ioc.ThreatHigh {
		t.Errorf("overall threat level = %s, want high", r.OverallThreatLevel)
	}
	if r.RiskScore < 74 || r.RiskScore > 76 {
		t.Errorf("risk score = %v, want ~75", r.RiskScore)
	}
	if r.SourcesQueried != 2 || r.SourcesWithData != 2 {
		t.Errorf("sources queried/with data = %d/%d", r.SourcesQueried, r.SourcesWithData)
	}
}

func TestAggregateIgnoresUnavailableAndUnknownSources(t *testing.T) {
	results := map[Source]SourceResult{
		SourceShodan:    {Source: SourceShodan, Available: false},
		SourceGreyNoise: {Source: SourceGreyNoise, Available: true, ThreatLevel: ioc.ThreatUnknown, Confidence: 0.9},
	}

	r := aggregate("example.com", ioc.TypeDomain, results)
	if r.OverallThreatLevel != ioc.ThreatUnknown {
		t.Errorf("expected unknown overall level with no voters, got %s", r.OverallThreatLevel)
	}
	if r.SourcesWithData != 1 {
		t.Errorf("sources with data = %d, want 1", r.SourcesWithData)
	}
}

func TestAggregateUnionsTagsCategoriesAndFirstWinsGeo(t *testing.T) {
	results := map[Source]SourceResult{
		SourceVirusTotal: {
			Source: SourceVirusTotal, Available: true, ThreatLevel: ioc.ThreatMedium, Confidence: 0.7,
			Tags: []string{"ransomware"}, Categories: []string{"malware"}, Country: "DE",
		},
		SourceAbuseIPDB: {
			Source: SourceAbuseIPDB, Available: true, ThreatLevel: ioc.ThreatLow, Confidence: 0.5,
			Tags: []string{"scanner"}, Country: "US",
		},
	}

	r := aggregate("1.2.3.4", ioc.TypeIP, results)
	if len(r.Tags) != 2 {
		t.Errorf("tags = %v", r.Tags)
	}
	if r.GeographicInfo["country"] != "DE" && r.GeographicInfo["country"] != "US" {
		t.Errorf("geo country = %v", r.GeographicInfo)
	}
	if len(r.MitreTechniques) == 0 {
		t.Error("expected ransomware tag to map to at least one MITRE technique")
	}
}

func TestBucketThreatLevelBoundaries(t *testing.T) {
	cases := []struct {
		avg  float64
		want ioc.ThreatLevel
	}{
		{0, ioc.ThreatClean},
		{9.9, ioc.ThreatClean},
		{10, ioc.ThreatLow},
		{39.9, ioc.ThreatLow},
		{40, ioc.ThreatMedium},
		{59.9, ioc.ThreatMedium},
		{60, ioc.ThreatHigh},
		{79.9, ioc.ThreatHigh},
		{80, ioc.ThreatCritical},
	}
	for _, c := range cases {
		if got := bucketThreatLevel(c.avg); got != c.want {
			t.Errorf("bucketThreatLevel(%v) = %s, want %s", c.avg, got, c.want)
		}
	}
}
