package ctifeed

import (
	"testing"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

func TestMISPThreatLevel(t *testing.T) {
	cases := []struct {
		levelID int
		want    ioc.ThreatLevel
	}{
		{1, ioc.ThreatHigh},
		{2, ioc.ThreatMedium},
		{3, ioc.ThreatLow},
		{4, ioc.ThreatUnknown},
		{0, ioc.ThreatUnknown},
	}
	for _, c := range cases {
		if got := mispThreatLevel(c.levelID); got != c.want {
			t.Errorf("mispThreatLevel(%d) = %s, want %s", c.levelID, got, c.want)
		}
	}
}

func TestVirusTotalThreatLevel(t *testing.T) {
	cases := []struct {
		pct  float64
		want ioc.ThreatLevel
	}{
		{0, ioc.ThreatUnknown},
		{4.9, ioc.ThreatUnknown},
		{5, ioc.ThreatLow},
		{14.9, ioc.ThreatLow},
		{15, ioc.ThreatMedium},
		{34.9, ioc.ThreatMedium},
		{35, ioc.ThreatHigh},
		{59.9, ioc.ThreatHigh},
		{60, ioc.ThreatCritical},
		{100, ioc.ThreatCritical},
	}
	for _, c := range cases {
		if got := virusTotalThreatLevel(c.pct); got != c.want {
			t.Errorf("virusTotalThreatLevel(%v) = %s, want %s", c.pct, got, c.want)
		}
	}
}

func TestGenericThreatLevel(t *testing.T) {
	cases := []struct {
		in   string
		want ioc.ThreatLevel
	}{
		{"Critical", ioc.ThreatCritical},
		{" high ", ioc.ThreatHigh},
		{"MEDIUM", ioc.ThreatMedium},
		{"low", ioc.ThreatLow},
		{"clean", ioc.ThreatClean},
		{"garbage", ioc.ThreatUnknown},
		{"", ioc.ThreatUnknown},
	}
	for _, c := range cases {
		if got := genericThreatLevel(c.in); got != c.want {
			t.Errorf("genericThreatLevel(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}
