package ioc

import "strings"

var threatBaseScore = map[ThreatLevel]float64{
	ThreatCritical: 80,
	ThreatHigh:     60,
	ThreatMedium:   40,
	ThreatLow:      20,
	ThreatClean:    0,
	ThreatUnknown:  10,
}

var highRiskTagMarkers = []string{
	"ransomware", "c2", "apt", "malware", "trojan",
	"botnet", "phishing", "exploit", "backdoor", "rat",
}

// RiskScore computes a 0-100 severity score from an IOC's attributes:
// threat-level base, a confidence modifier, bonuses for corroboration
// across multiple feed sources, related indicators, MITRE technique
// coverage, and a flat bump for any high-risk tag.
func RiskScore(i IOC) float64 {
	score, ok := threatBaseScore[i.ThreatLevel]
	if !ok {
		score = 10
	}

	score += (i.Confidence - 0.5) * 20

	if sourceCount := strings.Count(i.Source, ",") + 1; i.Source != "" && strings.Contains(i.Source, ",") {
		bonus := float64(sourceCount * 2)
		if bonus > 10 {
			bonus = 10
		}
		score += bonus
	}

	if len(i.RelatedIOCs) > 0 {
		bonus := float64(len(i.RelatedIOCs) * 3)
		if bonus > 9 {
			bonus = 9
		}
		score += bonus
	}

	if len(i.MitreTechniques) > 0 {
		bonus := float64(len(i.MitreTechniques) * 2)
		if bonus > 6 {
			bonus = 6
		}
		score += bonus
	}

	for _, tag := range i.Tags {
		tagLower := strings.ToLower(tag)
		hit := false
		for _, marker := range highRiskTagMarkers {
			if strings.Contains(tagLower, marker) {
				hit = true
				break
			}
		}
		if hit {
			score += 5
			break
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
