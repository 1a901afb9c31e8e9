package ctifeed

import (
	"strings"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// mispThreatLevel maps MISP's numeric threat_level_id (1=high priority ...
// 4=undefined) to the platform's ThreatLevel scale. MISP's own ordering
// is inverted from intuition: 1 is the most severe.
func mispThreatLevel(levelID int) ioc.ThreatLevel {
	switch levelID {
	case 1:
		return ioc.ThreatHigh
	case 2:
		return ioc.ThreatMedium
	case 3:
		return ioc.ThreatLow
	default:
		return ioc.ThreatUnknown
	}
}

// virusTotalThreatLevel buckets a 0-100 detection percentage
// ((malicious+suspicious)/total * 100) into the platform's severity scale.
func virusTotalThreatLevel(detectionPct float64) ioc.ThreatLevel {
	switch {
	case detectionPct >= 60:
		return ioc.ThreatCritical
	case detectionPct >= 35:
		return ioc.ThreatHigh
	case detectionPct >= 15:
		return ioc.ThreatMedium
	case detectionPct >= 5:
		return ioc.ThreatLow
	default:
		return ioc.ThreatUnknown
	}
}

// genericThreatLevel maps a free-text threat-level string (as carried by
// some feed payloads) onto the closed scale.
func genericThreatLevel(s string) ioc.ThreatLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return ioc.ThreatCritical
	case "high":
		return ioc.ThreatHigh
	case "medium":
		return ioc.ThreatMedium
	case "low":
		return ioc.ThreatLow
	case "clean":
		return ioc.ThreatClean
	default:
		return ioc.ThreatUnknown
	}
}
