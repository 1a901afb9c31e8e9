package enrichment

import (
	"sort"
	"strings"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// tagToTechnique is the aggregator's own closed tag-to-MITRE table,
// distinct from internal/ioc's normalization-time table: this one maps
// the aggregated, union-of-sources tag set onto techniques for display,
// ported verbatim from the original enrichment engine's tag_to_technique
// dict.
var tagToTechnique = map[string][]string{
	"c2":               {"T1071 - Application Layer Protocol", "T1095 - Non-Application Layer Protocol"},
	"ransomware":       {"T1486 - Data Encrypted for Impact", "T1490 - Inhibit System Recovery"},
	"phishing":         {"T1566 - Phishing", "T1598 - Phishing for Information"},
	"credential_theft": {"T1003 - OS Credential Dumping", "T1555 - Credentials from Password Stores"},
	"trojan":           {"T1204 - User Execution", "T1036 - Masquerading"},
	"rat":              {"T1219 - Remote Access Software", "T1105 - Ingress Tool Transfer"},
	"keylogger":        {"T1056 - Input Capture"},
	"dropper":          {"T1105 - Ingress Tool Transfer", "T1059 - Command and Scripting Interpreter"},
	"tor":              {"T1090 - Proxy", "T1573 - Encrypted Channel"},
	"cobalt_strike":    {"T1071.001 - Web Protocols", "T1059.001 - PowerShell"},
	"emotet":           {"T1566.001 - Spearphishing Attachment", "T1055 - Process Injection"},
	"bruteforce":       {"T1110 - Brute Force"},
	"scanner":          {"T1595 - Active Scanning"},
	"dga":              {"T1568.002 - Domain Generation Algorithms"},
}

func mapToMitre(tags []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		for key, techs := range tagToTechnique {
			if strings.Contains(lower, key) {
				for _, t := range techs {
					if _, ok := seen[t]; !ok {
						seen[t] = struct{}{}
						out = append(out, t)
					}
				}
			}
		}
	}
	sort.Strings(out)
	return out
}

func generateRecommendations(r *Result) []string {
	var actions []string

	switch r.OverallThreatLevel {
	case ioc.ThreatCritical:
		actions = append(actions,
			"IMMEDIATE: Block this IOC at all network boundaries",
			"Isolate any systems that communicated with this IOC",
			"Initiate full forensic investigation",
			"Notify incident response team immediately",
			"Check for lateral movement from affected systems",
		)
	case ioc.ThreatHigh:
		actions = append(actions,
			"Block this IOC at perimeter firewall",
			"Review logs for any historical communication",
			"Scan endpoints for related indicators",
			"Consider adding to threat hunting queries",
		)
	case ioc.ThreatMedium:
		actions = append(actions,
			"Add to watchlist for monitoring",
			"Review recent connections to this IOC",
			"Consider blocking if no legitimate business need",
		)
	case ioc.ThreatLow:
		actions = append(actions,
			"Monitor for suspicious activity",
			"Document in threat intelligence database",
		)
	default:
		actions = append(actions, "No immediate action required - continue monitoring")
	}

	switch r.Type {
	case ioc.TypeIP:
		if contains(r.Tags, "tor_exit") {
			actions = append(actions, "Review Tor usage policy - block if not business-required")
		}
		if contains(r.Tags, "vpn") {
			actions = append(actions, "Verify if VPN traffic is authorized")
		}
	case ioc.TypeMD5, ioc.TypeSHA1, ioc.TypeSHA256:
		actions = append(actions, "Search for this hash across all endpoints")
		if r.OverallThreatLevel == ioc.ThreatCritical || r.OverallThreatLevel == ioc.ThreatHigh {
			actions = append(actions, "Add hash to EDR block list immediately")
		}
	case ioc.TypeDomain:
		actions = append(actions, "Check DNS logs for resolution attempts")
		if r.OverallThreatLevel == ioc.ThreatCritical || r.OverallThreatLevel == ioc.ThreatHigh {
			actions = append(actions, "Sinkhole domain in DNS if possible")
		}
	}

	return actions
}
