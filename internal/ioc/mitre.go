package ioc

import "strings"

// tagToTechnique is the closed lookup the platform uses to derive MITRE
// ATT&CK technique tags from an indicator's free-form tags. Keys are
// matched as substrings of the tag after normalizing separators to "_", so
// "spear-phishing" and "spear phishing" both become "spear_phishing" and
// hit "phishing"; "spearphishing" matches only the unseparated spelling.
var tagToTechnique = map[string][]string{
	"c2":                   {"T1071 - Application Layer Protocol"},
	"command_and_control":  {"T1071 - Application Layer Protocol"},
	"ransomware":           {"T1486 - Data Encrypted for Impact", "T1490 - Inhibit System Recovery"},
	"phishing":             {"T1566 - Phishing"},
	"spearphishing":        {"T1566.001 - Spearphishing Attachment"},
	"credential_theft":     {"T1003 - OS Credential Dumping"},
	"trojan":               {"T1204 - User Execution"},
	"rat":                  {"T1219 - Remote Access Software"},
	"keylogger":            {"T1056 - Input Capture"},
	"dropper":              {"T1105 - Ingress Tool Transfer"},
	"tor":                  {"T1090.003 - Multi-hop Proxy"},
	"cobalt_strike":        {"T1071.001 - Web Protocols", "T1059.001 - PowerShell"},
	"emotet":               {"T1566.001 - Spearphishing Attachment", "T1055 - Process Injection"},
	"bruteforce":           {"T1110 - Brute Force"},
	"scanner":              {"T1595 - Active Scanning"},
	"dga":                  {"T1568.002 - Domain Generation Algorithms"},
	"exfiltration":         {"T1041 - Exfiltration Over C2 Channel"},
	"persistence":          {"T1547 - Boot or Logon Autostart Execution"},
	"lateral_movement":     {"T1021 - Remote Services"},
	"privilege_escalation": {"T1068 - Exploitation for Privilege Escalation"},
}

// EnrichWithMitre derives MITRE technique tags from each IOC's tags and
// merges them into MitreTechniques, capped at 15, leaving any techniques
// already present untouched.
func EnrichWithMitre(iocs []IOC) []IOC {
	for idx, i := range iocs {
		existing := make(map[string]struct{}, len(i.MitreTechniques))
		for _, t := range i.MitreTechniques {
			existing[t] = struct{}{}
		}

		for _, tag := range i.Tags {
			normalized := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(tag))
			for key, techniques := range tagToTechnique {
				if strings.Contains(normalized, key) {
					for _, tech := range techniques {
						existing[tech] = struct{}{}
					}
				}
			}
		}

		merged := make([]string, 0, len(existing))
		for t := range existing {
			merged = append(merged, t)
		}
		if len(merged) > 15 {
			merged = merged[:15]
		}
		iocs[idx].MitreTechniques = merged
	}

	return iocs
}
