package ioc

import "testing"

func TestEnrichWithMitreMapsKnownTags(t *testing.T) {
	iocs := []IOC{{Tags: []string{"ransomware"}}}
	out := EnrichWithMitre(iocs)
	if len(out[0].MitreTechniques) != 2 {
		t.Errorf("MitreTechniques = %v, want 2 techniques for ransomware", out[0].MitreTechniques)
	}
}

func TestEnrichWithMitreNormalizesSeparators(t *testing.T) {
	iocs := []IOC{{Tags: []string{"spear-phishing"}}}
	out := EnrichWithMitre(iocs)
	if len(out[0].MitreTechniques) != 1 {
		t.Errorf("MitreTechniques = %v, want the phishing technique to match", out[0].MitreTechniques)
	}
}

func TestEnrichWithMitreIgnoresUnknownTags(t *testing.T) {
	iocs := []IOC{{Tags: []string{"benign-file"}}}
	out := EnrichWithMitre(iocs)
	if len(out[0].MitreTechniques) != 0 {
		t.Errorf("MitreTechniques = %v, want none for an unmapped tag", out[0].MitreTechniques)
	}
}

func TestEnrichWithMitreCapsAtFifteen(t *testing.T) {
	iocs := []IOC{{Tags: []string{
		"c2", "ransomware", "phishing", "spearphishing", "credential_theft",
		"trojan", "rat", "keylogger", "dropper", "tor",
		"cobalt_strike", "emotet", "bruteforce", "scanner", "dga",
		"exfiltration", "persistence", "lateral_movement", "privilege_escalation",
	}}}
	out := EnrichWithMitre(iocs)
	if len(out[0].MitreTechniques) > 15 {
		t.Errorf("MitreTechniques len = %d, want capped at 15", len(out[0].MitreTechniques))
	}
}
