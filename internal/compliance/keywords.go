package compliance

// controlKeywords is the closed per-control keyword table the evaluator
// matches free-text evidence against. The ISO entries are ported verbatim
// from iso_mapper.py's keyword table; the rest are extended in the same
// style, one short list of stems per control, for every control
// internal/framework registers.
var controlKeywords = map[string][]string{
	// ISO 27001
	"A.5.24": {"plan", "procedure", "incident management"},
	"A.5.25": {"assess", "classif", "event"},
	"A.5.26": {"response", "respond", "procedure"},
	"A.5.27": {"lesson", "learn", "improve"},
	"A.5.28": {"evidence", "collect", "preserv"},
	"A.5.29": {"continuity", "disruption"},
	"A.5.30": {"readiness", "business continuity"},
	"A.5.35": {"review", "independent"},
	"A.5.36": {"compliance", "policy"},
	"A.8.7":  {"malware", "protect", "antivirus"},
	"A.8.8":  {"vulnerabilit", "patch"},
	"A.8.9":  {"configuration", "config"},
	"A.8.12": {"leakage", "dlp", "exfiltration"},
	"A.8.13": {"backup", "restore"},
	"A.8.14": {"redundancy", "failover"},
	"A.8.15": {"log", "audit"},
	"A.8.16": {"monitor", "anomal"},
	"A.8.20": {"network", "secur"},
	"A.8.21": {"network service", "security service"},
	"A.8.22": {"segregat", "isolat"},

	// ISO 27035
	"27035-DR.1": {"detect", "monitor"},
	"27035-DR.2": {"report", "channel"},
	"27035-AD.1": {"classif", "triage"},
	"27035-AD.2": {"declare", "decision"},
	"27035-RE.1": {"contain", "respond"},
	"27035-RE.2": {"eradicat", "remov"},
	"27035-RE.3": {"recover", "restor"},
	"27035-LL.1": {"lesson", "review"},
	"27035-LL.2": {"improve", "policy"},

	// NIST CSF 2.0
	"DE.AE-01": {"anomal", "analy"},
	"DE.AE-02": {"adverse", "event"},
	"DE.AE-03": {"collect", "event data"},
	"DE.CM-01": {"network", "monitor"},
	"DE.CM-02": {"physical", "monitor"},
	"DE.CM-03": {"personnel", "activity"},
	"RS.AN-01": {"analy", "incident"},
	"RS.AN-02": {"impact"},
	"RS.AN-03": {"forensic"},
	"RS.CO-01": {"status", "communicat"},
	"RS.CO-02": {"report", "share"},
	"RS.MI-01": {"contain"},
	"RS.MI-02": {"mitigat"},
	"PR.DS-01": {"data-at-rest", "encrypt"},
	"PR.DS-02": {"data-in-transit", "encrypt"},
	"RC.RP-01": {"recovery plan", "execut"},
	"RC.CO-01": {"communicat", "recover"},
	"RC.CO-02": {"report", "recover"},
	"RS.IM-01": {"lesson", "plan"},
	"RS.IM-02": {"strateg", "updat"},

	// NIST SP 800-53 (IR family)
	"IR-4": {"incident handling", "respond"},
	"IR-5": {"monitor", "track"},
	"IR-6": {"report", "notif"},
	"IR-8": {"plan", "incident response plan"},

	// NIST SP 800-61
	"800-61.DET-1": {"precursor", "indicator", "monitor"},
	"800-61.DET-2": {"priorit", "impact"},
	"800-61.DET-3": {"document", "analy"},
	"800-61.CER-1": {"contain", "strateg"},
	"800-61.CER-2": {"eradicat", "root cause"},
	"800-61.CER-3": {"restor", "validat"},
	"800-61.POST-1": {"lesson", "meeting"},

	// BSI IT-Grundschutz
	"DER.1":       {"detekt", "detect"},
	"DER.1.A1":    {"richtlinie", "policy"},
	"DER.1.A3":    {"meldeweg", "report"},
	"DER.1.A4":    {"sensibilisier", "awareness"},
	"DER.1.A5":    {"systemfunktion", "detect"},
	"DER.2.1":     {"behandlung", "incident handling"},
	"DER.2.1.A1":  {"definition", "incident"},
	"DER.2.1.A2":  {"richtlinie", "policy"},
	"DER.2.1.A3":  {"verantwortlich", "responsib"},
	"DER.2.1.A4":  {"behebung", "remediat"},
	"DER.2.1.A6":  {"nachbereitung", "post-incident"},
	"DER.2.1.A7":  {"meldung", "report"},
	"DER.2.2":     {"forensik", "forensic"},
	"DER.2.2.A1":  {"rechtlich", "legal"},
	"DER.2.3":     {"bereinigung", "cleanup"},
	"DER.2.3.A1":  {"leitungsgremium", "steering"},
	"DER.2.3.A2":  {"bereinigungsstrateg", "cleanup strategy"},
	"DER.4":       {"notfall", "emergency"},
	"DER.4.A1":    {"notfallhandbuch", "emergency manual"},
	"DER.4.A2":    {"sicherheitskonzept", "security concept"},
	"CON.3":       {"sicherheitskonzept", "security concept"},

	// MITRE ATT&CK (keyed by technique mention/mitigation language)
	"T1566": {"phishing"},
	"T1190": {"exploit", "public-facing"},
	"T1078": {"valid account", "credential"},
	"T1059": {"script", "command"},
	"T1082": {"system information", "discovery"},
	"T1083": {"file", "directory discovery"},
	"T1053": {"scheduled task", "persistence"},
	"T1543": {"system process"},
	"T1562": {"impair defense", "disable"},
	"T1070": {"indicator removal", "clear log"},
	"T1003": {"credential dump"},
	"T1555": {"password store"},
	"T1018": {"remote system"},
	"T1021": {"remote service", "lateral"},
	"T1560": {"archive", "collect"},
	"T1041": {"exfiltrat", "c2"},
	"T1570": {"lateral tool"},
	"T1567": {"exfiltrat", "web service"},
	"T1547": {"autostart", "persistence"},
	"T1562.001": {"disable tool"},
	"T1027":     {"obfuscat"},
	"T1486":     {"encrypt", "ransom"},
	"T1490":     {"inhibit recovery"},
	"T1561":     {"disk wipe"},
	"T1489":     {"service stop"},
	"T1491":     {"deface"},

	// OWASP Top 10 2021
	"A01:2021": {"access control", "authoriz"},
	"A02:2021": {"cryptograph", "encrypt"},
	"A03:2021": {"injection", "sanitiz"},
	"A05:2021": {"misconfigur", "hardening"},
	"A06:2021": {"vulnerable component", "outdated", "patch"},
	"A08:2021": {"integrity", "signing"},
	"A09:2021": {"logging", "monitoring"},

	// NIS2
	"NIS2.Art23.EW":         {"early warning", "24 hour"},
	"NIS2.Art23.IN":         {"notification", "72 hour"},
	"NIS2.Art21.Containment": {"crisis management", "contain"},
	"NIS2.Art21.Eradication": {"incident handling", "eradicat"},
	"NIS2.Art21.BCM":         {"business continuity", "backup"},
	"NIS2.Art23.FR":          {"final report", "root cause"},
}

// controlRecommendations gives a canned remediation suggestion per
// control when its status is not compliant, with a generic fallback when
// a control has no specific entry (ported from iso_mapper.py's
// _get_recommendation, extended to the full catalog).
var controlRecommendations = map[string]string{
	"A.5.24": "Ensure incident management procedures are documented and communicated.",
	"A.5.25": "Document the incident classification and assessment process.",
	"A.5.26": "Follow documented incident response procedures.",
	"A.5.27": "Conduct and document post-incident review and lessons learned.",
	"A.5.28": "Implement proper evidence collection and chain of custody procedures.",
	"A.5.29": "Maintain information security during incident response.",
	"A.5.30": "Ensure ICT recovery capabilities are available and tested.",
	"A.5.35": "Schedule independent security review.",
	"A.5.36": "Verify compliance with security policies.",
	"A.8.7":  "Implement and document malware protection measures.",
	"A.8.8":  "Apply security patches and document vulnerability management.",
	"A.8.9":  "Review and document configuration management.",
	"A.8.13": "Verify backup availability and document restoration capability.",
	"A.8.15": "Ensure logging is enabled and log data is preserved.",
	"A.8.16": "Document monitoring activities and anomaly detection.",
	"A.8.22": "Document network isolation and segregation measures.",
	"IR-4":   "Document the incident-handling steps taken against the organization's IR plan.",
	"IR-6":   "Confirm incident reporting timelines were met and record the report.",
	"DER.1":  "Document the detection mechanism that surfaced this incident.",
	"DER.2.1": "Record incident-handling actions against the documented policy.",
	"DER.4":  "Confirm the emergency manual was followed for recovery.",
	"T1486":  "Document ransomware containment and recovery-from-backup steps.",
	"A09:2021": "Confirm logging and monitoring evidence exists for this incident.",
	"A06:2021": "Document remediation of the vulnerable component involved.",
	"NIS2.Art23.EW": "Confirm the early warning was filed within the 24-hour deadline.",
	"NIS2.Art23.IN": "Confirm the incident notification was filed within the 72-hour deadline.",
	"NIS2.Art23.FR": "Confirm the final report was filed within 30 days and covers root cause.",
}

func recommendationFor(controlID string) string {
	if r, ok := controlRecommendations[controlID]; ok {
		return r
	}
	return "Review and address requirements for " + controlID + "."
}
