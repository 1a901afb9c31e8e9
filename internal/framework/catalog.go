package framework

// catalog is the static phase->mapping table for every supported
// framework. Built once at init time from the literal data below, so
// lookups never rebuild it (ControlsForPhase returns a copy of the
// control slice).
var catalog = map[Framework]map[Phase]PhaseMapping{}

func register(fw Framework, phase Phase, m PhaseMapping) {
	m.Framework = fw
	m.Phase = phase
	for i := range m.Controls {
		m.Controls[i].Framework = fw
	}
	if catalog[fw] == nil {
		catalog[fw] = make(map[Phase]PhaseMapping)
	}
	catalog[fw][phase] = m
}

func ctl(id, name, family string, descAndEvidence ...string) Control {
	c := Control{ControlID: id, Name: name, Family: family}
	if len(descAndEvidence) > 0 {
		c.Description = descAndEvidence[0]
	}
	if len(descAndEvidence) > 1 {
		c.EvidenceRequirements = descAndEvidence[1:]
	}
	return c
}

func init() {
	registerISO27001()
	registerISO27035()
	registerNISTCSF2()
	registerNIST80053()
	registerNIST80061()
	registerBSIGrundschutz()
	registerMITREATTACK()
	registerOWASPTop10()
	registerNIS2()
}

// registerISO27001 ports ISO27001_PHASE_MAPPING from iso_mapper.py.
func registerISO27001() {
	fw := ISO27001
	register(fw, PhaseDetection, PhaseMapping{
		Description: "Incident detection and initial classification",
		Mandatory:   []string{"A.5.24", "A.5.25"},
		Controls: []Control{
			ctl("A.5.24", "Information security incident management planning and preparation", "Organizational",
				"Plans and procedures for managing information security incidents shall be established and communicated."),
			ctl("A.5.25", "Assessment and decision on information security events", "Organizational",
				"Information security events shall be assessed and classified as information security incidents."),
			ctl("A.8.15", "Logging", "Technological",
				"Logs that record activities, exceptions, faults and other relevant events shall be produced, stored, protected and analyzed."),
			ctl("A.8.16", "Monitoring activities", "Technological",
				"Networks, systems and applications shall be monitored for anomalous behavior."),
		},
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Description: "Incident analysis and evidence collection",
		Mandatory:   []string{"A.5.26", "A.5.28"},
		Controls: []Control{
			ctl("A.5.26", "Response to information security incidents", "Organizational",
				"Information security incidents shall be responded to in accordance with documented procedures."),
			ctl("A.5.28", "Collection of evidence", "Organizational",
				"Procedures for identification, collection, acquisition and preservation of evidence shall be defined and implemented."),
			ctl("A.8.12", "Data leakage prevention", "Technological",
				"Data leakage prevention measures shall be applied to systems, networks and any other devices that process, store or transmit sensitive information."),
		},
	})
	register(fw, PhaseContainment, PhaseMapping{
		Description: "Incident containment activities",
		Mandatory:   []string{"A.5.26"},
		Controls: []Control{
			ctl("A.5.26", "Response to information security incidents", "Organizational",
				"Information security incidents shall be responded to in accordance with documented procedures."),
			ctl("A.8.20", "Networks security", "Technological",
				"Networks and network devices shall be secured, managed and controlled."),
			ctl("A.8.21", "Security of network services", "Technological",
				"Security mechanisms, service levels and service requirements shall be identified, implemented and monitored."),
			ctl("A.8.22", "Segregation of networks", "Technological",
				"Groups of information services, users and information systems shall be segregated in networks."),
		},
	})
	register(fw, PhaseEradication, PhaseMapping{
		Description: "Threat eradication activities",
		Mandatory:   []string{"A.5.26", "A.8.7", "A.8.8"},
		Controls: []Control{
			ctl("A.5.26", "Response to information security incidents", "Organizational",
				"Information security incidents shall be responded to in accordance with documented procedures."),
			ctl("A.8.7", "Protection against malware", "Technological",
				"Protection against malware shall be implemented and supported by appropriate user awareness."),
			ctl("A.8.8", "Management of technical vulnerabilities", "Technological",
				"Information about technical vulnerabilities shall be obtained, evaluated and appropriate measures taken."),
			ctl("A.8.9", "Configuration management", "Technological",
				"Configurations of hardware, software, services and networks shall be established, documented, implemented, monitored and reviewed."),
		},
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Description: "Recovery and restoration activities",
		Mandatory:   []string{"A.5.29", "A.5.30", "A.8.13"},
		Controls: []Control{
			ctl("A.5.29", "Information security during disruption", "Organizational",
				"Plans shall be maintained for ensuring information security during disruptions."),
			ctl("A.5.30", "ICT readiness for business continuity", "Organizational",
				"ICT readiness shall be planned, implemented, maintained and tested based on business continuity objectives."),
			ctl("A.8.13", "Information backup", "Technological",
				"Backup copies of information, software and system images shall be maintained and regularly tested."),
			ctl("A.8.14", "Redundancy of information processing facilities", "Technological",
				"Information processing facilities shall be implemented with sufficient redundancy."),
		},
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Description: "Post-incident review and improvement",
		Mandatory:   []string{"A.5.27"},
		Controls: []Control{
			ctl("A.5.27", "Learning from information security incidents", "Organizational",
				"Knowledge gained from information security incidents shall be used to strengthen and improve the information security controls."),
			ctl("A.5.35", "Independent review of information security", "Organizational",
				"The organization's approach to managing information security shall be reviewed independently at planned intervals."),
			ctl("A.5.36", "Compliance with policies, rules and standards for information security", "Organizational",
				"Compliance with policies, rules and standards shall be regularly reviewed."),
		},
	})
}

// registerISO27035 maps the 5 ISO 27035 incident-management phases onto
// the 6-phase IR model (analysis splits across ASSESSMENT_DECISION).
func registerISO27035() {
	fw := ISO27035
	doc := func(items ...string) []string { return items }
	register(fw, PhaseDetection, PhaseMapping{
		Description: "Detection and reporting",
		Controls: []Control{
			ctl("27035-DR.1", "Detection mechanisms operational", "Detection and Reporting", "Technical and human detection capability is in place."),
			ctl("27035-DR.2", "Reporting channels available", "Detection and Reporting", "Staff and systems can report suspected events through defined channels."),
		},
		DocumentationRequired: doc("Incident management policy", "Incident response plan"),
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Description: "Assessment and decision",
		Controls: []Control{
			ctl("27035-AD.1", "Events assessed against classification scheme", "Assessment and Decision", "Reported events are triaged and classified consistently."),
			ctl("27035-AD.2", "Decision to declare an incident is documented", "Assessment and Decision", "The assessment that promotes an event to an incident is recorded."),
		},
		DocumentationRequired: doc("Classification scheme", "Escalation procedures"),
	})
	register(fw, PhaseContainment, PhaseMapping{
		Description: "Response",
		Controls: []Control{
			ctl("27035-RE.1", "Containment actions follow the response plan", "Responses", "Containment is executed against a documented incident response plan."),
		},
		DocumentationRequired: doc("Incident response plan", "Communication plan"),
	})
	register(fw, PhaseEradication, PhaseMapping{
		Description: "Response",
		Controls: []Control{
			ctl("27035-RE.2", "Eradication actions are recorded", "Responses", "Root-cause removal steps are logged for later review."),
		},
		DocumentationRequired: doc("Incident response plan"),
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Description: "Response",
		Controls: []Control{
			ctl("27035-RE.3", "Recovery validated against continuity objectives", "Responses", "Service restoration is checked against business continuity targets before closure."),
		},
		DocumentationRequired: doc("Business continuity plan"),
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Description: "Lessons learned",
		Controls: []Control{
			ctl("27035-LL.1", "Lessons learned review conducted", "Lessons Learned", "A post-incident review is held and its findings recorded."),
			ctl("27035-LL.2", "Improvements fed back into policy", "Lessons Learned", "Findings from the review are tracked to closure against the incident management policy."),
		},
		DocumentationRequired: doc("Lessons-learned report", "Updated incident management policy"),
	})
}

// registerNISTCSF2 ports CSF_PHASE_MAPPING from nist_integration.py
// (CSF 2.0 aligned to SP 800-61r3).
func registerNISTCSF2() {
	fw := NISTCSF2
	register(fw, PhaseDetection, PhaseMapping{
		Mandatory: []string{"DE.AE", "DE.CM"},
		Controls: []Control{
			ctl("DE.AE-01", "Anomalies and events are analyzed", "Detect"),
			ctl("DE.AE-02", "Potentially adverse events are analyzed", "Detect"),
			ctl("DE.AE-03", "Event data are collected", "Detect"),
			ctl("DE.CM-01", "Networks are monitored", "Detect"),
			ctl("DE.CM-02", "Physical environment is monitored", "Detect"),
			ctl("DE.CM-03", "Personnel activity is monitored", "Detect"),
		},
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Mandatory: []string{"RS.AN", "RS.CO"},
		Controls: []Control{
			ctl("RS.AN-01", "Incident analysis is conducted", "Respond"),
			ctl("RS.AN-02", "Incident impact is understood", "Respond"),
			ctl("RS.AN-03", "Forensics are performed", "Respond"),
			ctl("RS.CO-01", "Incident status is communicated", "Respond"),
			ctl("RS.CO-02", "Incident reports are shared", "Respond"),
		},
	})
	register(fw, PhaseContainment, PhaseMapping{
		Mandatory: []string{"RS.MI"},
		Controls: []Control{
			ctl("RS.MI-01", "Incidents are contained", "Respond"),
			ctl("RS.MI-02", "Incidents are mitigated", "Respond"),
		},
	})
	register(fw, PhaseEradication, PhaseMapping{
		Mandatory: []string{"RS.MI", "PR.DS"},
		Controls: []Control{
			ctl("RS.MI-01", "Incidents are contained", "Respond"),
			ctl("RS.MI-02", "Incidents are mitigated", "Respond"),
			ctl("PR.DS-01", "Data-at-rest is protected", "Protect"),
			ctl("PR.DS-02", "Data-in-transit is protected", "Protect"),
		},
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Mandatory: []string{"RC.RP", "RC.CO"},
		Controls: []Control{
			ctl("RC.RP-01", "Recovery plan is executed", "Recover"),
			ctl("RC.CO-01", "Recovery is communicated", "Recover"),
			ctl("RC.CO-02", "Recovery status is reported", "Recover"),
		},
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Mandatory: []string{"RS.IM", "GV.OC"},
		Controls: []Control{
			ctl("RS.IM-01", "Response plans incorporate lessons learned", "Respond"),
			ctl("RS.IM-02", "Response strategies are updated", "Respond"),
		},
	})
}

// registerNIST80053 ports SP800_53_PHASE_MAPPING (IR control family).
func registerNIST80053() {
	fw := NIST80053
	ir4 := ctl("IR-4", "Incident Handling", "Incident Response", "The organization implements an incident handling capability for security incidents.")
	ir5 := ctl("IR-5", "Incident Monitoring", "Incident Response", "The organization tracks and documents information system security incidents.")
	ir6 := ctl("IR-6", "Incident Reporting", "Incident Response", "The organization requires personnel to report suspected incidents within organization-defined time periods.")
	ir8 := ctl("IR-8", "Incident Response Plan", "Incident Response", "The organization develops and implements an incident response plan.")

	register(fw, PhaseDetection, PhaseMapping{Controls: []Control{ir4, ir6}})
	register(fw, PhaseAnalysis, PhaseMapping{Controls: []Control{ir4, ir5}})
	register(fw, PhaseContainment, PhaseMapping{Controls: []Control{ir4}})
	register(fw, PhaseEradication, PhaseMapping{Controls: []Control{ir4}})
	register(fw, PhaseRecovery, PhaseMapping{Controls: []Control{ir4}})
	register(fw, PhasePostIncident, PhaseMapping{Controls: []Control{ir4, ir8}, Description: "Incident Handling (lessons learned)"})
}

// registerNIST80061 gives the originating SP 800-61r3 IR-lifecycle
// guidance its own entries, distinct from the CSF 2.0/800-53 control
// catalogs that reference it.
func registerNIST80061() {
	fw := NIST80061
	register(fw, PhaseDetection, PhaseMapping{
		Description: "Detection and Analysis",
		Mandatory:   []string{"800-61.DET-1"},
		Controls: []Control{
			ctl("800-61.DET-1", "Precursors and indicators are monitored", "Detection and Analysis", "Sources of precursors and indicators are continuously monitored."),
			ctl("800-61.DET-2", "Events are prioritized", "Detection and Analysis", "Detected events are prioritized by functional/information/recoverability impact."),
		},
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Description: "Detection and Analysis",
		Mandatory:   []string{"800-61.DET-3"},
		Controls: []Control{
			ctl("800-61.DET-3", "Incident is documented as analysis proceeds", "Detection and Analysis", "Analysts record actions taken and evidence gathered as the incident is analyzed."),
		},
	})
	register(fw, PhaseContainment, PhaseMapping{
		Description: "Containment, Eradication, and Recovery",
		Mandatory:   []string{"800-61.CER-1"},
		Controls: []Control{
			ctl("800-61.CER-1", "Containment strategy is selected", "Containment, Eradication, and Recovery", "A containment strategy appropriate to the incident category is chosen and applied."),
		},
	})
	register(fw, PhaseEradication, PhaseMapping{
		Description: "Containment, Eradication, and Recovery",
		Controls: []Control{
			ctl("800-61.CER-2", "Eradication eliminates the root cause", "Containment, Eradication, and Recovery", "Components of the incident are eliminated, including disabling breached accounts and removing malware."),
		},
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Description: "Containment, Eradication, and Recovery",
		Controls: []Control{
			ctl("800-61.CER-3", "Systems are restored to normal operation", "Containment, Eradication, and Recovery", "Affected systems are restored and validated before being returned to production."),
		},
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Description: "Post-Incident Activity",
		Mandatory:   []string{"800-61.POST-1"},
		Controls: []Control{
			ctl("800-61.POST-1", "Lessons-learned meeting is held", "Post-Incident Activity", "A lessons-learned meeting is held within a reasonable time of incident closure."),
		},
	})
}

// registerBSIGrundschutz ports the PHASE_TO_DER_MODULES table from
// bsi_integration.py.
func registerBSIGrundschutz() {
	fw := BSIGrundschutz
	register(fw, PhaseDetection, PhaseMapping{
		Mandatory: []string{"DER.1", "DER.1.A1"},
		Controls: []Control{
			ctl("DER.1", "Detektion von sicherheitsrelevanten Ereignissen", "Detektion und Reaktion", "Establishment of mechanisms to detect security-relevant events."),
			ctl("DER.1.A1", "Erstellung einer Sicherheitsrichtlinie", "Detektion und Reaktion", "A detection policy is established."),
			ctl("DER.1.A3", "Festlegung von Meldewegen", "Detektion und Reaktion", "Reporting channels for detected events are defined."),
			ctl("DER.1.A4", "Sensibilisierung der Mitarbeiter", "Detektion und Reaktion", "Staff are made aware of detection responsibilities."),
			ctl("DER.1.A5", "Einsatz von Systemfunktionen zur Detektion", "Detektion und Reaktion", "System-level detection functions are deployed."),
		},
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Mandatory: []string{"DER.2.1", "DER.2.2", "DER.2.1.A1"},
		Controls: []Control{
			ctl("DER.2.1", "Behandlung von Sicherheitsvorfällen", "Detektion und Reaktion", "Incident handling process for security incidents."),
			ctl("DER.2.1.A1", "Definition eines Sicherheitsvorfalls", "Detektion und Reaktion", "A definition of a security incident is adopted."),
			ctl("DER.2.1.A2", "Erstellung einer Richtlinie zur Behandlung", "Detektion und Reaktion", "An incident-handling policy is established."),
			ctl("DER.2.1.A3", "Festlegung von Verantwortlichkeiten", "Detektion und Reaktion", "Responsibilities for incident handling are assigned."),
			ctl("DER.2.2", "Vorsorge für die IT-Forensik", "Detektion und Reaktion", "Preparatory measures for IT forensics."),
			ctl("DER.2.2.A1", "Prüfung rechtlicher Rahmenbedingungen", "Detektion und Reaktion", "Legal prerequisites for forensic evidence handling are reviewed."),
		},
	})
	register(fw, PhaseContainment, PhaseMapping{
		Mandatory: []string{"DER.2.1", "DER.2.1.A4"},
		Controls: []Control{
			ctl("DER.2.1", "Behandlung von Sicherheitsvorfällen", "Detektion und Reaktion", "Incident handling process for security incidents."),
			ctl("DER.2.1.A3", "Festlegung von Verantwortlichkeiten", "Detektion und Reaktion", "Responsibilities for incident handling are assigned."),
			ctl("DER.2.1.A4", "Behebung von Sicherheitsvorfällen", "Detektion und Reaktion", "Remediation of security incidents is carried out."),
		},
	})
	register(fw, PhaseEradication, PhaseMapping{
		Mandatory: []string{"DER.2.3", "DER.2.3.A2"},
		Controls: []Control{
			ctl("DER.2.3", "Bereinigung weitreichender Sicherheitsvorfälle", "Detektion und Reaktion", "Clean-up of far-reaching security incidents."),
			ctl("DER.2.3.A1", "Einrichtung eines Leitungsgremiums", "Detektion und Reaktion", "A steering committee is formed for major incidents."),
			ctl("DER.2.3.A2", "Entscheidung für eine Bereinigungsstrategie", "Detektion und Reaktion", "A clean-up strategy is selected and approved."),
		},
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Mandatory: []string{"DER.4", "CON.3", "DER.4.A1"},
		Controls: []Control{
			ctl("DER.4", "Notfallmanagement", "Detektion und Reaktion", "Emergency/business-continuity management."),
			ctl("DER.4.A1", "Erstellung eines Notfallhandbuchs", "Detektion und Reaktion", "An emergency response manual is produced."),
			ctl("DER.4.A2", "Integration in Sicherheitskonzept", "Detektion und Reaktion", "Emergency management is integrated into the security concept."),
			ctl("CON.3", "Sicherheitskonzept", "Konzeption und Vorgehensweise", "An overarching security concept governs recovery planning."),
		},
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Mandatory: []string{"DER.2.1.A6", "DER.2.1.A7"},
		Controls: []Control{
			ctl("DER.2.1", "Behandlung von Sicherheitsvorfällen (Lessons Learned)", "Detektion und Reaktion", "Incident handling process, lessons-learned stage."),
			ctl("DER.2.1.A6", "Nachbereitung von Sicherheitsvorfällen", "Detektion und Reaktion", "Post-incident follow-up is performed."),
			ctl("DER.2.1.A7", "Meldung von Sicherheitsvorfällen", "Detektion und Reaktion", "Incidents are reported per the defined escalation policy."),
		},
	})
}

// registerMITREATTACK ports PHASE_TO_TACTICS plus the subset of
// TECHNIQUE_NAMES each tactic covers from mitre_integration.py.
func registerMITREATTACK() {
	fw := MITREATTACK
	register(fw, PhaseDetection, PhaseMapping{
		Description: "initial-access, execution, discovery",
		Controls: []Control{
			ctl("T1566", "Phishing", "initial-access"),
			ctl("T1190", "Exploit Public-Facing Application", "initial-access"),
			ctl("T1078", "Valid Accounts", "initial-access"),
			ctl("T1059", "Command and Scripting Interpreter", "execution"),
			ctl("T1082", "System Information Discovery", "discovery"),
			ctl("T1083", "File and Directory Discovery", "discovery"),
		},
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Description: "initial-access, execution, persistence, privilege-escalation, defense-evasion, credential-access, discovery, lateral-movement, collection, exfiltration",
		Controls: []Control{
			ctl("T1053", "Scheduled Task/Job", "persistence"),
			ctl("T1543", "Create or Modify System Process", "persistence"),
			ctl("T1562", "Impair Defenses", "defense-evasion"),
			ctl("T1070", "Indicator Removal", "defense-evasion"),
			ctl("T1003", "OS Credential Dumping", "credential-access"),
			ctl("T1555", "Credentials from Password Stores", "credential-access"),
			ctl("T1018", "Remote System Discovery", "discovery"),
			ctl("T1021", "Remote Services", "lateral-movement"),
			ctl("T1560", "Archive Collected Data", "collection"),
			ctl("T1041", "Exfiltration Over C2 Channel", "exfiltration"),
		},
	})
	register(fw, PhaseContainment, PhaseMapping{
		Description: "lateral-movement, command-and-control, exfiltration",
		Controls: []Control{
			ctl("T1021", "Remote Services", "lateral-movement"),
			ctl("T1570", "Lateral Tool Transfer", "lateral-movement"),
			ctl("T1041", "Exfiltration Over C2 Channel", "command-and-control"),
			ctl("T1567", "Exfiltration Over Web Service", "exfiltration"),
		},
	})
	register(fw, PhaseEradication, PhaseMapping{
		Description: "persistence, privilege-escalation, defense-evasion",
		Controls: []Control{
			ctl("T1053", "Scheduled Task/Job", "persistence"),
			ctl("T1547", "Boot or Logon Autostart Execution", "persistence"),
			ctl("T1562.001", "Disable or Modify Tools", "defense-evasion"),
			ctl("T1027", "Obfuscated Files or Information", "defense-evasion"),
		},
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Description: "impact",
		Controls: []Control{
			ctl("T1486", "Data Encrypted for Impact", "impact"),
			ctl("T1490", "Inhibit System Recovery", "impact"),
			ctl("T1561", "Disk Wipe", "impact"),
		},
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Description: "initial-access (root cause), impact",
		Controls: []Control{
			ctl("T1566", "Phishing", "initial-access"),
			ctl("T1489", "Service Stop", "impact"),
			ctl("T1491", "Defacement", "impact"),
		},
	})
}

// registerOWASPTop10 maps the OWASP Top 10 2021 categories onto the
// phases where that weakness class is most often implicated. Hand-curated:
// no integration file for OWASP was part of the retrieval pack.
func registerOWASPTop10() {
	fw := OWASPTop10
	a01 := ctl("A01:2021", "Broken Access Control", "Access Control", "Restrictions on authenticated users are not properly enforced.")
	a02 := ctl("A02:2021", "Cryptographic Failures", "Cryptography", "Sensitive data is exposed due to weak or missing cryptographic protection.")
	a03 := ctl("A03:2021", "Injection", "Input Handling", "Untrusted data is interpreted as part of a command or query.")
	a05 := ctl("A05:2021", "Security Misconfiguration", "Configuration", "Insecure default configurations, open cloud storage, or verbose error messages.")
	a06 := ctl("A06:2021", "Vulnerable and Outdated Components", "Supply Chain", "Use of components with known vulnerabilities.")
	a08 := ctl("A08:2021", "Software and Data Integrity Failures", "Integrity", "Code and infrastructure that does not protect against integrity violations.")
	a09 := ctl("A09:2021", "Security Logging and Monitoring Failures", "Detection", "Insufficient logging and monitoring allows breaches to go undetected.")

	register(fw, PhaseDetection, PhaseMapping{Mandatory: []string{"A09:2021"}, Controls: []Control{a09, a05}})
	register(fw, PhaseAnalysis, PhaseMapping{Controls: []Control{a03, a01}})
	register(fw, PhaseContainment, PhaseMapping{Controls: []Control{a01, a05}})
	register(fw, PhaseEradication, PhaseMapping{Mandatory: []string{"A06:2021"}, Controls: []Control{a06, a08}})
	register(fw, PhaseRecovery, PhaseMapping{Controls: []Control{a02, a08}})
	register(fw, PhasePostIncident, PhaseMapping{Controls: []Control{a09, a06}})
}

// registerNIS2 maps the directive's own reporting obligations onto the IR
// phases, grounded on the deadlines the notification engine
// (internal/nis2) already enforces rather than a separate control list.
func registerNIS2() {
	fw := NIS2Framework
	register(fw, PhaseDetection, PhaseMapping{
		Mandatory: []string{"NIS2.Art23.EW"},
		Controls: []Control{
			ctl("NIS2.Art23.EW", "Early warning within 24 hours", "Reporting Obligation", "A significant incident is flagged to the CSIRT within 24 hours of awareness."),
		},
	})
	register(fw, PhaseAnalysis, PhaseMapping{
		Mandatory: []string{"NIS2.Art23.IN"},
		Controls: []Control{
			ctl("NIS2.Art23.IN", "Incident notification within 72 hours", "Reporting Obligation", "An assessment of severity and impact is submitted within 72 hours of awareness."),
		},
	})
	register(fw, PhaseContainment, PhaseMapping{
		Controls: []Control{
			ctl("NIS2.Art21.Containment", "Crisis management procedures", "Risk Management Measure", "Containment follows the entity's documented crisis-management procedures."),
		},
	})
	register(fw, PhaseEradication, PhaseMapping{
		Controls: []Control{
			ctl("NIS2.Art21.Eradication", "Incident handling measures", "Risk Management Measure", "Eradication follows the entity's documented incident-handling procedures."),
		},
	})
	register(fw, PhaseRecovery, PhaseMapping{
		Controls: []Control{
			ctl("NIS2.Art21.BCM", "Business continuity and crisis management", "Risk Management Measure", "Recovery follows backup management and disaster-recovery procedures."),
		},
	})
	register(fw, PhasePostIncident, PhaseMapping{
		Mandatory: []string{"NIS2.Art23.FR"},
		Controls: []Control{
			ctl("NIS2.Art23.FR", "Final report within one month", "Reporting Obligation", "A final report covering root cause and mitigation is submitted within 30 days of the incident notification."),
		},
	})
}
