// Package ioc implements the indicator-of-compromise normalizer (spec C1):
// canonicalization, type detection, validation, deduplication, merging,
// risk scoring and fingerprinting of indicators gathered from CTI feeds,
// webhooks and bulk submissions. Every pure function here is grounded on
// the platform's original Python feed normalizer and is total except for
// Validate, which is the only operation allowed to report a bad literal.
package ioc

import (
	"time"

	"github.com/google/uuid"
)

// Type is the closed set of indicator kinds the platform understands.
type Type string

const (
	TypeIP          Type = "ip"
	TypeDomain      Type = "domain"
	TypeHostname    Type = "hostname"
	TypeURL         Type = "url"
	TypeMD5         Type = "md5"
	TypeSHA1        Type = "sha1"
	TypeSHA256      Type = "sha256"
	TypeEmail       Type = "email"
	TypeCVE         Type = "cve"
	TypeMutex       Type = "mutex"
	TypeFilePath    Type = "file_path"
	TypeProcess     Type = "process"
	TypeRegistryKey Type = "registry_key"
	TypeUnknown     Type = "unknown"
)

func (t Type) Valid() bool {
	switch t {
	case TypeIP, TypeDomain, TypeHostname, TypeURL, TypeMD5, TypeSHA1, TypeSHA256,
		TypeEmail, TypeCVE, TypeMutex, TypeFilePath, TypeProcess, TypeRegistryKey, TypeUnknown:
		return true
	}
	return false
}

// Status is the lifecycle state of an indicator within the platform.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusFalsePos  Status = "false_positive"
	StatusWhitelist Status = "whitelisted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusFalsePos, StatusWhitelist:
		return true
	}
	return false
}

// ThreatLevel is the closed ordinal severity bucket an indicator or an
// enrichment result can carry.
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "critical"
	ThreatHigh     ThreatLevel = "high"
	ThreatMedium   ThreatLevel = "medium"
	ThreatLow      ThreatLevel = "low"
	ThreatClean    ThreatLevel = "clean"
	ThreatUnknown  ThreatLevel = "unknown"
)

func (l ThreatLevel) Valid() bool {
	switch l {
	case ThreatCritical, ThreatHigh, ThreatMedium, ThreatLow, ThreatClean, ThreatUnknown:
		return true
	}
	return false
}

// weight maps a threat level to the numeric vote internal/enrichment's
// weighted aggregation and RiskScore use. Unknown carries no weight.
var levelWeight = map[ThreatLevel]int{
	ThreatCritical: 100,
	ThreatHigh:     75,
	ThreatMedium:   50,
	ThreatLow:      25,
	ThreatClean:    0,
}

// Weight returns l's numeric severity, and false if l abstains (unknown).
func (l ThreatLevel) Weight() (int, bool) {
	w, ok := levelWeight[l]
	return w, ok
}

// IOC is a single indicator of compromise, scoped to the tenant that
// submitted or ingested it.
type IOC struct {
	ID             uuid.UUID
	TenantID       string
	Type           Type
	Value          string // raw, as submitted
	NormalizedValue string // Canonicalize(Value, Type)
	Status         Status
	ThreatLevel    ThreatLevel
	Confidence     float64 // 0.0-1.0
	RiskScore      float64 // 0-100, see RiskScore()
	Tags           []string
	Source         string // feed/adapter name, or "manual", "webhook"
	Description    string // free-text context carried from feed payloads
	FirstSeen      time.Time
	LastSeen       time.Time
	SeenCount      int
	MitreTechniques []string
	RelatedIOCs    []string // fingerprints of co-occurring indicators
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Fingerprint is a stable, content-addressed identity for an indicator:
// SHA-256(type || ":" || normalize(value)). Two IOCs with the same type
// and value always collide here regardless of tenant, source or casing,
// which is exactly what Deduplicate and Merge group on.
func (i IOC) ComputeFingerprint() string {
	return Fingerprint(i.Type, i.Value)
}
