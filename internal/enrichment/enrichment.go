// Package enrichment implements the enrichment aggregator (spec C3): it
// fans a single indicator out across configured threat-intelligence
// sources, aggregates their verdicts with weighted voting, and derives
// recommended actions and MITRE ATT&CK techniques from the result.
package enrichment

import (
	"context"
	"time"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// Source is one threat-intelligence provider the aggregator can query.
type Source string

const (
	SourceVirusTotal Source = "virustotal"
	SourceAbuseIPDB  Source = "abuseipdb"
	SourceShodan     Source = "shodan"
	SourceOTX        Source = "otx"
	SourceGreyNoise  Source = "greynoise"
	SourceMISP       Source = "misp"
	SourceInternal   Source = "internal"
)

func (s Source) Valid() bool {
	switch s {
	case SourceVirusTotal, SourceAbuseIPDB, SourceShodan, SourceOTX, SourceGreyNoise, SourceMISP, SourceInternal:
		return true
	}
	return false
}

// defaultSources mirrors the applicable-sources-per-type table: IPs get
// the full reputation panel, hashes, domains and URLs get VT+OTX, emails
// and CVEs get OTX only, everything else falls back to internal-only.
var defaultSources = map[ioc.Type][]Source{
	ioc.TypeIP:     {SourceVirusTotal, SourceAbuseIPDB, SourceShodan, SourceGreyNoise, SourceOTX},
	ioc.TypeDomain: {SourceVirusTotal, SourceOTX},
	ioc.TypeURL:    {SourceVirusTotal, SourceOTX},
	ioc.TypeMD5:    {SourceVirusTotal, SourceOTX},
	ioc.TypeSHA1:   {SourceVirusTotal, SourceOTX},
	ioc.TypeSHA256: {SourceVirusTotal, SourceOTX},
	ioc.TypeEmail:  {SourceOTX},
	ioc.TypeCVE:    {SourceOTX},
}

func applicableSources(t ioc.Type) []Source {
	if sources, ok := defaultSources[t]; ok {
		return sources
	}
	return []Source{SourceInternal}
}

// SourceResult is one provider's verdict on an indicator.
type SourceResult struct {
	Source       Source
	Available    bool
	ThreatLevel  ioc.ThreatLevel
	Confidence   float64
	RawScore     float64
	Detections   int
	TotalEngines int
	Categories   []string
	Tags         []string
	Country      string
	ASN          string
	ISP          string
	RelatedIOCs  []string
	Error        string
}

// Result is the aggregated enrichment verdict for one indicator.
type Result struct {
	Value      string
	Type       ioc.Type
	EnrichedAt time.Time
	IsCached   bool

	OverallThreatLevel ioc.ThreatLevel
	RiskScore          float64
	Confidence         float64

	SourceResults map[Source]SourceResult

	Categories  []string
	Tags        []string
	RelatedIOCs []string

	GeographicInfo map[string]string

	RecommendedActions []string
	MitreTechniques    []string

	SourcesQueried  int
	SourcesWithData int
}

// SourceQuerier looks a single indicator up against one provider. Each
// provider's querier is independent so a slow or failing source doesn't
// block the others during fan-out.
type SourceQuerier interface {
	Query(ctx context.Context, value string, t ioc.Type) SourceResult
}
