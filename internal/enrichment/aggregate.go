package enrichment

import (
	"sort"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

var threatWeight = map[ioc.ThreatLevel]float64{
	ioc.ThreatCritical: 100,
	ioc.ThreatHigh:     75,
	ioc.ThreatMedium:   50,
	ioc.ThreatLow:      25,
	ioc.ThreatClean:    0,
}

// aggregate folds per-source verdicts into one overall assessment,
// porting _aggregate_results's weighted-vote arithmetic and union rules.
func aggregate(value string, t ioc.Type, results map[Source]SourceResult) *Result {
	r := &Result{
		Value:          value,
		Type:           t,
		SourceResults:  results,
		GeographicInfo: map[string]string{},
	}

	r.SourcesQueried = len(results)
	for _, sr := range results {
		if sr.Available {
			r.SourcesWithData++
		}
	}

	var weightedSum, totalConfidence float64
	var voters int
	for _, sr := range results {
		if !sr.Available || sr.ThreatLevel == ioc.ThreatUnknown {
			continue
		}
		weight, ok := threatWeight[sr.ThreatLevel]
		if !ok {
			continue
		}
		weightedSum += weight * sr.Confidence
		totalConfidence += sr.Confidence
		voters++
	}

	if voters > 0 && totalConfidence > 0 {
		avg := weightedSum / totalConfidence
		r.RiskScore = avg
		r.Confidence = minFloat(totalConfidence/float64(voters), 1.0)
		r.OverallThreatLevel = bucketThreatLevel(avg)
	} else {
		r.OverallThreatLevel = ioc.ThreatUnknown
	}

	categories := map[string]struct{}{}
	tags := map[string]struct{}{}
	related := map[string]struct{}{}
	for _, sr := range results {
		for _, c := range sr.Categories {
			categories[c] = struct{}{}
		}
		for _, tag := range sr.Tags {
			tags[tag] = struct{}{}
		}
		for _, rel := range sr.RelatedIOCs {
			related[rel] = struct{}{}
		}
		if sr.Country != "" {
			if _, ok := r.GeographicInfo["country"]; !ok {
				r.GeographicInfo["country"] = sr.Country
			}
		}
		if sr.ASN != "" {
			if _, ok := r.GeographicInfo["asn"]; !ok {
				r.GeographicInfo["asn"] = sr.ASN
			}
		}
		if sr.ISP != "" {
			if _, ok := r.GeographicInfo["isp"]; !ok {
				r.GeographicInfo["isp"] = sr.ISP
			}
		}
	}
	r.Categories = sortedKeys(categories)
	r.Tags = sortedKeys(tags)
	r.RelatedIOCs = sortedKeys(related)

	r.RecommendedActions = generateRecommendations(r)
	r.MitreTechniques = mapToMitre(r.Tags)

	return r
}

func bucketThreatLevel(avg float64) ioc.ThreatLevel {
	switch {
	case avg >= 80:
		return ioc.ThreatCritical
	case avg >= 60:
		return ioc.ThreatHigh
	case avg >= 40:
		return ioc.ThreatMedium
	case avg >= 10:
		return ioc.ThreatLow
	default:
		return ioc.ThreatClean
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
