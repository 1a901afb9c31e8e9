package ioc

import (
	"sort"
	"strings"
)

var threatPriority = map[ThreatLevel]int{
	ThreatCritical: 4,
	ThreatHigh:     3,
	ThreatMedium:   2,
	ThreatLow:      1,
	ThreatClean:    0,
	ThreatUnknown:  0,
}

// Merge folds new into existing, keeping the best data from each side, and
// returns the updated existing record. Merge is commutative on the fields
// that matter for dedup (the resulting set of tags/techniques/sources is
// the same regardless of call order) and idempotent (merging an IOC into
// itself changes nothing but SeenCount).
func Merge(existing, new IOC) IOC {
	if threatPriority[new.ThreatLevel] > threatPriority[existing.ThreatLevel] {
		existing.ThreatLevel = new.ThreatLevel
	}

	if new.Confidence > existing.Confidence {
		existing.Confidence = new.Confidence
	}

	existing.Tags = unionCapped(existing.Tags, new.Tags, 20)
	existing.MitreTechniques = unionCapped(existing.MitreTechniques, new.MitreTechniques, 10)
	existing.RelatedIOCs = unionCapped(existing.RelatedIOCs, new.RelatedIOCs, 10)

	if new.Source != "" && !strings.Contains(existing.Source, new.Source) {
		if existing.Source == "" {
			existing.Source = new.Source
		} else {
			existing.Source = existing.Source + "," + new.Source
		}
	}

	if !new.FirstSeen.IsZero() && (existing.FirstSeen.IsZero() || new.FirstSeen.Before(existing.FirstSeen)) {
		existing.FirstSeen = new.FirstSeen
	}
	if !new.LastSeen.IsZero() && (existing.LastSeen.IsZero() || new.LastSeen.After(existing.LastSeen)) {
		existing.LastSeen = new.LastSeen
	}

	if existing.Description == "" {
		existing.Description = new.Description
	}

	existing.SeenCount += new.SeenCount

	return existing
}

// unionCapped returns the deduplicated (case-sensitive) union of a and b,
// sorted for deterministic output, truncated to max entries.
func unionCapped(a, b []string, max int) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, v := range append(append([]string{}, a...), b...) {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}
