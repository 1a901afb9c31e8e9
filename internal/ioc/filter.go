package ioc

import "strings"

var threatOrder = []ThreatLevel{ThreatUnknown, ThreatClean, ThreatLow, ThreatMedium, ThreatHigh, ThreatCritical}

func threatIndex(l ThreatLevel) int {
	for i, v := range threatOrder {
		if v == l {
			return i
		}
	}
	return -1
}

// FilterOptions narrows a batch of IOCs before it's returned to a caller
// or handed to the notification pipeline. A zero-value FilterOptions
// matches everything.
type FilterOptions struct {
	MinConfidence  float64
	MinThreatLevel ThreatLevel // "" means no floor
	AllowedTypes   []Type      // empty means all types
	ExcludeTags    []string
}

// Filter returns the subset of iocs matching opts.
func Filter(iocs []IOC, opts FilterOptions) []IOC {
	minIdx := 0
	if opts.MinThreatLevel != "" {
		if idx := threatIndex(opts.MinThreatLevel); idx >= 0 {
			minIdx = idx
		}
	}

	allowed := make(map[Type]struct{}, len(opts.AllowedTypes))
	for _, t := range opts.AllowedTypes {
		allowed[t] = struct{}{}
	}

	exclude := make(map[string]struct{}, len(opts.ExcludeTags))
	for _, t := range opts.ExcludeTags {
		exclude[strings.ToLower(t)] = struct{}{}
	}

	out := make([]IOC, 0, len(iocs))
	for _, i := range iocs {
		if i.Confidence < opts.MinConfidence {
			continue
		}

		if idx := threatIndex(i.ThreatLevel); idx >= 0 && idx < minIdx {
			continue
		}

		if len(allowed) > 0 {
			if _, ok := allowed[i.Type]; !ok {
				continue
			}
		}

		if len(exclude) > 0 {
			excluded := false
			for _, tag := range i.Tags {
				if _, ok := exclude[strings.ToLower(tag)]; ok {
					excluded = true
					break
				}
			}
			if excluded {
				continue
			}
		}

		out = append(out, i)
	}

	return out
}
