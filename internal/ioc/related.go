package ioc

import (
	"regexp"
	"sort"
	"strings"
)

var (
	urlHostPattern = regexp.MustCompile(`(?i)^https?://([^/]+)`)
	md5InTextRe    = regexp.MustCompile(`\b[a-fA-F0-9]{32}\b`)
	sha256InTextRe = regexp.MustCompile(`\b[a-fA-F0-9]{64}\b`)
	ipInTextRe     = regexp.MustCompile(`\b(?:(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(?:25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)
)

// ExtractRelatedIOCs mines i's value and free-text description for
// co-occurring indicators: the host a URL points at, and any hash or IP
// literal mentioned in the description. The original indicator's own
// value is excluded from the result.
func ExtractRelatedIOCs(i IOC) []string {
	var related []string

	if i.Type == TypeURL {
		if m := urlHostPattern.FindStringSubmatch(i.Value); m != nil {
			host, _, _ := strings.Cut(m[1], ":")
			related = append(related, host)
		}
	}

	if i.Description != "" {
		related = append(related, md5InTextRe.FindAllString(i.Description, -1)...)
		related = append(related, sha256InTextRe.FindAllString(i.Description, -1)...)
		related = append(related, ipInTextRe.FindAllString(i.Description, -1)...)
	}

	lowerValue := strings.ToLower(i.Value)
	seen := make(map[string]struct{}, len(related))
	out := make([]string, 0, len(related))
	for _, r := range related {
		if strings.ToLower(r) == lowerValue {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
