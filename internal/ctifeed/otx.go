package ctifeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// otxTypeMap mirrors OTX's indicator "type" field.
var otxTypeMap = map[string]ioc.Type{
	"IPv4": ioc.TypeIP, "IPv6": ioc.TypeIP,
	"domain": ioc.TypeDomain, "hostname": ioc.TypeHostname,
	"URL": ioc.TypeURL, "URI": ioc.TypeURL,
	"FileHash-MD5": ioc.TypeMD5, "FileHash-SHA1": ioc.TypeSHA1, "FileHash-SHA256": ioc.TypeSHA256,
	"email": ioc.TypeEmail, "CVE": ioc.TypeCVE,
	"Mutex": ioc.TypeMutex, "FilePath": ioc.TypeFilePath,
}

var aptMarkers = []string{"apt", "lazarus", "cozy bear", "fancy bear"}

// OTXAdapter talks to AlienVault OTX's pulse subscription API.
type OTXAdapter struct {
	cfg    Config
	client *http.Client
	cb     *circuitBreaker
	retry  *retryPolicy
	logger *zap.Logger
}

func NewOTXAdapter(cfg Config) *OTXAdapter {
	logger := zap.NewNop()
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://otx.alienvault.com"
	}
	cfg.BaseURL = base
	return &OTXAdapter{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		cb:     newCircuitBreaker(logger),
		retry:  newRetryPolicy(logger),
		logger: logger,
	}
}

func (a *OTXAdapter) get(ctx context.Context, path string, out any) error {
	return a.cb.Execute(ctx, func() error {
		return a.retry.Execute(ctx, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(a.cfg.BaseURL, "/")+path, nil)
			if err != nil {
				return newConnectionError("otx", err.Error())
			}
			req.Header.Set("X-OTX-API-KEY", a.cfg.APIKey)

			resp, err := a.client.Do(req)
			if err != nil {
				return newConnectionError("otx", err.Error())
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusUnauthorized {
				return newAuthError("otx", "invalid API key")
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				return newRateLimitError(60)
			}
			if resp.StatusCode >= 400 {
				return newAPIError("otx", fmt.Sprintf("unexpected status %d", resp.StatusCode))
			}

			if out != nil {
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return newParseError("otx", err.Error())
				}
			}
			return nil
		})
	})
}

func (a *OTXAdapter) TestConnection(ctx context.Context) error {
	var user struct {
		Username string `json:"username"`
	}
	if err := a.get(ctx, "/api/v1/user/me", &user); err != nil {
		return err
	}
	if user.Username == "" {
		return newAuthError("otx", "invalid API key")
	}
	return nil
}

type otxAttackID struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type otxIndicator struct {
	Type        string `json:"type"`
	Indicator   string `json:"indicator"`
	Description string `json:"description"`
}

type otxPulse struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Created           string         `json:"created"`
	Modified          string         `json:"modified"`
	Tags              []string       `json:"tags"`
	TargetedCountries []string       `json:"targeted_countries"`
	Industries        []string       `json:"industries"`
	Adversary         string         `json:"adversary"`
	AttackIDs         []otxAttackID  `json:"attack_ids"`
	Indicators        []otxIndicator `json:"indicators"`
}

type otxPulseList struct {
	Results []otxPulse `json:"results"`
}

func (a *OTXAdapter) FetchSince(ctx context.Context, since time.Time, limit int) ([]ioc.IOC, error) {
	path := "/api/v1/pulses/subscribed?limit=100"
	if !since.IsZero() {
		path = fmt.Sprintf("/api/v1/pulses/subscribed?modified_since=%s&limit=100",
			since.UTC().Format("2006-01-02T15:04:05"))
	}

	var list otxPulseList
	if err := a.get(ctx, path, &list); err != nil {
		return nil, err
	}

	typeFilter, _ := a.cfg.Filters["ioc_types"].([]string)

	var out []ioc.IOC
	for _, pulse := range list.Results {
		if len(out) >= limit {
			break
		}
		pulseIOCs := a.processPulse(pulse)
		if len(typeFilter) > 0 {
			allowed := make(map[string]struct{}, len(typeFilter))
			for _, t := range typeFilter {
				allowed[t] = struct{}{}
			}
			filtered := pulseIOCs[:0]
			for _, i := range pulseIOCs {
				if _, ok := allowed[string(i.Type)]; ok {
					filtered = append(filtered, i)
				}
			}
			pulseIOCs = filtered
		}
		out = append(out, pulseIOCs...)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *OTXAdapter) processPulse(pulse otxPulse) []ioc.IOC {
	var techniques []string
	for _, attackID := range pulse.AttackIDs {
		if attackID.ID != "" {
			techniques = append(techniques, attackID.ID+" - "+attackID.Name)
		}
	}

	threatLevel := ioc.ThreatMedium
	lowerAdversary := strings.ToLower(pulse.Adversary)
	for _, marker := range aptMarkers {
		if pulse.Adversary != "" && strings.Contains(lowerAdversary, marker) {
			threatLevel = ioc.ThreatHigh
			break
		}
	}

	var firstSeen, lastSeen time.Time
	if t, err := time.Parse(time.RFC3339, strings.Replace(pulse.Created, "Z", "+00:00", 1)); err == nil {
		firstSeen = t
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(pulse.Modified, "Z", "+00:00", 1)); err == nil {
		lastSeen = t
	}

	var relatedActors []string
	if pulse.Adversary != "" {
		relatedActors = []string{pulse.Adversary}
	}

	var out []ioc.IOC
	for _, indicator := range pulse.Indicators {
		value := strings.TrimSpace(indicator.Indicator)
		if value == "" {
			continue
		}

		iocType, ok := otxTypeMap[indicator.Type]
		if !ok {
			iocType = ioc.DetectType(value)
		}
		if iocType == ioc.TypeUnknown {
			continue
		}

		description := indicator.Description
		if description == "" {
			description = pulse.Description
			if len(description) > 200 {
				description = description[:200]
			}
		}

		out = append(out, ioc.IOC{
			Type:            iocType,
			Value:           value,
			ThreatLevel:     threatLevel,
			Confidence:      0.7,
			Source:          "otx",
			Tags:            ioc.SanitizeTags(capStrings(pulse.Tags, 10), 50),
			Description:     pulse.Name + ": " + description,
			FirstSeen:       firstSeen,
			LastSeen:        lastSeen,
			MitreTechniques: techniques,
			RelatedIOCs:     relatedActors,
			SeenCount:       1,
		})
	}
	return out
}

func capStrings(s []string, max int) []string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func (a *OTXAdapter) LookupOne(ctx context.Context, value string, t ioc.Type) (*ioc.IOC, error) {
	if t == "" {
		t = ioc.DetectType(value)
	}
	otxType := iocTypeToOTXSection(t)
	if otxType == "" {
		return nil, nil
	}

	var details struct {
		General struct {
			PulseInfo struct {
				Count  int        `json:"count"`
				Pulses []otxPulse `json:"pulses"`
			} `json:"pulse_info"`
		} `json:"general"`
		Geo struct {
			CountryCode string `json:"country_code"`
		} `json:"geo"`
	}

	if err := a.get(ctx, fmt.Sprintf("/api/v1/indicators/%s/%s/general", otxType, value), &details); err != nil {
		if apiErr, ok := err.(interface{ Error() string }); ok && strings.Contains(apiErr.Error(), "429") {
			return nil, newRateLimitError(60)
		}
		return nil, nil
	}

	pulseCount := details.General.PulseInfo.Count
	var threatLevel ioc.ThreatLevel
	switch {
	case pulseCount > 10:
		threatLevel = ioc.ThreatHigh
	case pulseCount > 5:
		threatLevel = ioc.ThreatMedium
	case pulseCount > 0:
		threatLevel = ioc.ThreatLow
	default:
		threatLevel = ioc.ThreatUnknown
	}

	var tags, actors, techniques []string
	seenTags := map[string]struct{}{}
	seenActors := map[string]struct{}{}
	seenTechniques := map[string]struct{}{}
	for i, pulse := range details.General.PulseInfo.Pulses {
		if i >= 10 {
			break
		}
		for _, tag := range pulse.Tags {
			if _, ok := seenTags[tag]; !ok {
				seenTags[tag] = struct{}{}
				tags = append(tags, tag)
			}
		}
		if pulse.Adversary != "" {
			if _, ok := seenActors[pulse.Adversary]; !ok {
				seenActors[pulse.Adversary] = struct{}{}
				actors = append(actors, pulse.Adversary)
			}
		}
		for _, attackID := range pulse.AttackIDs {
			if attackID.ID != "" {
				if _, ok := seenTechniques[attackID.ID]; !ok {
					seenTechniques[attackID.ID] = struct{}{}
					techniques = append(techniques, attackID.ID)
				}
			}
		}
	}

	confidence := 0.5 + float64(pulseCount)*0.05
	if confidence > 0.9 {
		confidence = 0.9
	}

	return &ioc.IOC{
		Type:            t,
		Value:           value,
		ThreatLevel:     threatLevel,
		Confidence:      confidence,
		Source:          "otx",
		Tags:            ioc.SanitizeTags(capStrings(tags, 15), 50),
		Description:     fmt.Sprintf("Found in %d OTX pulses", pulseCount),
		RelatedIOCs:     actors,
		MitreTechniques: techniques,
		SeenCount:       1,
	}, nil
}

func iocTypeToOTXSection(t ioc.Type) string {
	switch t {
	case ioc.TypeIP:
		return "IPv4"
	case ioc.TypeDomain:
		return "domain"
	case ioc.TypeHostname:
		return "hostname"
	case ioc.TypeURL:
		return "url"
	case ioc.TypeMD5, ioc.TypeSHA1, ioc.TypeSHA256:
		return "file"
	case ioc.TypeCVE:
		return "cve"
	default:
		return ""
	}
}

func (a *OTXAdapter) Close() error {
	return nil
}
