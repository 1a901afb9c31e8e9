package ctifeed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// mispAttributeTypes maps MISP's attribute "type" field to an IOC type
// hint, used ahead of ioc.DetectType's structural guess.
var mispAttributeTypes = map[string]ioc.Type{
	"ip-src": ioc.TypeIP, "ip-dst": ioc.TypeIP,
	"domain": ioc.TypeDomain, "hostname": ioc.TypeHostname,
	"url": ioc.TypeURL, "uri": ioc.TypeURL,
	"md5": ioc.TypeMD5, "sha1": ioc.TypeSHA1, "sha256": ioc.TypeSHA256,
	"email-src": ioc.TypeEmail, "email-dst": ioc.TypeEmail,
	"vulnerability": ioc.TypeCVE,
	"mutex":         ioc.TypeMutex,
	"filename":      ioc.TypeFilePath,
	"regkey":        ioc.TypeRegistryKey,
}

// MISPAdapter talks to a MISP instance's REST API: event search for bulk
// sync, attribute search for single lookups, galaxy clusters for threat
// actor/campaign/MITRE attribution.
type MISPAdapter struct {
	cfg    Config
	client *http.Client
	cb     *circuitBreaker
	retry  *retryPolicy
	logger *zap.Logger
}

func NewMISPAdapter(cfg Config) *MISPAdapter {
	logger := zap.NewNop()
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &MISPAdapter{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		cb:     newCircuitBreaker(logger),
		retry:  newRetryPolicy(logger),
		logger: logger,
	}
}

func (a *MISPAdapter) do(ctx context.Context, method, path string, body any, out any) error {
	return a.cb.Execute(ctx, func() error {
		return a.retry.Execute(ctx, func() error {
			var reader *bytes.Reader
			if body != nil {
				b, err := json.Marshal(body)
				if err != nil {
					return newParseError("misp", err.Error())
				}
				reader = bytes.NewReader(b)
			} else {
				reader = bytes.NewReader(nil)
			}

			req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(a.cfg.BaseURL, "/")+path, reader)
			if err != nil {
				return newConnectionError("misp", err.Error())
			}
			req.Header.Set("Authorization", a.cfg.APIKey)
			req.Header.Set("Accept", "application/json")
			req.Header.Set("Content-Type", "application/json")

			resp, err := a.client.Do(req)
			if err != nil {
				return newConnectionError("misp", err.Error())
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
				return newAuthError("misp", "authentication failed")
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				return newRateLimitError(60)
			}
			if resp.StatusCode >= 400 {
				return newAPIError("misp", fmt.Sprintf("unexpected status %d", resp.StatusCode))
			}

			if out != nil {
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return newParseError("misp", err.Error())
				}
			}
			return nil
		})
	})
}

func (a *MISPAdapter) TestConnection(ctx context.Context) error {
	var version struct {
		Version string   `json:"version"`
		Errors  []string `json:"errors"`
	}
	if err := a.do(ctx, http.MethodGet, "/servers/getVersion", nil, &version); err != nil {
		return err
	}
	if len(version.Errors) > 0 {
		return newAuthError("misp", strings.Join(version.Errors, "; "))
	}
	return nil
}

type mispTag struct {
	Name string `json:"name"`
}

type mispGalaxyCluster struct {
	Value string `json:"value"`
	Meta  struct {
		ExternalID []string `json:"external_id"`
	} `json:"meta"`
}

type mispGalaxy struct {
	Type           string              `json:"type"`
	GalaxyClusters []mispGalaxyCluster `json:"GalaxyCluster"`
}

type mispAttribute struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Value     string    `json:"value"`
	ToIDs     bool      `json:"to_ids"`
	Comment   string    `json:"comment"`
	FirstSeen string    `json:"first_seen"`
	LastSeen  string    `json:"last_seen"`
	Timestamp string    `json:"timestamp"`
	Tag       []mispTag `json:"Tag"`
}

type mispObject struct {
	Attribute []mispAttribute `json:"Attribute"`
}

type mispEvent struct {
	ID            string          `json:"id"`
	Info          string          `json:"info"`
	ThreatLevelID string          `json:"threat_level_id"`
	Tag           []mispTag       `json:"Tag"`
	Galaxy        []mispGalaxy    `json:"Galaxy"`
	Attribute     []mispAttribute `json:"Attribute"`
	Object        []mispObject    `json:"Object"`
}

type mispSearchResponse struct {
	Response []struct {
		Event mispEvent `json:"Event"`
	} `json:"response"`
}

func (a *MISPAdapter) FetchSince(ctx context.Context, since time.Time, limit int) ([]ioc.IOC, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	body := map[string]any{
		"limit":     limit,
		"to_ids":    1,
		"published": true,
	}
	if !since.IsZero() {
		body["timestamp"] = since.Format("2006-01-02")
	}
	if tags, ok := a.cfg.Filters["tags"]; ok {
		body["tags"] = tags
	}
	if threatLevel, ok := a.cfg.Filters["threat_level"]; ok {
		body["threat_level"] = threatLevel
	}

	var result mispSearchResponse
	if err := a.do(ctx, http.MethodPost, "/events/restSearch", body, &result); err != nil {
		return nil, err
	}

	var out []ioc.IOC
	for _, wrapper := range result.Response {
		out = append(out, a.processEvent(wrapper.Event)...)
		if len(out) >= limit {
			break
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (a *MISPAdapter) processEvent(event mispEvent) []ioc.IOC {
	threatLevelID, _ := strconv.Atoi(event.ThreatLevelID)
	threatLevel := mispThreatLevel(threatLevelID)
	eventTags := extractMISPTags(event.Tag)
	actors, campaigns, techniques := extractMISPGalaxies(event.Galaxy)

	var out []ioc.IOC
	appendFrom := func(attrs []mispAttribute) {
		for _, attr := range attrs {
			if !attr.ToIDs {
				continue
			}
			if record, ok := a.attributeToIOC(attr, event, threatLevel, eventTags, actors, campaigns, techniques); ok {
				out = append(out, record)
			}
		}
	}

	appendFrom(event.Attribute)
	for _, obj := range event.Object {
		appendFrom(obj.Attribute)
	}
	return out
}

func (a *MISPAdapter) attributeToIOC(attr mispAttribute, event mispEvent, threatLevel ioc.ThreatLevel,
	eventTags, actors, campaigns, techniques []string) (ioc.IOC, bool) {
	value := strings.TrimSpace(attr.Value)
	if value == "" {
		return ioc.IOC{}, false
	}

	iocType, ok := mispAttributeTypes[attr.Type]
	if !ok {
		iocType = ioc.DetectType(value)
	}
	if iocType == ioc.TypeUnknown {
		return ioc.IOC{}, false
	}

	confidence := 0.5
	if attr.ToIDs {
		confidence = 0.8
	}

	description := strings.Trim(strings.TrimSpace(event.Info+" - "+attr.Comment), " -")

	rec := ioc.IOC{
		Type:            iocType,
		Value:           value,
		ThreatLevel:     threatLevel,
		Confidence:      confidence,
		Source:          "misp",
		Tags:            ioc.SanitizeTags(append(eventTags, extractMISPTags(attr.Tag)...), 50),
		Description:     description,
		MitreTechniques: techniques,
		RelatedIOCs:     append(append([]string{}, actors...), campaigns...),
		SeenCount:       1,
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(attr.FirstSeen, "Z", "+00:00", 1)); err == nil {
		rec.FirstSeen = t
	}
	if t, err := time.Parse(time.RFC3339, strings.Replace(attr.LastSeen, "Z", "+00:00", 1)); err == nil {
		rec.LastSeen = t
	}
	if rec.FirstSeen.IsZero() {
		if ts, err := strconv.ParseInt(attr.Timestamp, 10, 64); err == nil {
			rec.FirstSeen = time.Unix(ts, 0)
		}
	}

	return rec, true
}

func extractMISPTags(tags []mispTag) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t.Name == "" || strings.HasPrefix(t.Name, "misp-galaxy:") {
			continue
		}
		out = append(out, t.Name)
	}
	return out
}

func extractMISPGalaxies(galaxies []mispGalaxy) (actors, campaigns, techniques []string) {
	for _, g := range galaxies {
		galaxyType := strings.ToLower(g.Type)
		for _, cluster := range g.GalaxyClusters {
			name := cluster.Value
			if name == "" {
				continue
			}
			switch {
			case strings.Contains(galaxyType, "threat-actor"):
				actors = append(actors, name)
			case strings.Contains(galaxyType, "campaign"):
				campaigns = append(campaigns, name)
			case strings.Contains(galaxyType, "mitre-attack"), strings.Contains(galaxyType, "attack-pattern"):
				external := ""
				for _, ref := range cluster.Meta.ExternalID {
					if strings.HasPrefix(ref, "T") {
						external = ref
						break
					}
				}
				if external != "" {
					techniques = append(techniques, external+" - "+name)
				} else {
					techniques = append(techniques, name)
				}
			}
		}
	}
	return actors, campaigns, techniques
}

func (a *MISPAdapter) LookupOne(ctx context.Context, value string, t ioc.Type) (*ioc.IOC, error) {
	var result struct {
		Response []struct {
			Attribute mispAttribute `json:"Attribute"`
		} `json:"response"`
	}

	body := map[string]any{"value": value, "limit": 1}
	if err := a.do(ctx, http.MethodPost, "/attributes/restSearch", body, &result); err != nil {
		return nil, err
	}
	if len(result.Response) == 0 {
		return nil, nil
	}
	attr := result.Response[0].Attribute

	var event mispEvent
	_ = a.do(ctx, http.MethodGet, "/events/view/"+attr.ID, nil, &struct {
		Event *mispEvent `json:"Event"`
	}{Event: &event})

	threatLevelID, _ := strconv.Atoi(event.ThreatLevelID)
	threatLevel := mispThreatLevel(threatLevelID)
	eventTags := extractMISPTags(event.Tag)
	actors, campaigns, techniques := extractMISPGalaxies(event.Galaxy)

	rec, ok := a.attributeToIOC(attr, event, threatLevel, eventTags, actors, campaigns, techniques)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (a *MISPAdapter) Close() error {
	return nil
}
