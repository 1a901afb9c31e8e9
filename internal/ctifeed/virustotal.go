package ctifeed

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// vtRateLimitDelay enforces VirusTotal's public-API rate (4 req/min on the
// free tier); a single mutex-guarded timestamp serializes every call made
// through one adapter instance.
const vtRateLimitDelay = 15 * time.Second

// VirusTotalAdapter looks individual indicators up against VirusTotal's v3
// API. VirusTotal has no bulk "what's new" feed endpoint, so FetchSince is
// a documented no-op; ingestion happens entirely through LookupOne calls
// triggered by enrichment (C3).
type VirusTotalAdapter struct {
	cfg    Config
	client *http.Client
	cb     *circuitBreaker
	retry  *retryPolicy
	logger *zap.Logger

	rateMu      sync.Mutex
	lastRequest time.Time
}

func NewVirusTotalAdapter(cfg Config) *VirusTotalAdapter {
	logger := zap.NewNop()
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://www.virustotal.com/api/v3"
	}
	cfg.BaseURL = base
	return &VirusTotalAdapter{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		cb:     newCircuitBreaker(logger),
		retry:  newRetryPolicy(logger),
		logger: logger,
	}
}

func (a *VirusTotalAdapter) throttle(ctx context.Context) error {
	a.rateMu.Lock()
	wait := vtRateLimitDelay - time.Since(a.lastRequest)
	if wait < 0 {
		wait = 0
	}
	// Reserve this slot so a concurrent caller waits behind it.
	a.lastRequest = time.Now().Add(wait)
	a.rateMu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *VirusTotalAdapter) get(ctx context.Context, path string, out any) error {
	if err := a.throttle(ctx); err != nil {
		return err
	}

	notFound := false
	err := a.cb.Execute(ctx, func() error {
		defer func() {
			a.rateMu.Lock()
			a.lastRequest = time.Now()
			a.rateMu.Unlock()
		}()

		return a.retry.Execute(ctx, func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(a.cfg.BaseURL, "/")+path, nil)
			if err != nil {
				return newConnectionError("virustotal", err.Error())
			}
			req.Header.Set("x-apikey", a.cfg.APIKey)
			req.Header.Set("Accept", "application/json")

			resp, err := a.client.Do(req)
			if err != nil {
				return newConnectionError("virustotal", err.Error())
			}
			defer resp.Body.Close()

			switch resp.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return newAuthError("virustotal", "invalid API key")
			case http.StatusTooManyRequests:
				return newRateLimitError(60)
			case http.StatusNotFound:
				// Not found is not a transient failure: surface it without
				// retrying or counting against the circuit breaker.
				notFound = true
				return nil
			}
			if resp.StatusCode >= 400 {
				return newAPIError("virustotal", fmt.Sprintf("unexpected status %d", resp.StatusCode))
			}

			if out != nil {
				if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
					return newParseError("virustotal", err.Error())
				}
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	if notFound {
		return errVTNotFound
	}
	return nil
}

var errVTNotFound = newAPIError("virustotal", "indicator not found")

func (a *VirusTotalAdapter) TestConnection(ctx context.Context) error {
	var out struct {
		Data json.RawMessage `json:"data"`
	}
	return a.get(ctx, "/ip_addresses/8.8.8.8", &out)
}

// FetchSince is a no-op: VirusTotal has no subscription-style feed of new
// indicators, only on-demand lookups against a known value.
func (a *VirusTotalAdapter) FetchSince(ctx context.Context, since time.Time, limit int) ([]ioc.IOC, error) {
	a.logger.Warn("virustotal has no bulk feed endpoint, skipping scheduled sync")
	return nil, nil
}

type vtStats struct {
	Malicious  int `json:"malicious"`
	Suspicious int `json:"suspicious"`
	Undetected int `json:"undetected"`
	Harmless   int `json:"harmless"`
	Timeout    int `json:"timeout"`
}

type vtAttributes struct {
	LastAnalysisStats vtStats           `json:"last_analysis_stats"`
	Reputation        int               `json:"reputation"`
	Tags              []string          `json:"tags"`
	Country           string            `json:"country"`
	AsOwner           string            `json:"as_owner"`
	Categories        map[string]string `json:"categories"`

	PopularThreatClassification struct {
		SuggestedThreatLabel string `json:"suggested_threat_label"`
	} `json:"popular_threat_classification"`
}

type vtResponse struct {
	Data struct {
		ID         string       `json:"id"`
		Attributes vtAttributes `json:"attributes"`
	} `json:"data"`
}

func (a *VirusTotalAdapter) LookupOne(ctx context.Context, value string, t ioc.Type) (*ioc.IOC, error) {
	if t == "" {
		t = ioc.DetectType(value)
	}

	path, err := vtLookupPath(t, value)
	if err != nil || path == "" {
		return nil, nil
	}

	var resp vtResponse
	if lookupErr := a.get(ctx, path, &resp); lookupErr != nil {
		if lookupErr == errVTNotFound {
			return nil, nil
		}
		return nil, lookupErr
	}

	stats := resp.Data.Attributes.LastAnalysisStats
	total := stats.Malicious + stats.Suspicious + stats.Undetected + stats.Harmless + stats.Timeout
	var detectionPct float64
	if total > 0 {
		detectionPct = float64(stats.Malicious+stats.Suspicious) / float64(total) * 100
	}

	threatLevel := virusTotalThreatLevel(detectionPct)
	if total == 0 {
		threatLevel = ioc.ThreatUnknown
	} else if stats.Malicious == 0 && stats.Suspicious == 0 {
		threatLevel = ioc.ThreatClean
	}

	confidence := float64(stats.Malicious+stats.Suspicious) / float64(maxInt(total, 1))
	if confidence > 1 {
		confidence = 1
	}

	categories := make([]string, 0, len(resp.Data.Attributes.Categories))
	for _, v := range resp.Data.Attributes.Categories {
		categories = append(categories, v)
	}
	tags := append(append([]string{}, resp.Data.Attributes.Tags...), categories...)

	description := fmt.Sprintf("%d/%d engines flagged malicious/suspicious", stats.Malicious+stats.Suspicious, total)
	if label := resp.Data.Attributes.PopularThreatClassification.SuggestedThreatLabel; label != "" {
		description = label + " - " + description
	}

	return &ioc.IOC{
		Type:        t,
		Value:       value,
		ThreatLevel: threatLevel,
		Confidence:  confidence,
		Source:      "virustotal",
		Tags:        ioc.SanitizeTags(tags, 50),
		Description: description,
		SeenCount:   1,
	}, nil
}

func vtLookupPath(t ioc.Type, value string) (string, error) {
	switch t {
	case ioc.TypeIP:
		return "/ip_addresses/" + value, nil
	case ioc.TypeDomain, ioc.TypeHostname:
		return "/domains/" + value, nil
	case ioc.TypeURL:
		id := base64.RawURLEncoding.EncodeToString([]byte(value))
		return "/urls/" + id, nil
	case ioc.TypeMD5, ioc.TypeSHA1, ioc.TypeSHA256:
		return "/files/" + value, nil
	default:
		return "", nil
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (a *VirusTotalAdapter) Close() error {
	return nil
}
