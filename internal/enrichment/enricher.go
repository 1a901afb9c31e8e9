package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/ctifeed"
	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// Config carries the API keys and cache settings an Enricher needs for
// the sources it talks to directly over bare HTTP. VirusTotal, OTX and
// MISP are configured upstream as ctifeed adapters and passed into New
// instead, since those three already carry circuit-breaker and retry
// wiring this package would otherwise have to duplicate.
type Config struct {
	AbuseIPDBAPIKey string
	ShodanAPIKey    string
	GreyNoiseAPIKey string

	CacheTTL time.Duration
}

// Enricher fans an indicator out across its configured SourceQueriers and
// caches the aggregated verdict in Redis for CacheTTL.
type Enricher struct {
	queriers map[Source]SourceQuerier
	redis    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// New builds an Enricher. misp, otx and virustotal are the already-
// configured ctifeed adapters (C2) to reuse for lookups; any of them may
// be nil if that feed isn't configured, in which case the corresponding
// source reports "not configured". redisClient may be nil, in which
// case caching is skipped entirely.
func New(cfg Config, misp, otx, virustotal ctifeed.Adapter, redisClient *redis.Client, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	queriers := map[Source]SourceQuerier{
		SourceAbuseIPDB: newAbuseIPDBQuerier(cfg.AbuseIPDBAPIKey, httpClient),
		SourceShodan:    newShodanQuerier(cfg.ShodanAPIKey, httpClient),
		SourceGreyNoise: newGreyNoiseQuerier(cfg.GreyNoiseAPIKey, httpClient),
	}
	if misp != nil {
		queriers[SourceMISP] = adapterQuerier{source: SourceMISP, adapter: misp}
	}
	if otx != nil {
		queriers[SourceOTX] = adapterQuerier{source: SourceOTX, adapter: otx}
	}
	if virustotal != nil {
		queriers[SourceVirusTotal] = adapterQuerier{source: SourceVirusTotal, adapter: virustotal}
	}

	return &Enricher{
		queriers: queriers,
		redis:    redisClient,
		cacheTTL: ttl,
		logger:   logger,
	}
}

func cacheKey(value string, t ioc.Type) string {
	return "enrichment:" + string(t) + ":" + value
}

// Enrich queries the applicable sources for value (auto-detecting type
// when t is empty), or the explicit sources list when non-empty, and
// returns the aggregated Result. A cache hit within CacheTTL short-
// circuits the fan-out entirely.
func (e *Enricher) Enrich(ctx context.Context, value string, t ioc.Type, sources []Source) (*Result, error) {
	if t == "" {
		t = ioc.DetectType(value)
	}

	key := cacheKey(value, t)
	if e.redis != nil {
		if cached, ok := e.readCache(ctx, key); ok {
			cached.IsCached = true
			return cached, nil
		}
	}

	if len(sources) == 0 {
		sources = applicableSources(t)
	}

	results := e.queryAll(ctx, value, t, sources)
	result := aggregate(value, t, results)
	result.EnrichedAt = time.Now()

	if e.redis != nil {
		e.writeCache(ctx, key, result)
	}

	return result, nil
}

// EnrichBatch enriches multiple values, preserving order.
func (e *Enricher) EnrichBatch(ctx context.Context, values []string, sources []Source) ([]*Result, error) {
	out := make([]*Result, len(values))
	for i, v := range values {
		r, err := e.Enrich(ctx, v, "", sources)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func (e *Enricher) queryAll(ctx context.Context, value string, t ioc.Type, sources []Source) map[Source]SourceResult {
	results := make(map[Source]SourceResult, len(sources))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, source := range sources {
		querier, ok := e.queriers[source]
		if !ok {
			mu.Lock()
			results[source] = SourceResult{Source: source, Available: false, ThreatLevel: ioc.ThreatUnknown, Error: "source not configured"}
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(source Source, q SourceQuerier) {
			defer wg.Done()
			res := q.Query(ctx, value, t)
			mu.Lock()
			results[source] = res
			mu.Unlock()
		}(source, querier)
	}

	wg.Wait()
	return results
}

func (e *Enricher) readCache(ctx context.Context, key string) (*Result, bool) {
	raw, err := e.redis.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		e.logger.Warn("enrichment cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (e *Enricher) writeCache(ctx context.Context, key string, result *Result) {
	raw, err := json.Marshal(result)
	if err != nil {
		e.logger.Warn("enrichment cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := e.redis.Set(ctx, key, raw, e.cacheTTL).Err(); err != nil {
		e.logger.Warn("enrichment cache write failed", zap.String("key", key), zap.Error(err))
	}
}
