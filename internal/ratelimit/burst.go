package ratelimit

import (
	"sync"

	"golang.org/x/time/rate"
)

// LocalBurstGate is a per-process token-bucket fast path in front of the
// sliding-window store check. Sized from a tenant's plan limits, it lets
// the majority of in-budget requests skip the external store round trip
// entirely and only forces a store-backed sliding-window check once the
// local bucket is dry — cutting store load without weakening the
// authoritative limit, since the sliding window still runs whenever this
// gate denies. Limiter.CheckRateLimit does not call it: the gate takes
// effect only where a caller invokes Allow ahead of the store check.
//
// Adapted from the teacher's AdaptiveBurstLimiter
// (internal/ratelimit/burst.go): the adaptive grow/shrink-by-behavior logic
// is dropped (this spec has no notion of "good behavior" scoring) but the
// per-tenant golang.org/x/time/rate.Limiter pooling is kept as-is.
type LocalBurstGate struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewLocalBurstGate builds an empty gate; limiters are created lazily per
// tenant on first use.
func NewLocalBurstGate() *LocalBurstGate {
	return &LocalBurstGate{limiters: make(map[string]*rate.Limiter)}
}

// Allow reports whether tenantID has local burst budget remaining, sized
// from its plan's per-minute cap (rate = cap/60/s, burst = cap).
func (g *LocalBurstGate) Allow(tenantID string, limits PlanLimits) bool {
	g.mu.Lock()
	limiter, exists := g.limiters[tenantID]
	if !exists {
		limiter = rate.NewLimiter(rate.Limit(limits.RequestsPerMinute)/60, limits.RequestsPerMinute)
		g.limiters[tenantID] = limiter
	}
	g.mu.Unlock()

	return limiter.Allow()
}
