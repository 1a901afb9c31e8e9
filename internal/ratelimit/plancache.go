package ratelimit

import (
	"sync"
	"time"
)

const planCacheTTL = 5 * time.Minute

type planCacheEntry struct {
	plan      Plan
	expiresAt time.Time
}

// PlanCache is the short-lived tenant_id -> plan cache spec §4.8 requires
// ("a short-lived cache (5-minute TTL) backs tenant_id → plan to avoid
// hitting the primary store on every request"). In-process only; a cache
// miss falls back to whatever plan lookup the caller provides.
type PlanCache struct {
	mu      sync.RWMutex
	entries map[string]planCacheEntry
	now     func() time.Time
}

// NewPlanCache builds an empty cache.
func NewPlanCache() *PlanCache {
	return &PlanCache{entries: make(map[string]planCacheEntry), now: time.Now}
}

// Get returns the cached plan for tenantID, or ok=false if absent/expired.
func (c *PlanCache) Get(tenantID string) (Plan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[tenantID]
	if !exists || c.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.plan, true
}

// Set stores tenantID's plan with a fresh TTL.
func (c *PlanCache) Set(tenantID string, plan Plan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[tenantID] = planCacheEntry{plan: plan, expiresAt: c.now().Add(planCacheTTL)}
}

// Invalidate drops a tenant's cached plan (e.g. after a plan change).
func (c *PlanCache) Invalidate(tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, tenantID)
}
