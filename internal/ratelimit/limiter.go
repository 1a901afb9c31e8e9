// Package ratelimit implements the sliding-window request admission
// control of spec C8: per-key sorted-set windows over internal/kvstore,
// evaluated in the fixed order (endpoint → tenant minute/hour → IP)
// spec §4.8 names, with fail-open-on-store-failure semantics.
//
// Grounded on original_source/apps/api/src/services/rate_limit_service.py
// for the algorithm and key families, and on the teacher's
// internal/ratelimit/*.go for the Go package shape (one file per limiter
// concern, golang.org/x/time/rate used for the burst layer).
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/isora-platform/cyberops-core/internal/kvstore"
)

const (
	windowMinuteSeconds = 60.0
	windowHourSeconds   = 3600.0
	expirySlack         = 60.0
)

const (
	keyTenantMinute = "ratelimit:sw:tenant:%s:minute"
	keyTenantHour   = "ratelimit:sw:tenant:%s:hour"
	keyIPMinute     = "ratelimit:sw:ip:%s:minute"
	keyEndpoint     = "ratelimit:sw:endpoint:%s:ip:%s"
)

// Result mirrors the teacher-grounded reference's RateLimitResult: the
// fields a response's rate-limit headers and 429 body are built from.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    int64
	RetryAfter int // seconds; only meaningful when !Allowed
}

// CheckParams is everything CheckRateLimit needs to evaluate one request.
// TenantID/Plan are zero-valued for unauthenticated requests.
type CheckParams struct {
	TenantID     string
	IP           string
	Path         string
	Plan         Plan
	IsSuperAdmin bool
}

// Limiter evaluates admission against an external sorted-set store.
type Limiter struct {
	store               kvstore.SortedSetStore
	bypassSuperAdmin    bool
	now                 func() time.Time
}

// NewLimiter builds a Limiter. bypassSuperAdmin mirrors the closed
// RATE_LIMIT_BYPASS_SUPER_ADMIN setting (spec §6.3).
func NewLimiter(store kvstore.SortedSetStore, bypassSuperAdmin bool) *Limiter {
	return &Limiter{store: store, bypassSuperAdmin: bypassSuperAdmin, now: time.Now}
}

// CheckRateLimit evaluates a request against the order spec §4.8 names:
// super-admin bypass, endpoint-specific, tenant minute+hour, else IP.
func (l *Limiter) CheckRateLimit(ctx context.Context, p CheckParams) (Result, error) {
	if p.IsSuperAdmin && l.bypassSuperAdmin {
		return Result{Allowed: true}, nil
	}

	if epLimit, ok := GetEndpointLimit(p.Path); ok {
		key := fmt.Sprintf(keyEndpoint, endpointKeyPart(p.Path), p.IP)
		res, err := l.checkSlidingWindow(ctx, key, epLimit.RequestsPerMinute, windowMinuteSeconds)
		if err != nil {
			return Result{}, err
		}
		if !res.Allowed {
			return res, nil
		}
	}

	if p.TenantID != "" && p.Plan != "" {
		limits := PlanLimitsFor(p.Plan)

		minuteKey := fmt.Sprintf(keyTenantMinute, p.TenantID)
		minuteRes, err := l.checkSlidingWindow(ctx, minuteKey, limits.RequestsPerMinute, windowMinuteSeconds)
		if err != nil {
			return Result{}, err
		}
		if !minuteRes.Allowed {
			return minuteRes, nil
		}

		hourKey := fmt.Sprintf(keyTenantHour, p.TenantID)
		hourRes, err := l.checkSlidingWindow(ctx, hourKey, limits.RequestsPerHour, windowHourSeconds)
		if err != nil {
			return Result{}, err
		}
		if !hourRes.Allowed {
			return hourRes, nil
		}

		if minuteRes.Remaining < hourRes.Remaining {
			return minuteRes, nil
		}
		return hourRes, nil
	}

	ipKey := fmt.Sprintf(keyIPMinute, p.IP)
	return l.checkSlidingWindow(ctx, ipKey, UnauthenticatedLimitPerMinute, windowMinuteSeconds)
}

func (l *Limiter) checkSlidingWindow(ctx context.Context, key string, limit int, window float64) (Result, error) {
	now := float64(l.now().UnixNano()) / 1e9
	windowStart := now - window
	resetAt := int64(now + window)

	count, err := l.store.PruneAndCount(ctx, key, windowStart)
	if err != nil {
		return Result{}, err
	}

	if count >= int64(limit) {
		retryAfter := int(window)
		if oldest, ok, err := l.store.OldestScore(ctx, key); err == nil && ok {
			retryAfter = int(oldest+window-now) + 1
		}
		return Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfter,
		}, nil
	}

	member := strconv.FormatFloat(now, 'f', -1, 64)
	if err := l.store.Add(ctx, key, now, member, window+expirySlack); err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - int(count) - 1,
		ResetAt:   resetAt,
	}, nil
}

// GetTenantUsage reports current minute/hour counts for a tenant without
// recording a new request — used by admin/usage endpoints.
func (l *Limiter) GetTenantUsage(ctx context.Context, tenantID string) (hourUsage, minuteUsage int64, err error) {
	now := float64(l.now().UnixNano()) / 1e9

	hourUsage, err = l.store.PruneAndCount(ctx, fmt.Sprintf(keyTenantHour, tenantID), now-windowHourSeconds)
	if err != nil {
		return 0, 0, err
	}
	minuteUsage, err = l.store.PruneAndCount(ctx, fmt.Sprintf(keyTenantMinute, tenantID), now-windowMinuteSeconds)
	if err != nil {
		return 0, 0, err
	}
	return hourUsage, minuteUsage, nil
}

// ResetTenantLimits clears a tenant's minute/hour windows (admin function).
func (l *Limiter) ResetTenantLimits(ctx context.Context, tenantID string) error {
	return l.store.Delete(ctx, fmt.Sprintf(keyTenantHour, tenantID), fmt.Sprintf(keyTenantMinute, tenantID))
}
