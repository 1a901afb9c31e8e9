package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isora-platform/cyberops-core/internal/kvstore"
)

func newFixedClockLimiter(t *testing.T, current time.Time) (*Limiter, *kvstore.MemoryStore) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	l := NewLimiter(store, true)
	l.now = func() time.Time { return current }
	return l, store
}

// Mirrors spec §8 seed scenario 4: cap 5/min, 5 requests admitted, 6th
// rejected with retry_after = ceil(0 + 60 - 5) + 1 = 56, then admitted
// again at t=61s.
func TestSlidingWindowSeedScenario(t *testing.T) {
	store := kvstore.NewMemoryStore()
	base := time.Unix(0, 0)
	l := NewLimiter(store, true)

	for i := 0; i < 5; i++ {
		l.now = func(i int) func() time.Time {
			return func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		}(i)
		res, err := l.checkSlidingWindow(context.Background(), "k", 5, windowMinuteSeconds)
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d should be admitted", i)
	}

	l.now = func() time.Time { return base.Add(5 * time.Second) }
	res, err := l.checkSlidingWindow(context.Background(), "k", 5, windowMinuteSeconds)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 56, res.RetryAfter)

	l.now = func() time.Time { return base.Add(61 * time.Second) }
	res, err = l.checkSlidingWindow(context.Background(), "k", 5, windowMinuteSeconds)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestCheckRateLimitSuperAdminBypass(t *testing.T) {
	l, _ := newFixedClockLimiter(t, time.Now())

	res, err := l.CheckRateLimit(context.Background(), CheckParams{IsSuperAdmin: true})
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestCheckRateLimitEndpointLimitRejectsBeforeTenantCheck(t *testing.T) {
	l, _ := newFixedClockLimiter(t, time.Now())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		res, err := l.CheckRateLimit(ctx, CheckParams{
			Path: "/api/v1/auth/login",
			IP:   "203.0.113.5",
		})
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := l.CheckRateLimit(ctx, CheckParams{Path: "/api/v1/auth/login", IP: "203.0.113.5"})
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestCheckRateLimitTenantReturnsMoreRestrictiveRemaining(t *testing.T) {
	l, _ := newFixedClockLimiter(t, time.Now())

	res, err := l.CheckRateLimit(context.Background(), CheckParams{
		TenantID: "tenant-1",
		IP:       "203.0.113.9",
		Plan:     PlanFree,
	})
	require.NoError(t, err)
	require.True(t, res.Allowed)

	limits := PlanLimitsFor(PlanFree)
	assert.Equal(t, limits.RequestsPerMinute, res.Limit)
}

func TestCheckRateLimitUnauthenticatedFallsBackToIP(t *testing.T) {
	l, _ := newFixedClockLimiter(t, time.Now())

	res, err := l.CheckRateLimit(context.Background(), CheckParams{IP: "198.51.100.3"})
	require.NoError(t, err)
	assert.Equal(t, UnauthenticatedLimitPerMinute, res.Limit)
}

func TestResetTenantLimitsClearsWindows(t *testing.T) {
	l, store := newFixedClockLimiter(t, time.Now())
	ctx := context.Background()

	_, err := l.CheckRateLimit(ctx, CheckParams{TenantID: "tenant-1", IP: "1.2.3.4", Plan: PlanFree})
	require.NoError(t, err)

	require.NoError(t, l.ResetTenantLimits(ctx, "tenant-1"))

	count, err := store.PruneAndCount(ctx, "ratelimit:sw:tenant:tenant-1:minute", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
