package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/ctifeed"
	"github.com/isora-platform/cyberops-core/internal/ioc"
)

type fakeAdapter struct {
	testConnErr error
	fetchResult []ioc.IOC
	fetchErr    error
	fetchCalls  int
	testCalls   int
	closed      bool
}

func (f *fakeAdapter) TestConnection(ctx context.Context) error {
	f.testCalls++
	return f.testConnErr
}

func (f *fakeAdapter) FetchSince(ctx context.Context, since time.Time, limit int) ([]ioc.IOC, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.fetchResult, nil
}

func (f *fakeAdapter) LookupOne(ctx context.Context, value string, t ioc.Type) (*ioc.IOC, error) {
	return nil, nil
}

func (f *fakeAdapter) Close() error {
	f.closed = true
	return nil
}

func noSleep(time.Duration) {}

func testScheduler(factory AdapterFactory) (*Scheduler, *MemoryFeedStore, *MemoryIOCStore) {
	feedStore := NewMemoryFeedStore()
	iocStore := NewMemoryIOCStore()
	s := NewScheduler(feedStore, iocStore, WithAdapterFactory(factory))
	s.sleep = noSleep
	return s, feedStore, iocStore
}

func sampleFeed() Feed {
	return Feed{
		FeedID:   "feed-1",
		TenantID: "tenant-1",
		Name:     "Test MISP Feed",
		Config:   ctifeed.Config{Type: ctifeed.TypeMISP},
		Enabled:  true,
	}
}

func TestSyncFeedSkipsWhenDisabled(t *testing.T) {
	s, _, _ := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) { return &fakeAdapter{}, nil })
	feed := sampleFeed()
	feed.Enabled = false

	result := s.SyncFeed(context.Background(), feed)
	if !result.Skipped || !result.Success {
		t.Errorf("expected disabled feed to be skipped successfully, got %+v", result)
	}
}

func TestSyncFeedCreatesNewIOCs(t *testing.T) {
	fake := &fakeAdapter{fetchResult: []ioc.IOC{
		{ID: uuid.New(), Type: ioc.TypeIP, Value: "1.2.3.4", Confidence: 0.8},
	}}
	s, feedStore, iocStore := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) { return fake, nil })

	result := s.SyncFeed(context.Background(), sampleFeed())
	if !result.Success {
		t.Fatalf("expected success, got errors: %v", result.Errors)
	}
	if result.IOCsNew != 1 {
		t.Errorf("IOCsNew = %d, want 1", result.IOCsNew)
	}
	if iocStore.Count() != 1 {
		t.Errorf("store count = %d, want 1", iocStore.Count())
	}

	saved, ok, _ := feedStore.Get("feed-1")
	if !ok || saved.LastSyncStatus != SyncStatusSuccess {
		t.Errorf("expected feed status to be recorded as success, got %+v", saved)
	}
	if !fake.closed {
		t.Error("expected adapter to be closed after sync")
	}
}

func TestSyncFeedMergesExistingIOC(t *testing.T) {
	existingID := uuid.New()
	fake := &fakeAdapter{fetchResult: []ioc.IOC{
		{ID: uuid.New(), Type: ioc.TypeIP, Value: "1.2.3.4", Confidence: 0.9, ThreatLevel: ioc.ThreatHigh},
	}}
	s, _, iocStore := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) { return fake, nil })
	iocStore.iocs[iocKey{tenantID: "tenant-1", t: ioc.TypeIP, value: "1.2.3.4"}] = ioc.IOC{
		ID: existingID, TenantID: "tenant-1", Type: ioc.TypeIP, Value: "1.2.3.4",
		NormalizedValue: "1.2.3.4", Confidence: 0.5, ThreatLevel: ioc.ThreatLow,
	}

	result := s.SyncFeed(context.Background(), sampleFeed())
	if result.IOCsUpdated != 1 || result.IOCsNew != 0 {
		t.Errorf("expected 1 update and 0 new, got %+v", result)
	}
	merged, _, _ := iocStore.Lookup("tenant-1", ioc.TypeIP, "1.2.3.4")
	if merged.ID != existingID {
		t.Error("expected merge to preserve the existing record's identity")
	}
	if merged.Confidence != 0.9 {
		t.Errorf("expected merged confidence 0.9, got %v", merged.Confidence)
	}
}

func TestSyncFeedAuthErrorDoesNotRetry(t *testing.T) {
	fake := &fakeAdapter{testConnErr: apperrors.New(apperrors.CodeFeedAuthError, "bad key")}
	s, feedStore, _ := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) { return fake, nil })

	result := s.SyncFeed(context.Background(), sampleFeed())
	if result.Success {
		t.Fatal("expected failure on auth error")
	}
	if fake.testCalls != 1 {
		t.Errorf("expected exactly 1 TestConnection call (no retry), got %d", fake.testCalls)
	}
	saved, _, _ := feedStore.Get("feed-1")
	if saved.ConsecutiveFailures != 1 {
		t.Errorf("ConsecutiveFailures = %d, want 1", saved.ConsecutiveFailures)
	}
	if saved.LastSyncStatus != SyncStatusError {
		t.Errorf("status = %s, want error", saved.LastSyncStatus)
	}
}

func TestSyncFeedRateLimitWaitsWithoutConsumingBudget(t *testing.T) {
	// First two TestConnection calls rate-limit, third succeeds; this
	// must not consume the 3-retry transient-error budget.
	attempts := 0
	s, _, _ := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) {
		return &rateLimitThenSucceedAdapter{attempts: &attempts}, nil
	})

	result := s.SyncFeed(context.Background(), sampleFeed())
	if !result.Success {
		t.Fatalf("expected eventual success after rate-limit backoff, got errors: %v", result.Errors)
	}
	if attempts < 3 {
		t.Errorf("expected at least 3 TestConnection attempts across the rate-limit retries, got %d", attempts)
	}
}

type rateLimitThenSucceedAdapter struct {
	attempts *int
}

func (a *rateLimitThenSucceedAdapter) TestConnection(ctx context.Context) error {
	*a.attempts++
	if *a.attempts < 3 {
		return apperrors.FeedRateLimit(1)
	}
	return nil
}

func (a *rateLimitThenSucceedAdapter) FetchSince(ctx context.Context, since time.Time, limit int) ([]ioc.IOC, error) {
	return nil, nil
}

func (a *rateLimitThenSucceedAdapter) LookupOne(ctx context.Context, value string, t ioc.Type) (*ioc.IOC, error) {
	return nil, nil
}

func (a *rateLimitThenSucceedAdapter) Close() error { return nil }

func TestSyncFeedTransientFetchErrorRetriesThenFails(t *testing.T) {
	fake := &fakeAdapter{fetchErr: apperrors.New(apperrors.CodeFeedAPIError, "upstream 500")}
	s, _, _ := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) { return fake, nil })

	result := s.SyncFeed(context.Background(), sampleFeed())
	if result.Success {
		t.Fatal("expected failure after exhausting retries")
	}
	if fake.fetchCalls != s.maxRetries+1 {
		t.Errorf("expected %d fetch attempts, got %d", s.maxRetries+1, fake.fetchCalls)
	}
}

func TestSyncFeedPerIOCFailureIsSkippedNotFatal(t *testing.T) {
	fake := &fakeAdapter{fetchResult: []ioc.IOC{
		{ID: uuid.New(), Type: ioc.TypeIP, Value: "1.2.3.4", Confidence: 0.8},
		{ID: uuid.New(), Type: ioc.TypeIP, Value: "5.6.7.8", Confidence: 0.8},
	}}
	failing := &failingIOCStore{MemoryIOCStore: NewMemoryIOCStore(), failValue: "5.6.7.8"}
	s := NewScheduler(NewMemoryFeedStore(), failing, WithAdapterFactory(func(ctifeed.Config) (ctifeed.Adapter, error) { return fake, nil }))
	s.sleep = noSleep

	result := s.SyncFeed(context.Background(), sampleFeed())
	if !result.Success {
		t.Fatalf("expected overall success despite one IOC failing, got %v", result.Errors)
	}
	if result.IOCsNew != 1 || result.IOCsSkipped != 1 {
		t.Errorf("expected 1 new and 1 skipped, got new=%d skipped=%d", result.IOCsNew, result.IOCsSkipped)
	}
}

type failingIOCStore struct {
	*MemoryIOCStore
	failValue string
}

func (f *failingIOCStore) Create(i ioc.IOC) error {
	if i.NormalizedValue == f.failValue {
		return apperrors.New(apperrors.CodeFeedParseError, "boom")
	}
	return f.MemoryIOCStore.Create(i)
}

func TestSyncAllFeedsPoolsResultsAcrossFeeds(t *testing.T) {
	s, feedStore, _ := testScheduler(func(ctifeed.Config) (ctifeed.Adapter, error) { return &fakeAdapter{}, nil })
	feedStore.Save(sampleFeed())
	second := sampleFeed()
	second.FeedID = "feed-2"
	feedStore.Save(second)

	batch := s.SyncAllFeeds(context.Background())
	if batch.TotalFeeds != 2 || batch.Successful != 2 {
		t.Errorf("expected 2 total/2 successful, got %+v", batch)
	}
}
