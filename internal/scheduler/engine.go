package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
	"github.com/isora-platform/cyberops-core/internal/ctifeed"
	"github.com/isora-platform/cyberops-core/internal/ioc"
)

var tracer = otel.Tracer("github.com/isora-platform/cyberops-core/internal/scheduler")

// AdapterFactory builds the feed adapter for a configured feed. Defaults
// to ctifeed.New; tests substitute a fake.
type AdapterFactory func(ctifeed.Config) (ctifeed.Adapter, error)

const fetchLimit = 5000

// Scheduler drives the periodic sync of every enabled feed. The zero
// value is not usable; build one with NewScheduler.
type Scheduler struct {
	feedStore      FeedStore
	iocStore       IOCStore
	adapterFactory AdapterFactory
	logger         *zap.Logger

	now   func() time.Time
	sleep func(time.Duration)

	maxRetries   int
	retryDelay   time.Duration
	syncInterval time.Duration
}

// Option configures a Scheduler at construction time.
type Option func(*Scheduler)

func WithLogger(l *zap.Logger) Option { return func(s *Scheduler) { s.logger = l } }
func WithAdapterFactory(f AdapterFactory) Option { return func(s *Scheduler) { s.adapterFactory = f } }
func WithSyncInterval(d time.Duration) Option { return func(s *Scheduler) { s.syncInterval = d } }
func WithRetryPolicy(maxRetries int, delay time.Duration) Option {
	return func(s *Scheduler) { s.maxRetries = maxRetries; s.retryDelay = delay }
}

// NewScheduler builds a Scheduler backed by feedStore/iocStore, with spec
// §4.10's defaults: hourly sync, 3 retries at a 300-second base delay.
func NewScheduler(feedStore FeedStore, iocStore IOCStore, opts ...Option) *Scheduler {
	s := &Scheduler{
		feedStore:      feedStore,
		iocStore:       iocStore,
		adapterFactory: ctifeed.New,
		logger:         zap.NewNop(),
		now:            time.Now,
		sleep:          time.Sleep,
		maxRetries:     3,
		retryDelay:     300 * time.Second,
		syncInterval:   time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run blocks, calling SyncAllFeeds once immediately and then every
// syncInterval, until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	s.SyncAllFeeds(ctx)
	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SyncAllFeeds(ctx)
		}
	}
}

// SyncAllFeeds runs SyncFeed against every enabled feed, pooling counts
// into one BatchResult. One feed's failure never stops the batch.
func (s *Scheduler) SyncAllFeeds(ctx context.Context) BatchResult {
	feeds, err := s.feedStore.ListEnabled()
	if err != nil {
		s.logger.Error("scheduler: failed to list enabled feeds", zap.Error(err))
		return BatchResult{}
	}

	batch := BatchResult{TotalFeeds: len(feeds)}
	for _, feed := range feeds {
		result := s.SyncFeed(ctx, feed)
		batch.FeedResults = append(batch.FeedResults, result)
		switch {
		case result.Skipped:
			batch.Skipped++
		case result.Success:
			batch.Successful++
		default:
			batch.Failed++
		}
	}

	s.logger.Info("scheduler: sync pass complete",
		zap.Int("total", batch.TotalFeeds), zap.Int("successful", batch.Successful),
		zap.Int("failed", batch.Failed), zap.Int("skipped", batch.Skipped))
	return batch
}

// SyncFeed runs one feed's sync pass end to end: connect, fetch, filter,
// deduplicate, and upsert, recording sync status on the feed regardless
// of outcome. The whole pass runs inside one span so a slow or failing
// feed adapter is visible in traces alongside the adapter's own HTTP
// calls (internal/ctifeed instruments those at the transport level).
func (s *Scheduler) SyncFeed(ctx context.Context, feed Feed) FeedResult {
	ctx, span := tracer.Start(ctx, "scheduler.SyncFeed",
		trace.WithAttributes(
			attribute.String("feed.id", feed.FeedID),
			attribute.String("feed.type", string(feed.Config.Type)),
			attribute.String("tenant.id", feed.TenantID),
		))
	defer span.End()

	result := s.syncFeed(ctx, feed)
	if !result.Success {
		span.SetStatus(codes.Error, joinErrors(result.Errors))
	}
	span.SetAttributes(
		attribute.Int("feed.iocs_fetched", result.IOCsFetched),
		attribute.Int("feed.iocs_new", result.IOCsNew),
		attribute.Int("feed.iocs_updated", result.IOCsUpdated),
	)
	return result
}

func joinErrors(errs []string) string {
	if len(errs) == 0 {
		return "sync failed"
	}
	return errs[0]
}

func (s *Scheduler) syncFeed(ctx context.Context, feed Feed) FeedResult {
	start := s.now()
	result := FeedResult{FeedID: feed.FeedID, FeedName: feed.Name, SyncStartedAt: start}

	if !feed.Enabled {
		result.Skipped = true
		result.SkipReason = "feed is disabled"
		result.Success = true
		return result
	}

	adapter, err := s.adapterFactory(feed.Config)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		s.recordFailure(feed, SyncStatusError)
		return result
	}
	defer adapter.Close()

	if err := s.withRetry(ctx, func() error { return adapter.TestConnection(ctx) }); err != nil {
		result.Errors = append(result.Errors, err.Error())
		s.recordFailure(feed, statusFor(err))
		return result
	}

	var fetched []ioc.IOC
	err = s.withRetry(ctx, func() error {
		var fetchErr error
		fetched, fetchErr = adapter.FetchSince(ctx, feed.LastSync, fetchLimit)
		return fetchErr
	})
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		s.recordFailure(feed, statusFor(err))
		return result
	}
	result.IOCsFetched = len(fetched)

	filtered := ioc.Filter(fetched, ioc.FilterOptions{
		MinConfidence: feed.MinConfidence,
		AllowedTypes:  feed.AllowedTypes,
	})
	deduped := ioc.Deduplicate(filtered)

	for _, candidate := range deduped {
		s.upsert(feed.TenantID, candidate, &result)
	}

	feed.LastSync = s.now()
	feed.LastSyncStatus = SyncStatusSuccess
	feed.LastSyncCount = result.IOCsNew + result.IOCsUpdated
	feed.ConsecutiveFailures = 0
	if err := s.feedStore.Save(feed); err != nil {
		s.logger.Warn("scheduler: failed to persist feed sync status", zap.String("feed_id", feed.FeedID), zap.Error(err))
	}

	result.Success = true
	result.SyncCompletedAt = s.now()
	result.DurationSeconds = result.SyncCompletedAt.Sub(start).Seconds()
	return result
}

// upsert resolves one candidate IOC against the store: merge into an
// existing record, or create a new one. Any failure is recorded as a skip
// — spec §4.10 requires per-IOC exceptions never abort the batch.
func (s *Scheduler) upsert(tenantID string, candidate ioc.IOC, result *FeedResult) {
	candidate.TenantID = tenantID

	existing, found, err := s.iocStore.Lookup(tenantID, candidate.Type, candidate.NormalizedValue)
	if err != nil {
		result.IOCsSkipped++
		return
	}

	if found {
		merged := ioc.Merge(existing, candidate)
		if err := s.iocStore.Update(merged); err != nil {
			result.IOCsSkipped++
			return
		}
		result.IOCsUpdated++
		return
	}

	if candidate.ID == uuid.Nil {
		candidate.ID = uuid.New()
	}
	if err := s.iocStore.Create(candidate); err != nil {
		result.IOCsSkipped++
		return
	}
	result.IOCsNew++
}

func (s *Scheduler) recordFailure(feed Feed, status SyncStatus) {
	feed.LastSyncStatus = status
	feed.ConsecutiveFailures++
	if err := s.feedStore.Save(feed); err != nil {
		s.logger.Warn("scheduler: failed to persist feed failure status", zap.String("feed_id", feed.FeedID), zap.Error(err))
	}
}

// withRetry runs op, retrying transient failures up to maxRetries times
// at retryDelay (maxRetries+1 attempts in all). Auth and connection errors are terminal — retrying a
// rejected API key cannot succeed, so they propagate on first failure.
// Rate-limit errors wait out the adapter-reported retry_after and try
// again without consuming the retry budget.
func (s *Scheduler) withRetry(ctx context.Context, op func() error) error {
	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; {
		err := op()
		if err == nil {
			return nil
		}

		if appErr, ok := err.(*apperrors.Error); ok {
			switch appErr.Code {
			case apperrors.CodeFeedAuthError, apperrors.CodeFeedConnectionError:
				return err
			case apperrors.CodeFeedRateLimit:
				s.sleep(retryAfterDuration(appErr))
				continue // does not count against the retry budget
			}
		}

		lastErr = err
		attempt++
		if attempt > s.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.sleep(s.retryDelay)
	}
	return lastErr
}

func statusFor(err error) SyncStatus {
	if appErr, ok := err.(*apperrors.Error); ok && appErr.Code == apperrors.CodeFeedRateLimit {
		return SyncStatusRateLimited
	}
	return SyncStatusError
}

func retryAfterDuration(err *apperrors.Error) time.Duration {
	if err.Detail != nil {
		if v, ok := err.Detail["retry_after"].(int); ok {
			return time.Duration(v) * time.Second
		}
	}
	return 60 * time.Second
}
