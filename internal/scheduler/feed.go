// Package scheduler implements the background feed scheduler (spec C10):
// a periodic job that drives every enabled internal/ctifeed adapter
// through TestConnection/FetchSince, filters and deduplicates what comes
// back via internal/ioc, and upserts the result through a repository,
// all without ever letting one feed's failure abort the batch.
//
// Grounded on
// original_source/apps/api/src/tasks/cti_tasks.py's sync_threat_feed and
// sync_all_threat_feeds Celery tasks, adapted from Celery's
// task-queue-plus-beat-schedule model to a single in-process ticker, the
// way internal/gateway's RateLimitGate already reimplements a
// token-bucket admission control loop the teacher's pipeline never had.
package scheduler

import (
	"time"

	"github.com/isora-platform/cyberops-core/internal/ctifeed"
	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// SyncStatus is a feed's last-sync outcome.
type SyncStatus string

const (
	SyncStatusSuccess     SyncStatus = "success"
	SyncStatusError       SyncStatus = "error"
	SyncStatusRateLimited SyncStatus = "rate_limited"
	SyncStatusDisabled    SyncStatus = "disabled"
)

// Feed is one tenant's configured CTI feed subscription.
type Feed struct {
	FeedID             string
	TenantID           string
	Name               string
	Config             ctifeed.Config
	Enabled            bool
	MinConfidence      float64
	AllowedTypes       []ioc.Type
	LastSync           time.Time
	LastSyncStatus     SyncStatus
	LastSyncCount      int
	ConsecutiveFailures int
}

// FeedResult is one feed's outcome from a single sync pass, mirroring
// FeedSyncResult.to_dict() from the original task.
type FeedResult struct {
	FeedID          string
	FeedName        string
	Success         bool
	Skipped         bool
	SkipReason      string
	IOCsFetched     int
	IOCsNew         int
	IOCsUpdated     int
	IOCsSkipped     int
	Errors          []string
	SyncStartedAt   time.Time
	SyncCompletedAt time.Time
	DurationSeconds float64
}

// BatchResult is SyncAllFeeds' overall summary, mirroring
// _sync_all_feeds_async's results dict.
type BatchResult struct {
	TotalFeeds int
	Successful int
	Failed     int
	Skipped    int
	FeedResults []FeedResult
}
