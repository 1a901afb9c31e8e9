// Package ctifeed implements the CTI feed adapters (spec C2): a common
// Adapter contract plus MISP, OTX and VirusTotal implementations that
// pull raw feed data and hand back internal/ioc.IOC records.
package ctifeed

import (
	"context"
	"time"

	"github.com/isora-platform/cyberops-core/internal/ioc"
)

// Type is the closed set of feed providers this platform integrates with.
type Type string

const (
	TypeMISP       Type = "misp"
	TypeOTX        Type = "otx"
	TypeVirusTotal Type = "virustotal"
)

func (t Type) Valid() bool {
	switch t {
	case TypeMISP, TypeOTX, TypeVirusTotal:
		return true
	}
	return false
}

// Config carries the connection details one configured feed needs,
// shared across adapter kinds.
type Config struct {
	Type      Type
	BaseURL   string
	APIKey    string
	VerifySSL bool
	Timeout   time.Duration
	Filters   map[string]any
}

// Adapter is the behavior every feed provider exposes, independent of
// its wire protocol: verify reachability, pull everything new since a
// point in time, look a single indicator up on demand, and release
// whatever connection state it holds.
type Adapter interface {
	TestConnection(ctx context.Context) error
	FetchSince(ctx context.Context, since time.Time, limit int) ([]ioc.IOC, error)
	LookupOne(ctx context.Context, value string, t ioc.Type) (*ioc.IOC, error)
	Close() error
}

// SyncResult summarizes one FetchSince run against a configured feed,
// mirroring the counts the scheduler (C10) records per run.
type SyncResult struct {
	FeedID          string
	FeedType        Type
	Success         bool
	IOCsFetched     int
	IOCsNew         int
	IOCsUpdated     int
	IOCsSkipped     int
	Errors          []string
	DurationSeconds float64
	SyncStartedAt   time.Time
	SyncCompletedAt time.Time
}

// New builds the adapter for cfg.Type. It returns apperrors.CodeFeedConfigError
// (via newUnsupportedFeedError) for any type outside the closed set.
func New(cfg Config) (Adapter, error) {
	switch cfg.Type {
	case TypeMISP:
		return NewMISPAdapter(cfg), nil
	case TypeOTX:
		return NewOTXAdapter(cfg), nil
	case TypeVirusTotal:
		return NewVirusTotalAdapter(cfg), nil
	default:
		return nil, newUnsupportedFeedError(cfg.Type)
	}
}
