package repository

import (
	"sync"

	"github.com/isora-platform/cyberops-core/internal/scheduler"
)

// FeedStore satisfies internal/scheduler's FeedStore interface and adds
// the per-tenant listing cmd/isora's feed-management handlers need.
type FeedStore struct {
	mu    sync.RWMutex
	feeds map[string]scheduler.Feed
}

func NewFeedStore() *FeedStore {
	return &FeedStore{feeds: make(map[string]scheduler.Feed)}
}

func (s *FeedStore) ListEnabled() ([]scheduler.Feed, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []scheduler.Feed
	for _, f := range s.feeds {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FeedStore) Get(feedID string) (scheduler.Feed, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.feeds[feedID]
	return f, ok, nil
}

func (s *FeedStore) Save(f scheduler.Feed) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feeds[f.FeedID] = f
	return nil
}

// ListByTenant returns every feed a tenant has configured, enabled or not.
func (s *FeedStore) ListByTenant(tenantID string) []scheduler.Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]scheduler.Feed, 0)
	for _, f := range s.feeds {
		if f.TenantID == tenantID {
			out = append(out, f)
		}
	}
	return out
}

// Delete removes a feed configuration entirely.
func (s *FeedStore) Delete(feedID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.feeds, feedID)
}

var _ scheduler.FeedStore = (*FeedStore)(nil)
