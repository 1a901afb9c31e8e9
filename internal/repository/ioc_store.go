package repository

import (
	"sync"

	"github.com/isora-platform/cyberops-core/internal/ioc"
	"github.com/isora-platform/cyberops-core/internal/scheduler"
)

type iocKey struct {
	tenantID string
	t        ioc.Type
	value    string
}

// IOCStore satisfies internal/scheduler's IOCStore interface (the
// lookup-or-create-or-merge step C10 needs) and adds the read paths
// cmd/isora's IOC handlers need: list and get-by-ID within a tenant.
// Keyed the same way internal/scheduler.MemoryIOCStore is in tests —
// (tenant, type, normalized value) — since that triple, not the surrogate
// UUID, is the IOC's natural identity per spec §3.1.
type IOCStore struct {
	mu   sync.RWMutex
	byID map[iocKey]ioc.IOC
}

func NewIOCStore() *IOCStore {
	return &IOCStore{byID: make(map[iocKey]ioc.IOC)}
}

func (s *IOCStore) Lookup(tenantID string, t ioc.Type, normalizedValue string) (ioc.IOC, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[iocKey{tenantID, t, normalizedValue}]
	return i, ok, nil
}

func (s *IOCStore) Create(i ioc.IOC) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[iocKey{i.TenantID, i.Type, i.NormalizedValue}] = i
	return nil
}

func (s *IOCStore) Update(i ioc.IOC) error {
	return s.Create(i)
}

// Get finds a single IOC by its surrogate ID within a tenant's records.
func (s *IOCStore) Get(tenantID string, id string) (ioc.IOC, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, i := range s.byID {
		if i.TenantID == tenantID && i.ID.String() == id {
			return i, true
		}
	}
	return ioc.IOC{}, false
}

// ListByTenant returns every IOC recorded for a tenant, for the listing
// and bulk-export handlers.
func (s *IOCStore) ListByTenant(tenantID string) []ioc.IOC {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ioc.IOC, 0)
	for _, i := range s.byID {
		if i.TenantID == tenantID {
			out = append(out, i)
		}
	}
	return out
}

// Delete removes an IOC from a tenant's records, returning false if it was
// never present.
func (s *IOCStore) Delete(tenantID string, t ioc.Type, normalizedValue string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := iocKey{tenantID, t, normalizedValue}
	if _, ok := s.byID[key]; !ok {
		return false
	}
	delete(s.byID, key)
	return true
}

var _ scheduler.IOCStore = (*IOCStore)(nil)
