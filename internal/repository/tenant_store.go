package repository

import (
	"errors"

	"github.com/isora-platform/cyberops-core/internal/ratelimit"
)

// ErrTenantNotFound mirrors the teacher's tenant.ErrNoTenant for this
// package's own lookups.
var ErrTenantNotFound = errors.New("repository: tenant not found")

// Tenant is one onboarded organization: its billing plan (drives
// internal/ratelimit's per-minute/per-hour caps) and the feed-adapter API
// keys it has configured for internal/ctifeed. Generalizes the teacher's
// tenant.Tenant (ID/Name only) with the fields this domain actually needs.
type Tenant struct {
	ID        string
	Name      string
	Plan      ratelimit.Plan
	APIKey    string
	FeedKeys  map[string]string // ctifeed.Type (string) -> API key
}

// TenantStore is the teacher's tenant.Store (GetByAPIKey/GetByID) widened
// with the write path a running service needs; it is not itself the
// gateway-facing tenant.Store interface (internal/tenant owns that
// contract) but backs whatever adapter cmd/isora registers against it.
type TenantStore struct {
	byID  *mutexMap[string, Tenant]
	byKey *mutexMap[string, string] // apiKey -> tenant ID
}

func NewTenantStore() *TenantStore {
	return &TenantStore{
		byID:  newMutexMap[string, Tenant](),
		byKey: newMutexMap[string, string](),
	}
}

// Save creates or replaces a tenant record.
func (s *TenantStore) Save(t Tenant) error {
	s.byID.set(t.ID, t)
	if t.APIKey != "" {
		s.byKey.set(t.APIKey, t.ID)
	}
	return nil
}

// GetByID looks up a tenant by its ID.
func (s *TenantStore) GetByID(id string) (Tenant, error) {
	t, ok := s.byID.get(id)
	if !ok {
		return Tenant{}, ErrTenantNotFound
	}
	return t, nil
}

// GetByAPIKey looks up a tenant by one of its issued API keys, the same
// lookup the teacher's RequireAPIKey middleware used against its own
// tenant.Store before authtoken.Validator took over bearer-token auth.
func (s *TenantStore) GetByAPIKey(apiKey string) (Tenant, error) {
	id, ok := s.byKey.get(apiKey)
	if !ok {
		return Tenant{}, ErrTenantNotFound
	}
	return s.GetByID(id)
}

// List returns every registered tenant.
func (s *TenantStore) List() []Tenant {
	return s.byID.values()
}
