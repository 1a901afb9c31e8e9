// internal/gateway/apikey.go
package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceAccountKey is a long-lived credential issued to an automation
// client (a CTI feed adapter's webhook callback, a CI pipeline submitting
// bulk IOCs) rather than a human user. Only the bcrypt hash is retained —
// the raw key is returned once, at issuance, and never stored again.
// Grounded on the teacher's password hashing in internal/auth/auth.go.
type ServiceAccountKey struct {
	KeyID       string
	TenantID    string
	Hash        []byte
	Permissions []string
	CreatedAt   time.Time
	LastUsed    time.Time
}

// APIKeyManager issues and validates service-account keys.
type APIKeyManager struct {
	mu   sync.RWMutex
	keys map[string]*ServiceAccountKey
}

// NewAPIKeyManager creates a new API key manager.
func NewAPIKeyManager() *APIKeyManager {
	return &APIKeyManager{
		keys: make(map[string]*ServiceAccountKey),
	}
}

// IssueKey mints a new service-account key for tenantID, returning the raw
// key (show-once) and its ID. The raw key is never retained.
func (m *APIKeyManager) IssueKey(tenantID string, permissions []string) (rawKey string, keyID string, err error) {
	idBytes := make([]byte, 8)
	if _, err := rand.Read(idBytes); err != nil {
		return "", "", err
	}
	keyID = hex.EncodeToString(idBytes)

	secretBytes := make([]byte, 32)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", "", err
	}
	rawKey = "cyops_" + keyID + "_" + hex.EncodeToString(secretBytes)

	hash, err := bcrypt.GenerateFromPassword([]byte(rawKey), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	m.mu.Lock()
	m.keys[keyID] = &ServiceAccountKey{
		KeyID:       keyID,
		TenantID:    tenantID,
		Hash:        hash,
		Permissions: permissions,
		CreatedAt:   time.Now(),
	}
	m.mu.Unlock()

	return rawKey, keyID, nil
}

// ValidateKey checks a presented raw key against its claimed key ID and
// returns the owning tenant. A raw key has the form cyops_{keyID}_{secret}.
func (m *APIKeyManager) ValidateKey(rawKey string) (bool, string) {
	parts := strings.SplitN(rawKey, "_", 3)
	if len(parts) != 3 || parts[0] != "cyops" {
		return false, ""
	}
	keyID := parts[1]

	m.mu.RLock()
	entry, exists := m.keys[keyID]
	m.mu.RUnlock()
	if !exists {
		return false, ""
	}

	if err := bcrypt.CompareHashAndPassword(entry.Hash, []byte(rawKey)); err != nil {
		return false, ""
	}

	m.mu.Lock()
	entry.LastUsed = time.Now()
	m.mu.Unlock()

	return true, entry.TenantID
}

// HasPermission checks if a key grants a specific permission.
func (m *APIKeyManager) HasPermission(keyID, permission string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, exists := m.keys[keyID]
	if !exists {
		return false
	}

	for _, perm := range entry.Permissions {
		if perm == permission {
			return true
		}
	}

	return false
}

// Middleware authenticates requests bearing a service-account key, either
// via X-API-Key or an Authorization: Bearer header. Used for automation
// endpoints (bulk IOC ingestion, feed-sync triggers) that are not
// human-session JWT callers.
func (m *APIKeyManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				key = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if key == "" {
			http.Error(w, "API key required", http.StatusUnauthorized)
			return
		}

		valid, tenantID := m.ValidateKey(key)
		if !valid {
			http.Error(w, "Invalid API key", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyTenant, tenantID)
		ctx = context.WithValue(ctx, ContextKeyAPIKey, key)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RevokeKey removes a service-account key by its ID.
func (m *APIKeyManager) RevokeKey(keyID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.keys[keyID]; exists {
		delete(m.keys, keyID)
		return true
	}

	return false
}
