package repository

import (
	"sync"
	"time"

	"github.com/isora-platform/cyberops-core/internal/compliance"
	"github.com/isora-platform/cyberops-core/internal/framework"
)

// ComplianceRun is one persisted EvaluatePhase/EvaluateCrossFramework
// result, stamped with the tenant and phase it was run for so
// cmd/isora's compliance-history handler can answer "how has our gap
// count trended" without re-running the evaluator.
type ComplianceRun struct {
	TenantID  string
	Framework framework.Framework
	Phase     framework.Phase
	Report    compliance.ComplianceReport
	EvaluatedAt time.Time
}

type complianceKey struct {
	tenantID  string
	framework framework.Framework
	phase     framework.Phase
}

// ComplianceStore keeps the most recent evaluation per (tenant, framework,
// phase) plus a full history for trend reporting. The evaluator itself
// (internal/compliance.Evaluator) stays stateless pure computation; this
// is purely the record of what was computed and when.
type ComplianceStore struct {
	mu      sync.RWMutex
	latest  map[complianceKey]ComplianceRun
	history map[complianceKey][]ComplianceRun
}

func NewComplianceStore() *ComplianceStore {
	return &ComplianceStore{
		latest:  make(map[complianceKey]ComplianceRun),
		history: make(map[complianceKey][]ComplianceRun),
	}
}

// Record stores a completed evaluation run.
func (s *ComplianceStore) Record(run ComplianceRun) {
	key := complianceKey{run.TenantID, run.Framework, run.Phase}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[key] = run
	s.history[key] = append(s.history[key], run)
}

// Latest returns the most recent run for a tenant/framework/phase triple.
func (s *ComplianceStore) Latest(tenantID string, fw framework.Framework, phase framework.Phase) (ComplianceRun, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.latest[complianceKey{tenantID, fw, phase}]
	return run, ok
}

// History returns every recorded run for a tenant/framework/phase triple,
// oldest first.
func (s *ComplianceStore) History(tenantID string, fw framework.Framework, phase framework.Phase) []ComplianceRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := s.history[complianceKey{tenantID, fw, phase}]
	out := make([]ComplianceRun, len(runs))
	copy(out, runs)
	return out
}
