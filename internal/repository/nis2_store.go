package repository

import (
	"sync"

	"github.com/isora-platform/cyberops-core/internal/nis2"
)

// NIS2Store satisfies internal/nis2's Store interface, structured
// identically to nis2.MemoryStore (four dicts keyed by incident ID);
// cmd/isora builds its nis2.Manager on it, so the notifications live
// alongside the rest of the running service's state instead of inside the
// nis2 package itself.
type NIS2Store struct {
	mu                    sync.RWMutex
	notifications         map[string]nis2.Notification
	earlyWarnings         map[string]nis2.EarlyWarning
	incidentNotifications map[string]nis2.IncidentNotification
	finalReports          map[string]nis2.FinalReport
}

func NewNIS2Store() *NIS2Store {
	return &NIS2Store{
		notifications:         make(map[string]nis2.Notification),
		earlyWarnings:         make(map[string]nis2.EarlyWarning),
		incidentNotifications: make(map[string]nis2.IncidentNotification),
		finalReports:          make(map[string]nis2.FinalReport),
	}
}

func (s *NIS2Store) SaveNotification(n nis2.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[n.IncidentID] = n
	return nil
}

func (s *NIS2Store) GetNotification(incidentID string) (nis2.Notification, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[incidentID]
	return n, ok, nil
}

func (s *NIS2Store) SaveEarlyWarning(w nis2.EarlyWarning) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.earlyWarnings[w.IncidentID] = w
	return nil
}

func (s *NIS2Store) GetEarlyWarning(incidentID string) (nis2.EarlyWarning, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.earlyWarnings[incidentID]
	return w, ok, nil
}

func (s *NIS2Store) SaveIncidentNotification(n nis2.IncidentNotification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.incidentNotifications[n.IncidentID] = n
	return nil
}

func (s *NIS2Store) GetIncidentNotification(incidentID string) (nis2.IncidentNotification, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.incidentNotifications[incidentID]
	return n, ok, nil
}

func (s *NIS2Store) SaveFinalReport(r nis2.FinalReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finalReports[r.IncidentID] = r
	return nil
}

func (s *NIS2Store) GetFinalReport(incidentID string) (nis2.FinalReport, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.finalReports[incidentID]
	return r, ok, nil
}

// ListNotifications returns every notification on file. No handler in
// cmd/isora or internal/httpapi calls it.
func (s *NIS2Store) ListNotifications() []nis2.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]nis2.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, n)
	}
	return out
}

var _ nis2.Store = (*NIS2Store)(nil)
