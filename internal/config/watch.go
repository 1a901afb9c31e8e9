package config

import (
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Live holds the subset of configuration that may change without a
// restart — the CORS allow-list and the rate-limit toggles — guarded so
// internal/gateway's CORS and RateLimitGate middleware can read the
// current value on every request without racing the watcher goroutine.
// Spec §3's AMBIENT STACK calls this out explicitly: "fsnotify to
// hot-reload the CORS allow-list and rate-limit toggles."
type Live struct {
	mu      sync.RWMutex
	cors    CORSConfig
	limit   RateLimitConfig
	enabled atomic.Bool
}

// NewLive seeds a Live view from the process's initial configuration.
func NewLive(cfg *Config) *Live {
	l := &Live{cors: cfg.CORS, limit: cfg.RateLimit}
	l.enabled.Store(cfg.RateLimit.Enabled)
	return l
}

// CORS returns the current CORS allow-list.
func (l *Live) CORS() CORSConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cors
}

// RateLimitEnabled reports whether the rate limiter is currently active.
func (l *Live) RateLimitEnabled() bool {
	return l.enabled.Load()
}

func (l *Live) apply(cfg *Config) {
	l.mu.Lock()
	l.cors = cfg.CORS
	l.limit = cfg.RateLimit
	l.mu.Unlock()
	l.enabled.Store(cfg.RateLimit.Enabled)
}

// WatchFile watches path for writes and reloads cfg's CORS/rate-limit
// settings into live whenever the file changes, logging and otherwise
// ignoring parse failures so a bad edit never brings the process down.
// The teacher already carries fsnotify in go.mod for an equivalent
// config-reload concern; this generalizes that same watch-and-reload loop
// to the two settings spec §3 calls hot-reloadable.
func WatchFile(path string, live *Live, logger *zap.Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					logger.Warn("config: reload failed, keeping previous settings", zap.Error(err))
					continue
				}
				live.apply(cfg)
				logger.Info("config: reloaded CORS/rate-limit settings", zap.String("path", path))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("config: watcher error", zap.Error(err))
			}
		}
	}()

	return watcher, nil
}
