package ctifeed

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when a feed's circuit breaker has tripped
// and is not yet due for a half-open retry.
var ErrCircuitOpen = errors.New("ctifeed: circuit breaker is open")

type circuitState int

const (
	circuitClosed circuitState = iota
	circuitOpen
	circuitHalfOpen
)

// circuitBreaker protects a flaky upstream feed provider from cascading
// retries: after failureThreshold consecutive failures it stops calling
// out entirely until resetTimeout has passed, then lets one call through
// to probe recovery.
type circuitBreaker struct {
	mu sync.Mutex

	failureThreshold int
	successThreshold int
	resetTimeout     time.Duration

	state        circuitState
	failures     int
	successes    int
	lastFailTime time.Time

	logger *zap.Logger
}

func newCircuitBreaker(logger *zap.Logger) *circuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &circuitBreaker{
		failureThreshold: 5,
		successThreshold: 1,
		resetTimeout:     60 * time.Second,
		state:            circuitClosed,
		logger:           logger,
	}
}

func (cb *circuitBreaker) Execute(ctx context.Context, fn func() error) error {
	cb.mu.Lock()
	if cb.state == circuitOpen {
		if time.Since(cb.lastFailTime) > cb.resetTimeout {
			cb.state = circuitHalfOpen
			cb.failures = 0
			cb.successes = 0
		} else {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
	}
	cb.mu.Unlock()

	err := fn()
	cb.recordResult(err)
	return err
}

func (cb *circuitBreaker) recordResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failures++
		cb.successes = 0
		cb.lastFailTime = time.Now()

		if cb.failures >= cb.failureThreshold {
			cb.state = circuitOpen
			cb.logger.Warn("ctifeed circuit breaker opened", zap.Int("failures", cb.failures))
		}
		return
	}

	cb.successes++
	cb.failures = 0
	if cb.state == circuitHalfOpen && cb.successes >= cb.successThreshold {
		cb.state = circuitClosed
		cb.logger.Info("ctifeed circuit breaker closed")
	}
}
