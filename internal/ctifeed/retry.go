package ctifeed

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

// retryPolicy retries a transient feed-connection failure with capped
// exponential backoff and jitter. Rate-limit errors are never retried
// here — they carry their own retry-after hint and propagate to the
// caller immediately instead.
type retryPolicy struct {
	maxAttempts  int
	initialDelay time.Duration
	maxDelay     time.Duration
	logger       *zap.Logger
}

func newRetryPolicy(logger *zap.Logger) *retryPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &retryPolicy{
		maxAttempts:  3,
		initialDelay: 200 * time.Millisecond,
		maxDelay:     5 * time.Second,
		logger:       logger,
	}
}

func (p *retryPolicy) Execute(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		var appErr *apperrors.Error
		if errors.As(lastErr, &appErr) && appErr.Code == apperrors.CodeFeedRateLimit {
			return lastErr
		}

		if attempt == p.maxAttempts-1 {
			break
		}

		delay := p.calculateDelay(attempt)
		p.logger.Debug("ctifeed retrying after transient failure",
			zap.Error(lastErr), zap.Int("attempt", attempt+1), zap.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}

func (p *retryPolicy) calculateDelay(attempt int) time.Duration {
	delay := float64(p.initialDelay) * math.Pow(2, float64(attempt))
	if delay > float64(p.maxDelay) {
		delay = float64(p.maxDelay)
	}
	jitter := 0.5 + rand.Float64()
	return time.Duration(delay * jitter)
}
