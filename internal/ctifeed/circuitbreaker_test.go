package ctifeed

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := newCircuitBreaker(zap.NewNop())
	cb.resetTimeout = time.Hour
	boom := errors.New("boom")

	for i := 0; i < cb.failureThreshold; i++ {
		_ = cb.Execute(context.Background(), func() error { return boom })
	}

	err := cb.Execute(context.Background(), func() error { return nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenRecovers(t *testing.T) {
	cb := newCircuitBreaker(zap.NewNop())
	cb.resetTimeout = 10 * time.Millisecond
	boom := errors.New("boom")

	for i := 0; i < cb.failureThreshold; i++ {
		_ = cb.Execute(context.Background(), func() error { return boom })
	}

	time.Sleep(20 * time.Millisecond)

	err := cb.Execute(context.Background(), func() error { return nil })
	if err != nil {
		t.Fatalf("expected half-open probe to succeed, got %v", err)
	}
	if cb.state != circuitClosed {
		t.Fatalf("expected circuit to close after successful probe, state = %v", cb.state)
	}
}

func TestCircuitBreakerStaysClosedOnSuccess(t *testing.T) {
	cb := newCircuitBreaker(zap.NewNop())
	for i := 0; i < 20; i++ {
		if err := cb.Execute(context.Background(), func() error { return nil }); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if cb.state != circuitClosed {
		t.Fatalf("expected circuit closed, got %v", cb.state)
	}
}
