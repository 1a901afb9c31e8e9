package ratelimit

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

// SetHeaders attaches the X-RateLimit-* headers spec §4.8 requires on
// every response, plus Retry-After when the request was rejected.
// Grounded on the teacher's SetHeaders (internal/ratelimit/headers.go),
// adapted from the teacher's IETF-draft/legacy header toggle (not part of
// this spec's contract) to Result's allowed/rejected fields.
func SetHeaders(w http.ResponseWriter, r Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(r.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, r.Remaining)))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(r.ResetAt, 10))
	if !r.Allowed {
		w.Header().Set("Retry-After", strconv.Itoa(r.RetryAfter))
	}
}

// WriteRejected writes the standard 429 body for a rejected Result,
// replacing the teacher's ad hoc FormatRateLimitError with the shared
// apperrors envelope.
func WriteRejected(w http.ResponseWriter, r Result) {
	SetHeaders(w, r)
	apperrors.WriteError(w, apperrors.RateLimitExceeded(r.Limit, r.RetryAfter, strconv.FormatInt(r.ResetAt, 10)))
}

// CheckFailOpen wraps a CheckRateLimit call with spec §4.8's deliberate
// availability-over-safety rule: on any store/infrastructure error, log it
// and allow the request rather than surface a 5xx to customer traffic.
func CheckFailOpen(logger *zap.Logger, check func() (Result, error)) Result {
	result, err := check()
	if err != nil {
		logger.Error("rate limiter store failure, failing open", zap.Error(err))
		return Result{Allowed: true}
	}
	return result
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
