// Package apperrors implements the closed error taxonomy of the platform
// (auth, admission, validation, not-found, integration, persistence,
// internal) and the single HTTP response mapping every handler uses, so
// the ad hoc http.Error call sites scattered through the teacher's
// handlers collapse into one place.
package apperrors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Code is the closed set of machine-readable error codes returned in every
// JSON error body.
type Code string

const (
	// Auth
	CodeUnauthenticated  Code = "unauthenticated"
	CodeInvalidToken     Code = "invalid_token"
	CodeTokenExpired     Code = "token_expired"
	CodeInsufficientRole Code = "insufficient_role"
	CodeTenantForbidden  Code = "tenant_forbidden"

	// Admission
	CodeRateLimitExceeded Code = "rate_limit_exceeded"

	// Validation
	CodeSchemaInvalid    Code = "schema_invalid"
	CodeIOCValueInvalid  Code = "ioc_value_invalid"
	CodeUnknownFramework Code = "unknown_framework"
	CodeUnknownPhase     Code = "unknown_phase"

	// Not-found
	CodeTenantContextMissing Code = "tenant_context_missing"
	CodeAssessmentNotFound   Code = "assessment_not_found"
	CodeControlNotFound      Code = "control_not_found"
	CodeNotificationNotFound Code = "notification_not_found"
	CodeScanNotFound         Code = "scan_not_found"
	CodeIOCNotFound          Code = "ioc_not_found"

	// Integration
	CodeFeedAuthError       Code = "feed_auth_error"
	CodeFeedConnectionError Code = "feed_connection_error"
	CodeFeedAPIError        Code = "feed_api_error"
	CodeFeedParseError      Code = "feed_parse_error"
	CodeFeedRateLimit       Code = "feed_rate_limit"
	CodeFeedConfigError     Code = "feed_config_error"

	// Persistence
	CodeConflictingWrite   Code = "conflicting_write"
	CodeStorageUnavailable Code = "storage_unavailable"

	// Internal — last resort
	CodeInternal Code = "internal"
)

// httpStatus maps every closed code to its HTTP status, per spec §7's
// "401 on token problems, 403 on tenant/role problems, 429 on admission,
// 404 on missing tenant-scoped entity, 400 on validation, 500 only for
// unrecovered internal errors" rule.
var httpStatus = map[Code]int{
	CodeUnauthenticated:  http.StatusUnauthorized,
	CodeInvalidToken:     http.StatusUnauthorized,
	CodeTokenExpired:     http.StatusUnauthorized,
	CodeInsufficientRole: http.StatusForbidden,
	CodeTenantForbidden:  http.StatusForbidden,

	CodeRateLimitExceeded: http.StatusTooManyRequests,

	CodeSchemaInvalid:    http.StatusBadRequest,
	CodeIOCValueInvalid:  http.StatusBadRequest,
	CodeUnknownFramework: http.StatusBadRequest,
	CodeUnknownPhase:     http.StatusBadRequest,

	CodeTenantContextMissing: http.StatusNotFound,
	CodeAssessmentNotFound:   http.StatusNotFound,
	CodeControlNotFound:      http.StatusNotFound,
	CodeNotificationNotFound: http.StatusNotFound,
	CodeScanNotFound:         http.StatusNotFound,
	CodeIOCNotFound:          http.StatusNotFound,

	CodeFeedAuthError:       http.StatusBadGateway,
	CodeFeedConnectionError: http.StatusBadGateway,
	CodeFeedAPIError:        http.StatusBadGateway,
	CodeFeedParseError:      http.StatusBadGateway,
	CodeFeedRateLimit:       http.StatusBadGateway,
	CodeFeedConfigError:     http.StatusBadGateway,

	CodeConflictingWrite:   http.StatusConflict,
	CodeStorageUnavailable: http.StatusServiceUnavailable,

	CodeInternal: http.StatusInternalServerError,
}

// Error is the concrete error type carried through the call stack. Fields
// beyond Code/Message are code-specific extras (limit/retry_after/reset_at
// for rate limiting, type/reason for IOC validation, etc.) surfaced
// verbatim in the JSON body's "detail" object.
type Error struct {
	Code    Code
	Message string
	Detail  map[string]any
}

func (e *Error) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds an Error with no detail payload.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithDetail attaches code-specific fields, returning the same *Error for
// chaining at the call site.
func (e *Error) WithDetail(detail map[string]any) *Error {
	e.Detail = detail
	return e
}

// RateLimitExceeded builds the admission error carrying the fields spec §7
// requires on it.
func RateLimitExceeded(limit int, retryAfter int, resetAt string) *Error {
	return New(CodeRateLimitExceeded, "rate limit exceeded").WithDetail(map[string]any{
		"limit":       limit,
		"retry_after": retryAfter,
		"reset_at":    resetAt,
	})
}

// IOCValueInvalid builds the validation error carrying the IOC type and
// the human-readable reason it failed.
func IOCValueInvalid(iocType, reason string) *Error {
	return New(CodeIOCValueInvalid, "invalid IOC value").WithDetail(map[string]any{
		"type":   iocType,
		"reason": reason,
	})
}

// FeedRateLimit builds the integration error carrying the adapter-reported
// retry-after hint.
func FeedRateLimit(retryAfter int) *Error {
	return New(CodeFeedRateLimit, "feed provider rate limited this request").WithDetail(map[string]any{
		"retry_after": retryAfter,
	})
}

// StatusFor returns the HTTP status for code, defaulting to 500 for any
// code outside the closed table (defensive only — every Code constant
// above has an entry).
func StatusFor(code Code) int {
	if s, ok := httpStatus[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

type body struct {
	Detail string         `json:"detail"`
	Error  errorBody      `json:"error"`
	Extra  map[string]any `json:"-"`
}

type errorBody struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// WriteError writes err to w as the standard JSON error envelope, mapping
// unrecognized errors to CodeInternal per spec §7's "last resort" rule.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = New(CodeInternal, "internal error")
	}

	status := StatusFor(appErr.Code)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body{
		Detail: appErr.Message,
		Error: errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
			Detail:  appErr.Detail,
		},
	})
}
