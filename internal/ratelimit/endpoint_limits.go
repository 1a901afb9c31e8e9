package ratelimit

import "strings"

// EndpointLimit tightens the per-minute cap for specific IP-keyed endpoints
// regardless of tenant plan (login/register/password-reset abuse
// surfaces). Grounded on the teacher's OperationLimiter
// (internal/ratelimit/operation_limits.go), adapted from an
// operation-string key to a request-path key since this spec has no
// notion of named "operations" outside the HTTP surface.
type EndpointLimit struct {
	RequestsPerMinute int
}

var endpointLimits = map[string]EndpointLimit{
	"/api/v1/auth/login":    {RequestsPerMinute: 5},
	"/api/v1/auth/register": {RequestsPerMinute: 3},
	"/api/v1/auth/refresh":  {RequestsPerMinute: 10},
}

// GetEndpointLimit returns the configured cap for path, if any. Exact match
// only — this is a closed table of known-sensitive endpoints, not a
// pattern-matching router.
func GetEndpointLimit(path string) (EndpointLimit, bool) {
	limit, ok := endpointLimits[path]
	return limit, ok
}

// endpointKeyPart turns a path into the key-safe fragment the teacher's
// reference uses (slashes replaced so the sorted-set key stays a single
// token).
func endpointKeyPart(path string) string {
	return strings.ReplaceAll(path, "/", "_")
}
