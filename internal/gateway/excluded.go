package gateway

import "strings"

// excludedPaths and excludedPrefixes are the closed bypass set shared by
// the rate-limit gate and the tenant-binding middleware, taken verbatim
// from original_source/apps/api/src/middleware/tenant_middleware.py's
// EXCLUDED_PATHS/EXCLUDED_PREFIXES (spec §4.8 step 1, §4.9 step 2).
var excludedPaths = map[string]struct{}{
	"/health":                  {},
	"/":                        {},
	"/api/docs":                {},
	"/api/redoc":               {},
	"/api/openapi.json":        {},
	"/api/v1/auth/login":       {},
	"/api/v1/auth/register":    {},
	"/api/v1/auth/refresh":     {},
	"/api/v1/auth/sso":         {},
}

var excludedPrefixes = []string{
	"/api/v1/auth/sso/",
}

// IsExcluded reports whether path bypasses both rate limiting and tenant
// context binding.
func IsExcluded(path string) bool {
	if _, ok := excludedPaths[path]; ok {
		return true
	}
	for _, prefix := range excludedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
