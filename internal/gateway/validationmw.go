// internal/gateway/validationmw.go
package gateway

import (
	"net/http"

	"github.com/isora-platform/cyberops-core/internal/gateway/validation"
)

// RouteValidator looks up and applies internal/gateway/validation's
// per-route rules (content type, size caps, required headers/query
// params, JSON-schema body checks) ahead of a route's handler. routePattern
// is the same pattern the router registered the handler under, e.g.
// "POST /api/v1/iocs/bulk", matching validation.RouteValidationRules' keys.
func RouteValidator(routePattern string) Middleware {
	validator := validation.NewRequestValidator()
	rules := validation.GetValidationRules(routeMethod(routePattern), routePath(routePattern))

	return func(next http.Handler) http.Handler {
		if rules == nil {
			return next
		}
		return validation.ValidationMiddleware(validator, rules)(next)
	}
}

func routeMethod(pattern string) string {
	for i, c := range pattern {
		if c == ' ' {
			return pattern[:i]
		}
	}
	return ""
}

func routePath(pattern string) string {
	for i, c := range pattern {
		if c == ' ' {
			return pattern[i+1:]
		}
	}
	return pattern
}
