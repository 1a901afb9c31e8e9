// internal/gateway/validation/routes.go
package validation

// RouteValidationRules defines per-route validation rules (content type,
// size caps, required headers/query params, JSON-schema body checks) for
// the request pipeline's validation stage.
var RouteValidationRules = map[string]*ValidationRules{
	"POST /api/v1/integrations/webhook/{token}": {
		ContentTypes: []string{"application/json"},
		MaxBodySize:  10 * 1024 * 1024, // 10MB
		JSONSchema: `{
			"type": "object",
			"required": ["iocs"],
			"properties": {
				"iocs": {
					"type": "array",
					"maxItems": 5000,
					"items": {
						"type": "object",
						"required": ["type", "value"],
						"properties": {
							"type": {"type": "string"},
							"value": {"type": "string", "minLength": 1}
						}
					}
				}
			}
		}`,
	},
	"POST /api/v1/iocs/bulk": {
		ContentTypes: []string{"application/json"},
		MaxBodySize:  25 * 1024 * 1024, // 25MB
		Headers: HeaderRules{
			Required: []string{"X-Tenant-ID"},
		},
		JSONSchema: `{
			"type": "object",
			"required": ["iocs"],
			"properties": {
				"iocs": {
					"type": "array",
					"minItems": 1,
					"maxItems": 10000,
					"items": {
						"type": "object",
						"required": ["type", "value"],
						"properties": {
							"type": {"type": "string"},
							"value": {"type": "string", "minLength": 1},
							"tags": {"type": "array", "items": {"type": "string"}}
						}
					}
				}
			}
		}`,
	},
	"GET /api/v1/iocs": {
		Query: QueryRules{
			Types: map[string]ParamType{
				"limit":  ParamTypeInt,
				"offset": ParamTypeInt,
			},
			Ranges: map[string]Range{
				"limit": {Min: 1, Max: 1000},
			},
		},
	},
}

// GetValidationRules returns validation rules for a given route, or nil if
// none are registered (no validation applied).
func GetValidationRules(method, path string) *ValidationRules {
	key := method + " " + path
	return RouteValidationRules[key]
}
