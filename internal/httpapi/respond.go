package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/isora-platform/cyberops-core/internal/apperrors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON parses r's body into v, reporting a schema_invalid error on
// failure so every handler's bad-body path goes through the same taxonomy.
func decodeJSON(r *http.Request, v any) *apperrors.Error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.New(apperrors.CodeSchemaInvalid, "request body is not valid JSON").
			WithDetail(map[string]any{"reason": err.Error()})
	}
	return nil
}
