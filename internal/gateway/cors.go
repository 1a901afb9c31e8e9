package gateway

import "net/http"

// CORSConfig is the closed allow-list driving the outermost pipeline
// middleware (spec §4.9 step 1). AllowedOrigins of ["*"] allows any
// origin; this is intentionally a plain header-setting middleware rather
// than a third-party CORS library, matching the teacher's own
// header-manipulation style since the contract here is a handful of
// static headers, not a full preflight negotiation engine.
type CORSConfig struct {
	AllowedOrigins []string
}

func (c CORSConfig) allows(origin string) bool {
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func writeCORSHeaders(cfg CORSConfig, w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && cfg.allows(origin) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Tenant-ID")
		w.Header().Set("Vary", "Origin")
	}
}

// CORS returns the outermost middleware in the pipeline for a fixed
// allow-list.
func CORS(cfg CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCORSHeaders(cfg, w, r)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORSDynamic is CORS with the allow-list resolved fresh on every request
// instead of fixed at construction time, so internal/config's fsnotify
// watcher can hot-reload it without rebuilding the middleware chain.
func CORSDynamic(current func() CORSConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeCORSHeaders(current(), w, r)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
