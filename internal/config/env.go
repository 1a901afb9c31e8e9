package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadFromEnv overrides cfg in place with the spec §6.3 environment
// variables, mirroring the teacher's own LoadFromEnv
// (internal/config/env.go) in both shape and "env wins over file"
// precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("JWT_ALGORITHM"); v != "" {
		cfg.Auth.JWTAlgorithm = v
	}
	if v := os.Getenv("JWT_EXPIRATION_HOURS"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			cfg.Auth.JWTExpiration = time.Duration(h) * time.Hour
		}
	}
	if v := os.Getenv("JWT_REFRESH_EXPIRATION_DAYS"); v != "" {
		if d, err := strconv.Atoi(v); err == nil {
			cfg.Auth.JWTRefreshExpirationDays = d
		}
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORS.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		cfg.RateLimit.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("RATE_LIMIT_BYPASS_SUPER_ADMIN"); v != "" {
		cfg.RateLimit.BypassSuperAdmin = v == "true" || v == "1"
	}
	if v := os.Getenv("NVD_API_KEY"); v != "" {
		cfg.Feeds.NVDAPIKey = v
	}
}

func splitAndTrim(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
