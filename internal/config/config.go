// Package config loads process configuration from a YAML file plus
// environment overrides, matching the teacher's own
// Config/ServerConfig-struct-of-structs-plus-LoadFromEnv shape
// (internal/config/config.go, internal/config/env.go), but carrying the
// closed settings spec §6.3 actually names instead of the teacher's
// storage-engine/cache/backend fields.
package config

import "time"

// Config is the full process configuration, loaded once at startup by
// cmd/isora and threaded through every constructor that needs it.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Feeds     FeedsConfig     `yaml:"feeds"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig is the HTTP listener configuration.
type ServerConfig struct {
	Port     int    `yaml:"port" default:"8080"`
	LogLevel string `yaml:"log_level" default:"info"`
}

// DatabaseConfig carries DATABASE_URL (spec §6.3). Persistence itself is a
// black-box repository (see internal/repository's package doc) — this
// value exists only to be logged/health-checked, not dialed directly by
// this codebase.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig carries REDIS_URL, the backing store for
// internal/ratelimit's sliding window and internal/enrichment's result
// cache.
type RedisConfig struct {
	URL string `yaml:"url" default:"redis://localhost:6379/0"`
}

// AuthConfig holds the JWT settings spec §6.3 names.
type AuthConfig struct {
	JWTSecret                string        `yaml:"jwt_secret"`
	JWTAlgorithm             string        `yaml:"jwt_algorithm" default:"HS256"`
	JWTExpiration            time.Duration `yaml:"jwt_expiration" default:"1h"`
	JWTRefreshExpirationDays int           `yaml:"jwt_refresh_expiration_days" default:"30"`
}

// CORSConfig is the hot-reloadable allow-list backing internal/gateway's
// CORS middleware.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig toggles and tunes the C8 admission layer.
type RateLimitConfig struct {
	Enabled             bool `yaml:"enabled" default:"true"`
	BypassSuperAdmin    bool `yaml:"bypass_super_admin" default:"true"`
}

// FeedsConfig carries feed-adapter credentials keyed by ctifeed.Type
// string ("misp", "otx", "virustotal") and an NVD API key for future
// vulnerability-lookup enrichment sources.
type FeedsConfig struct {
	NVDAPIKey string            `yaml:"nvd_api_key"`
	APIKeys   map[string]string `yaml:"api_keys"`
}

// SchedulerConfig tunes C10's background sync loop.
type SchedulerConfig struct {
	SyncInterval time.Duration `yaml:"sync_interval" default:"1h"`
	MaxRetries   int           `yaml:"max_retries" default:"3"`
	RetryDelay   time.Duration `yaml:"retry_delay" default:"300s"`
}

// ApplyDefaults fills in zero-valued fields with their documented
// defaults, mirroring the teacher's own ApplyDefaults convention
// (internal/logging.LoggerConfig.ApplyDefaults in the teacher repo).
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Redis.URL == "" {
		c.Redis.URL = "redis://localhost:6379/0"
	}
	if c.Auth.JWTAlgorithm == "" {
		c.Auth.JWTAlgorithm = "HS256"
	}
	if c.Auth.JWTExpiration == 0 {
		c.Auth.JWTExpiration = time.Hour
	}
	if c.Auth.JWTRefreshExpirationDays == 0 {
		c.Auth.JWTRefreshExpirationDays = 30
	}
	if c.Scheduler.SyncInterval == 0 {
		c.Scheduler.SyncInterval = time.Hour
	}
	if c.Scheduler.MaxRetries == 0 {
		c.Scheduler.MaxRetries = 3
	}
	if c.Scheduler.RetryDelay == 0 {
		c.Scheduler.RetryDelay = 300 * time.Second
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
}
