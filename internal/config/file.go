package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a YAML config file, applying defaults for any
// field the file leaves zero-valued. A missing path is not an error —
// callers typically run Load("") in dev and rely on LoadFromEnv/defaults
// alone, the same "config file optional, env always wins" posture the
// teacher's own config loading takes.
func Load(path string) (*Config, error) {
	cfg := &Config{RateLimit: RateLimitConfig{Enabled: true, BypassSuperAdmin: true}}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				cfg.ApplyDefaults()
				return cfg, nil
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.ApplyDefaults()
	return cfg, nil
}
