package config

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// Validate checks values the env tags cannot express.
func (c *Config) Validate() error {
	if n, err := strconv.Atoi(c.Server.Port); err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("server.port must be 1..65535 (got %q)", c.Server.Port)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be > 0 (got %s)", c.Server.RequestTimeout)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %s)", c.Auth.TokenTTL)
	}
	if c.Dictionary.CacheSize <= 0 {
		return fmt.Errorf("dictionary.cache_size must be > 0 (got %d)", c.Dictionary.CacheSize)
	}
	if c.Dictionary.Enabled && c.Dictionary.Timeout <= 0 {
		return fmt.Errorf("dictionary.timeout must be > 0 (got %s)", c.Dictionary.Timeout)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console (got %q)", c.Log.Format)
	}
	return nil
}
