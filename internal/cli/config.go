package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/libfix/libfix/pkg/inactive"
	"github.com/libfix/libfix/pkg/integrations/pypi"
)

// EnvPrefix is the prefix for environment variable overrides
// (e.g. LIBFIX_REGISTRY_URL).
const EnvPrefix = "LIBFIX"

// Cache backend selectors for Config.CacheBackend.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Config holds the CLI-level settings, loaded from the optional config file
// and LIBFIX_* environment overrides.
type Config struct {
	// RegistryURL is the PyPI-compatible registry base URL.
	RegistryURL string

	// ThresholdYears is the staleness cutoff for the classifier.
	ThresholdYears float64

	// CacheBackend selects the HTTP response cache: file, redis, or none.
	CacheBackend string

	// RedisAddr is the host:port of the Redis cache, for the redis backend.
	RedisAddr string

	// CacheTTL is how long cached registry responses stay valid.
	CacheTTL time.Duration

	// OverridesFile is an optional TOML file with extra override entries,
	// merged over the built-in table.
	OverridesFile string

	// RateLimit and RateBurst pace registry requests. A non-positive limit
	// disables pacing.
	RateLimit float64
	RateBurst int
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		RegistryURL:    pypi.DefaultBaseURL,
		ThresholdYears: inactive.DefaultThresholdYears,
		CacheBackend:   CacheBackendFile,
		RedisAddr:      "localhost:6379",
		CacheTTL:       24 * time.Hour,
		RateLimit:      10,
		RateBurst:      5,
	}
}

// LoadConfig loads configuration from the given TOML file, applying defaults
// and LIBFIX_* environment overrides. An empty path selects the standard
// location (~/.config/libfix/config.toml), which is optional; an explicit
// path must exist.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("registry.url", defaults.RegistryURL)
	v.SetDefault("threshold.years", defaults.ThresholdYears)
	v.SetDefault("cache.backend", defaults.CacheBackend)
	v.SetDefault("cache.redis_addr", defaults.RedisAddr)
	v.SetDefault("cache.ttl", defaults.CacheTTL)
	v.SetDefault("overrides.file", "")
	v.SetDefault("rate.limit", defaults.RateLimit)
	v.SetDefault("rate.burst", defaults.RateBurst)

	optional := path == ""
	if optional {
		path = defaultConfigPath()
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !optional {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	cfg := Config{
		RegistryURL:    v.GetString("registry.url"),
		ThresholdYears: v.GetFloat64("threshold.years"),
		CacheBackend:   v.GetString("cache.backend"),
		RedisAddr:      v.GetString("cache.redis_addr"),
		CacheTTL:       v.GetDuration("cache.ttl"),
		OverridesFile:  v.GetString("overrides.file"),
		RateLimit:      v.GetFloat64("rate.limit"),
		RateBurst:      v.GetInt("rate.burst"),
	}

	switch cfg.CacheBackend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return Config{}, fmt.Errorf("unknown cache backend %q (want file, redis, or none)", cfg.CacheBackend)
	}

	return cfg, nil
}

// defaultConfigPath returns the standard config location using XDG conventions
// (~/.config/libfix/config.toml), or empty when no home directory resolves.
func defaultConfigPath() string {
	if cfgHome := os.Getenv("XDG_CONFIG_HOME"); cfgHome != "" {
		return filepath.Join(cfgHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
