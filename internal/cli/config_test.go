package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	want := DefaultConfig()
	if cfg.RegistryURL != want.RegistryURL {
		t.Errorf("RegistryURL = %q, want %q", cfg.RegistryURL, want.RegistryURL)
	}
	if cfg.ThresholdYears != want.ThresholdYears {
		t.Errorf("ThresholdYears = %v, want %v", cfg.ThresholdYears, want.ThresholdYears)
	}
	if cfg.CacheBackend != CacheBackendFile {
		t.Errorf("CacheBackend = %q, want %q", cfg.CacheBackend, CacheBackendFile)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", cfg.CacheTTL)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LIBFIX_REGISTRY_URL", "https://pypi.example.test")
	t.Setenv("LIBFIX_THRESHOLD_YEARS", "3.5")
	t.Setenv("LIBFIX_CACHE_BACKEND", "none")
	t.Setenv("LIBFIX_CACHE_TTL", "1h")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.RegistryURL != "https://pypi.example.test" {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.ThresholdYears != 3.5 {
		t.Errorf("ThresholdYears = %v, want 3.5", cfg.ThresholdYears)
	}
	if cfg.CacheBackend != CacheBackendNone {
		t.Errorf("CacheBackend = %q, want none", cfg.CacheBackend)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[registry]
url = "https://mirror.example.test"

[threshold]
years = 1.0

[cache]
backend = "redis"
redis_addr = "cache.internal:6379"
ttl = "12h"

[rate]
limit = 2.0
burst = 1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.RegistryURL != "https://mirror.example.test" {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.ThresholdYears != 1.0 {
		t.Errorf("ThresholdYears = %v, want 1.0", cfg.ThresholdYears)
	}
	if cfg.CacheBackend != CacheBackendRedis {
		t.Errorf("CacheBackend = %q, want redis", cfg.CacheBackend)
	}
	if cfg.RedisAddr != "cache.internal:6379" {
		t.Errorf("RedisAddr = %q", cfg.RedisAddr)
	}
	if cfg.CacheTTL != 12*time.Hour {
		t.Errorf("CacheTTL = %v, want 12h", cfg.CacheTTL)
	}
	if cfg.RateLimit != 2.0 || cfg.RateBurst != 1 {
		t.Errorf("rate = %v/%d, want 2.0/1", cfg.RateLimit, cfg.RateBurst)
	}
}

func TestLoadConfig_StandardLocation(t *testing.T) {
	cfgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)

	dir := filepath.Join(cfgHome, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "[threshold]\nyears = 4.0\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ThresholdYears != 4.0 {
		t.Errorf("ThresholdYears = %v, want 4.0", cfg.ThresholdYears)
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("LoadConfig succeeded on a missing explicit file")
	}
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("LIBFIX_CACHE_BACKEND", "memcached")

	if _, err := LoadConfig(""); err == nil {
		t.Error("LoadConfig accepted an unknown cache backend")
	}
}
