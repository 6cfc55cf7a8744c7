// Package cli implements the libfix command-line interface.
//
// This package provides commands for auditing a Python project's declared
// dependencies against PyPI, watching manifest files for changes, and
// managing the HTTP response cache. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - audit: Scan a directory tree for manifests and flag inactive packages
//   - watch: Re-run the audit whenever a manifest file changes
//   - cache: Manage the HTTP response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/libfix/libfix/pkg/audit"
	"github.com/libfix/libfix/pkg/buildinfo"
	"github.com/libfix/libfix/pkg/cache"
	"github.com/libfix/libfix/pkg/inactive"
	"github.com/libfix/libfix/pkg/integrations/pypi"
)

// appName is the application name used for directories and display.
const appName = "libfix"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and configuration
// loaded from the environment and the optional config file.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{Logger: newLogger(w, level)}

	cfg, err := LoadConfig("")
	if err != nil {
		c.Logger.Warnf("Config load failed, using defaults: %v", err)
		cfg = DefaultConfig()
	}
	c.Config = cfg
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "LibFix flags unmaintained Python dependencies",
		Long:         `LibFix audits a Python project's declared dependencies against PyPI, flags packages that look unmaintained, and suggests replacements.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.auditCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates an audit runner for CLI use, wiring the cache backend,
// registry client, and classifier from the loaded configuration.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*audit.Runner, error) {
	backend, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}

	client := pypi.NewClient(c.Config.RegistryURL, backend, c.Config.CacheTTL)
	client.SetRateLimit(c.Config.RateLimit, c.Config.RateBurst)

	overrides := inactive.DefaultOverrides()
	if c.Config.OverridesFile != "" {
		overrides, err = inactive.LoadOverrides(c.Config.OverridesFile, overrides)
		if err != nil {
			return nil, fmt.Errorf("load overrides: %w", err)
		}
	}

	diag := &logReporter{logger: c.Logger}
	classifier := &inactive.Classifier{
		Overrides:      overrides,
		ThresholdYears: c.Config.ThresholdYears,
		Diag:           diag,
	}

	return audit.NewRunner(client, classifier, diag, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.CacheBackend == CacheBackendNone {
		return cache.NewNullCache(), nil
	}

	if c.Config.CacheBackend == CacheBackendRedis {
		backend, err := cache.NewRedisCache(ctx, c.Config.RedisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		return backend, nil
	}

	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/libfix/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
