// Package cli implements the exhibit command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/exhibit/pkg/buildinfo"
	"github.com/matzehuels/exhibit/pkg/cache"
	"github.com/matzehuels/exhibit/pkg/catalog"
	"github.com/matzehuels/exhibit/pkg/config"
	"github.com/matzehuels/exhibit/pkg/errors"
	"github.com/matzehuels/exhibit/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "exhibit"

	// defaultConfigFile is picked up from the working directory when
	// --config is not given.
	defaultConfigFile = "exhibit.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level cache and HTTP
// activity is logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		installDebugHooks(c.Logger)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Exhibit runs an interactive gallery in the terminal",
		Long:         `Exhibit presents a catalog of artworks across a grid of screen regions, cycling focus between them automatically and handing control to visitors when they interact.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+defaultConfigFile+" if present)")

	root.AddCommand(c.runCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.regionsCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads --config, falls back to ./exhibit.toml, then to defaults.
func (c *CLI) loadConfig() (*config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			c.Logger.Debug("no config file, using defaults")
			return config.Default(), nil
		}
		path = defaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache selects the catalog cache: none, Redis, or the local directory.
func newCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Cache.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			Prefix:   cfg.Cache.RedisPrefix,
		})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newSessionStore selects where running exhibits register.
func newSessionStore(ctx context.Context, cfg *config.Config) (session.Store, error) {
	if cfg.Session.RedisAddr != "" {
		return session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
	}
	return session.NewFileStore(cfg.Session.Dir)
}

// loadCatalog resolves source against the config and loads it. Remote
// sources show a spinner unless quiet is set.
func (c *CLI) loadCatalog(ctx context.Context, cfg *config.Config, source string, noCache, refresh, quiet bool) (*catalog.Catalog, error) {
	if source == "" {
		source = cfg.Catalog.Source
	}
	if source == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "no catalog source: pass --catalog or set [catalog] source")
	}

	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	loader := &catalog.Loader{
		Cache:   store,
		TTL:     cfg.Catalog.CacheTTL.Duration,
		Refresh: refresh,
		Logger:  c.Logger,
	}

	prog := newProgress(c.Logger)
	var spin *spinner
	if strings.Contains(source, "://") && !quiet {
		spin = newSpinner(ctx, os.Stderr, "Fetching catalog...")
		spin.Start()
	}
	cat, err := loader.Load(ctx, source)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	prog.done("Loaded catalog")
	return cat, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/exhibit/).
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
