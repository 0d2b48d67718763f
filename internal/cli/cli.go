package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/matzehuels/boardtree/pkg/buildinfo"
	"github.com/matzehuels/boardtree/pkg/cache"
	"github.com/matzehuels/boardtree/pkg/observability"
	"github.com/matzehuels/boardtree/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "boardtree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *viper.Viper

	configDir string // overrides the XDG location when set
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "boardtree places parts on a PCB from a design tree",
		Long:          `boardtree builds a composition tree of parts and interfaces from a design file, resolves every relative board position against its nearest anchored ancestor, and reports or draws the result.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), commandLogger(c.Logger, cmd.Name())))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configDir, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/boardtree)")

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration file and applies log.level unless the
// logger was already switched to debug by --verbose.
func (c *CLI) loadConfig() error {
	dir := c.configDir
	if dir == "" {
		var err error
		if dir, err = configDir(); err != nil {
			return err
		}
	}
	v, err := loadConfig(dir)
	if err != nil {
		return err
	}
	c.Config = v

	if c.Logger.GetLevel() != log.DebugLevel {
		if level, err := log.ParseLevel(v.GetString(cfgKeyLogLevel)); err == nil {
			c.Logger.SetLevel(level)
		}
	}
	observability.SetPlacementHooks(observability.NewLogHooks(c.Logger))
	observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
	return nil
}

// config returns the loaded configuration, or one holding only defaults
// when the root pre-run did not execute.
func (c *CLI) config() *viper.Viper {
	if c.Config == nil {
		c.Config = newConfig()
	}
	return c.Config
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.cacheConfig(noCache)
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, cfg)
	if err != nil {
		if cfg.Backend == cache.BackendRedis {
			return nil, err
		}
		c.Logger.Warn("cache disabled", "err", err)
		store = cache.NewNullCache()
	}
	var keyer cache.Keyer
	if ns := c.config().GetString(cfgKeyNamespace); ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = cfg.EntryTTL()
	return r, nil
}

// cacheConfig builds the cache configuration from viper settings.
func (c *CLI) cacheConfig(noCache bool) (cache.Config, error) {
	v := c.config()
	cfg := cache.Config{
		Backend:  v.GetString(cfgKeyCacheBackend),
		RedisURL: v.GetString(cfgKeyRedisURL),
		Prefix:   v.GetString(cfgKeyRedisPrefix),
		TTL:      v.GetDuration(cfgKeyCacheTTL),
	}
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			return cache.Config{}, err
		}
		cfg.Dir = dir
	}
	return cfg, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/boardtree/).
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

// configDir returns the configuration directory (~/.config/boardtree/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
