package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/matzehuels/boardtree/pkg/cache"
	bterrors "github.com/matzehuels/boardtree/pkg/errors"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// envPrefix namespaces environment overrides: BOARDTREE_CACHE_BACKEND etc.
	envPrefix = "BOARDTREE"

	cfgKeyCacheBackend = "cache.backend"
	cfgKeyRedisURL     = "cache.redis_url"
	cfgKeyRedisPrefix  = "cache.prefix"
	cfgKeyCacheTTL     = "cache.ttl"
	cfgKeyNamespace    = "cache.namespace"
	cfgKeyServerAddr   = "server.addr"
	cfgKeyLogLevel     = "log.level"

	defaultServerAddr  = ":8080"
	defaultRedisPrefix = "boardtree:"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# boardtree configuration

cache:
  # none, file or redis
  backend: file
  # redis_url: redis://localhost:6379/0
  # prefix: "boardtree:"
  ttl: 168h
  # namespace keeps entries of several setups apart in one backend
  # namespace: staging

server:
  addr: ":8080"

log:
  level: info
`

// newConfig returns a viper instance carrying defaults and environment
// bindings but no file.
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyCacheBackend, cache.BackendFile)
	v.SetDefault(cfgKeyRedisPrefix, defaultRedisPrefix)
	v.SetDefault(cfgKeyCacheTTL, cache.DefaultTTL)
	v.SetDefault(cfgKeyNamespace, "")
	v.SetDefault(cfgKeyServerAddr, defaultServerAddr)
	v.SetDefault(cfgKeyLogLevel, "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig reads config.yaml from configDir, creating the directory and
// a default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := newConfig()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, bterrors.Wrap(bterrors.ErrCodeInvalidInput, err, "read config")
		}
	}
	if err := validateConfig(v); err != nil {
		return nil, err
	}
	return v, nil
}

func validateConfig(v *viper.Viper) error {
	switch backend := v.GetString(cfgKeyCacheBackend); backend {
	case cache.BackendNone, cache.BackendFile:
	case cache.BackendRedis:
		if err := bterrors.ValidateRedisURL(v.GetString(cfgKeyRedisURL)); err != nil {
			return err
		}
	default:
		return bterrors.New(bterrors.ErrCodeInvalidInput, "unknown cache backend %q (want none, file or redis)", backend)
	}
	return nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in configDir.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
