package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the unified application configuration
type Config struct {
	DataDir    string `mapstructure:"data_dir"`
	Backend    string `mapstructure:"backend"`
	StorageKey string `mapstructure:"storage_key"`
}

const (
	keyDataDir    = "data_dir"
	keyBackend    = "backend"
	keyStorageKey = "storage_key"

	flagDataDir    = "data-dir"
	flagBackend    = "backend"
	flagStorageKey = "key"

	envPrefix = "PROMPTBOARD"

	DefaultBackend    = "file"
	DefaultStorageKey = "prompt_cards"
)

var validBackends = map[string]bool{"file": true, "sqlite": true, "memory": true}

// flagKeys maps each config key to the CLI flag that overrides it
var flagKeys = map[string]string{
	keyDataDir:    flagDataDir,
	keyBackend:    flagBackend,
	keyStorageKey: flagStorageKey,
}

// RegisterFlags adds the --data-dir, --backend and --key flags that Load reads
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagDataDir, "", "Directory holding the board (default ~/promptboard)")
	fs.String(flagBackend, "", "Storage backend: file, sqlite or memory")
	fs.String(flagStorageKey, "", "Storage key of the board (default prompt_cards)")
}

// Load loads configuration with priority: CLI flags > env vars > config file > default.
// Only flags that were set on the command line take part; flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	// Try loading config file first for base values
	if configPath, err := getConfigPath(); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	// CLI flags override everything
	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.DataDir = expandPath(strings.TrimSpace(cfg.DataDir))
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.StorageKey = strings.TrimSpace(cfg.StorageKey)

	if cfg.DataDir == "" {
		return nil, errors.New("data_dir must not be empty")
	}
	if !validBackends[cfg.Backend] {
		return nil, fmt.Errorf("unknown backend %q (want file, sqlite or memory)", cfg.Backend)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}

	return cfg, nil
}

// newViper returns a viper instance with defaults and PROMPTBOARD_* env bindings
func newViper() (*viper.Viper, error) {
	v, err := defaultsViper()
	if err != nil {
		return nil, err
	}

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{keyDataDir, keyBackend, keyStorageKey} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func defaultsViper() (*viper.Viper, error) {
	defaultDir, err := GetDefaultDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault(keyDataDir, defaultDir)
	v.SetDefault(keyBackend, DefaultBackend)
	v.SetDefault(keyStorageKey, DefaultStorageKey)
	return v, nil
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "promptboard"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "promptboard", "config.json"), nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	v, err := defaultsViper()
	if err != nil {
		return err
	}
	return v.SafeWriteConfigAs(configPath)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
