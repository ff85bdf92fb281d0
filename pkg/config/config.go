// Package config loads DaySay settings from a .daysay config file and
// DAYSAY_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/daysay-app/daysay/pkg/parser"
	"github.com/daysay-app/daysay/pkg/utils"
)

// Storage backend names accepted in config.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the resolved application configuration.
type Config struct {
	// StorageBackend selects where journal state is persisted.
	StorageBackend string `mapstructure:"storage_backend"`
	// DataPath is the directory holding journal data. Empty means the
	// per-OS default.
	DataPath string `mapstructure:"data_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// Lexicon overrides parts of the parser vocabulary. Lists left empty
	// keep their defaults.
	Lexicon parser.Lexicon `mapstructure:"lexicon"`
}

// Load reads the .daysay config file (current directory, then home) plus
// DAYSAY_* environment variables. A missing config file is not an error.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("storage_backend", BackendDiskv)
	v.SetDefault("data_path", "")
	v.SetDefault("log_level", "info")

	v.SetConfigName(".daysay") // .yaml is implicit
	v.SetConfigType("yaml")
	v.SetEnvPrefix("DAYSAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("DAYSAY_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.StorageBackend {
	case BackendDiskv, BackendSQLite, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q (want %s, %s or %s)",
			cfg.StorageBackend, BackendDiskv, BackendSQLite, BackendMemory)
	}

	return cfg, nil
}

// ResolveDataPath returns the directory journal data should live in,
// creating it if needed.
func (c Config) ResolveDataPath() (string, error) {
	return utils.ResolveAndEnsureDataPath(c.DataPath)
}
