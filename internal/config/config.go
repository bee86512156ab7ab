// Package config reads lernplan settings from config.yaml and LERNPLAN_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/julianstephens/lernplan/internal/constants"
)

// Config holds all configuration for the application
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	Backup  BackupConfig  `mapstructure:"backup"`
	TUI     TUIConfig     `mapstructure:"tui"`

	// File is the config file that was read, empty when none was found
	File string `mapstructure:"-"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

type BackupConfig struct {
	Max     int  `mapstructure:"max"`
	OnStart bool `mapstructure:"on_start"`
}

type TUIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// Overrides are command-line values that win over file and environment
type Overrides struct {
	Config string
	Driver string
	Debug  bool
}

// Load reads dir/config.yaml if it exists. Environment variables such as
// LERNPLAN_STORAGE_DRIVER override file values. LERNPLAN_DB_CONNECTION is
// accepted for the PostgreSQL connection string.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(ExpandPath(dir))
	v.SetConfigName(constants.ConfigFileName)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("storage.dsn", constants.EnvDBConnection, constants.EnvPrefix+"_STORAGE_DSN"); err != nil {
		return Config{}, fmt.Errorf("failed to bind environment: %w", err)
	}

	v.SetDefault("storage.driver", constants.DriverSQLite)
	v.SetDefault("storage.path", constants.DefaultConfigPath)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("log.debug", false)
	v.SetDefault("backup.max", constants.MaxBackups)
	v.SetDefault("backup.on_start", true)
	v.SetDefault("tui.alt_screen", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects unknown drivers and negative backup counts
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case constants.DriverSQLite, constants.DriverJSON, constants.DriverPostgres, constants.DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q (expected sqlite, json, postgres or memory)", c.Storage.Driver)
	}
	if c.Backup.Max < 0 {
		return fmt.Errorf("backup.max must not be negative, got %d", c.Backup.Max)
	}
	return nil
}

// Resolve applies command-line overrides. A --config that looks like a
// PostgreSQL connection string selects the postgres driver.
func (c Config) Resolve(o Overrides) Config {
	if o.Driver != "" {
		c.Storage.Driver = o.Driver
	}
	if o.Config != "" {
		if isConnString(o.Config) {
			c.Storage.Driver = constants.DriverPostgres
			c.Storage.DSN = o.Config
		} else {
			c.Storage.Path = o.Config
		}
	}
	if o.Debug {
		c.Log.Debug = true
	}
	c.Storage.Path = ExpandPath(c.Storage.Path)
	return c
}

// Dir is the directory holding the database, logs and backups
func (c Config) Dir() string {
	if c.Storage.Driver == constants.DriverPostgres || c.Storage.Driver == constants.DriverMemory {
		return ExpandPath(constants.DefaultConfigDir)
	}
	return filepath.Dir(ExpandPath(c.Storage.Path))
}

func isConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") ||
		strings.HasPrefix(s, "postgresql://") ||
		strings.Contains(s, "host=")
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
