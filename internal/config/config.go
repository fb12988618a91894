package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/onflyair/cargofit/internal/feasibility"
)

// Config holds all configuration for cargofit
type Config struct {
	Data    DataConfig
	Store   StoreConfig
	Payload PayloadConfig
	Log     LogConfig
}

// DataConfig locates the fleet and parts sheets
type DataConfig struct {
	Aircraft string
	Parts    string
	CacheTTL time.Duration
	CacheDir string
	Timeout  time.Duration
}

// StoreConfig locates the saved-parts database
type StoreConfig struct {
	Path  string
	Owner string
}

// PayloadConfig holds payload defaults
type PayloadConfig struct {
	MechanicWeight    float64
	MissingSeatWeight feasibility.SeatWeightPolicy
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from defaults, an optional YAML file and
// CARGOFIT_* environment variables, in increasing priority. path overrides
// the file search; CARGOFIT_CONFIG_PATH is used when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("cargofit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".cargofit"))
	}

	if path == "" {
		path = os.Getenv("CARGOFIT_CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CARGOFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	policy, ok := feasibility.ParseSeatWeightPolicy(v.GetString("payload.missing_seat_weight"))
	if !ok {
		return nil, fmt.Errorf("invalid configuration: payload.missing_seat_weight must be unknown or zero, got %q",
			v.GetString("payload.missing_seat_weight"))
	}

	cfg := &Config{
		Data: DataConfig{
			Aircraft: v.GetString("data.aircraft"),
			Parts:    v.GetString("data.parts"),
			CacheTTL: v.GetDuration("data.cache_ttl"),
			CacheDir: expandHome(v.GetString("data.cache_dir")),
			Timeout:  v.GetDuration("data.timeout"),
		},
		Store: StoreConfig{
			Path:  expandHome(v.GetString("store.path")),
			Owner: v.GetString("store.owner"),
		},
		Payload: PayloadConfig{
			MechanicWeight:    v.GetFloat64("payload.mechanic_weight"),
			MissingSeatWeight: policy,
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.aircraft", "data/aircraft.csv")
	v.SetDefault("data.parts", "data/parts.csv")
	v.SetDefault("data.cache_ttl", "10m")
	v.SetDefault("data.cache_dir", "~/.cargofit/cache")
	v.SetDefault("data.timeout", "30s")
	v.SetDefault("store.path", "~/.cargofit/parts.db")
	v.SetDefault("store.owner", defaultOwner())
	v.SetDefault("payload.mechanic_weight", feasibility.DefaultMechanicWeight)
	v.SetDefault("payload.missing_seat_weight", "unknown")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.Data.CacheTTL <= 0 {
		return fmt.Errorf("data.cache_ttl must be greater than 0")
	}
	if c.Data.Timeout <= 0 {
		return fmt.Errorf("data.timeout must be greater than 0")
	}
	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}
	if strings.TrimSpace(c.Store.Owner) == "" {
		return fmt.Errorf("store.owner is required")
	}
	if c.Payload.MechanicWeight < 0 {
		return fmt.Errorf("payload.mechanic_weight cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	validLogFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be console or json)", c.Log.Format)
	}
	return nil
}

func defaultOwner() string {
	for _, key := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(key); u != "" {
			return u
		}
	}
	return "default"
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
