package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"report-compare/core/database"
	"report-compare/core/logger"
	"report-compare/core/reconcile"
	"report-compare/core/server"
	"report-compare/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the application.
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Storage  storage.Config  `mapstructure:"storage"`
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	// Compare holds the comparison defaults (key column, storage prefixes, normalization).
	Compare reconcile.Config `mapstructure:"compare"`
}

// LoadConfig reads configuration from dir. Precedence, highest first: environment
// variables, the .env file, an optional config file (config.yaml, config.json, ...),
// then the struct tag defaults.
func LoadConfig(dir string) (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(dir, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	v.SetConfigName("config")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that would only fail later, deep inside a comparison.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Compare.Key) == "" {
		return fmt.Errorf("%w: compare.key must not be empty", ErrInvalidConfig)
	}
	if c.Compare.InputsPrefix == "" || c.Compare.ResultsPrefix == "" {
		return fmt.Errorf("%w: compare.inputs_prefix and compare.results_prefix are required", ErrInvalidConfig)
	}
	if c.Compare.InputsPrefix == c.Compare.ResultsPrefix {
		return fmt.Errorf("%w: inputs and results must use different prefixes", ErrInvalidConfig)
	}
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	return nil
}

// bindValues walks the struct and registers every mapstructure key with its default
// tag, so AutomaticEnv can resolve keys that have no default.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
