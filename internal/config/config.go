// Package config loads the effective configuration with the precedence
// runtime overrides > environment > config file > defaults. Environment
// variables use the CODESHIFT_ prefix (CODESHIFT_PORT, CODESHIFT_LOG_LEVEL,
// ...).
package config

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config is the effective application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Build   BuildConfig   `mapstructure:"build"`
	Engine  EngineConfig  `mapstructure:"engine"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	RateBurst       int           `mapstructure:"rate_burst"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type BuildConfig struct {
	Tool string   `mapstructure:"tool"`
	Args []string `mapstructure:"args"`
}

type EngineConfig struct {
	SourcePatterns []string `mapstructure:"source_patterns"`
	CatalogPath    string   `mapstructure:"catalog_path"`
}

var (
	configMu  sync.Mutex
	appConfig *Config
)

// envBindings maps flat env var suffixes onto config paths, following the
// <PREFIX>_<NAME> convention.
var envBindings = map[string]string{
	"HOST":             "server.host",
	"PORT":             "server.port",
	"READ_TIMEOUT":     "server.read_timeout",
	"WRITE_TIMEOUT":    "server.write_timeout",
	"IDLE_TIMEOUT":     "server.idle_timeout",
	"SHUTDOWN_TIMEOUT": "server.shutdown_timeout",
	"RATE_LIMIT":       "server.rate_limit",
	"RATE_BURST":       "server.rate_burst",
	"LOG_LEVEL":        "logging.level",
	"LOG_FORMAT":       "logging.format",
	"METRICS_ENABLED":  "metrics.enabled",
	"BUILD_TOOL":       "build.tool",
	"CATALOG_PATH":     "engine.catalog_path",
}

const envPrefix = "CODESHIFT"

// Load builds the effective config. Optional runtime overrides (nested
// maps keyed like the config file) take precedence over everything else.
// The loaded config is retained for GetConfig.
func Load(ctx context.Context, overrides ...map[string]any) (*Config, error) {
	return LoadFrom(ctx, "", overrides...)
}

// LoadFrom is Load with an explicit config file path. With an empty path
// the default search locations apply and a missing file is fine; with an
// explicit path a missing file is an error.
func LoadFrom(_ context.Context, path string, overrides ...map[string]any) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("codeshift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/codeshift")
		if err := v.ReadInConfig(); err != nil {
			// A missing config file is fine; anything else is not.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	for suffix, path := range envBindings {
		if err := v.BindEnv(path, envPrefix+"_"+suffix); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", suffix, err)
		}
	}

	// Overrides are applied with Set, the highest-precedence layer, so they
	// beat env vars and the config file.
	for _, override := range overrides {
		for key, value := range flatten("", override) {
			v.Set(key, value)
		}
	}

	var cfg Config
	decodeHook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook)); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	configMu.Lock()
	appConfig = &cfg
	configMu.Unlock()
	return &cfg, nil
}

// GetConfig returns the most recently loaded config, or nil before Load.
func GetConfig() *Config {
	configMu.Lock()
	defer configMu.Unlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 120*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.rate_burst", 10)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("build.tool", "mvn")
	v.SetDefault("build.args", []string{})
	v.SetDefault("engine.source_patterns", []string{})
	v.SetDefault("engine.catalog_path", "")
}

// flatten turns nested override maps into dotted viper keys.
func flatten(prefix string, in map[string]any) map[string]any {
	out := make(map[string]any)
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flatten(full, nested) {
				out[k] = v
			}
			continue
		}
		out[full] = value
	}
	return out
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	if strings.TrimSpace(c.Build.Tool) == "" {
		return fmt.Errorf("build.tool is required")
	}
	return nil
}
