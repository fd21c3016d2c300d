// Package config loads vetter settings from defaults, an optional config
// file and VETTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Probe     ProbeConfig
	Style     StyleConfig
	UserAgent string `mapstructure:"user_agent"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr         string
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string
	Development bool
}

// ProbeConfig controls the headless browser probe.
type ProbeConfig struct {
	Enabled bool
	Timeout time.Duration
}

// StyleConfig controls stylesheet fetching.
type StyleConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Load reads configuration. The file named by VETTER_CONFIG is used when set,
// otherwise $HOME/.config/vetter/config.yaml if present.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8081")
	v.SetDefault("server.max_body_bytes", int64(1<<20))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("probe.enabled", false)
	v.SetDefault("probe.timeout", 25*time.Second)
	v.SetDefault("style.cache_ttl", 10*time.Minute)
	v.SetDefault("user_agent", "")

	cfgPath := os.Getenv("VETTER_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "vetter"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("VETTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	return c, nil
}
