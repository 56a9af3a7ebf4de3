package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envPrefix         = "BOARDRELAY"
	envConfigPath     = "BOARDRELAY_CONFIG"
	defaultConfigName = "config.yaml"
)

// Load builds configuration and returns the file it read, if any.
// Precedence: defaults < config file < env vars < caller overrides.
// The bare PORT variable is honoured as well as BOARDRELAY_PORT.
//
// An explicit path must exist. Without one, BOARDRELAY_CONFIG and then
// ./config.yaml are tried, and a missing file just means defaults.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, cfg)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", envPrefix+"_PORT", "PORT"); err != nil {
		return cfg, "", fmt.Errorf("bind port env: %w", err)
	}

	path := resolveConfigPath(explicitPath)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if explicitPath != "" || !errors.Is(err, os.ErrNotExist) {
				return cfg, path, fmt.Errorf("read config %s: %w", path, err)
			}
			if logger != nil {
				logger.Debug().Str("path", path).Msg("no config file, using defaults")
			}
			path = ""
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, path, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, path, nil
}

// WriteDefault stores the default configuration as yaml at path.
func WriteDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("host", cfg.Host)
	v.SetDefault("port", cfg.Port)
	v.SetDefault("read_header_timeout", cfg.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("static_dir", cfg.StaticDir)
	v.SetDefault("allowed_origins", cfg.AllowedOrigins)
	v.SetDefault("max_message_bytes", cfg.MaxMessageBytes)
	v.SetDefault("event_buffer", cfg.EventBuffer)
	v.SetDefault("messages_per_minute", cfg.MessagesPerMinute)
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}
