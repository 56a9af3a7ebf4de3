package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Host              string        `mapstructure:"host" yaml:"host"`
	Port              int           `mapstructure:"port" yaml:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	// StaticDir, when set, is served for every path no other route claims.
	StaticDir      string   `mapstructure:"static_dir" yaml:"static_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	// MaxMessageBytes caps a single inbound websocket frame.
	MaxMessageBytes int64 `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
	// EventBuffer is the per-connection outbound queue; overflow is dropped.
	EventBuffer       int `mapstructure:"event_buffer" yaml:"event_buffer"`
	MessagesPerMinute int `mapstructure:"messages_per_minute" yaml:"messages_per_minute"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Port:              3000,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		AllowedOrigins:    []string{"*"},
		MaxMessageBytes:   8 << 10,
		EventBuffer:       32,
		MessagesPerMinute: 600,
	}
}

// ListenAddr returns the "host:port" address to bind.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks all configuration invariants and reports every violation.
func (c Config) Validate() error {
	var errs []string

	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("port must be 0-65535, got %d", c.Port))
	}
	if c.ReadHeaderTimeout < 0 {
		errs = append(errs, "read_header_timeout must not be negative")
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, "shutdown_timeout must not be negative")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("log_level must be one of [debug, info, warn, error], got %q", c.LogLevel))
	}
	if c.MaxMessageBytes < 0 {
		errs = append(errs, fmt.Sprintf("max_message_bytes must not be negative, got %d", c.MaxMessageBytes))
	}
	if c.EventBuffer < 1 {
		errs = append(errs, fmt.Sprintf("event_buffer must be >= 1, got %d", c.EventBuffer))
	}
	if c.MessagesPerMinute < 0 {
		errs = append(errs, fmt.Sprintf("messages_per_minute must not be negative, got %d", c.MessagesPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
