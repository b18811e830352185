// Package config loads the glyphgrid command configuration from YAML.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aretw0/glyphgrid/pkg/history"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultPath is where the file backend keeps sessions.
const DefaultPath = ".glyphgrid/sessions"

// Config is the top-level configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	History HistoryConfig `yaml:"history"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// StoreConfig selects and configures the snapshot backend.
type StoreConfig struct {
	Backend string      `yaml:"backend"` // file | memory | redis
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
	// EncryptionKey is a hex-encoded 32-byte AES key. Empty disables encryption.
	EncryptionKey string `yaml:"encryption_key"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// HistoryConfig tunes coalescing of rapid edits.
type HistoryConfig struct {
	Window       time.Duration `yaml:"window"`
	MaxBatchSpan time.Duration `yaml:"max_batch_span"`
	MaxBatchSize int           `yaml:"max_batch_size"`
}

type ServerConfig struct {
	Port    int `yaml:"port"`
	MCPPort int `yaml:"mcp_port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Backend: BackendFile,
			Path:    DefaultPath,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "glyphgrid:session:",
			},
		},
		History: HistoryConfig{
			Window:       history.DefaultPolicy.Window,
			MaxBatchSpan: history.DefaultPolicy.MaxBatchSpan,
			MaxBatchSize: history.DefaultPolicy.MaxBatchSize,
		},
		Server: ServerConfig{Port: 8080, MCPPort: 8081},
		Log:    LogConfig{Level: "warn"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the commands cannot act on.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.History.Window < 0 || c.History.MaxBatchSpan < 0 || c.History.MaxBatchSize < 0 {
		return errors.New("history limits must not be negative")
	}
	if _, err := c.Store.Key(); err != nil {
		return err
	}
	return nil
}

// Policy converts the history section.
func (c Config) Policy() history.Policy {
	return history.Policy{
		Window:       c.History.Window,
		MaxBatchSpan: c.History.MaxBatchSpan,
		MaxBatchSize: c.History.MaxBatchSize,
	}
}

// Key decodes the encryption key. It returns nil when encryption is off.
func (s StoreConfig) Key() ([]byte, error) {
	if s.EncryptionKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(s.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not hex: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("encryption key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
