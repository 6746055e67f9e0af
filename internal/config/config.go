// Package config loads subsym settings from defaults, an optional YAML file
// and environment variables, in that order. Command-line flags are applied
// on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ian-shakespeare/subsym/internal/buffer"
	"github.com/ian-shakespeare/subsym/internal/logging"
	"github.com/ian-shakespeare/subsym/internal/subst"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Tokenizer sizes the buffer that words are accumulated in.
	Tokenizer TokenizerConfig `yaml:"tokenizer"`

	// OnGrowthFailure is "abort" (default) or "passthrough".
	OnGrowthFailure string `yaml:"on_growth_failure"`

	Logging LoggingConfig `yaml:"logging"`
}

type TokenizerConfig struct {
	// BufferSize is the initial capacity in bytes.
	BufferSize int `yaml:"buffer_size"`

	// MaxTokenSize caps buffer growth. Zero means unbounded.
	MaxTokenSize int `yaml:"max_token_size"`
}

type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			BufferSize: buffer.DefaultCapacity,
		},
		OnGrowthFailure: "abort",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath is ~/.subsym/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".subsym", "config.yaml"), nil
}

// Load reads path, or DefaultPath when path is empty, then applies
// environment overrides. A missing file at DefaultPath is not an error; a
// missing file at an explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}

	if path != "" {
		fileCfg, err := LoadFromFile(path)
		switch {
		case err == nil:
			cfg = fileCfg
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SUBSYM_* variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("SUBSYM_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getenv("SUBSYM_ON_GROWTH_FAILURE"); v != "" {
		c.OnGrowthFailure = v
	}
	if v := getenv("SUBSYM_BUFFER_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SUBSYM_BUFFER_SIZE: %w", err)
		}
		c.Tokenizer.BufferSize = n
	}
	if v := getenv("SUBSYM_MAX_TOKEN_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SUBSYM_MAX_TOKEN_SIZE: %w", err)
		}
		c.Tokenizer.MaxTokenSize = n
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Tokenizer.BufferSize < 1 {
		return fmt.Errorf("buffer_size must be at least 1, got %d", c.Tokenizer.BufferSize)
	}
	if c.Tokenizer.MaxTokenSize < 0 {
		return fmt.Errorf("max_token_size must be non-negative, got %d", c.Tokenizer.MaxTokenSize)
	}
	if c.Tokenizer.MaxTokenSize > 0 && c.Tokenizer.MaxTokenSize < c.Tokenizer.BufferSize {
		return fmt.Errorf("max_token_size %d is smaller than buffer_size %d", c.Tokenizer.MaxTokenSize, c.Tokenizer.BufferSize)
	}
	if _, err := subst.ParsePolicy(c.OnGrowthFailure); err != nil {
		return err
	}
	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// Policy returns the parsed growth failure policy. Call Validate first.
func (c *Config) Policy() subst.Policy {
	p, _ := subst.ParsePolicy(c.OnGrowthFailure)
	return p
}
