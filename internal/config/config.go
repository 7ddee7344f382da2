// SPDX-License-Identifier: EPL-2.0

// Package config loads the audfx CLI settings.
//
// Values are layered: built-in defaults, then the YAML file
// (~/.audfx/config.yaml unless a path is given), then AUDFX_* environment
// variables. Command-line flags are applied last by the caller.
//
//	engine: wsola          # wsola | granular
//	resampler: polyphase   # cubic | polyphase
//	output:
//	  dir: ./out
//	  prefix: karaoke
//	max_file_size: 52428800
//	log_level: info        # debug | info | warn | error
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/pipeline"
)

const (
	appDir   = ".audfx"
	fileName = "config.yaml"
)

// Config holds the CLI settings.
type Config struct {
	Engine      string `yaml:"engine"`
	Resampler   string `yaml:"resampler"`
	Output      Output `yaml:"output"`
	MaxFileSize int64  `yaml:"max_file_size"`
	LogLevel    string `yaml:"log_level"`
}

// Output controls where artifacts are written.
type Output struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Engine:    effects.EngineWSOLA,
		Resampler: effects.ResamplerCubic,
		Output: Output{
			Dir:    ".",
			Prefix: pipeline.DefaultPrefix,
		},
		MaxFileSize: pipeline.MaxFileSize,
		LogLevel:    "info",
	}
}

// DefaultPath returns ~/.audfx/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, appDir, fileName), nil
}

// Load reads path, or DefaultPath when path is empty, and applies the
// environment. A missing file at the default location is not an error; an
// explicitly requested file must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Engine = envStr("AUDFX_ENGINE", c.Engine)
	c.Resampler = envStr("AUDFX_RESAMPLER", c.Resampler)
	c.Output.Prefix = envStr("AUDFX_OUTPUT_PREFIX", c.Output.Prefix)
	c.Output.Dir = envStr("AUDFX_OUTPUT_DIR", c.Output.Dir)
	c.MaxFileSize = envInt64("AUDFX_MAX_FILE_SIZE", c.MaxFileSize)
	c.LogLevel = envStr("AUDFX_LOG_LEVEL", c.LogLevel)
}

// Validate rejects unknown engines, resamplers and log levels.
func (c Config) Validate() error {
	if _, err := effects.EngineByName(c.Engine, c.Resampler); err != nil {
		return err
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must not be negative, got %d", c.MaxFileSize)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Save writes c as YAML to path, creating its directory.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
