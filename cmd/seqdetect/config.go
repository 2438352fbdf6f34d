package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/stateforward/go-seqdetect"
)

type Config struct {
	Patterns []string `yaml:"patterns" env:"SEQDETECT_PATTERNS" envSeparator:","`
	Policy   string   `yaml:"policy" env:"SEQDETECT_POLICY"`
	Trace    bool     `yaml:"trace" env:"SEQDETECT_TRACE"`
	Matches  bool     `yaml:"matches" env:"SEQDETECT_MATCHES"`
	// MatchLimit bounds the match log; 0 keeps everything.
	MatchLimit int    `yaml:"match_limit" env:"SEQDETECT_MATCH_LIMIT"`
	LogLevel   string `yaml:"log_level" env:"SEQDETECT_LOG_LEVEL"`
}

func defaultConfig() *Config {
	return &Config{
		MatchLimit: 1024,
		LogLevel:   "warn",
	}
}

// Load reads the YAML file at path, if any, over the defaults and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks what has been configured so far. Patterns and policy may
// still be empty; the REPL prompts for them.
func (c *Config) Validate() error {
	var errs []error
	for i, pattern := range c.Patterns {
		if _, err := seqdetect.Build(pattern, seqdetect.Overlapping); err != nil {
			errs = append(errs, fmt.Errorf("patterns[%d]: %w", i, err))
		}
	}
	if c.Policy != "" {
		if _, err := seqdetect.ParsePolicy(c.Policy); err != nil {
			errs = append(errs, err)
		}
	}
	if c.MatchLimit < 0 {
		errs = append(errs, fmt.Errorf("match_limit must not be negative, got %d", c.MatchLimit))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
