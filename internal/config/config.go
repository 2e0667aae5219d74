// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for exportcrc with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// Flags are applied by the caller after LoadConfig returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirseerhq/exportcrc/internal/checksum"
	"github.com/sirseerhq/exportcrc/internal/export"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .exportcrc.yaml (current directory)
//   - .exportcrc.yml (current directory)
//   - ~/.exportcrc/config.yaml
//   - ~/.exportcrc/config.yml
//
// Environment variables are applied after loading the config file. The log
// file path has ~ and environment variables expanded.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".exportcrc.yaml",
			".exportcrc.yml",
			filepath.Join(os.Getenv("HOME"), ".exportcrc", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".exportcrc", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Logging.File != "" {
		cfg.Logging.File = expandPath(cfg.Logging.File)
	}

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if format := os.Getenv("EXPORTCRC_FORMAT"); format != "" {
		cfg.Checksum.Format = format
	}
	if grammar := os.Getenv("EXPORTCRC_GRAMMAR"); grammar != "" {
		cfg.Checksum.Grammar = grammar
	}
	if v := os.Getenv("EXPORTCRC_NORMALIZE_EOL"); v != "" {
		cfg.Checksum.NormalizeEOL = parseBool(v)
	}
	if v := os.Getenv("EXPORTCRC_STRICT_ROOT"); v != "" {
		cfg.Checksum.StrictRoot = parseBool(v)
	}

	if level := os.Getenv("EXPORTCRC_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if format := os.Getenv("EXPORTCRC_LOG_FORMAT"); format != "" {
		cfg.Logging.Format = format
	}
	if file := os.Getenv("EXPORTCRC_LOG_FILE"); file != "" {
		cfg.Logging.File = file
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home := os.Getenv("HOME")
		if home == "" {
			home = os.Getenv("USERPROFILE") // Windows
		}
		path = filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// Validate checks if the configuration contains valid values. It should be
// called after loading configuration and applying flags to catch invalid
// settings before any file is touched.
func (c *Config) Validate() error {
	if _, err := export.LookupGrammar(c.Checksum.Grammar); err != nil {
		return err
	}
	if _, err := checksum.ParseFormat(c.Checksum.Format); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB < 0 {
		return fmt.Errorf("log max_size_mb must not be negative, got: %d", c.Logging.MaxSizeMB)
	}
	if c.Logging.MaxBackups < 0 {
		return fmt.Errorf("log max_backups must not be negative, got: %d", c.Logging.MaxBackups)
	}
	if c.Logging.MaxAgeDays < 0 {
		return fmt.Errorf("log max_age_days must not be negative, got: %d", c.Logging.MaxAgeDays)
	}
	return nil
}

// ScanOptions converts the checksum settings into scanner options. The
// returned options carry no logger.
func (c *Config) ScanOptions() (export.Options, error) {
	g, err := export.LookupGrammar(c.Checksum.Grammar)
	if err != nil {
		return export.Options{}, err
	}

	format := c.Checksum.Format
	if format == "" && g == export.LegacyGrammar {
		format = string(checksum.FormatLower)
	}
	f, err := checksum.ParseFormat(format)
	if err != nil {
		return export.Options{}, err
	}

	return export.Options{
		Grammar:      g,
		Format:       f,
		NormalizeEOL: c.Checksum.NormalizeEOL,
		StrictRoot:   c.Checksum.StrictRoot,
	}, nil
}
