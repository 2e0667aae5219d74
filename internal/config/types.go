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

// Package config types define the configuration structures used throughout
// exportcrc. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

// Config represents the complete configuration for exportcrc.
type Config struct {
	Checksum ChecksumConfig `yaml:"checksum"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ChecksumConfig controls how exports are scanned and how the computed
// checksum is rendered into the trailer.
type ChecksumConfig struct {
	// Format is "upper" or "lower". Empty selects the grammar's default:
	// lower for the legacy grammar, upper otherwise.
	Format       string `yaml:"format"`
	Grammar      string `yaml:"grammar"`
	NormalizeEOL bool   `yaml:"normalize_eol"`
	StrictRoot   bool   `yaml:"strict_root"`
}

// LoggingConfig controls log level, format and the optional rotating log
// file. With File empty, logs go to stderr.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// DefaultConfig returns a Config with the canonical checksum settings and
// quiet logging.
func DefaultConfig() *Config {
	return &Config{
		Checksum: ChecksumConfig{
			Grammar: "strict",
		},
		Logging: LoggingConfig{
			Level:      "warn",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}
