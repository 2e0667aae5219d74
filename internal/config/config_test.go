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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/exportcrc/internal/checksum"
	"github.com/sirseerhq/exportcrc/internal/export"
)

// isolate points HOME and the working directory at empty temporary
// directories so no real config file is discovered.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return home
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Checksum.Grammar != "strict" {
		t.Errorf("Grammar = %s, want strict", cfg.Checksum.Grammar)
	}
	if cfg.Checksum.Format != "" {
		t.Errorf("Format = %s, want empty", cfg.Checksum.Format)
	}
	if cfg.Checksum.NormalizeEOL || cfg.Checksum.StrictRoot {
		t.Error("NormalizeEOL and StrictRoot should default to false")
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %s, want warn", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Format = %s, want text", cfg.Logging.Format)
	}
	if cfg.Logging.MaxSizeMB != 10 || cfg.Logging.MaxBackups != 3 || cfg.Logging.MaxAgeDays != 28 {
		t.Errorf("rotation = %d/%d/%d, want 10/3/28",
			cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	configContent := `
checksum:
  format: lower
  grammar: legacy
  normalize_eol: true
  strict_root: true

logging:
  level: debug
  format: json
  file: /var/log/exportcrc.log
  max_size_mb: 5
  compress: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Checksum.Format != "lower" || cfg.Checksum.Grammar != "legacy" {
		t.Errorf("checksum = %+v", cfg.Checksum)
	}
	if !cfg.Checksum.NormalizeEOL || !cfg.Checksum.StrictRoot {
		t.Errorf("checksum flags = %+v, want both true", cfg.Checksum)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Logging.File != "/var/log/exportcrc.log" {
		t.Errorf("File = %s", cfg.Logging.File)
	}
	if cfg.Logging.MaxSizeMB != 5 || !cfg.Logging.Compress {
		t.Errorf("rotation = %+v", cfg.Logging)
	}
	// unset keys keep their defaults
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("MaxBackups = %d, want default 3", cfg.Logging.MaxBackups)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	isolate(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig with missing explicit file returned nil error")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(configPath, []byte("checksum: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("LoadConfig error = %v, want parse failure", err)
	}
}

func TestLoadConfig_DiscoversDefaultLocations(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, ".exportcrc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("checksum:\n  grammar: legacy\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Checksum.Grammar != "legacy" {
		t.Errorf("Grammar = %s, want legacy from home config", cfg.Checksum.Grammar)
	}

	// a config in the working directory wins over the home directory
	if err := os.WriteFile(".exportcrc.yaml", []byte("checksum:\n  grammar: strict\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Checksum.Grammar != "strict" {
		t.Errorf("Grammar = %s, want strict from working directory", cfg.Checksum.Grammar)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	home := isolate(t)

	t.Setenv("EXPORTCRC_FORMAT", "lower")
	t.Setenv("EXPORTCRC_GRAMMAR", "legacy")
	t.Setenv("EXPORTCRC_NORMALIZE_EOL", "yes")
	t.Setenv("EXPORTCRC_STRICT_ROOT", "on")
	t.Setenv("EXPORTCRC_LOG_LEVEL", "info")
	t.Setenv("EXPORTCRC_LOG_FORMAT", "json")
	t.Setenv("EXPORTCRC_LOG_FILE", "~/logs/exportcrc.log")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Checksum.Format != "lower" || cfg.Checksum.Grammar != "legacy" {
		t.Errorf("checksum = %+v", cfg.Checksum)
	}
	if !cfg.Checksum.NormalizeEOL || !cfg.Checksum.StrictRoot {
		t.Errorf("checksum flags = %+v, want both true", cfg.Checksum)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if want := filepath.Join(home, "logs", "exportcrc.log"); cfg.Logging.File != want {
		t.Errorf("File = %s, want %s", cfg.Logging.File, want)
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("checksum:\n  strict_root: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EXPORTCRC_STRICT_ROOT", "false")

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Checksum.StrictRoot {
		t.Error("StrictRoot = true, want env override false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: "",
		},
		{
			name:    "unknown grammar",
			mutate:  func(c *Config) { c.Checksum.Grammar = "fancy" },
			wantErr: "unknown grammar",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Checksum.Format = "hex" },
			wantErr: "unknown checksum format",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "chatty" },
			wantErr: "invalid log level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "unknown log format",
		},
		{
			name:    "negative size",
			mutate:  func(c *Config) { c.Logging.MaxSizeMB = -1 },
			wantErr: "max_size_mb must not be negative",
		},
		{
			name:    "negative backups",
			mutate:  func(c *Config) { c.Logging.MaxBackups = -2 },
			wantErr: "max_backups must not be negative",
		},
		{
			name:    "negative age",
			mutate:  func(c *Config) { c.Logging.MaxAgeDays = -3 },
			wantErr: "max_age_days must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() error = nil, want %s", tt.wantErr)
				} else if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Validate() error = %v, want containing %s", err, tt.wantErr)
				}
			}
		})
	}
}

func TestScanOptions(t *testing.T) {
	tests := []struct {
		name        string
		checksum    ChecksumConfig
		wantGrammar *export.Grammar
		wantFormat  checksum.Format
	}{
		{"defaults", ChecksumConfig{Grammar: "strict"}, export.StrictGrammar, checksum.FormatUpper},
		{"empty grammar", ChecksumConfig{}, export.StrictGrammar, checksum.FormatUpper},
		{"legacy defaults to lower", ChecksumConfig{Grammar: "legacy"}, export.LegacyGrammar, checksum.FormatLower},
		{"legacy with explicit upper", ChecksumConfig{Grammar: "legacy", Format: "upper"}, export.LegacyGrammar, checksum.FormatUpper},
		{"strict with lower", ChecksumConfig{Grammar: "strict", Format: "LOWER"}, export.StrictGrammar, checksum.FormatLower},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Checksum: tt.checksum}
			opts, err := cfg.ScanOptions()
			if err != nil {
				t.Fatalf("ScanOptions() error = %v", err)
			}
			if opts.Grammar != tt.wantGrammar {
				t.Errorf("Grammar = %s, want %s", opts.Grammar.Name(), tt.wantGrammar.Name())
			}
			if opts.Format != tt.wantFormat {
				t.Errorf("Format = %s, want %s", opts.Format, tt.wantFormat)
			}
		})
	}

	cfg := &Config{Checksum: ChecksumConfig{Grammar: "strict", NormalizeEOL: true, StrictRoot: true}}
	opts, err := cfg.ScanOptions()
	if err != nil {
		t.Fatal(err)
	}
	if !opts.NormalizeEOL || !opts.StrictRoot {
		t.Errorf("flags not carried over: %+v", opts)
	}

	if _, err := (&Config{Checksum: ChecksumConfig{Grammar: "bogus"}}).ScanOptions(); err == nil {
		t.Error("ScanOptions() with unknown grammar returned nil error")
	}
}

func TestExpandPath(t *testing.T) {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{"1", true},
		{"on", true},
		{"false", false},
		{"no", false},
		{"0", false},
		{"off", false},
		{"", false},
		{"random", false},
	}

	for _, tt := range tests {
		if got := parseBool(tt.input); got != tt.want {
			t.Errorf("parseBool(%s) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
