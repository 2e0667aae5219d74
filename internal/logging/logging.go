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

// Package logging builds the logrus logger used by the scanner trace and the
// command line tool. Logs go to the supplied writer (normally stderr) or,
// when a log file is configured, to a size rotated file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirseerhq/exportcrc/internal/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger from cfg. The returned Closer releases the log file
// and must be called when the logger is no longer used; it is a no-op when
// logging to w.
func New(cfg config.LoggingConfig, w io.Writer) (*logrus.Logger, io.Closer, error) {
	level := logrus.WarnLevel
	if cfg.Level != "" {
		l, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = l
	}

	logger := logrus.New()
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.Format)
	}

	if cfg.File == "" {
		logger.SetOutput(w)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxAge:     cfg.MaxAgeDays,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	logger.SetOutput(rotator)
	return logger, rotator, nil
}
