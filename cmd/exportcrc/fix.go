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

package main

import (
	"fmt"

	"github.com/sirseerhq/exportcrc/internal/config"
	exporterrors "github.com/sirseerhq/exportcrc/internal/errors"
	"github.com/sirseerhq/exportcrc/internal/export"
	"github.com/sirseerhq/exportcrc/internal/logging"
	"github.com/sirseerhq/exportcrc/internal/metadata"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// fixFlags holds the command line flags of the root command.
type fixFlags struct {
	change     bool
	output     string
	check      bool
	configPath string
	format     string
	grammar    string
	report     string
	verbose    bool
}

// target returns the path the patched export is saved to, or "" when the
// run only verifies.
func (f fixFlags) target(input string) string {
	if f.change {
		return input
	}
	return f.output
}

// loadConfig merges the config file, environment and flags.
func loadConfig(f fixFlags) (*config.Config, error) {
	cfg, err := config.LoadConfig(f.configPath)
	if err != nil {
		return nil, err
	}

	if f.format != "" {
		cfg.Checksum.Format = f.format
	}
	if f.grammar != "" {
		cfg.Checksum.Grammar = f.grammar
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runFix executes the root command
func runFix(cmd *cobra.Command, input string, f fixFlags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	opts, err := cfg.ScanOptions()
	if err != nil {
		return err
	}
	tracker := metadata.New()
	opts.Logger = logger.WithField("input", input)
	opts.Tracker = tracker

	target := f.target(input)
	session := export.NewSession(opts)

	err = fix(cmd, opts.Logger, session, input, target, f.check)

	if f.report != "" && session.NewCRC() != "" {
		params := metadata.ScanParams{
			Input:        input,
			Output:       target,
			Grammar:      opts.Grammar.Name(),
			Format:       string(opts.Format),
			NormalizeEOL: opts.NormalizeEOL,
			StrictRoot:   opts.StrictRoot,
		}
		report := tracker.GenerateReport(version, params, session.OldCRC(), session.NewCRC())
		if rerr := metadata.SaveReport(report, f.report); rerr != nil {
			if err == nil {
				return rerr
			}
			logger.WithError(rerr).Warn("failed to write run report")
		}
	}

	return err
}

// fix loads the export, prints the recorded and computed checksums and
// saves the patched export when target is set.
func fix(cmd *cobra.Command, log logrus.FieldLogger, session *export.Session, input, target string, check bool) error {
	out := cmd.OutOrStdout()

	if err := session.Load(input, target != ""); err != nil {
		if session.NewCRC() != "" {
			return fmt.Errorf("%s: %w (computed checksum %s)", input, err, session.NewCRC())
		}
		return fmt.Errorf("%s: %w", input, err)
	}

	res, err := session.Result()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s\n", res.OldCRC, res.NewCRC)

	log = log.WithFields(logrus.Fields{
		"old_crc": res.OldCRC,
		"new_crc": res.NewCRC,
	})
	if res.Match() {
		log.Info("recorded checksum is correct")
	} else {
		log.Info("recorded checksum differs")
	}

	if check && !res.Match() {
		return fmt.Errorf("%s: %w: recorded %s, computed %s",
			input, exporterrors.ErrChecksumMismatch, res.OldCRC, res.NewCRC)
	}

	if target == "" {
		return nil
	}

	fmt.Fprintf(out, "Saving to %s\n", target)
	if err := session.Save(target); err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}
	log.WithField("output", target).Info("export saved")
	return nil
}
