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

// Package metadata provides functionality for tracking and persisting metadata
// about checksum runs. It records statistics about each scan including the
// number of lines and sections processed, the number of bytes fed to the
// checksum, and the old and new checksum values.
//
// The metadata system serves several purposes:
//   - Provides an audit trail of which run patched which export
//   - Enables troubleshooting by recording scan parameters
//   - Records structural counters useful when a firmware rejects a file
//
// Reports are saved as JSON files, allowing external tools to analyze runs.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirseerhq/exportcrc/internal/checksum"
)

// Tracker collects statistics during a scan and generates a report. Create a
// new tracker at the start of each scan and call its methods to record
// activity. A Tracker is not safe for concurrent use.
type Tracker struct {
	startTime time.Time
	stats     Stats
}

// New creates a new metadata tracker and initializes it with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// LineRead records one physical input line.
func (t *Tracker) LineRead() {
	t.stats.Lines++
}

// Variable records a root level variable assignment.
func (t *Tracker) Variable() {
	t.stats.Variables++
}

// BinFile records the start of a BINFILE section.
func (t *Tracker) BinFile() {
	t.stats.BinFiles++
}

// CfgFile records the start of a CFGFILE section.
func (t *Tracker) CfgFile() {
	t.stats.CfgFiles++
}

// BinBytes records n decoded BINFILE payload bytes.
func (t *Tracker) BinBytes(n int) {
	t.stats.BinBytes += int64(n)
}

// CfgLine records one CFGFILE content line.
func (t *Tracker) CfgLine() {
	t.stats.CfgLines++
}

// Skipped records a root level line that matched no pattern.
func (t *Tracker) Skipped() {
	t.stats.SkippedLines++
}

// Trailer records that the END OF EXPORT line was found.
func (t *Tracker) Trailer() {
	t.stats.TrailerFound = true
}

// Checked records n bytes fed to the checksum.
func (t *Tracker) Checked(n int64) {
	t.stats.CheckedBytes += n
}

// Stats returns a snapshot of the counters collected so far.
func (t *Tracker) Stats() Stats {
	return t.stats
}

// GenerateReport creates a ScanReport capturing the complete run. Call this
// at the end of a scan.
//
// Parameters:
//   - toolVersion: The version of the CLI
//   - params: The scan parameters used for this run
//   - oldCRC, newCRC: The recorded and computed checksum values
//
// Returns a complete report ready for persistence.
func (t *Tracker) GenerateReport(toolVersion string, params ScanParams, oldCRC, newCRC string) *ScanReport {
	completedAt := time.Now()
	duration := completedAt.Sub(t.startTime)

	return &ScanReport{
		ToolVersion: toolVersion,
		RunID:       fmt.Sprintf("scan-%d", t.startTime.UnixNano()),
		Parameters:  params,
		Results: ScanResults{
			OldCRC:      oldCRC,
			NewCRC:      newCRC,
			Match:       checksum.Equal(oldCRC, newCRC),
			Stats:       t.stats,
			Duration:    duration.String(),
			StartedAt:   t.startTime,
			CompletedAt: completedAt,
		},
	}
}

// SaveReport persists a ScanReport as JSON at path. The file is written
// atomically using a temporary file and rename to prevent corruption.
func SaveReport(report *ScanReport, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	// Write to temporary file first for atomicity
	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := WriteReportToWriter(report, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close report file: %w", err)
	}

	// Atomically rename to final location
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save report file: %w", err)
	}

	return nil
}

// WriteReportToWriter serializes a report to indented JSON on w.
func WriteReportToWriter(report *ScanReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
