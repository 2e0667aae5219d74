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

// Package metadata types define the structures used for tracking and
// persisting information about a single checksum run over an export file.
package metadata

import (
	"time"
)

// ScanReport represents the complete record of one checksum run. It captures
// what was scanned, how it was scanned and the results, so a patched export
// can be traced back to the run that produced it.
type ScanReport struct {
	ToolVersion string      `json:"tool_version"`
	RunID       string      `json:"run_id"`
	Parameters  ScanParams  `json:"parameters"`
	Results     ScanResults `json:"results"`
}

// ScanParams captures the input parameters used for a run.
type ScanParams struct {
	Input        string `json:"input"`
	Output       string `json:"output,omitempty"`
	Grammar      string `json:"grammar"`
	Format       string `json:"format"`
	NormalizeEOL bool   `json:"normalize_eol"`
	StrictRoot   bool   `json:"strict_root"`
}

// ScanResults contains the checksum values and the statistics gathered
// while scanning.
type ScanResults struct {
	OldCRC      string    `json:"old_crc"`
	NewCRC      string    `json:"new_crc"`
	Match       bool      `json:"match"`
	Stats       Stats     `json:"stats"`
	Duration    string    `json:"scan_duration"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// Stats holds counters about the structure of a scanned export file.
type Stats struct {
	Lines        int   `json:"lines"`         // Physical lines read
	Variables    int   `json:"variables"`     // Root level name=value lines
	BinFiles     int   `json:"bin_files"`     // BINFILE sections opened
	CfgFiles     int   `json:"cfg_files"`     // CFGFILE sections opened
	BinBytes     int64 `json:"bin_bytes"`     // Decoded BINFILE payload bytes
	CfgLines     int   `json:"cfg_lines"`     // CFGFILE content lines
	SkippedLines int   `json:"skipped_lines"` // Unmatched root lines
	CheckedBytes int64 `json:"checked_bytes"` // Bytes fed to the checksum
	TrailerFound bool  `json:"trailer_found"`
}
