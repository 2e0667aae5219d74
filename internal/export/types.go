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

package export

import (
	"io"

	"github.com/sirseerhq/exportcrc/internal/checksum"
	"github.com/sirseerhq/exportcrc/internal/metadata"
	"github.com/sirupsen/logrus"
)

// ParseState is the scanner's position in the export grammar.
type ParseState int

const (
	// StateNone is the initial state, before the export header is seen.
	StateNone ParseState = iota
	// StateRoot is the top level of the export.
	StateRoot
	// StateCfgFile is inside an embedded text file.
	StateCfgFile
	// StateBinFile is inside an embedded hex encoded binary file.
	StateBinFile
)

func (s ParseState) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateRoot:
		return "root"
	case StateCfgFile:
		return "cfgfile"
	case StateBinFile:
		return "binfile"
	default:
		return "unknown"
	}
}

// Options control how an export is scanned and how the checksum is rendered.
type Options struct {
	// Grammar selects the pattern dialect. Nil means StrictGrammar.
	Grammar *Grammar

	// Format controls checksum rendering. Empty means checksum.FormatUpper.
	Format checksum.Format

	// NormalizeEOL converts CRLF to LF in the checksum view of every line
	// before un-escaping. The rewritten output is never normalized.
	NormalizeEOL bool

	// StrictRoot rejects root level lines that match no pattern instead
	// of skipping them.
	StrictRoot bool

	// Logger receives Debug level trace events. Nil disables tracing.
	Logger logrus.FieldLogger

	// Tracker receives the scan counters. It must be fresh for every scan
	// since counters accumulate. Nil uses a private tracker.
	Tracker *metadata.Tracker
}

// DefaultOptions returns the canonical settings: strict grammar, uppercase
// zero padded rendering, no normalization and lenient root handling.
func DefaultOptions() Options {
	return Options{
		Grammar: StrictGrammar,
		Format:  checksum.FormatUpper,
	}
}

func (o Options) withDefaults() Options {
	if o.Grammar == nil {
		o.Grammar = StrictGrammar
	}
	if o.Format == "" {
		o.Format = checksum.FormatUpper
	}
	if o.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.Logger = l
	}
	return o
}

// Result is the outcome of one scan.
type Result struct {
	// OldCRC is the checksum token recorded in the trailer. Empty when no
	// trailer was found.
	OldCRC string
	// NewCRC is the checksum computed over the scanned content.
	NewCRC string
	// Stats are the structural counters gathered during the scan.
	Stats metadata.Stats
}

// Match reports whether the recorded checksum equals the computed one. The
// values are compared numerically, so rendering differences such as case
// or zero padding do not matter.
func (r Result) Match() bool {
	return checksum.Equal(r.OldCRC, r.NewCRC)
}

// slot is a single pending line awaiting deferred processing.
type slot struct {
	line []byte
	full bool
}

// put stores line in the slot. The slot must be empty.
func (s *slot) put(line []byte) {
	s.line = line
	s.full = true
}

// take empties the slot and returns what it held.
func (s *slot) take() ([]byte, bool) {
	line, ok := s.line, s.full
	s.line, s.full = nil, false
	return line, ok
}

func (s *slot) clear() {
	s.line, s.full = nil, false
}
