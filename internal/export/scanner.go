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
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/sirseerhq/exportcrc/internal/checksum"
	exporterrors "github.com/sirseerhq/exportcrc/internal/errors"
	"github.com/sirseerhq/exportcrc/internal/metadata"
	"github.com/sirupsen/logrus"
)

var (
	nul       = []byte{0}
	lf        = []byte("\n")
	crlf      = []byte("\r\n")
	escEscape = []byte(`\\`)
	escape    = []byte(`\`)
)

// scanner is the grammar state machine. It classifies one line at a time
// and feeds the bytes each line contributes to the checksum.
type scanner struct {
	g            *Grammar
	normalizeEOL bool
	strictRoot   bool
	log          logrus.FieldLogger
	tracker      *metadata.Tracker

	state   ParseState
	acc     checksum.Accumulator
	lineNo  int
	oldCRC  string
	trailer bool

	// last CFGFILE content line, not yet checksummed
	cfgPending slot
}

func newScanner(opts Options, tracker *metadata.Tracker) *scanner {
	return &scanner{
		g:            opts.Grammar,
		normalizeEOL: opts.NormalizeEOL,
		strictRoot:   opts.StrictRoot,
		log:          opts.Logger,
		tracker:      tracker,
	}
}

// view returns the form of raw used for matching and checksumming.
func (s *scanner) view(raw []byte) []byte {
	l := raw
	if s.normalizeEOL {
		l = bytes.ReplaceAll(l, crlf, lf)
	}
	return bytes.ReplaceAll(l, escEscape, escape)
}

func (s *scanner) feed(spans ...[]byte) {
	for _, p := range spans {
		s.acc.Feed(p)
	}
}

// step processes one raw input line. It reports done once the trailer has
// been matched; no further lines may be passed after that.
func (s *scanner) step(raw []byte) (bool, error) {
	s.lineNo++
	s.tracker.LineRead()
	l := s.view(raw)

	s.log.WithFields(logrus.Fields{
		"line":  s.lineNo,
		"state": s.state,
	}).Debugf("processing: %s", bytes.TrimRight(l, "\r\n"))

	switch s.state {
	case StateNone:
		if s.g.header.Match(l) {
			s.log.Debug("export header detected")
			s.state = StateRoot
		}
		return false, nil
	case StateRoot:
		return s.root(l)
	case StateBinFile:
		return false, s.binFile(l)
	case StateCfgFile:
		s.cfgFile(l)
		return false, nil
	}
	return false, nil
}

func (s *scanner) root(l []byte) (bool, error) {
	if m := s.g.trailer.FindSubmatch(l); m != nil {
		s.oldCRC = string(m[1])
		s.trailer = true
		s.tracker.Trailer()
		s.log.WithField("crc", s.oldCRC).Debug("end of export")
		return true, nil
	}

	if m := s.g.assign.FindSubmatch(l); m != nil {
		s.log.Debugf("root variable: %s=%s", m[1], m[2])
		s.tracker.Variable()
		s.feed(m[1], m[2], nul)
		return false, nil
	}

	if m := s.g.binFile.FindSubmatch(l); m != nil {
		s.log.WithField("name", string(m[1])).Debug("binfile start")
		s.tracker.BinFile()
		s.state = StateBinFile
		s.feed(m[1], nul)
		return false, nil
	}

	if m := s.g.cfgFile.FindSubmatch(l); m != nil {
		s.log.WithField("name", string(m[1])).Debug("cfgfile start")
		s.tracker.CfgFile()
		s.state = StateCfgFile
		s.cfgPending.clear()
		s.feed(m[1], nul)
		return false, nil
	}

	if s.strictRoot {
		return false, fmt.Errorf("line %d: %w", s.lineNo, exporterrors.ErrUnmatchedLine)
	}
	s.log.WithField("line", s.lineNo).Debug("skipping unrecognized root line")
	s.tracker.Skipped()
	return false, nil
}

func (s *scanner) binFile(l []byte) error {
	if s.g.endFile.Match(l) {
		s.log.Debug("binfile end")
		s.state = StateRoot
		return nil
	}

	content := bytes.TrimRight(l, "\r\n")
	data := make([]byte, hex.DecodedLen(len(content)))
	n, err := hex.Decode(data, content)
	if err != nil {
		return fmt.Errorf("line %d: %w: %w", s.lineNo, exporterrors.ErrDecode, err)
	}
	s.tracker.BinBytes(n)
	s.feed(data[:n])
	return nil
}

// cfgFile defers every content line by one step: a line is checksummed with
// its end of line only once the next content line proves it is not the
// last one. The END OF FILE marker flushes the final line without it.
func (s *scanner) cfgFile(l []byte) {
	if s.g.endFile.Match(l) {
		s.log.Debug("cfgfile end")
		if last, ok := s.cfgPending.take(); ok {
			s.feed(bytes.TrimSuffix(last, lf))
		}
		s.state = StateRoot
		return
	}

	s.tracker.CfgLine()
	if prev, ok := s.cfgPending.take(); ok {
		s.feed(prev)
	}
	s.cfgPending.put(l)
}
