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
	"errors"
	"fmt"
	"io"
	"os"

	exporterrors "github.com/sirseerhq/exportcrc/internal/errors"
	"github.com/sirseerhq/exportcrc/internal/metadata"
	"github.com/sirseerhq/exportcrc/internal/output"
	"github.com/sirupsen/logrus"
)

var errNotLoaded = errors.New("no export loaded")

// Status is the outcome of the most recent session operation.
type Status int

const (
	// StatusError is the initial status and the status after any failure.
	StatusError Status = iota
	// StatusOK means the last load succeeded and no save has failed since.
	StatusOK
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "error"
}

// Session loads one export at a time, keeps the checksum values of the last
// load and optionally buffers the rewritten content for a later save.
// A Session may be reused for any number of loads. It is not safe for
// concurrent use.
type Session struct {
	opts Options

	status Status
	err    error
	result Result
	buf    *bytes.Buffer
}

// NewSession creates a session that scans with opts.
func NewSession(opts Options) *Session {
	return &Session{opts: opts.withDefaults()}
}

// Load opens path and scans it. When buffer is true the rewritten content
// is kept in memory for Save; otherwise it is discarded.
func (s *Session) Load(path string, buffer bool) error {
	s.reset()

	f, err := os.Open(path)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w", exporterrors.ErrOpen, err))
	}
	defer f.Close()

	return s.load(f, buffer)
}

// LoadFrom scans an already open stream. The stream is not closed.
func (s *Session) LoadFrom(r io.Reader, buffer bool) error {
	s.reset()
	return s.load(r, buffer)
}

func (s *Session) load(r io.Reader, buffer bool) error {
	var (
		sink io.Writer
		buf  *bytes.Buffer
	)
	if buffer {
		buf = new(bytes.Buffer)
		sink = buf
	}

	res, err := Scan(r, sink, s.opts)
	if res != nil {
		s.result = *res
	}
	if err != nil {
		return s.fail(err)
	}

	s.buf = buf
	s.status = StatusOK
	return nil
}

// Save writes the buffered content to path, replacing it atomically.
// It returns the existing error if the session is in an error state.
func (s *Session) Save(path string) error {
	if err := s.saveable(); err != nil {
		return err
	}

	w, err := output.NewFileWriter(path)
	if err != nil {
		return s.fail(fmt.Errorf("%w: %w", exporterrors.ErrOpen, err))
	}
	return s.write(w, path)
}

// SaveTo writes the buffered content to an open stream. The stream is not
// closed.
func (s *Session) SaveTo(w io.Writer) error {
	if err := s.saveable(); err != nil {
		return err
	}
	return s.write(output.NewWriter(w), "stream")
}

// write copies the buffered content to w, committing it with Close or
// discarding it with Abort on failure.
func (s *Session) write(w output.OutputWriter, dest string) error {
	if _, err := w.Write(s.buf.Bytes()); err != nil {
		_ = w.Abort()
		return s.fail(fmt.Errorf("%w: %w", exporterrors.ErrWrite, err))
	}
	if err := w.Close(); err != nil {
		return s.fail(fmt.Errorf("%w: %w", exporterrors.ErrWrite, err))
	}

	s.opts.Logger.WithFields(logrus.Fields{
		"output": dest,
		"bytes":  w.Count(),
	}).Debug("export written")
	return nil
}

func (s *Session) saveable() error {
	if s.err != nil {
		return s.err
	}
	if s.status != StatusOK || s.buf == nil {
		return exporterrors.ErrNoBufferedContent
	}
	return nil
}

func (s *Session) reset() {
	s.status = StatusError
	s.err = nil
	s.result = Result{}
	s.buf = nil
}

func (s *Session) fail(err error) error {
	s.status = StatusError
	s.err = err
	return err
}

// Status returns the status of the last operation.
func (s *Session) Status() Status {
	return s.status
}

// Err returns the error of the last failed operation, or nil.
func (s *Session) Err() error {
	return s.err
}

// OldCRC returns the checksum recorded in the trailer by the last load.
func (s *Session) OldCRC() string {
	return s.result.OldCRC
}

// NewCRC returns the checksum computed by the last load.
func (s *Session) NewCRC() string {
	return s.result.NewCRC
}

// Stats returns the structural counters of the last load.
func (s *Session) Stats() metadata.Stats {
	return s.result.Stats
}

// Result returns the checksum values of the last load, or the error that
// put the session into its error state.
func (s *Session) Result() (Result, error) {
	if s.status != StatusOK {
		if s.err == nil {
			return Result{}, errNotLoaded
		}
		return Result{}, s.err
	}
	return s.result, nil
}
