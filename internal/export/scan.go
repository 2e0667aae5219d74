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
	"bufio"
	"errors"
	"fmt"
	"io"

	exporterrors "github.com/sirseerhq/exportcrc/internal/errors"
	"github.com/sirseerhq/exportcrc/internal/metadata"
)

// Scan reads an export from r in a single pass, computing its checksum and
// copying every line to w unchanged except the last one consumed, whose
// checksum token is replaced by the computed value. A nil w discards the
// output. Scanning stops at the trailer; nothing after it is copied.
//
// On read, write, decode or strict grammar failures Scan returns a nil
// Result. If only the final trailer write fails, or the input has no
// trailer, the Result is returned alongside the error because the computed
// checksum is still valid.
func Scan(r io.Reader, w io.Writer, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	tracker := opts.Tracker
	if tracker == nil {
		tracker = metadata.New()
	}
	sc := newScanner(opts, tracker)
	rw := newRewriter(w)
	br := bufio.NewReader(r)

	for {
		if err := rw.flush(); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", sc.lineNo, exporterrors.ErrWrite, err)
		}

		line, readErr := br.ReadBytes('\n')
		if len(line) > 0 {
			rw.hold(line)
			done, err := sc.step(line)
			if err != nil {
				return nil, err
			}
			if done {
				break
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("line %d: %w: %w", sc.lineNo+1, exporterrors.ErrRead, readErr)
		}
	}

	tracker.Checked(sc.acc.Fed())
	res := &Result{
		OldCRC: sc.oldCRC,
		NewCRC: opts.Format.Render(sc.acc.Sum32()),
		Stats:  tracker.Stats(),
	}

	err := rw.finish(func(line []byte) []byte {
		if !sc.trailer {
			return line
		}
		return opts.Grammar.patchTrailer(line, res.OldCRC, res.NewCRC)
	})
	if err != nil {
		return res, fmt.Errorf("trailer: %w: %w", exporterrors.ErrWrite, err)
	}

	if !sc.trailer {
		return res, exporterrors.ErrMissingTrailer
	}

	opts.Logger.Debugf("%s -> %s", res.OldCRC, res.NewCRC)
	return res, nil
}
