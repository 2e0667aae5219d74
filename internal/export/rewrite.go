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

import "io"

// rewriter copies input lines to a sink one line behind the reader, so the
// last line consumed is still unwritten when the scan stops and can be
// patched first. A nil sink discards output.
type rewriter struct {
	w       io.Writer
	pending slot
}

func newRewriter(w io.Writer) *rewriter {
	return &rewriter{w: w}
}

// hold makes line the pending line. Any previous pending line must already
// have been flushed.
func (rw *rewriter) hold(line []byte) {
	rw.pending.put(line)
}

// flush writes the pending line unmodified.
func (rw *rewriter) flush() error {
	line, ok := rw.pending.take()
	if !ok {
		return nil
	}
	return rw.write(line)
}

// finish writes the pending line after passing it through patch.
func (rw *rewriter) finish(patch func([]byte) []byte) error {
	line, ok := rw.pending.take()
	if !ok {
		return nil
	}
	return rw.write(patch(line))
}

func (rw *rewriter) write(p []byte) error {
	if rw.w == nil {
		return nil
	}
	n, err := rw.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return err
}
