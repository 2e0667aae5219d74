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

package output

import "io"

// OutputWriter defines the interface for writing a rewritten export.
// This abstraction lets a session save either to an open stream or to a
// file that only replaces its destination once fully written.
type OutputWriter interface {
	io.Writer

	// Close commits the output and releases any resources.
	// This should be called when all writing is complete.
	Close() error

	// Abort discards everything written so far. Calling Close after
	// Abort is a no-op.
	Abort() error

	// Count returns the number of bytes written so far.
	Count() int64
}
